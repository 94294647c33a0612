package domain

import "time"

// User represents a registered member of the network. The Password and
// Remember fields only carry transient values coming in from requests and
// are never persisted; only their hashed counterparts are stored.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" gorm:"notNull;uniqueIndex"`
	Email    string `json:"email" gorm:"notNull;uniqueIndex"`

	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"notNull"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"notNull;uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FollowerCount, FollowingCount and IsFollowing are computed per
	// request for profile responses, never stored.
	FollowerCount  int   `json:"follower_count,omitempty" gorm:"-"`
	FollowingCount int   `json:"following_count,omitempty" gorm:"-"`
	IsFollowing    *bool `json:"is_following,omitempty" gorm:"-"`
}

// UserService is a set of methods to manipulate and work with the User model.
// It doubles as the authentication collaborator: credentials and remember
// tokens live here, while cookies and middleware live in the http package.
type UserService interface {
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByRemember(token string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	Authenticate(username, password string) (*User, error)
}
