package domain

import "time"

// Post represents a text post made by a user. Content is the only mutable
// field; CreatedAt is set once on creation and never changes afterwards,
// even through edits.
type Post struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id" gorm:"notNull;index"`
	User    User   `json:"user"`
	Content string `json:"content" gorm:"notNull"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
// All list methods return posts ordered by creation time, newest first.
type PostService interface {
	ByID(id int) (*Post, error)
	Create(post *Post) error
	Update(id int, content string) (*Post, error)
	All() ([]Post, error)
	ByUserID(userId int) ([]Post, error)
	ByFollowing(userId int) ([]Post, error)
}
