package domain

import "time"

// Follow represents a self-referential many-to-many relationship between two
// users. The FollowerID is the ID of the user that follows, the FollowedID
// the ID of the user being followed. A (follower, followed) pair is unique
// and a user can never follow themselves; both rules are enforced at the
// store boundary so every caller path gets the same guarantee.
type Follow struct {
	ID         int  `json:"id"`
	FollowerID int  `json:"-" gorm:"notNull;uniqueIndex:idx_follower_followed"`
	Follower   User `json:"follower"`
	FollowedID int  `json:"-" gorm:"notNull;uniqueIndex:idx_follower_followed"`
	Followed   User `json:"followed"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	IsFollowing(followerId, followedId int) bool
	FollowingIDs(userId int) ([]int, error)
	FollowerIDs(userId int) ([]int, error)
	CountFollowing(userId int) (int, error)
	CountFollowers(userId int) (int, error)
}
