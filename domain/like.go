package domain

import "time"

// Like states as returned by LikeService.Toggle.
const (
	Liked   = "liked"
	Unliked = "unliked"
)

// Like represents a many-to-many relationship between a User and a Post.
// A (user, post) pair is unique. A Like is created when a user likes a post
// and deleted again, not marked, when the same user unlikes it.
type Like struct {
	ID     int `json:"id"`
	UserID int `json:"user_id" gorm:"notNull;uniqueIndex:idx_user_post"`
	PostID int `json:"post_id" gorm:"notNull;uniqueIndex:idx_user_post"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	// Toggle flips the like state of the given user on the given post in
	// one atomic operation and reports the new state (Liked or Unliked)
	// together with the post's updated like count.
	Toggle(userId, postId int) (string, int, error)
	Count(postId int) (int, error)
	// LikedPostIDs returns the ids of every post the user likes. A user
	// who likes nothing gets an empty, non-nil slice.
	LikedPostIDs(userId int) ([]int, error)
}
