package crud

import (
	"errors"

	"gorm.io/gorm"

	"socialnet/domain"
	"socialnet/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// Unlike the other services it carries no separate validator layer: the
// only mutation is Toggle, and its checks must run inside the same
// transaction as the mutation itself.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeGorm{
			db: db,
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Toggle flips the like state of a user on a post. The existence check, the
// create-or-delete and the recount all run in one transaction, so two
// concurrent toggles on the same (user, post) pair serialize instead of
// creating duplicate edges. Should a raced insert still trip the unique
// index, the transaction rolls back and the edge set stays consistent.
func (lg *likeGorm) Toggle(userId, postId int) (string, int, error) {
	var state string
	var count int64
	err := lg.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&domain.Post{}, "id = ?", postId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "The liked post does not exist.")
			}
			return err
		}

		var existing domain.Like
		err := tx.First(&existing, "user_id = ? AND post_id = ?", userId, postId).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			state = domain.Unliked
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := domain.Like{UserID: userId, PostID: postId}
			if err := tx.Create(&like).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errs.Errorf(errs.ECONFLICT, "You already like that post.")
				}
				return err
			}
			state = domain.Liked
		default:
			return err
		}

		return tx.Model(&domain.Like{}).Where("post_id = ?", postId).Count(&count).Error
	})
	if err != nil {
		return "", 0, err
	}
	return state, int(count), nil
}

// Count returns the number of likes on a post.
func (lg *likeGorm) Count(postId int) (int, error) {
	var count int64
	err := lg.db.Model(&domain.Like{}).Where("post_id = ?", postId).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// LikedPostIDs returns the ids of every post the given user likes. A user
// who likes nothing gets an empty, non-nil slice.
func (lg *likeGorm) LikedPostIDs(userId int) ([]int, error) {
	ids := make([]int, 0)
	err := lg.db.Model(&domain.Like{}).
		Where("user_id = ?", userId).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
