package crud

import (
	"errors"

	"gorm.io/gorm"

	"socialnet/domain"
	"socialnet/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.followedIsNotFollower,
		fv.followedUserExists,
		fv.notAlreadyFollowed)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete runs validations needed for deleting existing Follow database records.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.followExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// followExists makes sure that the Follow record to be deleted actually exists.
func (fv *followValidator) followExists(follow *domain.Follow) error {
	var existing domain.Follow
	err := fv.db.First(&existing, "follower_id = ? AND followed_id = ?",
		follow.FollowerID, follow.FollowedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "You don't follow this user.")
		}
		return err
	}
	return nil
}

// followedIsNotFollower makes sure that a user doesn't follow themselves.
func (fv *followValidator) followedIsNotFollower(follow *domain.Follow) error {
	if follow.FollowerID == follow.FollowedID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// followedUserExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedUserExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// notAlreadyFollowed makes sure that the user doesn't already follow the
// other user. The composite unique index remains the authoritative check
// under races; this validation exists for the friendlier message.
func (fv *followValidator) notAlreadyFollowed(follow *domain.Follow) error {
	var existing domain.Follow
	err := fv.db.First(&existing, "follower_id = ? AND followed_id = ?",
		follow.FollowerID, follow.FollowedID).Error
	if err == nil {
		return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// IsFollowing reports whether one user follows another.
func (fg *followGorm) IsFollowing(followerId, followedId int) bool {
	err := fg.db.First(&domain.Follow{}, "follower_id = ? AND followed_id = ?",
		followerId, followedId).Error
	return err == nil
}

// FollowingIDs returns the ids of every user the given user follows.
func (fg *followGorm) FollowingIDs(userId int) ([]int, error) {
	ids := make([]int, 0)
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ?", userId).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerIDs returns the ids of every user following the given user.
func (fg *followGorm) FollowerIDs(userId int) ([]int, error) {
	ids := make([]int, 0)
	err := fg.db.Model(&domain.Follow{}).
		Where("followed_id = ?", userId).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowing returns the number of users the given user follows.
func (fg *followGorm) CountFollowing(userId int) (int, error) {
	var count int64
	err := fg.db.Model(&domain.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountFollowers returns the number of users following the given user.
func (fg *followGorm) CountFollowers(userId int) (int, error) {
	var count int64
	err := fg.db.Model(&domain.Follow{}).Where("followed_id = ?", userId).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Create stores the data from the Follow object in a new database record.
// A raced duplicate insert trips the composite unique index and surfaces as
// a conflict, same as the validator's pre-check.
func (fg *followGorm) Create(follow *domain.Follow) error {
	err := fg.db.Create(follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
		}
		return err
	}
	return nil
}

// Delete permanently deletes the database record matching the Follow's
// (follower, followed) pair.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}
