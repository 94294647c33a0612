package crud

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"socialnet/domain"
	"socialnet/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.userIdValid,
		pv.contentMinLength,
		pv.contentMaxLength)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations on the new content, then replaces the content of
// the post with the given ID. The creation timestamp is left untouched.
func (pv *postValidator) Update(id int, content string) (*domain.Post, error) {
	temp := domain.Post{Content: content}
	err := runPostValFns(&temp,
		pv.contentMinLength,
		pv.contentMaxLength)
	if err != nil {
		return nil, err
	}
	return pv.postGorm.Update(id, content)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn func(post *domain.Post) error

// contentMinLength makes sure that the Post's content is not empty after trimming.
func (pv *postValidator) contentMinLength(post *domain.Post) error {
	if strings.TrimSpace(post.Content) == "" {
		return errs.Errorf(errs.EINVALID, "Post content must not be empty.")
	}
	return nil
}

// contentMaxLength makes sure that the Post's content does not exceed the maximum content length.
func (pv *postValidator) contentMaxLength(post *domain.Post) error {
	if utf8.RuneCountInString(post.Content) > 10000 {
		return errs.Errorf(errs.EINVALID, "Post content max length is 10000 characters.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (pv *postValidator) userIdValid(post *domain.Post) error {
	if post.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "User ID is required.")
	}
	return nil
}

// ByID retrieves a single Post by ID, along with its creator.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("User").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// All retrieves all posts, newest first.
func (pg *postGorm) All() ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Preload("User").
		Order("created_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByUserID retrieves all posts of a single creator, newest first.
func (pg *postGorm) ByUserID(userId int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Where("user_id = ?", userId).
		Preload("User").
		Order("created_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByFollowing retrieves all posts whose creators the given user follows,
// newest first. A user who follows no one gets an empty result.
func (pg *postGorm) ByFollowing(userId int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Joins("JOIN follows ON follows.followed_id = posts.user_id").
		Where("follows.follower_id = ?", userId).
		Preload("User").
		Order("posts.created_at desc, posts.id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create stores the data from the Post object in a new database record.
// On success, it loads the creator relation, so that the json response
// displays the full data of the created post.
func (pg *postGorm) Create(post *domain.Post) error {
	if err := pg.db.Create(post).Error; err != nil {
		return err
	}
	return pg.db.Preload("User").First(post, "id = ?", post.ID).Error
}

// Update replaces the content of a single post record. Only the content and
// updated_at columns are written, created_at stays as it was.
func (pg *postGorm) Update(id int, content string) (*domain.Post, error) {
	res := pg.db.Model(&domain.Post{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
	}
	return pg.ByID(id)
}
