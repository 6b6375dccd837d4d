package repositories

import (
	"errors"
	"fmt"

	"inkwell/app/models"

	"github.com/jinzhu/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// GormUserRepository implements UserRepository on a relational store.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	return nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GormPostRepository implements PostRepository on a relational store.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(post *models.BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %v", err)
	}
	return nil
}

func (r *GormPostRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns every post in the store's natural order. No explicit ORDER BY
// is issued, so ordering is store-defined (insertion order in practice).
func (r *GormPostRepository) List() ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	if err := r.db.Preload("Author").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormPostRepository) Update(post *models.BlogPost) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("failed to update post: %v", err)
	}
	return nil
}

func (r *GormPostRepository) Delete(id uint) error {
	res := r.db.Where("id = ?", id).Delete(&models.BlogPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormCommentRepository implements CommentRepository on a relational store.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %v", err)
	}
	return nil
}

func (r *GormCommentRepository) ListByPost(postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Where("post_id = ?", postID).Preload("Author").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
