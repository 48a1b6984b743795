package repository

import (
	"errors"

	"gorm.io/gorm"

	"smart-rw-svc/internal/models"
)

// ForumRepository defines the interface for forum post and comment data operations
type ForumRepository interface {
	CreatePost(post *models.ForumPost) error
	GetPostByID(id uint) (*models.ForumPost, error)
	UpdatePost(post *models.ForumPost) error
	DeletePost(id uint) error
	ListPosts(page, limit int) ([]*models.ForumPost, int64, error)
	CreateComment(comment *models.ForumComment) error
	GetCommentByID(id uint) (*models.ForumComment, error)
	UpdateComment(comment *models.ForumComment) error
	DeleteComment(id uint) error
	ListComments(postID uint) ([]*models.ForumComment, error)
}

// forumRepository implements ForumRepository
type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new instance of ForumRepository
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{
		db: db,
	}
}

// CreatePost inserts a new forum post
func (r *forumRepository) CreatePost(post *models.ForumPost) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by primary key; returns (nil, nil) when missing
func (r *forumRepository) GetPostByID(id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	err := r.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost saves post changes
func (r *forumRepository) UpdatePost(post *models.ForumPost) error {
	return r.db.Save(post).Error
}

// DeletePost removes a post and its comments
func (r *forumRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.ForumComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ForumPost{}, id).Error
	})
}

// ListPosts retrieves posts, pinned first, newest next
func (r *forumRepository) ListPosts(page, limit int) ([]*models.ForumPost, int64, error) {
	var posts []*models.ForumPost
	var total int64

	if err := r.db.Model(&models.ForumPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	err := r.db.Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// CreateComment inserts a new comment
func (r *forumRepository) CreateComment(comment *models.ForumComment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by primary key; returns (nil, nil) when missing
func (r *forumRepository) GetCommentByID(id uint) (*models.ForumComment, error) {
	var comment models.ForumComment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment saves comment changes
func (r *forumRepository) UpdateComment(comment *models.ForumComment) error {
	return r.db.Save(comment).Error
}

// DeleteComment removes a comment
func (r *forumRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.ForumComment{}, id).Error
}

// ListComments retrieves all comments of a post, oldest first
func (r *forumRepository) ListComments(postID uint) ([]*models.ForumComment, error) {
	var comments []*models.ForumComment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
