package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/blogcms/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPostNotFound is returned when no post has the requested id
	ErrPostNotFound = errors.New("post not found")
	// ErrDuplicateTitle is returned when another post already uses the title
	ErrDuplicateTitle = errors.New("a post with this title already exists")
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id uint, fields models.PostFields) error
	DeletePost(ctx context.Context, id uint) error
	Migrate(ctx context.Context) error
}

// GormPostRepository implements PostRepository for SQLite and PostgreSQL
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Migrate creates or updates the blog_posts table
func (r *GormPostRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&models.Post{})
}

// CreatePost inserts a post and fills in its generated ID
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = 0
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

// GetPostByID retrieves a post by ID
func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &post, nil
}

// GetAllPosts retrieves every post in storage order
func (r *GormPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost overwrites the editable fields of an existing post
func (r *GormPostRepository) UpdatePost(ctx context.Context, id uint, fields models.PostFields) error {
	// A map is used so empty strings are written too.
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":    fields.Title,
		"subtitle": fields.Subtitle,
		"author":   fields.Author,
		"img_url":  fields.ImageURL,
		"body":     fields.Body,
	})
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update post %d: %w", id, ErrPostNotFound)
	}
	return nil
}

// DeletePost permanently removes a post
func (r *GormPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete post %d: %w", id, ErrPostNotFound)
	}
	return nil
}

func translateGormError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrPostNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateTitle
	default:
		return err
	}
}
