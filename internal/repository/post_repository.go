package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/model"
)

// PostFilter narrows post listing queries.
type PostFilter struct {
	CategoryID *uuid.UUID
	Published  *bool
	Offset     int
	Limit      int
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves a modified post.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post by ID.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

// FindByID finds a post with its author and category populated.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns the matching page ordered by creation time descending.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	var posts []model.Post
	q := r.withRelations(applyFilter(r.db.WithContext(ctx), filter)).
		Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts matching the filter.
func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&model.Post{}), filter).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// IncrementViews bumps the view counter in a single statement so concurrent
// reads rely on the database's per-row atomicity.
func (r *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *postRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "email")
		}).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})
}

func applyFilter(q *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	return q
}
