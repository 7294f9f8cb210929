package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// DefaultPageSize is the post listing page size when none is requested.
const DefaultPageSize = 10

// ListPostsOptions carries listing filters and pagination.
type ListPostsOptions struct {
	CategoryID *uuid.UUID
	Published  *bool
	Page       int
	Limit      int
}

// Pagination describes the page returned by ListPosts.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// CreatePostInput carries the fields accepted at post creation.
type CreatePostInput struct {
	Title      string
	Content    string
	CategoryID *uuid.UUID
}

// UpdatePostInput carries the post fields a client may change. Nil means the
// field was not supplied and stays untouched.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
	Published  *bool
}

// PostService handles post CRUD and the ownership rules.
type PostService interface {
	ListPosts(ctx context.Context, opts ListPostsOptions) ([]model.Post, *Pagination, error)
	GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
	CreatePost(ctx context.Context, author *model.User, in CreatePostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, actor *model.User, id uuid.UUID, in UpdatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

// ListPosts returns the requested page ordered newest first, with pagination
// metadata. Listing is public.
func (s *postService) ListPosts(ctx context.Context, opts ListPostsOptions) ([]model.Post, *Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	filter := repository.PostFilter{
		CategoryID: opts.CategoryID,
		Published:  opts.Published,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list posts: %w", err)
	}

	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("count posts: %w", err)
	}

	if posts == nil {
		posts = []model.Post{}
	}

	return posts, &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetPost fetches one post and bumps its view counter. The increment is
// last-write-wins under concurrency, which is acceptable for a view count.
func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.posts.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	post.Views++

	return post, nil
}

// CreatePost validates and sanitizes input, derives the slug once from the
// title and stores the post owned by author.
func (s *postService) CreatePost(ctx context.Context, author *model.User, in CreatePostInput) (*model.Post, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "title", Value: in.Title},
		validation.Field{Name: "content", Value: in.Content},
	); err != nil {
		return nil, errors.Validation(err.Error())
	}

	title := validation.SanitizeInput(in.Title)
	content := validation.SanitizeInput(in.Content)

	if err := validation.ValidateTitle(title); err != nil {
		return nil, errors.Validation(err.Error())
	}
	if err := validation.ValidateContent(content); err != nil {
		return nil, errors.Validation(err.Error())
	}

	post := &model.Post{
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		CategoryID: in.CategoryID,
		Slug:       model.Slugify(title),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// UpdatePost mutates only the supplied fields. Only the author may update;
// the admin role grants no override here, unlike delete. The slug is never
// regenerated on title edits.
func (s *postService) UpdatePost(ctx context.Context, actor *model.User, id uuid.UUID, in UpdatePostInput) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actor.ID {
		return nil, errors.ErrUpdateForbidden
	}

	if in.Title != nil {
		title := validation.SanitizeInput(*in.Title)
		if err := validation.ValidateTitle(title); err != nil {
			return nil, errors.Validation(err.Error())
		}
		post.Title = title
	}
	if in.Content != nil {
		content := validation.SanitizeInput(*in.Content)
		if err := validation.ValidateContent(content); err != nil {
			return nil, errors.Validation(err.Error())
		}
		post.Content = content
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post. The author may delete their own posts; the
// admin role may delete anyone's.
func (s *postService) DeletePost(ctx context.Context, actor *model.User, id uuid.UUID) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return errors.ErrDeleteForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *postService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}
