package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, opts service.ListPostsOptions) ([]model.Post, *service.Pagination, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(*service.Pagination), args.Error(2)
}

func (m *MockPostService) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, author *model.User, in service.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, author, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, actor *model.User, id uuid.UUID, in service.UpdatePostInput) (*model.Post, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, actor *model.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// attachIdentity fakes an upstream Authenticate stage for handler tests.
func attachIdentity(user *model.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

func newPostEcho(svc *MockPostService, identity *model.User) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = errors.JSONErrorHandler
	h := NewPostHandler(svc)
	e.GET("/api/posts", h.ListPosts)
	e.GET("/api/posts/:id", h.GetPost)
	if identity != nil {
		e.POST("/api/posts", h.CreatePost, attachIdentity(identity))
		e.PUT("/api/posts/:id", h.UpdatePost, attachIdentity(identity))
		e.DELETE("/api/posts/:id", h.DeletePost, attachIdentity(identity))
	}
	return e
}

func TestPostHandler_ListPosts(t *testing.T) {
	svc := new(MockPostService)
	published := true
	svc.On("ListPosts", mock.Anything, service.ListPostsOptions{
		Page:      2,
		Limit:     5,
		Published: &published,
	}).Return([]model.Post{{Title: "First"}}, &service.Pagination{
		Page: 2, Limit: 5, Total: 6, Pages: 2,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=2&limit=5&published=true", nil)
	rec := httptest.NewRecorder()
	newPostEcho(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PostListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 1)
	assert.Equal(t, 2, resp.Pagination.Pages)
	svc.AssertExpectations(t)
}

func TestPostHandler_GetPost(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		postID := uuid.New()
		svc := new(MockPostService)
		svc.On("GetPost", mock.Anything, postID).Return(&model.Post{ID: postID, Views: 3}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String(), nil)
		rec := httptest.NewRecorder()
		newPostEcho(svc, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"views":3`)
	})

	t.Run("not found", func(t *testing.T) {
		postID := uuid.New()
		svc := new(MockPostService)
		svc.On("GetPost", mock.Anything, postID).Return(nil, errors.ErrPostNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String(), nil)
		rec := httptest.NewRecorder()
		newPostEcho(svc, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, rec.Body.String())
	})

	t.Run("unparseable id behaves as not found", func(t *testing.T) {
		svc := new(MockPostService)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		newPostEcho(svc, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPostHandler_CreatePost(t *testing.T) {
	actor := &model.User{ID: uuid.New(), Username: "alice", Role: model.RoleUser}
	postID := uuid.New()

	svc := new(MockPostService)
	svc.On("CreatePost", mock.Anything, actor, service.CreatePostInput{
		Title:   "My Post",
		Content: "Long enough content.",
	}).Return(&model.Post{ID: postID, Title: "My Post", AuthorID: actor.ID}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"My Post","content":"Long enough content."}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	newPostEcho(svc, actor).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), actor.ID.String())
	svc.AssertExpectations(t)
}

func TestPostHandler_UpdatePost_ForbiddenForNonAuthor(t *testing.T) {
	actor := &model.User{ID: uuid.New(), Username: "bob", Role: model.RoleAdmin}
	postID := uuid.New()

	svc := new(MockPostService)
	svc.On("UpdatePost", mock.Anything, actor, postID, mock.Anything).
		Return(nil, errors.ErrUpdateForbidden)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+postID.String(),
		strings.NewReader(`{"title":"Hijacked"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	newPostEcho(svc, actor).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"You can only update your own posts"}`, rec.Body.String())
}

func TestPostHandler_DeletePost(t *testing.T) {
	actor := &model.User{ID: uuid.New(), Username: "carol", Role: model.RoleAdmin}
	postID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		svc := new(MockPostService)
		svc.On("DeletePost", mock.Anything, actor, postID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+postID.String(), nil)
		rec := httptest.NewRecorder()
		newPostEcho(svc, actor).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Post deleted successfully"}`, rec.Body.String())
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockPostService)
		svc.On("DeletePost", mock.Anything, actor, postID).Return(errors.ErrDeleteForbidden)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+postID.String(), nil)
		rec := httptest.NewRecorder()
		newPostEcho(svc, actor).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"You can only delete your own posts"}`, rec.Body.String())
	})
}
