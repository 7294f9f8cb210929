package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Category *uuid.UUID `json:"category,omitempty"`
}

// UpdatePostRequest represents a partial post update. Absent fields are
// left untouched.
type UpdatePostRequest struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Category  *uuid.UUID `json:"category,omitempty"`
	Published *bool      `json:"published,omitempty"`
}

// PostListResponse represents a page of posts.
type PostListResponse struct {
	Posts      []model.Post        `json:"posts"`
	Pagination *service.Pagination `json:"pagination"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListPosts godoc
// @Summary List posts with optional filters and pagination
// @Tags posts
// @Produce json
// @Param category query string false "Category ID"
// @Param published query bool false "Published filter"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} PostListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	opts := service.ListPostsOptions{Page: 1, Limit: service.DefaultPageSize}

	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			opts.Page = page
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}
	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category id")
		}
		opts.CategoryID = &categoryID
	}
	if raw := c.QueryParam("published"); raw != "" {
		published := raw == "true"
		opts.Published = &published
	}

	posts, pagination, err := h.postService.ListPosts(c.Request().Context(), opts)
	if err != nil {
		c.Logger().Errorf("list posts: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, PostListResponse{
		Posts:      posts,
		Pagination: pagination,
	})
}

// GetPost godoc
// @Summary Get a post by id, incrementing its view counter
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrPostNotFound.Error())
	}

	post, err := h.postService.GetPost(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("get post: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a post owned by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgAuthRequired)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.CreatePost(c.Request().Context(), identity, service.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.Category,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("create post: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	c.Logger().Infof("post created id=%s author=%s", post.ID, identity.ID)

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post; only its author may do so
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgAuthRequired)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrPostNotFound.Error())
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), identity, id, service.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.Category,
		Published:  req.Published,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("update post: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	c.Logger().Infof("post updated id=%s", post.ID)

	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post; its author or an admin may do so
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgAuthRequired)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrPostNotFound.Error())
	}

	if err := h.postService.DeletePost(c.Request().Context(), identity, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("delete post: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	c.Logger().Infof("post deleted id=%s by=%s", id, identity.ID)

	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}
