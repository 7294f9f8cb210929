package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/middleware"
)

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	userHandler *handler.UserHandler,
	authenticate echo.MiddlewareFunc,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// A wrong method on a known path answers like any other unmatched
	// request, not with a 405.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusMethodNotAllowed {
			err = echo.NewHTTPError(http.StatusNotFound, "Route not found")
		}
		errors.JSONErrorHandler(err, c)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)

	// Authenticated routes
	api.GET("/auth/profile", authHandler.Profile, authenticate)
	api.POST("/posts", postHandler.CreatePost, authenticate)
	api.PUT("/posts/:id", postHandler.UpdatePost, authenticate)
	api.DELETE("/posts/:id", postHandler.DeletePost, authenticate)

	// Admin routes
	api.GET("/users", userHandler.ListUsers, authenticate, middleware.RequireAdmin)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Route not found")
	})
}
