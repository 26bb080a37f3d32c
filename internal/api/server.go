package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"taskboard/internal/config"
	mw "taskboard/internal/middleware"
	"taskboard/internal/service"
)

// Server owns the HTTP surface: routing, middleware, and the handler set.
type Server struct {
	echo *echo.Echo
	log  zerolog.Logger
}

func NewServer(cfg *config.Config, log zerolog.Logger, authSvc *service.AuthService, boardSvc *service.BoardService, taskSvc *service.TaskService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(20))))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))

	authHandler := NewAuthHandler(authSvc, log)
	boardHandler := NewBoardHandler(boardSvc, taskSvc, log)
	taskHandler := NewTaskHandler(taskSvc, log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	// Everything below requires a bearer token.
	secured := api.Group("", mw.JWT([]byte(cfg.JWT.Secret)))
	secured.GET("/boards", boardHandler.List)
	secured.POST("/boards", boardHandler.Create)
	secured.GET("/boards/:id/tasks", boardHandler.ListTasks)
	secured.GET("/tasks", taskHandler.List)
	secured.POST("/tasks", taskHandler.Create)
	secured.PUT("/tasks/:id", taskHandler.Update)
	secured.POST("/tasks/:id/move", taskHandler.Move)
	secured.DELETE("/tasks/:id", taskHandler.Delete)

	return &Server{echo: e, log: log}
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
