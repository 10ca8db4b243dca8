package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/handler"
	"github.com/martijn/typesprint/internal/api/middleware"
	"github.com/martijn/typesprint/internal/core/service"
	"github.com/martijn/typesprint/pkg/config"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger logrus.FieldLogger,
	authService *service.AuthService,
	userService *service.UserService,
	scoreService *service.ScoreService,
	contentService *service.ContentService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	RegisterRoutes(router, cfg, logger, authService, userService, scoreService, contentService)

	return &Server{
		router: router,
		srv: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort),
			Handler:        router,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		config: cfg,
		logger: logger,
	}
}

// RegisterRoutes installs middleware and every route on router.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	logger logrus.FieldLogger,
	authService *service.AuthService,
	userService *service.UserService,
	scoreService *service.ScoreService,
	contentService *service.ContentService,
) {
	// Global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	contentHandler := handler.NewContentHandler(contentService)

	// Public routes (no auth required)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/generated_paragraph", contentHandler.GenerateParagraph)
		protected.GET("/scores", scoreHandler.ListScores)
		protected.POST("/scores", scoreHandler.CreateScore)
		protected.GET("/users", userHandler.ListUsers)
		protected.PUT("/update_user", userHandler.UpdateUser)
		protected.DELETE("/delete_user", userHandler.DeleteUser)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.srv.Addr

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Infof("starting HTTPS server on %s", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Infof("starting HTTP server on %s", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
