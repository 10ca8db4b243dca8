package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/api/middleware"
	"github.com/martijn/typesprint/internal/core/service"
	"github.com/martijn/typesprint/internal/infrastructure/sqlite"
	"github.com/sirupsen/logrus"
)

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqlite.DB
	router      *gin.Engine
	authService *service.AuthService
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := sqlite.NewUserRepository(db)
	scoreRepo := sqlite.NewScoreRepository(db)

	hasher := service.NewPasswordHasher(service.Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	authService := service.NewAuthService(userRepo, hasher, "test-secret", "HS256", time.Hour, logger)
	userService := service.NewUserService(userRepo, scoreRepo, authService, logger)
	scoreService := service.NewScoreService(scoreRepo)
	contentService := service.NewContentService(0, service.DefaultParagraphMaxChars)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	scoreHandler := NewScoreHandler(scoreService)
	contentHandler := NewContentHandler(contentService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(logger))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.GET("/generated_paragraph", contentHandler.GenerateParagraph)
	protected.GET("/scores", scoreHandler.ListScores)
	protected.POST("/scores", scoreHandler.CreateScore)
	protected.GET("/users", userHandler.ListUsers)
	protected.PUT("/update_user", userHandler.UpdateUser)
	protected.DELETE("/delete_user", userHandler.DeleteUser)

	return &testEnv{
		db:          db,
		router:      router,
		authService: authService,
	}
}

// makeRequest performs a request with an optional JSON body and bearer token
func (env *testEnv) makeRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user over HTTP and returns its access token
func (env *testEnv) registerAndLogin(t *testing.T, username, email, password string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, w.Code, w.Body.String())
	}

	w = env.makeRequest(t, http.MethodPost, "/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, w.Code, w.Body.String())
	}

	var resp dto.TokenResponse
	parseJSON(t, w, &resp)
	return resp.AccessToken
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	parseJSON(t, w, &resp)
	return resp
}
