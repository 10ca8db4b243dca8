package service

import (
	"io"
	"testing"
	"time"

	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/repository"
	"github.com/martijn/typesprint/internal/infrastructure/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// cheap parameters keep the tests fast
var testArgon2Params = Argon2Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type testEnv struct {
	db           *sqlite.DB
	userRepo     repository.UserRepository
	scoreRepo    repository.ScoreRepository
	authService  *AuthService
	userService  *UserService
	scoreService *ScoreService
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := newTestLogger()
	userRepo := sqlite.NewUserRepository(db)
	scoreRepo := sqlite.NewScoreRepository(db)
	authService := NewAuthService(userRepo, NewPasswordHasher(testArgon2Params), testSecret, "HS256", time.Hour, logger)

	return &testEnv{
		db:           db,
		userRepo:     userRepo,
		scoreRepo:    scoreRepo,
		authService:  authService,
		userService:  NewUserService(userRepo, scoreRepo, authService, logger),
		scoreService: NewScoreService(scoreRepo),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func newLegacyUser(hash string) *domain.User {
	return domain.NewUser("legacy", "legacy@example.com", hash)
}
