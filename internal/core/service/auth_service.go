package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/repository"
	"github.com/sirupsen/logrus"
)

const (
	TokenIssuer          = "typesprint"
	DefaultTokenTTL      = 15 * time.Minute
	DefaultJWTAlgorithm  = "HS256"
	invalidCredentials   = "Invalid credentials"
	invalidOrExpiredAuth = "Invalid or expired token"
)

type AuthService struct {
	userRepo     repository.UserRepository
	hasher       *PasswordHasher
	jwtSecret    string
	jwtAlgorithm string
	tokenTTL     time.Duration
	logger       logrus.FieldLogger
	now          func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher *PasswordHasher,
	jwtSecret string,
	jwtAlgorithm string,
	tokenTTL time.Duration,
	logger logrus.FieldLogger,
) *AuthService {
	if jwtAlgorithm == "" {
		jwtAlgorithm = DefaultJWTAlgorithm
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:     userRepo,
		hasher:       hasher,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		tokenTTL:     tokenTTL,
		logger:       logger,
		now:          time.Now,
	}
}

// TokenTTL returns the lifetime of issued access tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// HashPassword derives a salted hash of password
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	ok, err := s.hasher.Verify(password, hash)
	if err != nil {
		s.logger.WithError(err).Warn("password hash could not be verified")
		return false
	}
	return ok
}

// Register validates the input, stores a new user and returns it.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, NewValidationError("Username, email and password are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, NewInternalError(err)
	}

	user := domain.NewUser(strings.TrimSpace(username), normalizeEmail(email), hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError("Email already exists")
		}
		return nil, NewInternalError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("user registered")

	return user, nil
}

// Login verifies the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", NewAuthError(invalidCredentials)
		}
		return "", NewInternalError(err)
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return "", NewAuthError(invalidCredentials)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewInternalError(err)
	}
	return token, nil
}

// Authenticate validates a bearer token and returns the user id it was
// issued for.
func (s *AuthService) Authenticate(tokenString string) (int64, error) {
	if strings.TrimSpace(tokenString) == "" {
		return 0, NewAuthError("Missing token")
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return 0, &ServiceError{Kind: KindAuth, Message: invalidOrExpiredAuth, Err: err}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, NewAuthError(invalidOrExpiredAuth)
	}
	return userID, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := TokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// TokenClaims represents JWT claims. The subject is the decimal user id.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
