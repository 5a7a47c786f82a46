package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/xtrntr/tradelog/internal/apperrors"
	"github.com/xtrntr/tradelog/internal/db"
	"github.com/xtrntr/tradelog/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the storage AuthService needs
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, email, passwordHash string) (int64, error)
}

// Config controls token signing and password hashing
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// Claims is the signed token payload
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the numeric user id from the subject
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenPair is returned on login
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles user authentication
type AuthService struct {
	store  UserStore
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(store UserStore, cfg Config, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// EmailExists returns the user registered under email, or nil if there is none.
// Store failures are returned, not reported as a missing user.
func (s *AuthService) EmailExists(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	return user, nil
}

// Signup creates a user with a bcrypt-hashed password
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	existing, err := s.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflict("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.BadRequest("password must be at most 72 bytes")
		}
		return apperrors.Internal("Sign up could not happen", err)
	}

	if _, err := s.store.InsertUser(ctx, email, string(hashed)); err != nil {
		// lost a race with a concurrent sign-up for the same email
		if errors.Is(err, db.ErrDuplicate) {
			return apperrors.Conflict("Email already exists")
		}
		s.logger.Error("user insert failed", zap.Error(err))
		return apperrors.Internal("Sign up could not happen", err)
	}
	return nil
}

// Login verifies credentials and issues an access and a refresh token
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.EmailExists(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if user == nil {
		return TokenPair{}, apperrors.BadRequest("Invalid user, email not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, apperrors.Unauthorized("Invalid credentials")
	}

	subject := strconv.FormatInt(user.ID, 10)
	access, err := s.sign(subject, user.Email, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, apperrors.Internal("Failed to issue token", err)
	}
	refresh, err := s.sign(subject, user.Email, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, apperrors.Internal("Failed to issue token", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies token and issues a new access token for the same subject
func (s *AuthService) Refresh(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", apperrors.Unauthorized("Invalid refresh token")
	}

	access, err := s.sign(claims.Subject, claims.Email, s.cfg.AccessTTL)
	if err != nil {
		return "", apperrors.Internal("Failed to issue token", err)
	}
	return access, nil
}

// VerifyAccessToken checks signature and expiry and returns the claims
func (s *AuthService) VerifyAccessToken(token string) (*Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) sign(subject, email string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

func (s *AuthService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
