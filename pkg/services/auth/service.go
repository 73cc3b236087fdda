package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
)

var (
	ErrEmailTaken    = errors.New("user already exists with this email")
	ErrInvalidLogin  = errors.New("invalid email or password")
	ErrInvalidToken  = errors.New("invalid token")
	ErrUserNotFound  = errors.New("user not found")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrMissingFields = errors.New("email, password, and name are required")
)

const minPasswordLength = 6

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// Service owns user accounts and bearer tokens. Users live in an in-memory
// store; the rest of the system only ever sees the principal ID carried in
// verified token claims.
type Service struct {
	config Config
	users  *userStore
}

func NewService(config Config) *Service {
	if config.TokenTTL == 0 {
		config.TokenTTL = 7 * 24 * time.Hour
	}
	return &Service{config: config, users: newUserStore()}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (domain.User, string, error) {
	if email == "" || password == "" || name == "" {
		return domain.User{}, "", ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.add(user); err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, ok := s.users.byEmail(email)
	if !ok {
		return domain.User{}, "", ErrInvalidLogin
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidLogin
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, ok := s.users.byID(id)
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// VerifyToken parses and validates a bearer token and returns its claims.
func (s *Service) VerifyToken(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
