package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

const tokenTypeBearer = "bearer"

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo       ports.UserRepository
	audit      ports.AuditSink
	logger     zerolog.Logger
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

type AuthOption func(*AuthService)

// WithBcryptCost overrides bcrypt.DefaultCost. Values outside bcrypt's range
// are ignored.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func WithAuditSink(sink ports.AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = sink }
}

func WithLogger(logger zerolog.Logger) AuthOption {
	return func(s *AuthService) { s.logger = logger }
}

func withClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, opts ...AuthOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	s := &AuthService{
		repo:       repo,
		logger:     zerolog.Nop(),
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	record(ctx, s.audit, domain.EntityUser, created.ID, domain.AuditCreated)
	return created, nil
}

// Login checks the credentials and issues an access token. An unknown user and
// a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Token, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.Token{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(claims.Subject, 10, 64)
}
