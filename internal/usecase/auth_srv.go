package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"
	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionMeta describes the client a token is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*entity.User, error)
	Token(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*utils.AccessToken, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository
	clock  clock.Clock
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, clk clock.Clock, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		clock:  clk,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*entity.User, error) {
	// 1. Normalize and validate input
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := req.Email

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password, s.config.App.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	now := s.clock.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return user, nil
}

func (s *authService) Token(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*utils.AccessToken, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.NewAccessToken(s.config.JWT.Secret, user.ID, uuid.New(), user.IsStaff, now, ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        token.SessionID,
			CreatedAt: now,
		},
		UserID:    user.ID,
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: token.ExpiresAt,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()),
	)
	return &token, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("user", userID)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("Session revoked", zap.String("session_id", sessionID.String()))
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		return err
	}
	s.log.Info("All sessions revoked", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// normalizeEmail lowercases and trims an address; users are stored that way.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
