package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sumeeth742/university/config"
	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/grading"
	"github.com/sumeeth742/university/internal/model"
	"github.com/sumeeth742/university/internal/repository"
	"github.com/sumeeth742/university/pkg/jwt"
	"github.com/sumeeth742/university/pkg/redis"
)

// ── auth errors ──

var (
	// ErrInvalidCredentials covers both unknown-user and wrong-password
	// so the login endpoint cannot be used to probe which USNs exist.
	ErrInvalidCredentials = errors.New("user not found or wrong password")
	ErrInvalidUsername    = errors.New("invalid username format")
)

// AuthService authentication and account bootstrap.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// EnsureAdmin seeds the admin account from configuration if it does
	// not exist yet. Run once at startup, after migrations.
	EnsureAdmin(ctx context.Context) error
	ListStudents(ctx context.Context) ([]dto.StudentResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. normalize and validate the identifier; the admin literal is
	//    exempt from the USN format
	username := grading.NormalizeUSN(req.Username)
	if username != s.cfg.Auth.AdminUsername && !grading.ValidUSN(username) {
		return nil, ErrInvalidUsername
	}

	// 2. look up the account
	account, err := s.repo.Account.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	// 3. verify the credential: bcrypt for the admin, a plain DOB string
	//    compare for students
	if account.Role == model.RoleAdmin {
		if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	} else {
		if account.Password != req.Password {
			return nil, ErrInvalidCredentials
		}
	}

	// 4. issue the token
	token, err := s.jwtMgr.GenerateToken(account.AccountID, account.Username, account.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Token:      token,
		Username:   account.Username,
		Name:       account.Name,
		Role:       account.Role,
		Department: account.Department,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil // blacklist unavailable, logout degrades to a no-op
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.Account.GetByUsername(ctx, s.cfg.Auth.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.Account{
		Username: s.cfg.Auth.AdminUsername,
		Name:     s.cfg.Auth.AdminName,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := s.repo.Account.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin account seeded", zap.String("username", admin.Username))
	return nil
}

func (s *authService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	accounts, err := s.repo.Account.ListStudents(ctx)
	if err != nil {
		s.logger.Error("student listing failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, dto.StudentResponse{
			Username:   a.Username,
			Name:       a.Name,
			DOB:        a.Password,
			Department: a.Department,
			Batch:      a.Batch,
		})
	}
	return result, nil
}
