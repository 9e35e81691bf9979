package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/pkg/jwt"
	"github.com/delishare/recipe_server/internal/pkg/metrics"
	"github.com/delishare/recipe_server/internal/pkg/password"
	"github.com/delishare/recipe_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrLoginLocked        = errors.New("demasiados intentos fallidos, inténtalo más tarde")
	ErrInvalidEmail       = errors.New("correo electrónico inválido")
	ErrNameRequired       = errors.New("el nombre es obligatorio")
	ErrPasswordTooShort   = errors.New("la contraseña es demasiado corta")
	ErrPasswordTooLong    = errors.New("la contraseña es demasiado larga")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

type AuthService struct {
	userRepo *repository.UserRepository
	guard    *LoginGuard
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time
	verify   func(plain, hash string) bool
}

func NewAuthService(userRepo *repository.UserRepository, guard *LoginGuard, cfg *config.Config, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		guard:    guard,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		verify:   password.Verify,
	}
}

// PasswordPolicy 唯一的密码规则，注册校验与前端提示都以此为准
func (s *AuthService) PasswordPolicy() dto.PasswordPolicy {
	return dto.PasswordPolicy{
		MinLength: s.cfg.Auth.PasswordMinLength,
		MaxLength: s.cfg.Auth.PasswordMaxLength,
	}
}

// checkPassword 最小长度按字符计，最大长度按字节计（bcrypt 只处理前 72 字节）
func (s *AuthService) checkPassword(plain string) error {
	policy := s.PasswordPolicy()
	if utf8.RuneCountInString(plain) < policy.MinLength {
		return ErrPasswordTooShort
	}
	if len(plain) > policy.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// NormalizeEmail 去除首尾空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// 拒绝 "Name <a@b.c>" 这类带显示名的写法
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	email := NormalizeEmail(req.Email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}

	if err := s.checkPassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		SubscriptionType: model.SubscriptionFree,
		Active:           true,
	}

	// 唯一性由数据库唯一索引保证，并发注册只会有一个成功
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.logger.Info("register rejected", zap.String("email", email), zap.String("reason", "duplicate_email"))
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))

	return &dto.RegisterResponse{
		User: buildUserInfo(user, s.now()),
	}, nil
}

// Login 用户登录
// 邮箱不存在、账户停用、密码错误对外统一返回 ErrInvalidCredentials，具体原因只写日志
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(req.Email)

	if s.guard.Locked(ctx, email) {
		metrics.LoginResults.WithLabelValues("locked").Inc()
		s.logger.Warn("login refused", zap.String("email", email), zap.String("reason", "locked"))
		return nil, ErrLoginLocked
	}

	user, err := s.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}

		// 无匹配账户时也做一次 bcrypt 比较，响应时间与密码错误一致
		s.verify(req.Password, password.DummyHash())

		reason := "unknown_email"
		if exists, _ := s.userRepo.ExistsByEmail(ctx, email); exists {
			reason = "inactive_account"
		}
		return nil, s.loginFailed(ctx, email, reason)
	}

	if !s.verify(req.Password, user.PasswordHash) {
		return nil, s.loginFailed(ctx, email, "wrong_password")
	}

	s.guard.Reset(ctx, email)

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("touch last login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, expiresAt, err := jwt.NewToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginResults.WithLabelValues("success").Inc()
	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      buildUserInfo(user, now),
	}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) error {
	metrics.LoginResults.WithLabelValues("invalid").Inc()
	s.logger.Info("login failed", zap.String("email", email), zap.String("reason", reason))

	// 本次仍按密码错误返回，之后的请求才会被锁定
	s.guard.Fail(ctx, email)
	return ErrInvalidCredentials
}
