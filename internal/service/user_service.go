package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	guard    *LoginGuard
	logger   *zap.Logger
	now      func() time.Time
}

func NewUserService(userRepo *repository.UserRepository, guard *LoginGuard, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo: userRepo,
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

// GetProfile 获取用户详情，停用账户视为不存在
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.Active {
		return nil, ErrUserNotFound
	}

	return buildUserInfo(user, s.now()), nil
}

// Deactivate 注销账户（软删除），之后无法再登录
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !user.Active {
		return ErrUserNotFound
	}

	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	s.guard.Reset(ctx, user.Email)

	s.logger.Info("user deactivated", zap.Int64("user_id", userID))
	return nil
}
