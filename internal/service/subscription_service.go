package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/pkg/metrics"
	"github.com/delishare/recipe_server/internal/repository"
)

var ErrPlanNotFound = errors.New("plan de suscripción no encontrado")

type SubscriptionService struct {
	userRepo *repository.UserRepository
	planRepo *repository.PlanRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewSubscriptionService(userRepo *repository.UserRepository, planRepo *repository.PlanRepository, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{
		userRepo: userRepo,
		planRepo: planRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// ListPlans 可购买的套餐，按价格升序
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*dto.PlanItem, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	items := make([]*dto.PlanItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, &dto.PlanItem{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			DurationDays: p.DurationDays,
			Description:  p.Description,
		})
	}
	return items, nil
}

// Activate grants premium to userID for the named plan. The new expiry is
// today plus the plan's duration and replaces any previous expiry.
func (s *SubscriptionService) Activate(ctx context.Context, userID int64, planName string) (*dto.SubscribeResponse, error) {
	plan, err := s.planRepo.GetActiveByName(ctx, strings.ToLower(strings.TrimSpace(planName)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	today := dateOf(s.now())
	expiry := today.AddDate(0, 0, plan.DurationDays)

	ok, err := s.userRepo.UpdateSubscription(ctx, userID, model.SubscriptionPremium, today, expiry)
	if err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	metrics.SubscriptionActivations.WithLabelValues(plan.Name).Inc()
	s.logger.Info("subscription activated",
		zap.Int64("user_id", userID),
		zap.String("plan", plan.Name),
		zap.String("expiry", expiry.Format(dateLayout)),
	)

	return &dto.SubscribeResponse{
		SubscriptionActive: true,
		Plan:               plan.Name,
		ExpiryDate:         expiry.Format(dateLayout),
	}, nil
}

// Status 当前订阅状态
func (s *SubscriptionService) Status(ctx context.Context, userID int64) (*dto.SubscriptionStatus, error) {
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

	return &dto.SubscriptionStatus{
		SubscriptionType:   string(user.SubscriptionType),
		SubscriptionActive: IsEntitled(user, s.now()),
		SubscriptionStart:  formatDate(user.SubscriptionStart),
		SubscriptionExpiry: formatDate(user.SubscriptionExpiry),
	}, nil
}
