package service

import (
	"time"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/model/dto"
)

const dateLayout = "2006-01-02"

// IsEntitled 判断用户此刻是否可以查看付费内容
// 过期日当天仍然有效；expiry 为空的 premium 视为永久有效
func IsEntitled(user *model.User, now time.Time) bool {
	if user == nil || user.SubscriptionType != model.SubscriptionPremium {
		return false
	}
	if user.SubscriptionExpiry == nil {
		return true
	}
	return !dateOf(*user.SubscriptionExpiry).Before(dateOf(now))
}

// dateOf 截断到 UTC 日期
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

// buildUserInfo 组装对外用户信息，subscription_active 每次重新计算
func buildUserInfo(user *model.User, now time.Time) *dto.UserInfo {
	return &dto.UserInfo{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		SubscriptionType:   string(user.SubscriptionType),
		SubscriptionActive: IsEntitled(user, now),
		SubscriptionStart:  formatDate(user.SubscriptionStart),
		SubscriptionExpiry: formatDate(user.SubscriptionExpiry),
		CreatedAt:          user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
