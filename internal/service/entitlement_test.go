package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/testutil"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestIsEntitled(t *testing.T) {
	now := time.Date(2026, 10, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{
			name: "nil user",
			user: nil,
			want: false,
		},
		{
			name: "free user",
			user: &model.User{SubscriptionType: model.SubscriptionFree},
			want: false,
		},
		{
			name: "free user with stale expiry",
			user: &model.User{
				SubscriptionType:   model.SubscriptionFree,
				SubscriptionExpiry: datePtr(testutil.Date(2030, 1, 1)),
			},
			want: false,
		},
		{
			name: "premium without expiry",
			user: &model.User{SubscriptionType: model.SubscriptionPremium},
			want: true,
		},
		{
			name: "premium expiring tomorrow",
			user: &model.User{
				SubscriptionType:   model.SubscriptionPremium,
				SubscriptionExpiry: datePtr(testutil.Date(2026, 10, 16)),
			},
			want: true,
		},
		{
			name: "premium expiring today",
			user: &model.User{
				SubscriptionType:   model.SubscriptionPremium,
				SubscriptionExpiry: datePtr(testutil.Date(2026, 10, 15)),
			},
			want: true,
		},
		{
			name: "premium expired yesterday",
			user: &model.User{
				SubscriptionType:   model.SubscriptionPremium,
				SubscriptionExpiry: datePtr(testutil.Date(2026, 10, 14)),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEntitled(tt.user, now))
		})
	}
}

func TestIsEntitled_LastMomentOfExpiryDay(t *testing.T) {
	user := &model.User{
		SubscriptionType:   model.SubscriptionPremium,
		SubscriptionExpiry: datePtr(testutil.Date(2026, 10, 15)),
	}

	assert.True(t, IsEntitled(user, time.Date(2026, 10, 15, 23, 59, 59, 0, time.UTC)))
	assert.False(t, IsEntitled(user, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)))
}

func TestIsEntitled_ComparesUTCDates(t *testing.T) {
	user := &model.User{
		SubscriptionType:   model.SubscriptionPremium,
		SubscriptionExpiry: datePtr(testutil.Date(2026, 10, 15)),
	}

	// 本地时间 10-15 晚上，UTC 已经是 10-16
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 10, 15, 21, 0, 0, 0, loc)

	assert.False(t, IsEntitled(user, now))
}

func TestBuildUserInfo(t *testing.T) {
	start := testutil.Date(2026, 10, 1)
	expiry := testutil.Date(2026, 10, 31)
	user := &model.User{
		ID:                 7,
		Name:               "Ana",
		Email:              "ana@x.com",
		PasswordHash:       "$2a$10$secret",
		SubscriptionType:   model.SubscriptionPremium,
		SubscriptionStart:  &start,
		SubscriptionExpiry: &expiry,
	}

	info := buildUserInfo(user, testutil.Date(2026, 10, 15))
	assert.Equal(t, int64(7), info.ID)
	assert.Equal(t, "premium", info.SubscriptionType)
	assert.True(t, info.SubscriptionActive)
	assert.Equal(t, "2026-10-01", info.SubscriptionStart)
	assert.Equal(t, "2026-10-31", info.SubscriptionExpiry)

	info = buildUserInfo(user, testutil.Date(2026, 11, 1))
	assert.False(t, info.SubscriptionActive)
}
