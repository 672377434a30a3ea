package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/HSouheill/sower_backend/models"
)

func TestDirectReferralBonus(t *testing.T) {
	tests := []struct {
		name  string
		tier  models.MemberType
		level int
		want  string
	}{
		{"X1 direct", models.MemberTypeX1, 1, "25"},
		{"X2 direct", models.MemberTypeX2, 1, "50"},
		{"X3 direct", models.MemberTypeX3, 1, "150"},
		{"X5 direct", models.MemberTypeX5, 1, "250"},
		{"X3 second level", models.MemberTypeX3, 2, "0"},
		{"X5 seventh level", models.MemberTypeX5, 7, "0"},
		{"unknown tier", models.MemberType("unknown-tier"), 1, "0"},
		{"position title", models.PositionMayor, 1, "0"},
		{"level zero", models.MemberTypeX1, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirectReferralBonus(tt.tier, tt.level)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestDirectReferralBonusOnlyAtLevelOne(t *testing.T) {
	for _, tier := range models.Tiers {
		assert.True(t, DirectReferralBonus(tier, 1).IsPositive(), tier)
		for level := 2; level <= MaxTreeLevel; level++ {
			assert.True(t, DirectReferralBonus(tier, level).IsZero(), "%s at level %d", tier, level)
		}
	}
}

func TestOverrideCommission(t *testing.T) {
	assert.Equal(t, "35.05", OverrideCommission(decimal.RequireFromString("350.5")).String())
	assert.True(t, OverrideCommission(decimal.Zero).IsZero())
}

func TestGoldenSeatCommissionRate(t *testing.T) {
	assert.Equal(t, 10.0, GoldenSeatCommissionRate(models.MemberTypeX1))
	assert.Equal(t, 20.0, GoldenSeatCommissionRate(models.MemberTypeX2))
	assert.Equal(t, 60.0, GoldenSeatCommissionRate(models.MemberTypeX3))
	assert.Equal(t, 100.0, GoldenSeatCommissionRate(models.MemberTypeX5))
	assert.Zero(t, GoldenSeatCommissionRate(models.PositionCaptain))
}
