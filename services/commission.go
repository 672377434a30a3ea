// services/commission.go
package services

import (
	"github.com/HSouheill/sower_backend/models"
	"github.com/shopspring/decimal"
)

// Two distinct commission models live here and must stay separate:
//   - the referral bonus: 5% of a tier base amount, paid once, on direct referrals only;
//   - the override commission: a flat 10% of a member's transaction total, tier independent.
// The golden seat rate table is a third, unrelated table keyed by tier.

var (
	referralBonusRate      = decimal.RequireFromString("0.05")
	overrideCommissionRate = decimal.RequireFromString("0.10")
)

var tierBaseBonus = map[models.MemberType]decimal.Decimal{
	models.MemberTypeX1: decimal.NewFromInt(500),
	models.MemberTypeX2: decimal.NewFromInt(1000),
	models.MemberTypeX3: decimal.NewFromInt(3000),
	models.MemberTypeX5: decimal.NewFromInt(5000),
}

// goldenSeatCommissionRates are percentages stored on a golden seat record at enrollment.
var goldenSeatCommissionRates = map[models.MemberType]float64{
	models.MemberTypeX1: 10,
	models.MemberTypeX2: 20,
	models.MemberTypeX3: 60,
	models.MemberTypeX5: 100,
}

// DirectReferralBonus returns the bonus earned for a referral of the given tier at the given
// tree level. Only level 1 pays; unknown tiers pay nothing.
func DirectReferralBonus(memberType models.MemberType, level int) decimal.Decimal {
	if level != 1 {
		return decimal.Zero
	}
	base, ok := tierBaseBonus[memberType]
	if !ok {
		return decimal.Zero
	}
	return base.Mul(referralBonusRate)
}

// OverrideCommission is 10% of totalEarnings.
func OverrideCommission(totalEarnings decimal.Decimal) decimal.Decimal {
	return totalEarnings.Mul(overrideCommissionRate)
}

// GoldenSeatCommissionRate returns the golden seat commission for a tier, 0 for anything else.
func GoldenSeatCommissionRate(memberType models.MemberType) float64 {
	return goldenSeatCommissionRates[memberType]
}
