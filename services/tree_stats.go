package services

import (
	"github.com/shopspring/decimal"

	"github.com/HSouheill/sower_backend/models"
)

// CalculateTreeStats rolls up every node of forest. It is a pure function of its input.
func CalculateTreeStats(forest []*models.ReferralTreeNode) models.TreeStatistics {
	stats := models.TreeStatistics{
		MemberTypes: map[models.MemberType]int{},
		LevelCounts: map[int]int{},
	}
	earnings, commissions, direct := decimal.Zero, decimal.Zero, decimal.Zero

	var walk func(nodes []*models.ReferralTreeNode)
	walk = func(nodes []*models.ReferralTreeNode) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			stats.TotalMembers++
			earnings = earnings.Add(decimal.NewFromFloat(n.Statistics.TotalEarnings))
			commissions = commissions.Add(decimal.NewFromFloat(n.Statistics.Commission))
			direct = direct.Add(decimal.NewFromFloat(n.Statistics.DirectReferralEarnings))
			if n.Status == models.MemberStatusActive {
				stats.ActiveMembers++
			}
			stats.MemberTypes[n.MemberType]++
			stats.LevelCounts[n.Level]++
			walk(n.Children)
		}
	}
	walk(forest)

	stats.TotalEarnings = earnings.InexactFloat64()
	stats.TotalCommissions = commissions.InexactFloat64()
	stats.TotalDirectReferralEarnings = direct.InexactFloat64()
	stats.TotalCombined = earnings.Add(commissions).Add(direct).InexactFloat64()
	return stats
}
