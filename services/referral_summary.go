package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HSouheill/sower_backend/models"
)

// GetFlatReferrals lists the caller's direct referrals with per-tier counts and totals.
func (s *ReferralService) GetFlatReferrals(ctx context.Context, callerMemberID string) (*models.FlatReferrals, error) {
	root, err := s.callerMember(ctx, callerMemberID)
	if err != nil {
		return nil, err
	}

	result := &models.FlatReferrals{
		Referrals:      []models.FlatReferral{},
		ReferralCounts: make(map[models.MemberType]int, len(models.Tiers)),
	}
	for _, tier := range models.Tiers {
		result.ReferralCounts[tier] = 0
	}
	if root.ReferralCode == "" {
		return result, nil
	}

	direct, err := s.members.FindByReferredBy(ctx, root.ReferralCode)
	if err != nil {
		return nil, fmt.Errorf("load direct referrals: %w", err)
	}
	if len(direct) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(direct))
	for _, m := range direct {
		ids = append(ids, m.MemberID)
	}
	data, err := s.loadLevel(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load referral details: %w", err)
	}

	commissions := decimal.Zero
	for i := range direct {
		m := &direct[i]
		txns := data.transactions[m.MemberID]
		total, last := summarizeTransactions(txns)
		commission := OverrideCommission(total)
		commissions = commissions.Add(commission)

		user := data.user(m.MemberID)
		var joined *time.Time
		if user != nil && !user.DateJoined.IsZero() {
			t := user.DateJoined
			joined = &t
		}

		result.Referrals = append(result.Referrals, models.FlatReferral{
			MemberID:     m.MemberID,
			ReferralCode: m.ReferralCode,
			MemberType:   m.MemberType,
			Status:       m.MemberStatus,
			MemberDate:   m.MemberDate,
			DateJoined:   joined,
			UserDetails:  models.DetailsOf(user),
			Statistics: models.ReferralStatistics{
				TotalEarnings:    total.InexactFloat64(),
				Commission:       commission.InexactFloat64(),
				TransactionCount: len(txns),
				LastTransaction:  last,
			},
		})

		if _, ok := result.ReferralCounts[m.MemberType]; ok {
			result.ReferralCounts[m.MemberType]++
		}
		if m.MemberStatus == models.MemberStatusActive {
			result.Summary.ActiveReferrals++
		}
	}

	result.Summary.TotalReferrals = len(result.Referrals)
	result.Summary.TotalCommissions = commissions.InexactFloat64()
	return result, nil
}
