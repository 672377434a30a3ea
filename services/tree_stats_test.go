package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HSouheill/sower_backend/models"
)

func node(level int, tier models.MemberType, status string, earnings, commission, direct float64, children ...*models.ReferralTreeNode) *models.ReferralTreeNode {
	if children == nil {
		children = []*models.ReferralTreeNode{}
	}
	return &models.ReferralTreeNode{
		Level:      level,
		MemberType: tier,
		Status:     status,
		Statistics: models.NodeStatistics{
			TotalEarnings:          earnings,
			Commission:             commission,
			DirectReferralEarnings: direct,
		},
		Children: children,
	}
}

func TestCalculateTreeStats(t *testing.T) {
	forest := []*models.ReferralTreeNode{
		node(1, models.MemberTypeX1, "Active", 100, 10, 25,
			node(2, models.MemberTypeX3, "active", 200, 20, 0,
				node(3, models.MemberTypeX3, "Inactive", 0.1, 0.01, 0),
			),
		),
		node(1, models.MemberTypeX5, "Active", 0.2, 0.02, 250),
	}

	stats := CalculateTreeStats(forest)

	assert.Equal(t, 4, stats.TotalMembers)
	assert.Equal(t, 2, stats.ActiveMembers)
	assert.InDelta(t, 300.3, stats.TotalEarnings, 1e-9)
	assert.InDelta(t, 30.03, stats.TotalCommissions, 1e-9)
	assert.InDelta(t, 275.0, stats.TotalDirectReferralEarnings, 1e-9)
	assert.InDelta(t, 605.33, stats.TotalCombined, 1e-9)
	assert.Equal(t, map[models.MemberType]int{
		models.MemberTypeX1: 1,
		models.MemberTypeX3: 2,
		models.MemberTypeX5: 1,
	}, stats.MemberTypes)
	assert.Equal(t, map[int]int{1: 2, 2: 1, 3: 1}, stats.LevelCounts)
}

func TestCalculateTreeStatsEmpty(t *testing.T) {
	stats := CalculateTreeStats(nil)

	assert.Zero(t, stats.TotalMembers)
	assert.Zero(t, stats.TotalCombined)
	assert.NotNil(t, stats.MemberTypes)
	assert.NotNil(t, stats.LevelCounts)
}

func TestCalculateTreeStatsActiveIsCaseSensitive(t *testing.T) {
	forest := []*models.ReferralTreeNode{
		node(1, models.MemberTypeX1, "Active", 0, 0, 0),
		node(1, models.MemberTypeX1, "ACTIVE", 0, 0, 0),
		node(1, models.MemberTypeX1, "active", 0, 0, 0),
		node(1, models.MemberTypeX1, " Active", 0, 0, 0),
		node(1, models.MemberTypeX1, "", 0, 0, 0),
	}

	stats := CalculateTreeStats(forest)
	assert.Equal(t, 5, stats.TotalMembers)
	assert.Equal(t, 1, stats.ActiveMembers)
}
