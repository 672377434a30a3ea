// models/referral.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NodeStatistics are the earnings figures computed for one referred member.
type NodeStatistics struct {
	TotalEarnings          float64    `json:"totalEarnings"`
	Commission             float64    `json:"commission"`
	DirectReferralEarnings float64    `json:"directReferralEarnings"`
	TransactionCount       int        `json:"transactionCount"`
	LastTransaction        *time.Time `json:"lastTransaction"`
}

// ReferralTreeNode is one member in a built referral tree. Level 1 is a direct referral of the root.
type ReferralTreeNode struct {
	ID           primitive.ObjectID  `json:"_id"`
	MemberID     string              `json:"memberId"`
	ReferralCode string              `json:"referralCode"`
	Level        int                 `json:"level"`
	MemberType   MemberType          `json:"memberType"`
	Status       string              `json:"status"`
	MemberDate   string              `json:"memberDate"`
	Role         string              `json:"role"`
	Location     MemberLocation      `json:"location"`
	UserDetails  UserDetails         `json:"userDetails"`
	Statistics   NodeStatistics      `json:"statistics"`
	Children     []*ReferralTreeNode `json:"children"`
}

// TreeStatistics are the roll-up totals of a referral forest. TotalCombined adds earnings,
// commissions and direct referral earnings into one figure.
type TreeStatistics struct {
	TotalMembers                int                `json:"totalMembers"`
	TotalEarnings               float64            `json:"totalEarnings"`
	TotalCommissions            float64            `json:"totalCommissions"`
	TotalDirectReferralEarnings float64            `json:"totalDirectReferralEarnings"`
	TotalCombined               float64            `json:"totalCombined"`
	ActiveMembers               int                `json:"activeMembers"`
	MemberTypes                 map[MemberType]int `json:"memberTypes"`
	LevelCounts                 map[int]int        `json:"levelCounts"`
}

// MemberInfo describes the root of a referral tree.
type MemberInfo struct {
	ID           primitive.ObjectID `json:"_id"`
	MemberID     string             `json:"memberId"`
	ReferralCode string             `json:"referralCode"`
	MemberType   MemberType         `json:"memberType"`
	Status       string             `json:"status"`
	MemberDate   string             `json:"memberDate"`
	Role         string             `json:"role"`
	Location     MemberLocation     `json:"location"`
}

// ReferralTree is the full tree response.
type ReferralTree struct {
	MemberInfo   MemberInfo          `json:"memberInfo"`
	ReferralTree []*ReferralTreeNode `json:"referralTree"`
	Statistics   TreeStatistics      `json:"statistics"`
}

// ReferralStatistics is the per-member block of a flat referral.
type ReferralStatistics struct {
	TotalEarnings    float64    `json:"totalEarnings"`
	Commission       float64    `json:"commission"`
	TransactionCount int        `json:"transactionCount"`
	LastTransaction  *time.Time `json:"lastTransaction"`
}

// FlatReferral is one direct referral with identity and transaction summary.
type FlatReferral struct {
	MemberID     string             `json:"memberId"`
	ReferralCode string             `json:"referralCode"`
	MemberType   MemberType         `json:"memberType"`
	Status       string             `json:"status"`
	MemberDate   string             `json:"memberDate"`
	DateJoined   *time.Time         `json:"dateJoined,omitempty"`
	UserDetails  UserDetails        `json:"userDetails"`
	Statistics   ReferralStatistics `json:"statistics"`
}

// ReferralSummary totals a flat referral list.
type ReferralSummary struct {
	TotalReferrals   int     `json:"totalReferrals"`
	TotalCommissions float64 `json:"totalCommissions"`
	ActiveReferrals  int     `json:"activeReferrals"`
}

// FlatReferrals is the direct-referral response.
type FlatReferrals struct {
	Referrals      []FlatReferral     `json:"data"`
	ReferralCounts map[MemberType]int `json:"referralCounts"`
	Summary        ReferralSummary    `json:"summary"`
}
