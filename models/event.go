package models

import "time"

// Event types published on the member events topic.
const (
	EventMemberEnrolled = "member.enrolled"
	EventReferralBonus  = "referral.bonus"
)

// MemberEnrolledEvent is published after a member and its golden seat are stored.
type MemberEnrolledEvent struct {
	Type         string     `json:"type"`
	MemberID     string     `json:"memberId"`
	ReferralCode string     `json:"referralCode"`
	ReferredBy   string     `json:"referredBy,omitempty"`
	MemberType   MemberType `json:"memberType"`
	Barangay     string     `json:"barangay"`
	City         string     `json:"city"`
	Province     string     `json:"province"`
	Region       string     `json:"region"`
	OccurredAt   time.Time  `json:"occurredAt"`
}

// ReferralBonusEvent is published when a referrer is credited for a new enrollment.
type ReferralBonusEvent struct {
	Type          string     `json:"type"`
	ReferrerID    string     `json:"referrerId"`
	MemberID      string     `json:"memberId"`
	MemberType    MemberType `json:"memberType"`
	TransactionID string     `json:"transactionId"`
	Amount        float64    `json:"amount"`
	OccurredAt    time.Time  `json:"occurredAt"`
}
