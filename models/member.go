// models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberType holds either a membership tier or, after promotion, a golden seat position title.
type MemberType string

const (
	MemberTypeX1 MemberType = "X1"
	MemberTypeX2 MemberType = "X2"
	MemberTypeX3 MemberType = "X3"
	MemberTypeX5 MemberType = "X5"
)

// Golden seat position titles.
const (
	PositionCaptain       MemberType = "e-Captain"
	PositionMayor         MemberType = "e-Mayor"
	PositionGovernor      MemberType = "e-Governor"
	PositionSenator       MemberType = "e-Senator"
	PositionVicePresident MemberType = "e-Vice President"
	PositionPresident     MemberType = "e-President"
)

// Tiers lists the membership tiers in display order.
var Tiers = []MemberType{MemberTypeX1, MemberTypeX2, MemberTypeX3, MemberTypeX5}

// Positions lists the golden seat titles from the lowest to the highest seat.
var Positions = []MemberType{
	PositionCaptain,
	PositionMayor,
	PositionGovernor,
	PositionSenator,
	PositionVicePresident,
	PositionPresident,
}

// IsTier reports whether t is one of X1, X2, X3 or X5.
func (t MemberType) IsTier() bool {
	for _, tier := range Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// IsPosition reports whether t is a golden seat title.
func (t MemberType) IsPosition() bool {
	for _, p := range Positions {
		if t == p {
			return true
		}
	}
	return false
}

// Member statuses. Only the exact string "Active" counts as active.
const (
	MemberStatusActive   = "Active"
	MemberStatusInactive = "Inactive"
)

// Enrollment defaults.
const (
	DefaultUserType = "Member"
	DefaultRole     = "sower"
	DefaultCountry  = "Philippines"
)

// Member model
type Member struct {
	ID           primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	MemberID     string              `json:"memberId" bson:"memberID"`
	ReferralCode string              `json:"referralCode" bson:"referralCode"`
	ReferredBy   string              `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	MemberType   MemberType          `json:"memberType" bson:"memberType"`
	AddressNo    string              `json:"addressNo" bson:"addressNo"`
	Region       string              `json:"region" bson:"region"`
	Province     string              `json:"province" bson:"province"`
	City         string              `json:"city" bson:"city"`
	Barangay     string              `json:"barangay" bson:"barangay"`
	Country      string              `json:"country,omitempty" bson:"country,omitempty"`
	UserType     string              `json:"userType" bson:"userType"`
	Role         string              `json:"role" bson:"role"`
	MemberStatus string              `json:"memberStatus" bson:"memberStatus"`
	PaymentType  string              `json:"paymentType" bson:"paymentType"`
	MemberDate   string              `json:"memberDate" bson:"memberDate"`
	GoldenSeatID *primitive.ObjectID `json:"goldenSeatsId,omitempty" bson:"goldenSeatsId,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// MemberLocation is the address block shown in referral views.
type MemberLocation struct {
	AddressNo string `json:"addressNo"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Barangay  string `json:"barangay"`
}

// Location returns the member's address block.
func (m *Member) Location() MemberLocation {
	return MemberLocation{
		AddressNo: m.AddressNo,
		Province:  m.Province,
		City:      m.City,
		Barangay:  m.Barangay,
	}
}

// EnrollMemberRequest is the create-member payload.
type EnrollMemberRequest struct {
	MemberID      string     `json:"memberID"`
	ReferralCode  string     `json:"referralCode"`
	MemberType    MemberType `json:"memberType" validate:"required"`
	AddressNo     string     `json:"addressNo" validate:"required"`
	Region        string     `json:"region" validate:"required"`
	Province      string     `json:"province" validate:"required"`
	City          string     `json:"city" validate:"required"`
	Barangay      string     `json:"barangay" validate:"required"`
	Country       string     `json:"country"`
	UserType      string     `json:"userType"`
	Role          string     `json:"role"`
	MemberStatus  string     `json:"memberStatus"`
	PaymentType   string     `json:"paymentType" validate:"required"`
	ReferredBy    string     `json:"referredBy"`
	MemberDate    string     `json:"memberDate" validate:"required"`
	ProductImage  string     `json:"productImage"`
	PaymentMethod string     `json:"paymentMethod"`
}

// UpdateMemberRequest promotes the caller to a new tier or golden seat position.
type UpdateMemberRequest struct {
	Position MemberType `json:"position" validate:"required"`
}
