// models/golden_seat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoldenSeat is the per-member snapshot of the six hierarchy slots. Commission is fixed at
// enrollment and is not recomputed when the member's tier changes later.
type GoldenSeat struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	MemberID      string             `json:"memberId,omitempty" bson:"memberId,omitempty"`
	Captain       string             `json:"captain" bson:"captain"`
	Mayor         string             `json:"mayor" bson:"mayor"`
	Governor      string             `json:"governor" bson:"governor"`
	Senator       string             `json:"senator" bson:"senator"`
	VicePresident string             `json:"vicePresident" bson:"vicePresident"`
	President     string             `json:"President" bson:"President"`
	Commission    float64            `json:"commission" bson:"commission"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// SeatSlot names a positional field of a GoldenSeat; the value is the bson key.
type SeatSlot string

const (
	SlotCaptain       SeatSlot = "captain"
	SlotMayor         SeatSlot = "mayor"
	SlotGovernor      SeatSlot = "governor"
	SlotSenator       SeatSlot = "senator"
	SlotVicePresident SeatSlot = "vicePresident"
	SlotPresident     SeatSlot = "President"
)

// Value returns the content of slot s in g.
func (g *GoldenSeat) Value(s SeatSlot) string {
	switch s {
	case SlotCaptain:
		return g.Captain
	case SlotMayor:
		return g.Mayor
	case SlotGovernor:
		return g.Governor
	case SlotSenator:
		return g.Senator
	case SlotVicePresident:
		return g.VicePresident
	case SlotPresident:
		return g.President
	}
	return ""
}

// GoldenSeatCommission is the answer to a golden seat commission query.
type GoldenSeatCommission struct {
	TotalCommission float64    `json:"totalCommission"`
	Spot            string     `json:"spot"`
	Position        MemberType `json:"position"`
}
