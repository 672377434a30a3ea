package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
)

// NationalJurisdiction is the spot the two national positions aggregate over.
const NationalJurisdiction = "Philippines"

// positionSlots maps each golden seat title to the slot it is aggregated on.
var positionSlots = map[models.MemberType]models.SeatSlot{
	models.PositionCaptain:       models.SlotCaptain,
	models.PositionMayor:         models.SlotMayor,
	models.PositionGovernor:      models.SlotGovernor,
	models.PositionSenator:       models.SlotSenator,
	models.PositionVicePresident: models.SlotVicePresident,
	models.PositionPresident:     models.SlotPresident,
}

// SpotFor returns the seat slot and the geographic value a position aggregates over.
func SpotFor(position models.MemberType, geo models.MemberLocation, region string) (models.SeatSlot, string, error) {
	slot, ok := positionSlots[position]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnrecognizedPosition, position)
	}
	switch slot {
	case models.SlotCaptain:
		return slot, geo.Barangay, nil
	case models.SlotMayor:
		return slot, geo.City, nil
	case models.SlotGovernor:
		return slot, geo.Province, nil
	case models.SlotSenator:
		return slot, region, nil
	default:
		return slot, NationalJurisdiction, nil
	}
}

// NewGoldenSeat snapshots the member's geography into the six slots, with the commission
// taken from the member's tier at this moment.
func NewGoldenSeat(m *models.Member) *models.GoldenSeat {
	return &models.GoldenSeat{
		MemberID:      m.MemberID,
		Captain:       m.Barangay,
		Mayor:         m.City,
		Governor:      m.Province,
		Senator:       m.Region,
		VicePresident: m.Country,
		President:     m.Country,
		Commission:    GoldenSeatCommissionRate(m.MemberType),
		CreatedAt:     time.Now(),
	}
}

// GoldenSeatService answers golden seat listing and commission queries.
type GoldenSeatService struct {
	seats   GoldenSeatStore
	members MemberStore
}

func NewGoldenSeatService(seats GoldenSeatStore, members MemberStore) *GoldenSeatService {
	return &GoldenSeatService{seats: seats, members: members}
}

// CommissionsForPosition sums the commission of every golden seat whose slot for position
// equals the spot derived from the given geography. No match is a zero total, not an error.
func (s *GoldenSeatService) CommissionsForPosition(ctx context.Context, position models.MemberType, geo models.MemberLocation, region string) (*models.GoldenSeatCommission, error) {
	slot, spot, err := SpotFor(position, geo, region)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats.FindBySlot(ctx, slot, spot)
	if err != nil {
		return nil, fmt.Errorf("find golden seats by %s: %w", slot, err)
	}

	total := decimal.Zero
	for _, seat := range seats {
		total = total.Add(decimal.NewFromFloat(seat.Commission))
	}

	return &models.GoldenSeatCommission{
		TotalCommission: total.InexactFloat64(),
		Spot:            spot,
		Position:        position,
	}, nil
}

// CommissionForMember resolves the caller's member record and aggregates on its position.
func (s *GoldenSeatService) CommissionForMember(ctx context.Context, callerMemberID string) (*models.GoldenSeatCommission, error) {
	if callerMemberID == "" {
		return nil, ErrUnauthenticated
	}
	member, err := s.members.FindByMemberID(ctx, callerMemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.CommissionsForPosition(ctx, member.MemberType, member.Location(), member.Region)
}

func (s *GoldenSeatService) ListGoldenSeats(ctx context.Context) ([]models.GoldenSeat, error) {
	seats, err := s.seats.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if seats == nil {
		seats = []models.GoldenSeat{}
	}
	return seats, nil
}

// newSeatID pre-assigns a seat id so the member can reference it before the seat is stored.
func newSeatID() primitive.ObjectID {
	return primitive.NewObjectID()
}
