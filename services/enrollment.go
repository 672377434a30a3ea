package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/monitoring"
	"github.com/HSouheill/sower_backend/repositories"
	"github.com/HSouheill/sower_backend/utils"
)

const maxReferralCodeAttempts = 5

// EnrollmentResult is what a successful enrollment stored.
type EnrollmentResult struct {
	Member        *models.Member      `json:"member"`
	GoldenSeat    *models.GoldenSeat  `json:"goldenSeats"`
	ReferralBonus *models.Transaction `json:"referralBonus,omitempty"`
	Commission    string              `json:"commission"`
}

// EnrollmentService creates members together with their golden seat and referral bonus.
type EnrollmentService struct {
	members      MemberStore
	transactions TransactionStore
	seats        GoldenSeatStore
	publisher    EventPublisher
	tx           Transactor

	generateCode func() (string, error)
	now          func() time.Time
}

// NewEnrollmentService builds the service. Without a Transactor the three writes of an
// enrollment are not atomic.
func NewEnrollmentService(members MemberStore, transactions TransactionStore, seats GoldenSeatStore, publisher EventPublisher, tx Transactor) *EnrollmentService {
	return &EnrollmentService{
		members:      members,
		transactions: transactions,
		seats:        seats,
		publisher:    publisher,
		tx:           tx,
		generateCode: utils.GenerateMemberReferralCode,
		now:          time.Now,
	}
}

// Enroll validates req and stores the member, its golden seat and, when the member was
// referred, the referrer's bonus transaction. Every rejection happens before the first write,
// and the writes run as one unit of work.
func (s *EnrollmentService) Enroll(ctx context.Context, callerMemberID string, req models.EnrollMemberRequest) (*EnrollmentResult, error) {
	memberID := req.MemberID
	if memberID == "" {
		memberID = callerMemberID
	}
	if memberID == "" {
		return nil, ErrUnauthenticated
	}
	if !req.MemberType.IsTier() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMemberType, req.MemberType)
	}

	if _, err := s.members.FindByMemberID(ctx, memberID); err == nil {
		return nil, ErrMemberExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	code, err := s.referralCode(ctx, req.ReferralCode)
	if err != nil {
		return nil, err
	}

	var referrer *models.Member
	if req.ReferredBy != "" {
		referrer, err = s.members.FindByReferralCode(ctx, req.ReferredBy)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidReferral, req.ReferredBy)
			}
			return nil, err
		}
	}

	now := s.now()
	member := newMember(memberID, code, req, now)
	seat := NewGoldenSeat(member)
	seat.ID = newSeatID()
	seat.CreatedAt = now
	member.GoldenSeatID = &seat.ID

	var bonus *models.Transaction
	if referrer != nil {
		bonus = newReferralBonus(referrer.MemberID, member, req, now)
	}

	var memberConflict bool
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		memberConflict = false
		if err := s.members.Create(ctx, member); err != nil {
			memberConflict = errors.Is(err, repositories.ErrDuplicate)
			return fmt.Errorf("create member: %w", err)
		}
		if err := s.seats.Create(ctx, seat); err != nil {
			return fmt.Errorf("create golden seat: %w", err)
		}
		if bonus != nil {
			if err := s.transactions.Create(ctx, bonus); err != nil {
				return fmt.Errorf("create referral bonus: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if memberConflict {
			return nil, s.enrollmentConflict(ctx, member)
		}
		return nil, err
	}

	result := &EnrollmentResult{
		Member:        member,
		GoldenSeat:    seat,
		ReferralBonus: bonus,
		Commission:    fmt.Sprintf("%g%%", seat.Commission),
	}

	monitoring.MemberEnrollments.WithLabelValues(string(member.MemberType)).Inc()
	s.publishEnrollment(ctx, result)
	return result, nil
}

func (s *EnrollmentService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithTransaction(ctx, fn)
}

// enrollmentConflict names the unique key a concurrent enrollment took first.
func (s *EnrollmentService) enrollmentConflict(ctx context.Context, member *models.Member) error {
	holder, err := s.members.FindByReferralCode(ctx, member.ReferralCode)
	if err == nil && holder.MemberID != member.MemberID {
		return fmt.Errorf("%w: %q", ErrDuplicateReferralCode, member.ReferralCode)
	}
	return ErrMemberExists
}

func newReferralBonus(referrerID string, member *models.Member, req models.EnrollMemberRequest, now time.Time) *models.Transaction {
	amount := DirectReferralBonus(member.MemberType, 1).InexactFloat64()
	return &models.Transaction{
		MemberID:        referrerID,
		TransactionID:   "TXN-" + uuid.New().String(),
		ProductName:     fmt.Sprintf("%s Referral Bonus", member.MemberType),
		ProductImage:    req.ProductImage,
		Quantity:        1,
		Price:           amount,
		Total:           amount,
		PaymentMethod:   req.PaymentMethod,
		TransactionDate: now.Format(models.TransactionDateLayout),
		CreatedAt:       now,
	}
}

// referralCode returns requested if it is free, or a freshly generated unused code.
func (s *EnrollmentService) referralCode(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		if err := s.ensureCodeFree(ctx, requested); err != nil {
			return "", err
		}
		return requested, nil
	}

	for i := 0; i < maxReferralCodeAttempts; i++ {
		code, err := s.generateCode()
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		err = s.ensureCodeFree(ctx, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, ErrDuplicateReferralCode) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no free code after %d attempts", ErrDuplicateReferralCode, maxReferralCodeAttempts)
}

func (s *EnrollmentService) ensureCodeFree(ctx context.Context, code string) error {
	_, err := s.members.FindByReferralCode(ctx, code)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %q", ErrDuplicateReferralCode, code)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return err
	}
}

func newMember(memberID, code string, req models.EnrollMemberRequest, now time.Time) *models.Member {
	m := &models.Member{
		MemberID:     memberID,
		ReferralCode: code,
		ReferredBy:   req.ReferredBy,
		MemberType:   req.MemberType,
		AddressNo:    utils.SanitizeInput(req.AddressNo),
		Region:       utils.SanitizeInput(req.Region),
		Province:     utils.SanitizeInput(req.Province),
		City:         utils.SanitizeInput(req.City),
		Barangay:     utils.SanitizeInput(req.Barangay),
		Country:      utils.SanitizeInput(req.Country),
		UserType:     req.UserType,
		Role:         req.Role,
		MemberStatus: req.MemberStatus,
		PaymentType:  req.PaymentType,
		MemberDate:   req.MemberDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if m.Country == "" {
		m.Country = models.DefaultCountry
	}
	if m.UserType == "" {
		m.UserType = models.DefaultUserType
	}
	if m.Role == "" {
		m.Role = models.DefaultRole
	}
	if m.MemberStatus == "" {
		m.MemberStatus = models.MemberStatusActive
	}
	return m
}

// publishEnrollment emits the enrollment events. Failures are logged; the enrollment stands.
func (s *EnrollmentService) publishEnrollment(ctx context.Context, r *EnrollmentResult) {
	if s.publisher == nil {
		return
	}
	m := r.Member
	enrolled := models.MemberEnrolledEvent{
		Type:         models.EventMemberEnrolled,
		MemberID:     m.MemberID,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		MemberType:   m.MemberType,
		Barangay:     m.Barangay,
		City:         m.City,
		Province:     m.Province,
		Region:       m.Region,
		OccurredAt:   m.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, m.MemberID, enrolled); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("memberId", m.MemberID).Msg("Failed to publish enrollment event")
	}

	if r.ReferralBonus == nil {
		return
	}
	bonus := models.ReferralBonusEvent{
		Type:          models.EventReferralBonus,
		ReferrerID:    r.ReferralBonus.MemberID,
		MemberID:      m.MemberID,
		MemberType:    m.MemberType,
		TransactionID: r.ReferralBonus.TransactionID,
		Amount:        r.ReferralBonus.Total,
		OccurredAt:    r.ReferralBonus.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, r.ReferralBonus.MemberID, bonus); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("memberId", m.MemberID).Msg("Failed to publish referral bonus event")
	}
}
