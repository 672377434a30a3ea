package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
)

type enrollmentFixture struct {
	members   *repositories.MemoryMemberRepository
	txns      *repositories.MemoryTransactionRepository
	seats     *repositories.MemoryGoldenSeatRepository
	publisher *recordingPublisher
	svc       *EnrollmentService
}

var enrollNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func newEnrollmentFixture(members ...models.Member) *enrollmentFixture {
	f := &enrollmentFixture{
		members:   repositories.NewMemoryMemberRepository(members...),
		txns:      repositories.NewMemoryTransactionRepository(),
		seats:     repositories.NewMemoryGoldenSeatRepository(),
		publisher: &recordingPublisher{},
	}
	f.svc = NewEnrollmentService(f.members, f.txns, f.seats, f.publisher,
		repositories.NewMemoryTransactor(f.members, f.txns, f.seats))
	f.svc.now = func() time.Time { return enrollNow }
	return f
}

func enrollRequest(tier models.MemberType, referredBy string) models.EnrollMemberRequest {
	return models.EnrollMemberRequest{
		MemberType:  tier,
		AddressNo:   "12",
		Region:      "Region IV-A",
		Province:    "Laguna",
		City:        "Calamba",
		Barangay:    "Barangay A",
		PaymentType: "cash",
		ReferredBy:  referredBy,
		MemberDate:  "09/03/2024",
	}
}

func TestEnrollWithReferrer(t *testing.T) {
	f := newEnrollmentFixture(newMemberFor("referrer", "REF1", "", models.MemberTypeX2))
	f.svc.generateCode = func() (string, error) { return "MBR-NEW001", nil }

	result, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX1, "REF1"))
	require.NoError(t, err)

	m := result.Member
	assert.Equal(t, "caller", m.MemberID)
	assert.Equal(t, "MBR-NEW001", m.ReferralCode)
	assert.Equal(t, "REF1", m.ReferredBy)
	assert.Equal(t, models.DefaultCountry, m.Country)
	assert.Equal(t, models.DefaultUserType, m.UserType)
	assert.Equal(t, models.DefaultRole, m.Role)
	assert.Equal(t, models.MemberStatusActive, m.MemberStatus)
	assert.Equal(t, enrollNow, m.CreatedAt)

	stored, err := f.members.FindByMemberID(context.Background(), "caller")
	require.NoError(t, err)
	require.NotNil(t, stored.GoldenSeatID)
	assert.Equal(t, result.GoldenSeat.ID, *stored.GoldenSeatID)

	seats, _ := f.seats.FindAll(context.Background())
	require.Len(t, seats, 1)
	assert.Equal(t, 10.0, seats[0].Commission)
	assert.Equal(t, "Barangay A", seats[0].Captain)
	assert.Equal(t, NationalJurisdiction, seats[0].President)
	assert.Equal(t, "10%", result.Commission)

	txns := f.txns.All()
	require.Len(t, txns, 1)
	bonus := txns[0]
	assert.Equal(t, "referrer", bonus.MemberID)
	assert.True(t, strings.HasPrefix(bonus.TransactionID, "TXN-"))
	assert.Equal(t, "X1 Referral Bonus", bonus.ProductName)
	assert.Equal(t, 1, bonus.Quantity)
	assert.Equal(t, 25.0, bonus.Price)
	assert.Equal(t, 25.0, bonus.Total)
	assert.Equal(t, "09/03/2024", bonus.TransactionDate)
	require.NotNil(t, result.ReferralBonus)
	assert.Equal(t, bonus.TransactionID, result.ReferralBonus.TransactionID)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, []string{"caller", "referrer"}, f.publisher.keys)
	enrolled, ok := f.publisher.events[0].(models.MemberEnrolledEvent)
	require.True(t, ok)
	assert.Equal(t, models.EventMemberEnrolled, enrolled.Type)
	paid, ok := f.publisher.events[1].(models.ReferralBonusEvent)
	require.True(t, ok)
	assert.Equal(t, 25.0, paid.Amount)
}

func TestEnrollBonusPerTier(t *testing.T) {
	want := map[models.MemberType]float64{
		models.MemberTypeX1: 25,
		models.MemberTypeX2: 50,
		models.MemberTypeX3: 150,
		models.MemberTypeX5: 250,
	}
	for tier, amount := range want {
		t.Run(string(tier), func(t *testing.T) {
			f := newEnrollmentFixture(newMemberFor("referrer", "REF1", "", models.MemberTypeX1))

			result, err := f.svc.Enroll(context.Background(), "new", enrollRequest(tier, "REF1"))
			require.NoError(t, err)
			require.NotNil(t, result.ReferralBonus)
			assert.Equal(t, amount, result.ReferralBonus.Total)
			assert.Equal(t, GoldenSeatCommissionRate(tier), result.GoldenSeat.Commission)
		})
	}
}

func TestEnrollWithoutReferrer(t *testing.T) {
	f := newEnrollmentFixture()

	req := enrollRequest(models.MemberTypeX5, "")
	req.MemberID = "explicit"
	req.ReferralCode = "CHOSEN"
	result, err := f.svc.Enroll(context.Background(), "caller", req)
	require.NoError(t, err)

	assert.Equal(t, "explicit", result.Member.MemberID)
	assert.Equal(t, "CHOSEN", result.Member.ReferralCode)
	assert.Nil(t, result.ReferralBonus)
	assert.Empty(t, f.txns.All())
	assert.Equal(t, "100%", result.Commission)
	assert.Len(t, f.publisher.events, 1)
}

func TestEnrollGeneratedCodeFormat(t *testing.T) {
	f := newEnrollmentFixture()

	result, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX1, ""))
	require.NoError(t, err)
	assert.Regexp(t, `^MBR-[A-Z0-9]{6}$`, result.Member.ReferralCode)
}

func TestEnrollRetriesTakenCodes(t *testing.T) {
	f := newEnrollmentFixture(newMemberFor("a", "MBR-TAKEN1", "", models.MemberTypeX1))
	codes := []string{"MBR-TAKEN1", "MBR-TAKEN1", "MBR-FREE01"}
	f.svc.generateCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	result, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX1, ""))
	require.NoError(t, err)
	assert.Equal(t, "MBR-FREE01", result.Member.ReferralCode)
}

func TestEnrollGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newEnrollmentFixture(newMemberFor("a", "MBR-TAKEN1", "", models.MemberTypeX1))
	calls := 0
	f.svc.generateCode = func() (string, error) {
		calls++
		return "MBR-TAKEN1", nil
	}

	_, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX1, ""))
	assert.ErrorIs(t, err, ErrDuplicateReferralCode)
	assert.Equal(t, maxReferralCodeAttempts, calls)
}

func TestEnrollRejections(t *testing.T) {
	existing := newMemberFor("existing", "EXIST", "", models.MemberTypeX1)

	tests := []struct {
		name   string
		caller string
		req    func() models.EnrollMemberRequest
		want   error
	}{
		{
			name:   "unknown referral code",
			caller: "new",
			req:    func() models.EnrollMemberRequest { return enrollRequest(models.MemberTypeX1, "NOPE") },
			want:   ErrInvalidReferral,
		},
		{
			name:   "already enrolled",
			caller: "existing",
			req:    func() models.EnrollMemberRequest { return enrollRequest(models.MemberTypeX1, "") },
			want:   ErrMemberExists,
		},
		{
			name:   "requested code in use",
			caller: "new",
			req: func() models.EnrollMemberRequest {
				r := enrollRequest(models.MemberTypeX1, "")
				r.ReferralCode = "EXIST"
				return r
			},
			want: ErrDuplicateReferralCode,
		},
		{
			name:   "position title",
			caller: "new",
			req:    func() models.EnrollMemberRequest { return enrollRequest(models.PositionMayor, "") },
			want:   ErrInvalidMemberType,
		},
		{
			name:   "unknown tier",
			caller: "new",
			req:    func() models.EnrollMemberRequest { return enrollRequest("X4", "") },
			want:   ErrInvalidMemberType,
		},
		{
			name:   "no identity",
			caller: "",
			req:    func() models.EnrollMemberRequest { return enrollRequest(models.MemberTypeX1, "") },
			want:   ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEnrollmentFixture(existing)

			_, err := f.svc.Enroll(context.Background(), tt.caller, tt.req())
			assert.ErrorIs(t, err, tt.want)

			all, _ := f.members.FindAll(context.Background())
			assert.Len(t, all, 1)
			seats, _ := f.seats.FindAll(context.Background())
			assert.Empty(t, seats)
			assert.Empty(t, f.txns.All())
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestEnrollSanitizesGeography(t *testing.T) {
	f := newEnrollmentFixture()

	req := enrollRequest(models.MemberTypeX2, "")
	req.Barangay = "  Barangay\t\tA \x00"
	req.City = "Calamba  City"
	result, err := f.svc.Enroll(context.Background(), "caller", req)
	require.NoError(t, err)

	assert.Equal(t, "Barangay A", result.Member.Barangay)
	assert.Equal(t, "Calamba City", result.Member.City)
	assert.Equal(t, "Barangay A", result.GoldenSeat.Captain)
}

func TestEnrollSurvivesPublishFailure(t *testing.T) {
	f := newEnrollmentFixture(newMemberFor("referrer", "REF1", "", models.MemberTypeX1))
	f.publisher.err = errors.New("broker down")

	result, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX3, "REF1"))
	require.NoError(t, err)
	assert.NotNil(t, result.ReferralBonus)
	assert.Len(t, f.txns.All(), 1)
}

func TestEnrollNilPublisher(t *testing.T) {
	f := newEnrollmentFixture()
	f.svc.publisher = nil

	_, err := f.svc.Enroll(context.Background(), "caller", enrollRequest(models.MemberTypeX1, ""))
	assert.NoError(t, err)
}

func TestEnrollRollsBackWhenSeatWriteFails(t *testing.T) {
	ctx := context.Background()
	members := repositories.NewMemoryMemberRepository(newMemberFor("referrer", "REF1", "", models.MemberTypeX1))
	txns := repositories.NewMemoryTransactionRepository()
	seats := &mockSeatStore{}
	seats.On("Create", mock.Anything, mock.Anything).Return(errors.New("seat store down")).Once()
	seats.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewEnrollmentService(members, txns, seats, nil, repositories.NewMemoryTransactor(members, txns, nil))

	_, err := svc.Enroll(ctx, "caller", enrollRequest(models.MemberTypeX1, "REF1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat store down")

	_, err = members.FindByMemberID(ctx, "caller")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, txns.All())

	result, err := svc.Enroll(ctx, "caller", enrollRequest(models.MemberTypeX1, "REF1"))
	require.NoError(t, err)
	assert.NotNil(t, result.ReferralBonus)
	assert.Len(t, txns.All(), 1)
	seats.AssertExpectations(t)
}

func TestEnrollRollsBackWhenBonusWriteFails(t *testing.T) {
	ctx := context.Background()
	members := repositories.NewMemoryMemberRepository(newMemberFor("referrer", "REF1", "", models.MemberTypeX1))
	seats := repositories.NewMemoryGoldenSeatRepository()
	txns := &mockTransactionStore{}
	txns.On("Create", mock.Anything, mock.Anything).Return(errors.New("ledger down"))
	publisher := &recordingPublisher{}

	svc := NewEnrollmentService(members, txns, seats, publisher, repositories.NewMemoryTransactor(members, nil, seats))

	_, err := svc.Enroll(ctx, "caller", enrollRequest(models.MemberTypeX2, "REF1"))
	require.Error(t, err)

	_, err = members.FindByMemberID(ctx, "caller")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	all, _ := seats.FindAll(ctx)
	assert.Empty(t, all)
	assert.Empty(t, publisher.events)
	txns.AssertNumberOfCalls(t, "Create", 1)
}

func TestEnrollReportsWhichKeyWasTaken(t *testing.T) {
	tests := []struct {
		name  string
		rival models.Member
		want  error
	}{
		{"referral code taken", newMemberFor("rival", "MBR-RACE01", "", models.MemberTypeX1), ErrDuplicateReferralCode},
		{"member id taken", newMemberFor("caller", "MBR-OTHER1", "", models.MemberTypeX1), ErrMemberExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := &racingMembers{MemoryMemberRepository: repositories.NewMemoryMemberRepository(), rival: tt.rival}
			svc := NewEnrollmentService(members, repositories.NewMemoryTransactionRepository(), repositories.NewMemoryGoldenSeatRepository(), nil, nil)

			req := enrollRequest(models.MemberTypeX1, "")
			req.ReferralCode = "MBR-RACE01"
			_, err := svc.Enroll(context.Background(), "caller", req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
