package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
)

// MemberService covers member directory lookups, promotion and removal.
type MemberService struct {
	members MemberStore
}

func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{members: members}
}

func (s *MemberService) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	m, err := s.members.FindByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return nonNilMembers(members), nil
}

func (s *MemberService) ListMembersByType(ctx context.Context, memberType models.MemberType) ([]models.Member, error) {
	if !memberType.IsTier() && !memberType.IsPosition() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMemberType, memberType)
	}
	members, err := s.members.FindByMemberType(ctx, memberType)
	if err != nil {
		return nil, err
	}
	return nonNilMembers(members), nil
}

// UpdateMemberType promotes the caller to a tier or a golden seat position. The member's
// golden seat record keeps the commission it was created with.
func (s *MemberService) UpdateMemberType(ctx context.Context, callerMemberID string, memberType models.MemberType) (*models.Member, error) {
	if callerMemberID == "" {
		return nil, ErrUnauthenticated
	}
	if !memberType.IsTier() && !memberType.IsPosition() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMemberType, memberType)
	}
	m, err := s.members.UpdateMemberType(ctx, callerMemberID, memberType)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	log.Ctx(ctx).Info().Str("memberId", callerMemberID).Str("memberType", string(memberType)).Msg("Member type updated")
	return m, nil
}

// DeleteMember removes a member that nobody was referred by. Its golden seat stays in place.
func (s *MemberService) DeleteMember(ctx context.Context, memberID string) error {
	m, err := s.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if m.ReferralCode != "" {
		referrals, err := s.members.FindByReferredBy(ctx, m.ReferralCode)
		if err != nil {
			return fmt.Errorf("check referrals: %w", err)
		}
		if len(referrals) > 0 {
			return fmt.Errorf("%w: %d direct referrals", ErrHasDescendants, len(referrals))
		}
	}
	if err := s.members.Delete(ctx, memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

func nonNilMembers(members []models.Member) []models.Member {
	if members == nil {
		return []models.Member{}
	}
	return members
}
