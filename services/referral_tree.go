// services/referral_tree.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/monitoring"
	"github.com/HSouheill/sower_backend/repositories"
)

// MaxTreeLevel is the deepest level a referral tree is expanded to.
const MaxTreeLevel = 7

// ReferralService builds referral trees and direct referral summaries.
type ReferralService struct {
	members      MemberStore
	transactions TransactionStore
	users        UserStore
	maxLevel     int
}

// NewReferralService creates a referral service. maxLevel is clamped to [1, MaxTreeLevel].
func NewReferralService(members MemberStore, transactions TransactionStore, users UserStore, maxLevel int) *ReferralService {
	if maxLevel <= 0 || maxLevel > MaxTreeLevel {
		maxLevel = MaxTreeLevel
	}
	return &ReferralService{
		members:      members,
		transactions: transactions,
		users:        users,
		maxLevel:     maxLevel,
	}
}

// buildContext is the state of a single tree build. The visited set spans the whole build:
// a referral code is expanded at most once no matter how many branches reach it.
type buildContext struct {
	visited map[string]struct{}
	nodes   int
}

func newBuildContext() *buildContext {
	return &buildContext{visited: make(map[string]struct{})}
}

// claim marks code as expanded and reports whether the caller may expand it.
func (b *buildContext) claim(code string) bool {
	if _, seen := b.visited[code]; seen {
		return false
	}
	b.visited[code] = struct{}{}
	return true
}

// frontierEntry is a node whose children are fetched on the next level.
type frontierEntry struct {
	code     string
	children *[]*models.ReferralTreeNode
}

// BuildTree returns the forest of descendants of rootCode; the roots are its direct referrals.
func (s *ReferralService) BuildTree(ctx context.Context, rootCode string) ([]*models.ReferralTreeNode, error) {
	if rootCode == "" {
		return nil, ErrMemberNotFound
	}
	if _, err := s.members.FindByReferralCode(ctx, rootCode); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: referral code %q", ErrMemberNotFound, rootCode)
		}
		return nil, err
	}

	forest, bc, err := s.buildForest(ctx, rootCode)
	if err != nil {
		monitoring.ReferralTreeBuilds.WithLabelValues("error").Inc()
		return nil, err
	}
	monitoring.ReferralTreeBuilds.WithLabelValues("ok").Inc()
	monitoring.ReferralTreeNodes.Observe(float64(bc.nodes))
	return forest, nil
}

// buildForest expands the tree one level at a time. Every level costs one member query plus
// one batched user and transaction lookup, and the context is checked between levels.
func (s *ReferralService) buildForest(ctx context.Context, rootCode string) ([]*models.ReferralTreeNode, *buildContext, error) {
	bc := newBuildContext()
	bc.claim(rootCode)

	forest := []*models.ReferralTreeNode{}
	frontier := []frontierEntry{{code: rootCode, children: &forest}}

	for level := 1; level <= s.maxLevel && len(frontier) > 0; level++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		codes := make([]string, 0, len(frontier))
		for _, f := range frontier {
			codes = append(codes, f.code)
		}
		members, err := s.members.FindByReferredBy(ctx, codes...)
		if err != nil {
			return nil, nil, fmt.Errorf("load level %d referrals: %w", level, err)
		}
		if len(members) == 0 {
			break
		}

		byParent := make(map[string][]*models.Member, len(frontier))
		memberIDs := make([]string, 0, len(members))
		for i := range members {
			m := &members[i]
			byParent[m.ReferredBy] = append(byParent[m.ReferredBy], m)
			memberIDs = append(memberIDs, m.MemberID)
		}

		data, err := s.loadLevel(ctx, memberIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load level %d details: %w", level, err)
		}

		var next []frontierEntry
		for _, f := range frontier {
			for _, m := range byParent[f.code] {
				node := newTreeNode(m, level, data)
				*f.children = append(*f.children, node)
				bc.nodes++

				if m.ReferralCode == "" {
					continue
				}
				if !bc.claim(m.ReferralCode) {
					monitoring.ReferralTreeAnomalies.Inc()
					log.Ctx(ctx).Warn().
						Err(ErrDataAnomaly).
						Str("referralCode", m.ReferralCode).
						Str("memberId", m.MemberID).
						Int("level", level).
						Msg("Referral code already expanded, subtree pruned")
					continue
				}
				next = append(next, frontierEntry{code: m.ReferralCode, children: &node.Children})
			}
		}
		frontier = next
	}

	return forest, bc, nil
}

// levelData holds the identity and transaction lookups of one tree level.
type levelData struct {
	users        map[string]*models.User
	transactions map[string][]models.Transaction
}

func (d *levelData) user(memberID string) *models.User {
	return d.users[memberID]
}

// loadLevel fetches profiles and transactions for memberIDs concurrently.
func (s *ReferralService) loadLevel(ctx context.Context, memberIDs []string) (*levelData, error) {
	var (
		users []models.User
		txns  []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.FindByIDs(gctx, memberIDs)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.transactions.FindByMemberIDs(gctx, memberIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &levelData{
		users:        make(map[string]*models.User, len(users)),
		transactions: make(map[string][]models.Transaction, len(memberIDs)),
	}
	for i := range users {
		data.users[users[i].ID.Hex()] = &users[i]
	}
	for _, t := range txns {
		data.transactions[t.MemberID] = append(data.transactions[t.MemberID], t)
	}
	return data, nil
}

// summarizeTransactions totals txns and finds the latest timestamp, nil when there is none.
func summarizeTransactions(txns []models.Transaction) (decimal.Decimal, *time.Time) {
	total := decimal.Zero
	var last *time.Time
	for i := range txns {
		total = total.Add(decimal.NewFromFloat(txns[i].Amount()))
		ts := txns[i].Timestamp()
		if ts.IsZero() {
			continue
		}
		if last == nil || ts.After(*last) {
			t := ts
			last = &t
		}
	}
	return total, last
}

func newTreeNode(m *models.Member, level int, data *levelData) *models.ReferralTreeNode {
	txns := data.transactions[m.MemberID]
	total, last := summarizeTransactions(txns)

	return &models.ReferralTreeNode{
		ID:           m.ID,
		MemberID:     m.MemberID,
		ReferralCode: m.ReferralCode,
		Level:        level,
		MemberType:   m.MemberType,
		Status:       m.MemberStatus,
		MemberDate:   m.MemberDate,
		Role:         m.Role,
		Location:     m.Location(),
		UserDetails:  models.DetailsOf(data.user(m.MemberID)),
		Statistics: models.NodeStatistics{
			TotalEarnings:          total.InexactFloat64(),
			Commission:             OverrideCommission(total).InexactFloat64(),
			DirectReferralEarnings: DirectReferralBonus(m.MemberType, level).InexactFloat64(),
			TransactionCount:       len(txns),
			LastTransaction:        last,
		},
		Children: []*models.ReferralTreeNode{},
	}
}

// BuildReferralTree builds the caller's referral tree together with its statistics.
func (s *ReferralService) BuildReferralTree(ctx context.Context, callerMemberID string) (*models.ReferralTree, error) {
	root, err := s.callerMember(ctx, callerMemberID)
	if err != nil {
		return nil, err
	}

	forest, err := s.BuildTree(ctx, root.ReferralCode)
	if err != nil {
		return nil, err
	}

	return &models.ReferralTree{
		MemberInfo: models.MemberInfo{
			ID:           root.ID,
			MemberID:     root.MemberID,
			ReferralCode: root.ReferralCode,
			MemberType:   root.MemberType,
			Status:       root.MemberStatus,
			MemberDate:   root.MemberDate,
			Role:         root.Role,
			Location:     root.Location(),
		},
		ReferralTree: forest,
		Statistics:   CalculateTreeStats(forest),
	}, nil
}

func (s *ReferralService) callerMember(ctx context.Context, callerMemberID string) (*models.Member, error) {
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
	return member, nil
}
