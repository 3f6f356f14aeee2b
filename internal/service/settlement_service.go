package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/storage"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService records payments between group members.
type SettlementService struct {
	store  storage.Store
	logger *slog.Logger
}

func NewSettlementService(store storage.Store, logger *slog.Logger) *SettlementService {
	return &SettlementService{store: store, logger: logger}
}

// CreateSettlement records that FromID paid ToID. Both must be group members.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	group, me, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	amount, err := money.ParseNonNegative(req.Msg.Amount)
	if err != nil {
		return nil, invalidArgument("amount: %w", err)
	}
	if amount == 0 {
		return nil, invalidArgument("settlement amount must be positive, got %s", amount)
	}
	if req.Msg.FromID == req.Msg.ToID {
		return nil, invalidArgument("a settlement needs two different members")
	}
	for _, id := range []string{req.Msg.FromID, req.Msg.ToID} {
		if !group.HasMember(id) {
			return nil, invalidArgument("%q is not a member of group %s", id, group.ID)
		}
	}

	settlement := &models.Settlement{
		GroupID:   group.ID,
		FromID:    req.Msg.FromID,
		ToID:      req.Msg.ToID,
		Amount:    amount,
		Note:      strings.TrimSpace(req.Msg.Note),
		CreatedBy: me.ID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		s.logger.ErrorContext(ctx, "CreateSettlement failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", group.ID,
		"amount", settlement.Amount,
	)
	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: settlementToAPI(settlement)}), nil
}

// ListSettlements returns a group's settlements.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListSettlements failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = settlementToAPI(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement removes a settlement, reopening the debt it paid.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlement_id required")
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, storeError(err)
	}
	if _, _, err := memberGroup(ctx, s.store, settlement.GroupID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		s.logger.ErrorContext(ctx, "DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Settlement deleted", "settlement_id", settlement.ID)
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
