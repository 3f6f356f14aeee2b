package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/storage"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// withCaller puts the caller first unless they're already listed.
func withCaller(me models.Participant, members []models.Participant) []models.Participant {
	for _, m := range members {
		if m.ID == me.ID {
			return members
		}
	}
	return append([]models.Participant{me}, members...)
}

// CreateGroup creates a new group. The caller is always a member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group := &models.Group{
		Name:      name,
		Members:   withCaller(me, findNewMembers(participantsFromAPI(req.Msg.Members), nil)),
		CreatedBy: me.ID,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.ErrorContext(ctx, "CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Group created", "group_id", group.ID, "members_count", len(group.Members))
	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForMember(ctx, me.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = groupToAPI(g)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group and replaces its members. The caller can't
// remove themselves this way.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	group, me, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		group.Name = name
	}
	group.Members = withCaller(me, findNewMembers(participantsFromAPI(req.Msg.Members), nil))

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		s.logger.ErrorContext(ctx, "UpdateGroup failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{Group: groupToAPI(group)}), nil
}

// DeleteGroup removes a group with all of its expenses and settlements.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		s.logger.ErrorContext(ctx, "DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances calculates balances across all expenses and settlements in a group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetGroupBalances failed - could not list expenses", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetGroupBalances failed - could not list settlements", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	memberBalances, debtEdges, err := calculator.CalculateGroupBalances(expenses, settlements)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetGroupBalances failed - calculation error", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	names := make(map[string]string, len(group.Members))
	for _, m := range group.Members {
		names[m.ID] = m.Name
	}

	balances := make([]*api.MemberBalance, len(memberBalances))
	for i, b := range memberBalances {
		balances[i] = &api.MemberBalance{
			MemberID:   b.MemberID,
			MemberName: names[b.MemberID],
			NetBalance: b.NetBalance.String(),
			TotalPaid:  b.TotalPaid.String(),
			TotalOwed:  b.TotalOwed.String(),
		}
	}

	debts := make([]*api.DebtEdge, len(debtEdges))
	for i, d := range debtEdges {
		debts[i] = &api.DebtEdge{From: d.From, To: d.To, Amount: d.Amount.String()}
	}

	s.logger.DebugContext(ctx, "GetGroupBalances successful",
		"group_id", group.ID,
		"expenses_count", len(expenses),
		"settlements_count", len(settlements),
		"debts_count", len(debts),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		MemberBalances: balances,
		Debts:          debts,
	}), nil
}
