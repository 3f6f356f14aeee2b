package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/expense"
	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/storage"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewExpenseService creates a new ExpenseService. m may be nil.
func NewExpenseService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, metrics: m, logger: logger}
}

// CalculateShares previews the shares of a total without saving anything.
func (s *ExpenseService) CalculateShares(ctx context.Context, req *connect.Request[api.CalculateSharesRequest]) (*connect.Response[api.CalculateSharesResponse], error) {
	in, err := decodeExpense(req.Msg.Total, req.Msg.Mode, req.Msg.Participants, req.Msg.Splits, nil)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "CalculateShares request received",
		"total", in.Total,
		"mode", in.Mode,
		"participants_count", len(in.Participants),
	)

	shares, err := in.Shares()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return connect.NewResponse(&api.CalculateSharesResponse{
		Total:  in.Total.String(),
		Shares: sharesToAPI(shares),
	}), nil
}

// ValidateExpense runs every reconciliation rule and reports the outcome.
// A draft that fails validation is still a successful RPC.
func (s *ExpenseService) ValidateExpense(ctx context.Context, req *connect.Request[api.ValidateExpenseRequest]) (*connect.Response[api.ValidateExpenseResponse], error) {
	in, err := decodeExpense(req.Msg.Total, req.Msg.Mode, req.Msg.Participants, req.Msg.Splits, req.Msg.Contributions)
	if err != nil {
		return nil, err
	}

	result := s.runValidation(in)
	return connect.NewResponse(&api.ValidateExpenseResponse{Result: validationToAPI(result)}), nil
}

// CreateExpense validates and saves a new expense in a group the caller belongs to.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	_, me, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	in, err := decodeExpense(req.Msg.Total, req.Msg.Mode, req.Msg.Participants, req.Msg.Splits, req.Msg.Contributions)
	if err != nil {
		return nil, err
	}
	shares, result, err := s.reconcile(in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:       req.Msg.GroupID,
		Title:         strings.TrimSpace(req.Msg.Title),
		CreatedBy:     me.ID,
		Shares:        shares,
		Total:         in.Total,
		Mode:          in.Mode,
		Participants:  in.Participants,
		Splits:        in.StoredSplits(),
		Contributions: in.Contributions,
	}

	// Save to storage (generates ID, title and timestamps)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.ErrorContext(ctx, "CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return nil, storeError(err)
	}
	s.autoAddParticipantsToGroup(ctx, expense)

	s.logger.InfoContext(ctx, "Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"total", expense.Total,
		"mode", expense.Mode,
	)

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense:  expenseToAPI(expense),
		Warnings: result.Warnings,
	}), nil
}

// GetExpense returns a saved expense with its stored shares.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	group, _, err := memberGroup(ctx, s.store, expense.GroupID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetExpenseResponse{
		Expense:   expenseToAPI(expense),
		GroupName: group.Name,
	}), nil
}

// UpdateExpense replaces an expense's amounts and split. The group can't change.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	existing, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	if _, _, err := memberGroup(ctx, s.store, existing.GroupID); err != nil {
		return nil, err
	}

	in, err := decodeExpense(req.Msg.Total, req.Msg.Mode, req.Msg.Participants, req.Msg.Splits, req.Msg.Contributions)
	if err != nil {
		return nil, err
	}
	shares, result, err := s.reconcile(in)
	if err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(req.Msg.Title)
	existing.Total = in.Total
	existing.Mode = in.Mode
	existing.Participants = in.Participants
	existing.Splits = in.StoredSplits()
	existing.Contributions = in.Contributions
	existing.Shares = shares

	if err := s.store.UpdateExpense(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "UpdateExpense failed", "expense_id", existing.ID, "error", err)
		return nil, storeError(err)
	}
	s.autoAddParticipantsToGroup(ctx, existing)

	s.logger.InfoContext(ctx, "Expense updated", "expense_id", existing.ID, "total", existing.Total)

	return connect.NewResponse(&api.UpdateExpenseResponse{
		Expense:  expenseToAPI(existing),
		Warnings: result.Warnings,
	}), nil
}

// DeleteExpense removes an expense from its group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	if _, _, err := memberGroup(ctx, s.store, expense.GroupID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		s.logger.ErrorContext(ctx, "DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpensesByGroup returns summaries of a group's expenses, newest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, req *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error) {
	if _, _, err := memberGroup(ctx, s.store, req.Msg.GroupID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListExpensesByGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	summaries := make([]*api.ExpenseSummary, len(expenses))
	for i, e := range expenses {
		summaries[i] = &api.ExpenseSummary{
			ID:               e.ID,
			Title:            e.Title,
			Total:            e.Total.String(),
			Mode:             string(e.Mode),
			ParticipantCount: int32(len(e.Participants)),
			CreatedBy:        e.CreatedBy,
			CreatedAt:        e.CreatedAt,
		}
	}

	return connect.NewResponse(&api.ListExpensesByGroupResponse{Expenses: summaries}), nil
}

func (s *ExpenseService) runValidation(in *expense.Input) calculator.ValidationResult {
	result := in.Validate()
	s.metrics.ObserveValidation(string(in.Mode), result.OK, len(result.Errors), len(result.Warnings))
	return result
}

// reconcile validates in and computes the shares to persist. A draft that
// fails validation is rejected with every error message in the detail.
func (s *ExpenseService) reconcile(in *expense.Input) ([]models.Share, calculator.ValidationResult, error) {
	result := s.runValidation(in)
	if !result.OK {
		return nil, result, invalidArgument("expense does not reconcile: %s", strings.Join(result.Errors, "; "))
	}
	shares, err := in.Shares()
	if err != nil {
		return nil, result, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return shares, result, nil
}

// autoAddParticipantsToGroup adds any participants and contributors not
// already in the expense's group. Failures are logged, not returned.
func (s *ExpenseService) autoAddParticipantsToGroup(ctx context.Context, expense *models.Expense) {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		s.logger.WarnContext(ctx, "autoAddParticipantsToGroup: failed to get group", "group_id", expense.GroupID, "error", err)
		return
	}

	people := make([]models.Participant, 0, len(expense.Participants)+len(expense.Contributions))
	people = append(people, expense.Participants...)
	for _, c := range expense.Contributions {
		people = append(people, c.Participant)
	}

	newMembers := findNewMembers(people, group.Members)
	if len(newMembers) == 0 {
		return
	}
	if err := s.store.AddGroupMembers(ctx, group.ID, newMembers); err != nil {
		s.logger.ErrorContext(ctx, "autoAddParticipantsToGroup: failed to add members", "group_id", group.ID, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "Auto-added participants to group", "group_id", group.ID, "new_members", len(newMembers))
}
