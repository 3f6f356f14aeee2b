package service

import (
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/expense"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/pkg/api"
)

// decodeExpense parses wire amounts into cents. Malformed amounts are returned
// as InvalidArgument; reconciliation problems, including an unknown mode, are
// left to the validator.
func decodeExpense(total, mode string, participants []api.Participant, splits []api.SplitEntry, contributions []api.Contribution) (*expense.Input, error) {
	raw := expense.Raw{
		Total:         total,
		Mode:          mode,
		Participants:  participantsFromAPI(participants),
		Splits:        make([]expense.Entry, len(splits)),
		Contributions: make([]expense.Entry, len(contributions)),
	}
	for i, sp := range splits {
		raw.Splits[i] = expense.Entry{
			Participant: participantFromAPI(sp.Participant),
			Percentage:  sp.Percentage,
			Amount:      sp.Amount,
		}
	}
	for i, c := range contributions {
		raw.Contributions[i] = expense.Entry{Participant: participantFromAPI(c.Participant), Amount: c.Amount}
	}

	in, err := expense.Decode(raw)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return in, nil
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func participantFromAPI(p api.Participant) models.Participant {
	return models.Participant{ID: p.ID, Name: p.Name}
}

func participantsFromAPI(ps []api.Participant) []models.Participant {
	out := make([]models.Participant, len(ps))
	for i, p := range ps {
		out[i] = participantFromAPI(p)
	}
	return out
}

func participantToAPI(p models.Participant) api.Participant {
	return api.Participant{ID: p.ID, Name: p.Name}
}

func participantsToAPI(ps []models.Participant) []api.Participant {
	out := make([]api.Participant, len(ps))
	for i, p := range ps {
		out[i] = participantToAPI(p)
	}
	return out
}

func sharesToAPI(shares []models.Share) []api.Share {
	out := make([]api.Share, len(shares))
	for i, s := range shares {
		out[i] = api.Share{Participant: participantToAPI(s.Participant), Amount: s.Amount.String()}
	}
	return out
}

func validationToAPI(r calculator.ValidationResult) api.ValidationResult {
	return api.ValidationResult{OK: r.OK, Errors: r.Errors, Warnings: r.Warnings}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	splits := make([]api.SplitEntry, len(e.Splits))
	for i, sp := range e.Splits {
		entry := api.SplitEntry{Participant: participantToAPI(sp.Participant)}
		switch e.Mode {
		case models.SplitPercentage:
			entry.Percentage = sp.Percentage.String()
		case models.SplitCustom:
			entry.Amount = sp.Amount.String()
		}
		splits[i] = entry
	}

	contributions := make([]api.Contribution, len(e.Contributions))
	for i, c := range e.Contributions {
		contributions[i] = api.Contribution{Participant: participantToAPI(c.Participant), Amount: c.Amount.String()}
	}

	return &api.Expense{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Title:         e.Title,
		Total:         e.Total.String(),
		Mode:          string(e.Mode),
		Participants:  participantsToAPI(e.Participants),
		Splits:        splits,
		Contributions: contributions,
		Shares:        sharesToAPI(e.Shares),
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func groupToAPI(g *models.Group) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   participantsToAPI(g.Members),
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
}

func settlementToAPI(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		FromID:    s.FromID,
		ToID:      s.ToID,
		Amount:    s.Amount.String(),
		Note:      s.Note,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
