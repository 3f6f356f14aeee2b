package calculator

import (
	"fmt"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// ValidationResult reports whether an expense's split and contributions
// reconcile with its total. Errors block submission; warnings don't.
type ValidationResult struct {
	OK       bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the split entries and contributions of an expense against
// its total. Every applicable rule runs and all failures are reported
// together. Validate has no side effects and never panics on well-typed input.
//
// Participants are only consulted in equal mode, where they are the split.
func Validate(total money.Cents, mode models.SplitMode, participants []models.Participant, entries []models.SplitEntry, contributions []models.Contribution) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}

	if total < 0 {
		res.errorf("expense total (%s) must not be negative", total)
	}
	if total == 0 {
		res.warnf("expense total is zero")
	}
	if total > money.MaxAmount {
		res.errorf("expense total (%s) exceeds the maximum of %s", total, money.MaxAmount)
	}

	split := participants
	switch mode {
	case models.SplitEqual:
		if len(participants) == 0 {
			res.errorf("at least one participant is required")
		}

	case models.SplitPercentage:
		split = entryParticipants(entries)
		if len(entries) == 0 {
			res.errorf("at least one participant is required")
		}
		for _, e := range entries {
			if e.Percentage.IsNegative() || e.Percentage.GreaterThan(hundred) {
				res.errorf("percentage for %s must be between 0 and 100, got %s%%", displayName(e.Participant), e.Percentage)
			}
		}
		agg, _ := Aggregate(entries)
		sum := agg.Percentage.Round(money.Places)
		if !sum.Equal(hundred) {
			res.errorf("percentage total must equal 100%%, got %s%%", sum)
		}

	case models.SplitCustom:
		split = entryParticipants(entries)
		if len(entries) == 0 {
			res.errorf("at least one participant is required")
		}
		for _, e := range entries {
			if e.Amount < 0 {
				res.errorf("split amount for %s must not be negative, got %s", displayName(e.Participant), e.Amount)
			}
			if e.Amount > money.MaxAmount {
				res.errorf("split amount for %s exceeds the maximum of %s", displayName(e.Participant), money.MaxAmount)
			}
		}
		if agg, err := Aggregate(entries); err != nil {
			res.errorf("custom split total is out of range")
		} else if agg.Amount != total {
			res.errorf("custom split total (%s) must equal expense total (%s)", agg.Amount, total)
		}

	default:
		res.errorf("unknown split mode %q", mode)
	}

	if total > 0 {
		if paid, err := contributionTotal(contributions); err != nil {
			res.errorf("contributions total is out of range")
		} else if paid != total {
			res.errorf("contributions total (%s) must equal expense total (%s)", paid, total)
		}
	}
	for _, c := range contributions {
		if c.Amount < 0 {
			res.errorf("contribution from %s must not be negative, got %s", displayName(c.Participant), c.Amount)
		}
		if c.Amount > money.MaxAmount {
			res.errorf("contribution from %s exceeds the maximum of %s", displayName(c.Participant), money.MaxAmount)
		}
	}

	seen := make(map[string]bool, len(split))
	for _, p := range split {
		if seen[p.ID] {
			res.warnf("%s appears more than once in the split", displayName(p))
		}
		seen[p.ID] = true
	}
	for _, c := range contributions {
		if len(split) > 0 && !seen[c.Participant.ID] {
			res.warnf("%s paid but is not part of the split", displayName(c.Participant))
		}
	}

	res.OK = len(res.Errors) == 0
	return res
}

func contributionTotal(contributions []models.Contribution) (money.Cents, error) {
	amounts := make([]money.Cents, len(contributions))
	for i, c := range contributions {
		amounts[i] = c.Amount
	}
	return money.Sum(amounts...)
}

func entryParticipants(entries []models.SplitEntry) []models.Participant {
	out := make([]models.Participant, len(entries))
	for i, e := range entries {
		out[i] = e.Participant
	}
	return out
}

func displayName(p models.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
