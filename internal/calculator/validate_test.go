package calculator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

var (
	alice = models.Participant{ID: "u-alice", Name: "Alice"}
	bob   = models.Participant{ID: "u-bob", Name: "Bob"}
	carol = models.Participant{ID: "u-carol", Name: "Carol"}
)

func pctEntry(p models.Participant, pct string) models.SplitEntry {
	return models.SplitEntry{Participant: p, Percentage: decimal.RequireFromString(pct)}
}

func amountEntry(p models.Participant, cents money.Cents) models.SplitEntry {
	return models.SplitEntry{Participant: p, Amount: cents}
}

func paid(p models.Participant, cents money.Cents) models.Contribution {
	return models.Contribution{Participant: p, Amount: cents}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		total         money.Cents
		mode          models.SplitMode
		participants  []models.Participant
		entries       []models.SplitEntry
		contributions []models.Contribution
		wantOK        bool
		wantErrors    []string
		wantWarnings  []string
	}{
		{
			name:          "percentage sums to 100",
			total:         10000,
			mode:          models.SplitPercentage,
			entries:       []models.SplitEntry{pctEntry(alice, "60"), pctEntry(bob, "40")},
			contributions: []models.Contribution{paid(alice, 10000)},
			wantOK:        true,
		},
		{
			name:          "percentage short of 100",
			total:         10000,
			mode:          models.SplitPercentage,
			entries:       []models.SplitEntry{pctEntry(alice, "60"), pctEntry(bob, "30")},
			contributions: []models.Contribution{paid(alice, 10000)},
			wantErrors:    []string{"percentage total must equal 100%, got 90%"},
		},
		{
			name:          "fractional percentages",
			total:         10000,
			mode:          models.SplitPercentage,
			entries:       []models.SplitEntry{pctEntry(alice, "33.33"), pctEntry(bob, "33.33"), pctEntry(carol, "33.34")},
			contributions: []models.Contribution{paid(bob, 10000)},
			wantOK:        true,
		},
		{
			name:          "custom total off by a cent",
			total:         5000,
			mode:          models.SplitCustom,
			entries:       []models.SplitEntry{amountEntry(alice, 2000), amountEntry(bob, 2999)},
			contributions: []models.Contribution{paid(alice, 5000)},
			wantErrors:    []string{"custom split total (49.99) must equal expense total (50.00)"},
		},
		{
			name:          "every failing rule is reported",
			total:         5000,
			mode:          models.SplitCustom,
			entries:       []models.SplitEntry{amountEntry(alice, 2000), amountEntry(bob, 2999)},
			contributions: []models.Contribution{paid(alice, 4000)},
			wantErrors: []string{
				"custom split total (49.99) must equal expense total (50.00)",
				"contributions total (40.00) must equal expense total (50.00)",
			},
		},
		{
			name:          "equal mode needs a participant",
			total:         1000,
			mode:          models.SplitEqual,
			contributions: []models.Contribution{paid(alice, 1000)},
			wantErrors:    []string{"at least one participant is required"},
		},
		{
			name:          "equal mode with contributions split across payers",
			total:         1000,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, bob, carol},
			contributions: []models.Contribution{paid(alice, 10), paid(bob, 20), paid(carol, 970)},
			wantOK:        true,
		},
		{
			name:          "contributions fixed in minor units",
			total:         30,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, bob},
			contributions: []models.Contribution{paid(alice, 10), paid(bob, 20)},
			wantOK:        true,
		},
		{
			name:         "zero total skips the contribution rule",
			total:        0,
			mode:         models.SplitEqual,
			participants: []models.Participant{alice, bob},
			wantOK:       true,
			wantWarnings: []string{"expense total is zero"},
		},
		{
			name:          "payer outside the split",
			total:         1000,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, bob},
			contributions: []models.Contribution{paid(carol, 1000)},
			wantOK:        true,
			wantWarnings:  []string{"Carol paid but is not part of the split"},
		},
		{
			name:          "duplicate participant",
			total:         1000,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, alice},
			contributions: []models.Contribution{paid(alice, 1000)},
			wantOK:        true,
			wantWarnings:  []string{"Alice appears more than once in the split"},
		},
		{
			name:          "negative contribution",
			total:         1000,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, bob},
			contributions: []models.Contribution{paid(alice, 1100), paid(bob, -100)},
			wantErrors:    []string{"contribution from Bob must not be negative, got -1.00"},
		},
		{
			name:          "percentage out of range",
			total:         1000,
			mode:          models.SplitPercentage,
			entries:       []models.SplitEntry{pctEntry(alice, "150"), pctEntry(bob, "-50")},
			contributions: []models.Contribution{paid(alice, 1000)},
			wantErrors: []string{
				"percentage for Alice must be between 0 and 100, got 150%",
				"percentage for Bob must be between 0 and 100, got -50%",
			},
		},
		{
			name:          "custom entries that would wrap around the total",
			total:         1,
			mode:          models.SplitCustom,
			entries:       []models.SplitEntry{amountEntry(alice, math.MaxInt64), amountEntry(bob, math.MaxInt64), amountEntry(carol, 3)},
			contributions: []models.Contribution{paid(alice, 1)},
			wantErrors: []string{
				"split amount for Alice exceeds the maximum of 10000000000000.00",
				"split amount for Bob exceeds the maximum of 10000000000000.00",
				"custom split total is out of range",
			},
		},
		{
			name:          "total over the maximum",
			total:         money.MaxAmount + 1,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice},
			contributions: []models.Contribution{paid(alice, money.MaxAmount+1)},
			wantErrors: []string{
				"expense total (10000000000000.01) exceeds the maximum of 10000000000000.00",
				"contribution from Alice exceeds the maximum of 10000000000000.00",
			},
		},
		{
			name:          "contributions that would wrap around",
			total:         1000,
			mode:          models.SplitEqual,
			participants:  []models.Participant{alice, bob},
			contributions: []models.Contribution{paid(alice, math.MaxInt64), paid(bob, 1)},
			wantErrors: []string{
				"contributions total is out of range",
				"contribution from Alice exceeds the maximum of 10000000000000.00",
			},
		},
		{
			name:          "unknown mode",
			total:         1000,
			mode:          "weighted",
			participants:  []models.Participant{alice},
			contributions: []models.Contribution{paid(alice, 1000)},
			wantErrors:    []string{`unknown split mode "weighted"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.total, tt.mode, tt.participants, tt.entries, tt.contributions)

			wantErrors := tt.wantErrors
			if wantErrors == nil {
				wantErrors = []string{}
			}
			wantWarnings := tt.wantWarnings
			if wantWarnings == nil {
				wantWarnings = []string{}
			}
			assert.Equal(t, tt.wantOK, got.OK)
			assert.Equal(t, wantErrors, got.Errors)
			assert.Equal(t, wantWarnings, got.Warnings)
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	entries := []models.SplitEntry{amountEntry(alice, 2000), amountEntry(bob, 2999)}
	contributions := []models.Contribution{paid(alice, 5000)}

	first := Validate(5000, models.SplitCustom, nil, entries, contributions)
	second := Validate(5000, models.SplitCustom, nil, entries, contributions)

	assert.Equal(t, first, second)
	assert.False(t, first.OK)
}
