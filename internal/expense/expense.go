// Package expense decodes expenses entered as decimal strings, from RPC
// requests or draft files, into the cent amounts the calculator works on.
package expense

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

const (
	// maxPercentageDigits bounds the integer digits of a percentage. Values
	// above 100 still decode so validation can report them.
	maxPercentageDigits = 6
	// maxPercentageScale bounds the decimal places of a percentage.
	maxPercentageScale = 20
)

// Entry is a split entry or contribution as entered. Only the fields that
// apply to the mode are set.
type Entry struct {
	Participant models.Participant
	Percentage  string
	Amount      string
}

// Raw is an expense as entered, with amounts as decimal strings.
type Raw struct {
	Total         string
	Mode          string
	Participants  []models.Participant
	Splits        []Entry
	Contributions []Entry
}

// Input is a decoded expense.
type Input struct {
	Total         money.Cents
	Mode          models.SplitMode
	Participants  []models.Participant
	Splits        []models.SplitEntry
	Contributions []models.Contribution
}

// Decode parses every amount in raw. Malformed or out-of-range amounts are
// errors wrapping money.ErrInvalidAmount. An unknown mode is kept as written
// so validation can report it with everything else.
//
// In percentage and custom mode the split entries name the participants, so
// any explicit participant list is replaced by theirs.
func Decode(raw Raw) (*Input, error) {
	in := &Input{}

	var err error
	if in.Total, err = money.Parse(raw.Total); err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}
	if in.Mode, err = models.ParseSplitMode(raw.Mode); err != nil {
		in.Mode = models.SplitMode(raw.Mode)
	}

	in.Splits = make([]models.SplitEntry, len(raw.Splits))
	for i, s := range raw.Splits {
		entry := models.SplitEntry{Participant: s.Participant}
		if s.Percentage != "" {
			if entry.Percentage, err = ParsePercentage(s.Percentage); err != nil {
				return nil, fmt.Errorf("percentage for %s: %w", s.Participant.ID, err)
			}
		}
		if s.Amount != "" {
			if entry.Amount, err = money.Parse(s.Amount); err != nil {
				return nil, fmt.Errorf("split amount for %s: %w", s.Participant.ID, err)
			}
		}
		in.Splits[i] = entry
	}

	in.Contributions = make([]models.Contribution, len(raw.Contributions))
	for i, c := range raw.Contributions {
		amount, err := money.Parse(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("contribution from %s: %w", c.Participant.ID, err)
		}
		in.Contributions[i] = models.Contribution{Participant: c.Participant, Amount: amount}
	}

	switch {
	case in.Mode == models.SplitPercentage || in.Mode == models.SplitCustom:
		in.Participants = splitParticipants(in.Splits)
	case in.Mode != models.SplitEqual && len(raw.Participants) == 0:
		in.Participants = splitParticipants(in.Splits)
	default:
		in.Participants = raw.Participants
	}
	return in, nil
}

// ParsePercentage parses a percentage such as "33.33". Range checks are left
// to validation; only absurd magnitudes and precision are rejected here.
func ParsePercentage(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", money.ErrInvalidAmount, s)
	}
	if d.IsZero() {
		return d, nil
	}
	if int64(d.NumDigits())+int64(d.Exponent()) > maxPercentageDigits || d.Exponent() < -maxPercentageScale {
		return decimal.Zero, fmt.Errorf("%w: percentage %q out of range", money.ErrInvalidAmount, s)
	}
	return d, nil
}

// Validate runs every reconciliation rule against in.
func (in *Input) Validate() calculator.ValidationResult {
	return calculator.Validate(in.Total, in.Mode, in.Participants, in.Splits, in.Contributions)
}

// Shares computes the per-participant shares of in.
func (in *Input) Shares() ([]models.Share, error) {
	return calculator.ComputeShares(in.Total, in.Mode, in.Participants, in.Splits)
}

// StoredSplits returns the split entries worth persisting. Equal mode
// entries carry nothing.
func (in *Input) StoredSplits() []models.SplitEntry {
	if in.Mode == models.SplitEqual {
		return nil
	}
	return in.Splits
}

func splitParticipants(splits []models.SplitEntry) []models.Participant {
	out := make([]models.Participant, len(splits))
	for i, s := range splits {
		out[i] = s.Participant
	}
	return out
}
