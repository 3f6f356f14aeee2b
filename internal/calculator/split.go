package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

var (
	ErrNoParticipants   = errors.New("must have at least one participant")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrPercentageTotal  = errors.New("percentages must sum to 100")
	ErrCustomTotal      = errors.New("custom split must sum to the expense total")
	ErrUnknownSplitMode = errors.New("unknown split mode")
	ErrPercentageRange  = errors.New("percentage must be between 0 and 100")
	ErrAmountRange      = errors.New("amount exceeds the maximum")
)

var hundred = decimal.NewFromInt(100)

// ComputeEqualShares divides total evenly across participants.
//
// Every participant gets floor(total/n) cents and the first total%n
// participants, in the order given, get one extra cent, so the shares always
// sum to total. No participants yields no shares. A negative total is a caller
// error and also yields no shares.
func ComputeEqualShares(total money.Cents, participants []models.Participant) []models.Share {
	n := money.Cents(len(participants))
	if n == 0 || total < 0 {
		return []models.Share{}
	}

	base := total / n
	remainder := total - base*n

	shares := make([]models.Share, len(participants))
	for i, p := range participants {
		amount := base
		if money.Cents(i) < remainder {
			amount++
		}
		shares[i] = models.Share{Participant: p, Amount: amount}
	}
	return shares
}

// ComputeShares returns each participant's share of total under mode.
//
// Equal mode uses ComputeEqualShares over participants. Custom mode passes the
// entries' amounts through. Percentage mode floors each entry to whole cents
// and hands the leftover cents to entries in order, the same tie-break as
// equal mode. Entries that don't reconcile with total are rejected; use
// Validate for the detailed messages.
func ComputeShares(total money.Cents, mode models.SplitMode, participants []models.Participant, entries []models.SplitEntry) ([]models.Share, error) {
	if total < 0 {
		return nil, ErrNegativeAmount
	}
	if total > money.MaxAmount {
		return nil, fmt.Errorf("%w: total %s", ErrAmountRange, total)
	}

	switch mode {
	case models.SplitEqual:
		if len(participants) == 0 {
			return nil, ErrNoParticipants
		}
		return ComputeEqualShares(total, participants), nil

	case models.SplitCustom:
		if len(entries) == 0 {
			return nil, ErrNoParticipants
		}
		shares := make([]models.Share, len(entries))
		for i, e := range entries {
			if e.Amount < 0 {
				return nil, ErrNegativeAmount
			}
			if e.Amount > money.MaxAmount {
				return nil, fmt.Errorf("%w: %s has %s", ErrAmountRange, e.Participant.ID, e.Amount)
			}
			shares[i] = models.Share{Participant: e.Participant, Amount: e.Amount}
		}
		agg, err := Aggregate(entries)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCustomTotal, err)
		}
		if agg.Amount != total {
			return nil, fmt.Errorf("%w: got %s, want %s", ErrCustomTotal, agg.Amount, total)
		}
		return shares, nil

	case models.SplitPercentage:
		if len(entries) == 0 {
			return nil, ErrNoParticipants
		}
		for _, e := range entries {
			if e.Percentage.IsNegative() || e.Percentage.GreaterThan(hundred) {
				return nil, fmt.Errorf("%w: %s has %s", ErrPercentageRange, e.Participant.ID, e.Percentage)
			}
		}
		agg, _ := Aggregate(entries)
		if !agg.Percentage.Round(money.Places).Equal(hundred) {
			return nil, fmt.Errorf("%w: got %s", ErrPercentageTotal, agg.Percentage.Round(money.Places))
		}
		return percentageShares(total, entries), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitMode, mode)
	}
}

func percentageShares(total money.Cents, entries []models.SplitEntry) []models.Share {
	totalDec := decimal.NewFromInt(int64(total))
	shares := make([]models.Share, len(entries))

	var assigned money.Cents
	for i, e := range entries {
		amount := money.Cents(totalDec.Mul(e.Percentage).Div(hundred).Floor().IntPart())
		shares[i] = models.Share{Participant: e.Participant, Amount: amount}
		assigned += amount
	}

	// Percentages rounded to 2dp may leave a few cents either way.
	for left := total - assigned; left != 0; {
		for i := range shares {
			if left == 0 {
				break
			}
			if left > 0 {
				shares[i].Amount++
				left--
			} else if shares[i].Amount > 0 {
				shares[i].Amount--
				left++
			}
		}
	}
	return shares
}

// Totals is the aggregate of a set of split entries.
type Totals struct {
	Percentage decimal.Decimal
	Amount     money.Cents
}

// Aggregate sums the percentages and amounts of entries. Percentages are
// always summed; if the amounts overflow, the error wraps money.ErrOverflow
// and Amount is not meaningful.
func Aggregate(entries []models.SplitEntry) (Totals, error) {
	t := Totals{Percentage: decimal.Zero}
	var overflow error
	for _, e := range entries {
		t.Percentage = t.Percentage.Add(e.Percentage)
		if overflow == nil {
			t.Amount, overflow = t.Amount.Add(e.Amount)
		}
	}
	return t, overflow
}

// SumShares adds up the amounts of shares.
func SumShares(shares []models.Share) (money.Cents, error) {
	amounts := make([]money.Cents, len(shares))
	for i, s := range shares {
		amounts[i] = s.Amount
	}
	return money.Sum(amounts...)
}
