package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/money"
)

// SplitMode selects how an expense total is divided.
type SplitMode string

const (
	SplitEqual      SplitMode = "equal"
	SplitPercentage SplitMode = "percentage"
	SplitCustom     SplitMode = "custom"
)

// ParseSplitMode accepts "equal", "percentage" or "custom" (case-insensitive).
// An empty string means equal.
func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitEqual:
		return SplitEqual, nil
	case SplitPercentage:
		return SplitPercentage, nil
	case SplitCustom:
		return SplitCustom, nil
	default:
		return "", fmt.Errorf("unknown split mode %q", s)
	}
}

// Participant is someone an expense is split between.
// Order of participants matters: it decides who absorbs leftover cents.
type Participant struct {
	ID   string
	Name string
}

// SplitEntry assigns a participant either a Percentage (percentage mode) or
// an Amount (custom mode). The unused field is zero.
type SplitEntry struct {
	Participant Participant
	Percentage  decimal.Decimal
	Amount      money.Cents
}

// Contribution is what a participant actually paid toward an expense.
type Contribution struct {
	Participant Participant
	Amount      money.Cents
}

// Share is one participant's computed portion of an expense.
type Share struct {
	Participant Participant
	Amount      money.Cents
}

// Expense is a persisted expense record.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Title is a short description ("Groceries", "Taxi to airport").
	// Generated from the participants when left empty.
	Title string

	// Total is the full expense amount.
	Total money.Cents

	// Mode is the split mode used for Splits.
	Mode SplitMode

	// Participants in input order.
	Participants []Participant

	// Splits holds the per-participant percentages or amounts.
	// Empty for equal mode.
	Splits []SplitEntry

	// Contributions records who paid.
	Contributions []Contribution

	// Shares are the computed shares at save time.
	Shares []Share

	// CreatedBy is the user ID of whoever recorded the expense.
	CreatedBy string

	CreatedAt int64
	UpdatedAt int64
}
