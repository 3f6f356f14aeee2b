package draft

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

const percentageDraft = `
title: Dinner
total: "60.00"
mode: percentage
splits:
  - {id: alice, name: Alice, percentage: "33.5"}
  - {id: bob, percentage: "66.5"}
contributions:
  - {id: alice, name: Alice, amount: "60"}
`

func TestParse_Percentage(t *testing.T) {
	d, err := Parse(strings.NewReader(percentageDraft))
	require.NoError(t, err)

	e, err := d.Expense()
	require.NoError(t, err)

	alice := models.Participant{ID: "alice", Name: "Alice"}
	bob := models.Participant{ID: "bob"}

	assert.Equal(t, "Dinner", e.Title)
	assert.Equal(t, money.Cents(6000), e.Total)
	assert.Equal(t, models.SplitPercentage, e.Mode)
	assert.Equal(t, []models.Participant{alice, bob}, e.Participants)
	require.Len(t, e.Splits, 2)
	assert.True(t, decimal.RequireFromString("33.5").Equal(e.Splits[0].Percentage))
	assert.Equal(t, []models.Contribution{{Participant: alice, Amount: 6000}}, e.Contributions)
}

func TestParse_UnquotedNumbers(t *testing.T) {
	d, err := Parse(strings.NewReader("total: 12.5\nparticipants:\n  - id: a\ncontributions:\n  - {id: a, amount: 12.5}\n"))
	require.NoError(t, err)

	e, err := d.Expense()
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1250), e.Total)
	assert.Equal(t, models.SplitEqual, e.Mode)
	assert.Equal(t, money.Cents(1250), e.Contributions[0].Amount)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"unknown key": "total: '1'\npayer: alice\n",
		"not yaml":    "total: [unclosed",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestExpense_Errors(t *testing.T) {
	tests := map[string]*Draft{
		"bad total":        {Total: "lots"},
		"bad percentage":   {Total: "1", Splits: []Entry{{ID: "a", Percentage: "half"}}},
		"bad split amount": {Total: "1", Splits: []Entry{{ID: "a", Amount: "1,5"}}},
		"bad contribution": {Total: "1", Contributions: []Entry{{ID: "a"}}},
		"total over limit": {Total: "184467440737095516.17"},
	}
	for name, d := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := d.Expense()
			assert.ErrorIs(t, err, money.ErrInvalidAmount)
		})
	}
}

func TestExpense_UnknownModeKept(t *testing.T) {
	e, err := (&Draft{Total: "1", Mode: "shares"}).Expense()
	require.NoError(t, err)
	assert.Equal(t, models.SplitMode("shares"), e.Mode)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(percentageDraft), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", d.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
