package calculator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

func TestCalculateGroupBalances(t *testing.T) {
	expenses := []*models.Expense{
		{
			ID:            "dinner",
			Total:         1000,
			Mode:          models.SplitEqual,
			Participants:  []models.Participant{alice, bob, carol},
			Contributions: []models.Contribution{paid(alice, 1000)},
		},
		{
			ID:            "taxi",
			Total:         3000,
			Mode:          models.SplitCustom,
			Splits:        []models.SplitEntry{amountEntry(bob, 2000), amountEntry(carol, 1000)},
			Contributions: []models.Contribution{paid(bob, 3000)},
		},
	}

	balances, debts, err := CalculateGroupBalances(expenses, nil)
	require.NoError(t, err)

	// Alice: paid 10.00, owes 3.34  -> +6.66
	// Bob:   paid 30.00, owes 23.33 -> +6.67
	// Carol: paid 0,     owes 13.33 -> -13.33
	want := []MemberBalance{
		{MemberID: "u-alice", TotalPaid: 1000, TotalOwed: 334, NetBalance: 666},
		{MemberID: "u-bob", TotalPaid: 3000, TotalOwed: 2333, NetBalance: 667},
		{MemberID: "u-carol", TotalPaid: 0, TotalOwed: 1333, NetBalance: -1333},
	}
	if diff := cmp.Diff(want, balances); diff != "" {
		t.Errorf("balances mismatch (-want +got):\n%s", diff)
	}

	var net money.Cents
	for _, b := range balances {
		net += b.NetBalance
	}
	assert.Zero(t, net, "net balances must cancel out")

	wantDebts := []DebtEdge{
		{From: "u-carol", To: "u-bob", Amount: 667},
		{From: "u-carol", To: "u-alice", Amount: 666},
	}
	if diff := cmp.Diff(wantDebts, debts); diff != "" {
		t.Errorf("debts mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateGroupBalances_Settlements(t *testing.T) {
	expenses := []*models.Expense{
		{
			ID:            "rent",
			Total:         200000,
			Mode:          models.SplitEqual,
			Participants:  []models.Participant{alice, bob},
			Contributions: []models.Contribution{paid(alice, 200000)},
		},
	}
	settlements := []*models.Settlement{
		{FromID: "u-bob", ToID: "u-alice", Amount: 60000},
	}

	balances, debts, err := CalculateGroupBalances(expenses, settlements)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, money.Cents(40000), balances[0].NetBalance)
	assert.Equal(t, money.Cents(-40000), balances[1].NetBalance)
	assert.Equal(t, []DebtEdge{{From: "u-bob", To: "u-alice", Amount: 40000}}, debts)

	settlements = append(settlements, &models.Settlement{FromID: "u-bob", ToID: "u-alice", Amount: 40000})
	_, debts, err = CalculateGroupBalances(expenses, settlements)
	require.NoError(t, err)
	assert.Empty(t, debts)
}

func TestCalculateGroupBalances_InvalidExpense(t *testing.T) {
	expenses := []*models.Expense{
		{
			ID:     "broken",
			Total:  1000,
			Mode:   models.SplitCustom,
			Splits: []models.SplitEntry{amountEntry(alice, 999)},
		},
	}
	_, _, err := CalculateGroupBalances(expenses, nil)
	require.ErrorIs(t, err, ErrCustomTotal)
}

func TestCalculateGroupBalances_Overflow(t *testing.T) {
	settlements := []*models.Settlement{
		{ID: "s1", FromID: bob.ID, ToID: alice.ID, Amount: math.MaxInt64},
		{ID: "s2", FromID: bob.ID, ToID: alice.ID, Amount: 1},
	}
	_, _, err := CalculateGroupBalances(nil, settlements)
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestSimplifyDebts_Empty(t *testing.T) {
	assert.Empty(t, SimplifyDebts(nil))
	assert.Empty(t, SimplifyDebts([]MemberBalance{{MemberID: "a"}}))
}
