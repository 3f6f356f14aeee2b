package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID   string
	NetBalance money.Cents // Positive = owed money, Negative = owes money
	TotalPaid  money.Cents // Contributions plus settlements paid out
	TotalOwed  money.Cents // Shares plus settlements received
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount money.Cents
}

// CalculateGroupBalances computes balances across expenses and settlements.
//
// Algorithm:
//   - For each expense: every contributor is credited what they paid, every
//     participant is debited their share (from ComputeShares)
//   - For each settlement: the payer is credited, the receiver debited
//   - net_balance = total_paid - total_owed, which sums to zero over the group
//   - Debts: greedy matching of the largest debtor against the largest creditor
//
// Results are sorted by member ID so repeated calls give identical output.
func CalculateGroupBalances(expenses []*models.Expense, settlements []*models.Settlement) ([]MemberBalance, []DebtEdge, error) {
	balances := make(map[string]*MemberBalance)
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{MemberID: id}
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		shares, err := ComputeShares(e.Total, e.Mode, e.Participants, e.Splits)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to calculate shares for expense %s: %w", e.ID, err)
		}
		for _, c := range e.Contributions {
			if err := add(&get(c.Participant.ID).TotalPaid, c.Amount); err != nil {
				return nil, nil, fmt.Errorf("expense %s: %w", e.ID, err)
			}
		}
		for _, s := range shares {
			if err := add(&get(s.Participant.ID).TotalOwed, s.Amount); err != nil {
				return nil, nil, fmt.Errorf("expense %s: %w", e.ID, err)
			}
		}
	}

	for _, s := range settlements {
		if err := add(&get(s.FromID).TotalPaid, s.Amount); err != nil {
			return nil, nil, fmt.Errorf("settlement %s: %w", s.ID, err)
		}
		if err := add(&get(s.ToID).TotalOwed, s.Amount); err != nil {
			return nil, nil, fmt.Errorf("settlement %s: %w", s.ID, err)
		}
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		var err error
		if b.NetBalance, err = b.TotalPaid.Add(-b.TotalOwed); err != nil {
			return nil, nil, fmt.Errorf("balance of %s: %w", b.MemberID, err)
		}
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].MemberID < memberBalances[j].MemberID
	})

	return memberBalances, SimplifyDebts(memberBalances), nil
}

func add(sum *money.Cents, amount money.Cents) error {
	v, err := sum.Add(amount)
	if err != nil {
		return err
	}
	*sum = v
	return nil
}

// SimplifyDebts turns net balances into a short list of payments that
// settles everyone. Larger balances are matched first; ties break by ID.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	type entry struct {
		id     string
		amount money.Cents
	}
	var creditors, debtors []entry
	for _, b := range balances {
		switch {
		case b.NetBalance > 0:
			creditors = append(creditors, entry{b.MemberID, b.NetBalance})
		case b.NetBalance < 0:
			debtors = append(debtors, entry{b.MemberID, -b.NetBalance})
		}
	}
	byAmount := func(es []entry) func(i, j int) bool {
		return func(i, j int) bool {
			if es[i].amount != es[j].amount {
				return es[i].amount > es[j].amount
			}
			return es[i].id < es[j].id
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		if amount > 0 {
			edges = append(edges, DebtEdge{From: debtors[i].id, To: creditors[j].id, Amount: amount})
		}
		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return edges
}
