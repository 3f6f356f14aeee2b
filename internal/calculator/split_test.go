package calculator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

func people(names ...string) []models.Participant {
	ps := make([]models.Participant, len(names))
	for i, n := range names {
		ps[i] = models.Participant{ID: n, Name: n}
	}
	return ps
}

func sumOf(t *testing.T, shares []models.Share) money.Cents {
	t.Helper()
	total, err := SumShares(shares)
	require.NoError(t, err)
	return total
}

func amounts(shares []models.Share) []string {
	out := make([]string, len(shares))
	for i, s := range shares {
		out[i] = s.Amount.String()
	}
	return out
}

func TestComputeEqualShares(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Cents
		participants []models.Participant
		want         []string
	}{
		{
			name:         "ten dollars over three people",
			total:        1000,
			participants: people("Alice", "Bob", "Charlie"),
			want:         []string{"3.34", "3.33", "3.33"},
		},
		{
			name:         "zero total",
			total:        0,
			participants: people("Alice", "Bob", "Charlie"),
			want:         []string{"0.00", "0.00", "0.00"},
		},
		{
			name:         "single participant takes everything",
			total:        100,
			participants: people("Alice"),
			want:         []string{"1.00"},
		},
		{
			name:         "remainder goes to the first participants",
			total:        1002,
			participants: people("Alice", "Bob", "Charlie", "Diana"),
			want:         []string{"2.51", "2.51", "2.50", "2.50"},
		},
		{
			name:         "fewer cents than participants",
			total:        2,
			participants: people("Alice", "Bob", "Charlie"),
			want:         []string{"0.01", "0.01", "0.00"},
		},
		{
			name:         "no participants",
			total:        1000,
			participants: nil,
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := ComputeEqualShares(tt.total, tt.participants)
			if diff := cmp.Diff(tt.want, amounts(shares)); diff != "" {
				t.Errorf("ComputeEqualShares() mismatch (-want +got):\n%s", diff)
			}
			if len(tt.participants) > 0 {
				assert.Equal(t, tt.total, sumOf(t, shares))
			}
			for i, s := range shares {
				assert.Equal(t, tt.participants[i], s.Participant, "order must follow input")
			}
		})
	}
}

func TestComputeEqualShares_SumsExactly(t *testing.T) {
	for total := money.Cents(0); total <= 2000; total += 7 {
		for n := 1; n <= 12; n++ {
			ps := make([]models.Participant, n)
			for i := range ps {
				ps[i] = models.Participant{ID: string(rune('a' + i))}
			}
			shares := ComputeEqualShares(total, ps)
			require.Equal(t, total, sumOf(t, shares), "total=%d n=%d", total, n)

			extra := 0
			base := total / money.Cents(n)
			for i, s := range shares {
				switch s.Amount {
				case base + 1:
					extra++
					require.Less(t, i, int(total%money.Cents(n)), "extra cent out of order")
				case base:
				default:
					t.Fatalf("share %d = %d, want %d or %d", i, s.Amount, base, base+1)
				}
			}
			require.Equal(t, int(total%money.Cents(n)), extra)
		}
	}
}

func TestSumShares_Overflow(t *testing.T) {
	_, err := SumShares([]models.Share{{Amount: math.MaxInt64}, {Amount: 1}})
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestComputeShares(t *testing.T) {
	pct := func(p string) decimal.Decimal { return decimal.RequireFromString(p) }

	tests := []struct {
		name         string
		total        money.Cents
		mode         models.SplitMode
		participants []models.Participant
		entries      []models.SplitEntry
		want         []string
		wantErr      error
	}{
		{
			name:         "equal",
			total:        1000,
			mode:         models.SplitEqual,
			participants: people("Alice", "Bob", "Charlie"),
			want:         []string{"3.34", "3.33", "3.33"},
		},
		{
			name:    "equal without participants",
			total:   1000,
			mode:    models.SplitEqual,
			wantErr: ErrNoParticipants,
		},
		{
			name:  "custom passes amounts through",
			total: 5000,
			mode:  models.SplitCustom,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Amount: 2001},
				{Participant: people("Bob")[0], Amount: 2999},
			},
			want: []string{"20.01", "29.99"},
		},
		{
			name:  "custom mismatch",
			total: 5000,
			mode:  models.SplitCustom,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Amount: 2000},
				{Participant: people("Bob")[0], Amount: 2999},
			},
			wantErr: ErrCustomTotal,
		},
		{
			name:  "percentage with leftover cent",
			total: 1000,
			mode:  models.SplitPercentage,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Percentage: pct("33.34")},
				{Participant: people("Bob")[0], Percentage: pct("33.33")},
				{Participant: people("Charlie")[0], Percentage: pct("33.33")},
			},
			want: []string{"3.34", "3.33", "3.33"},
		},
		{
			name:  "percentage split of odd total",
			total: 999,
			mode:  models.SplitPercentage,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Percentage: pct("50")},
				{Participant: people("Bob")[0], Percentage: pct("50")},
			},
			want: []string{"5.00", "4.99"},
		},
		{
			name:  "percentage not summing to 100",
			total: 10000,
			mode:  models.SplitPercentage,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Percentage: pct("60")},
				{Participant: people("Bob")[0], Percentage: pct("30")},
			},
			wantErr: ErrPercentageTotal,
		},
		{
			name:  "percentage out of range",
			total: 10000,
			mode:  models.SplitPercentage,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Percentage: pct("120")},
				{Participant: people("Bob")[0], Percentage: pct("-20")},
			},
			wantErr: ErrPercentageRange,
		},
		{
			name:         "total over the maximum",
			total:        money.MaxAmount + 1,
			mode:         models.SplitEqual,
			participants: people("Alice"),
			wantErr:      ErrAmountRange,
		},
		{
			name:  "custom entry over the maximum",
			total: 1,
			mode:  models.SplitCustom,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Amount: math.MaxInt64},
				{Participant: people("Bob")[0], Amount: math.MaxInt64},
				{Participant: people("Charlie")[0], Amount: 3},
			},
			wantErr: ErrAmountRange,
		},
		{
			name:  "custom sum far above the total",
			total: 1,
			mode:  models.SplitCustom,
			entries: []models.SplitEntry{
				{Participant: people("Alice")[0], Amount: money.MaxAmount},
				{Participant: people("Bob")[0], Amount: money.MaxAmount},
			},
			wantErr: ErrCustomTotal,
		},
		{
			name:         "negative total",
			total:        -1,
			mode:         models.SplitEqual,
			participants: people("Alice"),
			wantErr:      ErrNegativeAmount,
		},
		{
			name:         "unknown mode",
			total:        100,
			mode:         "shares",
			participants: people("Alice"),
			wantErr:      ErrUnknownSplitMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(tt.total, tt.mode, tt.participants, tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, amounts(shares)); diff != "" {
				t.Errorf("ComputeShares() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.total, sumOf(t, shares))
		})
	}
}
