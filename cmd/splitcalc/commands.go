package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/draft"
	"github.com/mmynk/fairshare/internal/expense"
	"github.com/mmynk/fairshare/internal/models"
)

var errNotReconciled = errors.New("expense does not reconcile")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "splitcalc",
		Short:         "Penny-accurate expense splitting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSharesCmd(), newValidateCmd())
	return root
}

func newSharesCmd() *cobra.Command {
	var total, mode string

	cmd := &cobra.Command{
		Use:   "shares --total AMOUNT PARTICIPANT...",
		Short: "Print each participant's share of a total",
		Long: `Splits a total between participants and prints the shares.

In equal mode participants are plain names. Percentage and custom modes take
name=value pairs:

  splitcalc shares --total 10.00 alice bob carol
  splitcalc shares --total 60 --mode percentage alice=25 bob=75
  splitcalc shares --total 12.50 --mode custom alice=2.50 bob=10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			splitMode, err := models.ParseSplitMode(mode)
			if err != nil {
				return err
			}
			raw, err := parseParticipants(splitMode, args)
			if err != nil {
				return err
			}
			raw.Total = total
			raw.Mode = string(splitMode)

			in, err := expense.Decode(raw)
			if err != nil {
				return err
			}
			shares, err := in.Shares()
			if err != nil {
				return err
			}
			return printShares(cmd.OutOrStdout(), shares)
		},
	}
	cmd.Flags().StringVar(&total, "total", "", "expense total, e.g. 10.00")
	cmd.Flags().StringVar(&mode, "mode", "equal", "split mode: equal, percentage or custom")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that an expense draft reconciles",
		Long: `Loads a YAML expense draft, runs every reconciliation rule and prints the
errors and warnings. Exits non-zero when the draft has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := draft.Load(args[0])
			if err != nil {
				return err
			}
			e, err := d.Expense()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := e.Validate()
			if result.OK {
				shares, err := e.Shares()
				if err != nil {
					return err
				}
				if err := printShares(out, shares); err != nil {
					return err
				}
			}
			for _, msg := range result.Errors {
				fmt.Fprintln(out, "error:", msg)
			}
			for _, msg := range result.Warnings {
				fmt.Fprintln(out, "warning:", msg)
			}
			if !result.OK {
				return errNotReconciled
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

// parseParticipants reads plain names for equal mode and name=value pairs
// otherwise.
func parseParticipants(mode models.SplitMode, args []string) (expense.Raw, error) {
	var raw expense.Raw
	if mode == models.SplitEqual {
		for _, name := range args {
			raw.Participants = append(raw.Participants, models.Participant{ID: name, Name: name})
		}
		return raw, nil
	}

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" || value == "" {
			return expense.Raw{}, fmt.Errorf("%s mode needs name=value, got %q", mode, arg)
		}
		entry := expense.Entry{Participant: models.Participant{ID: name, Name: name}}
		if mode == models.SplitPercentage {
			entry.Percentage = value
		} else {
			entry.Amount = value
		}
		raw.Splits = append(raw.Splits, entry)
	}
	return raw, nil
}

func printShares(w io.Writer, shares []models.Share) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range shares {
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Participant.Name, s.Amount)
	}
	total, err := calculator.SumShares(shares)
	if err != nil {
		return err
	}
	fmt.Fprintf(tw, "total\t%s\t\n", total)
	return tw.Flush()
}
