package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
)

func summaryCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show balance, income, expenses and savings rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, sess)
		},
	}
}

func runSummary(cmd *cobra.Command, sess *session) error {
	summary, err := sess.dashboard.GetSummary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}

	f := sess.formatter
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			logger.Get().Errorw("failed to flush output", "error", err)
		}
	}()

	fmt.Fprintln(w, headerStyle.Render("Summary"))
	fmt.Fprintf(w, "Total balance\t%s\n", f.Currency(summary.TotalBalance))
	fmt.Fprintf(w, "Income\t%s\n", f.Currency(summary.Income))
	fmt.Fprintf(w, "Expenses\t%s\n", f.Currency(summary.Expenses))
	fmt.Fprintf(w, "Savings rate\t%s\n", f.Percent(summary.SavingsRate))
	fmt.Fprintf(w, "Transactions\t%d\n", summary.TransactionCount)

	if len(summary.Categories) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("SPENT"),
		headerStyle.Render("OF INCOME"),
	)
	for _, c := range summary.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, f.Currency(c.Amount), f.Percent(c.Percentage))
	}
	return nil
}
