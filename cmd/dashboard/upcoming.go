package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
)

func upcomingCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "List unpaid expenses due from today on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpcoming(cmd, sess)
		},
	}
}

func runUpcoming(cmd *cobra.Command, sess *session) error {
	upcoming, err := sess.dashboard.GetUpcomingExpenses(sess.now)
	if err != nil {
		return fmt.Errorf("failed to list upcoming expenses: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(upcoming) == 0 {
		fmt.Fprintln(out, "Nothing due.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			logger.Get().Errorw("failed to flush output", "error", err)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("DUE"),
		headerStyle.Render("DESCRIPTION"),
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("INSTALLMENT"),
		headerStyle.Render("AMOUNT"),
	)
	for _, t := range upcoming {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			export.Date(t.Date),
			t.Description,
			t.Category,
			export.Installments(t),
			sess.formatter.Currency(t.Amount),
		)
	}
	return nil
}
