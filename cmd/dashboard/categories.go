package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
)

func categoriesCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show completed spending per category, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCategories(cmd, sess)
		},
	}
}

func runCategories(cmd *cobra.Command, sess *session) error {
	categories, err := sess.dashboard.GetExpensesByCategory()
	if err != nil {
		return fmt.Errorf("failed to group expenses: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(categories) == 0 {
		fmt.Fprintln(out, "No completed expenses match the current filters.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			logger.Get().Errorw("failed to flush output", "error", err)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("SPENT"),
		headerStyle.Render("OF INCOME"),
	)
	for _, c := range categories {
		pct, err := sess.dashboard.GetCategoryPercentage(c.Category)
		if err != nil {
			return fmt.Errorf("failed to compute %s share: %w", c.Category, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, sess.formatter.Currency(c.Amount), sess.formatter.Percent(pct))
	}
	return nil
}
