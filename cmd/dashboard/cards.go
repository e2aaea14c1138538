package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
)

func cardsCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "Show credit card bills and limit usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCards(cmd, sess)
		},
	}
}

func runCards(cmd *cobra.Command, sess *session) error {
	cards, err := sess.dashboard.GetCardsOverview()
	if err != nil {
		return fmt.Errorf("failed to load cards: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(cards) == 0 {
		fmt.Fprintln(out, "No credit cards.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			logger.Get().Errorw("failed to flush output", "error", err)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("CARD"),
		headerStyle.Render("BILL"),
		headerStyle.Render("LIMIT"),
		headerStyle.Render("AVAILABLE"),
		headerStyle.Render("USAGE"),
		headerStyle.Render("DUE DAY"),
	)
	f := sess.formatter
	for _, c := range cards {
		name := c.Name
		if c.LastDigits != nil {
			name += " •••• " + *c.LastDigits
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			name,
			f.Currency(c.CurrentBill),
			f.Currency(c.Limit),
			f.Currency(c.Available),
			f.Percent(c.Usage),
			c.DueDay,
		)
	}
	return nil
}
