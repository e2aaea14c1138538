package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

func transactionsCmd(sess *session) *cobra.Command {
	var limit int
	var sort, direction string

	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List the filtered transactions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransactions(cmd, sess, limit, sort, direction)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of transactions to show (0 for all)")
	cmd.Flags().StringVar(&sort, "sort", string(analytics.SortByDate), "sort by date, amount, description or category")
	cmd.Flags().StringVar(&direction, "direction", string(analytics.SortDesc), "asc or desc")
	return cmd
}

func runTransactions(cmd *cobra.Command, sess *session, limit int, sort, direction string) error {
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	listing := services.TransactionListing{
		Sort:      analytics.SortField(strings.ToLower(sort)),
		Direction: analytics.SortDirection(strings.ToLower(direction)),
	}
	if !listing.Sort.Valid() {
		return fmt.Errorf("invalid --sort %q", sort)
	}
	if !listing.Direction.Valid() {
		return fmt.Errorf("invalid --direction %q", direction)
	}

	data, err := sess.transactions.ExportTransactions(listing)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(data.Transactions) == 0 {
		fmt.Fprintln(out, "No transactions match the current filters.")
		return nil
	}

	txs := data.Transactions
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			logger.Get().Errorw("failed to flush output", "error", err)
		}
	}()

	header := make([]string, len(export.Header))
	for i, h := range export.Header {
		header[i] = headerStyle.Render(strings.ToUpper(h))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, t := range txs {
		fmt.Fprintln(w, strings.Join(export.Row(t, data.Snapshot, sess.formatter), "\t"))
	}
	if len(txs) < len(data.Transactions) {
		fmt.Fprintf(w, "\n%d of %d transactions shown\n", len(txs), len(data.Transactions))
	}
	return nil
}
