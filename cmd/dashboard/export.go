package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

func exportCmd(sess *session) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered transactions as CSV",
		Long: `export writes the filtered transactions, newest first, as a UTF-8 CSV
file with a byte order mark. Without --out the file is named after today's
date. Use --out - to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, sess, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout")
	return cmd
}

func runExport(cmd *cobra.Command, sess *session, out string) error {
	data, err := sess.transactions.ExportTransactions(services.TransactionListing{})
	if err != nil {
		return fmt.Errorf("failed to export transactions: %w", err)
	}

	if out == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), data.Transactions, data.Snapshot, sess.formatter)
	}
	if out == "" {
		out = export.Filename(sess.now)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := writeAndClose(file, data, sess); err != nil {
		return err
	}

	logger.Get().Infow("exported transactions", "file", out, "count", len(data.Transactions))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(data.Transactions), out)
	return nil
}

func writeAndClose(w io.WriteCloser, data *services.ExportData, sess *session) error {
	if err := export.WriteCSV(w, data.Transactions, data.Snapshot, sess.formatter); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return w.Close()
}
