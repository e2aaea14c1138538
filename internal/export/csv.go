package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

const bom = "\uFEFF"

// Header is the first CSV row
var Header = []string{
	"Date", "Type", "Description", "Category", "Account", "Member", "Installments", "Amount", "Status",
}

// Row renders one transaction. Account and member names are looked up in
// snap; dangling references render as "Unknown" and "-".
func Row(t models.Transaction, snap analytics.Snapshot, f *Formatter) []string {
	account := "Unknown"
	if src, ok := analytics.ResolveAccount(t.AccountID, snap.BankAccounts, snap.CreditCards); ok {
		account = src.Name()
	}
	member := "-"
	if m, ok := analytics.FindMember(t.MemberID, snap.Members); ok {
		member = m.Name
	}

	return []string{
		Date(t.Date),
		TypeLabel(t.Type),
		t.Description,
		t.Category,
		account,
		member,
		Installments(t),
		f.Currency(t.Amount),
		StatusLabel(t.Status),
	}
}

// WriteCSV writes a UTF-8 BOM, the header and one row per transaction in
// the given order.
func WriteCSV(w io.Writer, txs []models.Transaction, snap analytics.Snapshot, f *Formatter) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txs {
		if err := cw.Write(Row(t, snap, f)); err != nil {
			return fmt.Errorf("write transaction %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename is the suggested attachment name for an export made at now
func Filename(now time.Time) string {
	return "transactions-" + now.Format("2006-01-02") + ".csv"
}
