// Command dashboard prints the family finance dashboard for a freshly seeded
// in-memory store.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/app"
	"github.com/caioogatalabs/dashboard-workshop/internal/config"
	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/services"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// options holds the persistent flags shared by every subcommand
type options struct {
	seed     uint64
	member   string
	from     string
	to       string
	txType   string
	search   string
	logLevel string
}

// session is the store and services opened for one command invocation
type session struct {
	app          *app.App
	dashboard    services.DashboardServicer
	transactions services.TransactionServicer
	formatter    *export.Formatter
	now          time.Time
}

func main() {
	if err := newRootCmd(time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(clock func() time.Time) *cobra.Command {
	opts := &options{}
	sess := &session{}

	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Family finance dashboard over generated mock data",
		Long: `dashboard seeds a volatile store with mock family finances and prints
the derived views: balances, income and expenses, the savings rate,
spending per category, upcoming payments and credit card usage.

The same seed always produces the same data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.open(opts, clock())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return sess.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Uint64Var(&opts.seed, "seed", 0, "mock data seed (0 uses SEED_VALUE)")
	flags.StringVar(&opts.member, "member", "", "only show one family member, by id or name")
	flags.StringVar(&opts.from, "from", "", "start date, YYYY-MM-DD or RFC3339")
	flags.StringVar(&opts.to, "to", "", "end date, YYYY-MM-DD or RFC3339")
	flags.StringVar(&opts.txType, "type", string(analytics.TypeAll), "transaction type: all, income or expense")
	flags.StringVar(&opts.search, "search", "", "match description or category")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(summaryCmd(sess))
	rootCmd.AddCommand(transactionsCmd(sess))
	rootCmd.AddCommand(categoriesCmd(sess))
	rootCmd.AddCommand(upcomingCmd(sess))
	rootCmd.AddCommand(cardsCmd(sess))
	rootCmd.AddCommand(exportCmd(sess))

	return rootCmd
}

func (s *session) open(opts *options, now time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Env, opts.logLevel)

	// Every invocation gets a private database.
	cfg.DBDSN = ":memory:"
	cfg.SeedEnabled = true
	if opts.seed != 0 {
		cfg.SeedValue = opts.seed
	}

	filters, err := buildFilters(opts)
	if err != nil {
		return err
	}

	formatter, err := export.NewFormatter(cfg.CurrencySymbol, cfg.Locale)
	if err != nil {
		return err
	}

	a, err := app.Open(cfg, now)
	if err != nil {
		return err
	}

	if opts.member != "" {
		snap, err := a.Store.Snapshot()
		if err != nil {
			_ = a.Close()
			return err
		}
		id, err := resolveMember(opts.member, snap.Members)
		if err != nil {
			_ = a.Close()
			return err
		}
		filters.SelectedMember = &id
	}

	s.app = a
	s.dashboard = services.NewDashboardService(a.Store)
	s.transactions = services.NewTransactionService(a.Store)
	s.formatter = formatter
	s.now = now
	s.dashboard.SetFilters(filters)
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

func buildFilters(opts *options) (analytics.Filters, error) {
	filters := analytics.DefaultFilters()

	txType := analytics.TypeFilter(strings.ToLower(opts.txType))
	if !txType.Valid() {
		return filters, fmt.Errorf("invalid --type %q: must be all, income or expense", opts.txType)
	}
	filters.TransactionType = txType
	filters.SearchText = opts.search

	if opts.from != "" {
		start, err := parseDate(opts.from)
		if err != nil {
			return filters, fmt.Errorf("invalid --from: %w", err)
		}
		filters.DateRange.Start = &start
	}
	if opts.to != "" {
		end, err := parseDate(opts.to)
		if err != nil {
			return filters, fmt.Errorf("invalid --to: %w", err)
		}
		if !strings.Contains(opts.to, "T") {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filters.DateRange.End = &end
	}
	return filters, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a date (YYYY-MM-DD or RFC3339)", value)
	}
	return t, nil
}

// resolveMember accepts an exact id or a case-insensitive name prefix that
// matches exactly one member.
func resolveMember(value string, members []models.FamilyMember) (string, error) {
	var matches []models.FamilyMember
	needle := strings.ToLower(value)
	for _, m := range members {
		if m.ID == value {
			return m.ID, nil
		}
		if strings.HasPrefix(strings.ToLower(m.Name), needle) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no family member matches %q", value)
	case 1:
		return matches[0].ID, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return "", fmt.Errorf("%q matches several members: %s", value, strings.Join(names, ", "))
	}
}
