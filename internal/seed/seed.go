// Package seed generates a plausible household dataset so the dashboard has
// something to show on first start.
package seed

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/caioogatalabs/dashboard-workshop/internal/analytics"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"
	"github.com/caioogatalabs/dashboard-workshop/internal/uuid"

	"github.com/shopspring/decimal"
)

// Options controls the generated dataset
type Options struct {
	// Seed makes the output reproducible. Zero picks a time-based seed.
	Seed         uint64
	Now          time.Time
	IncomeCount  int
	ExpenseCount int
}

// DefaultOptions mirrors the volumes the dashboard was designed around
func DefaultOptions() Options {
	return Options{Now: time.Now(), IncomeCount: 8, ExpenseCount: 22}
}

// spanDays is how far back generated transactions go
const spanDays = 90

type generator struct {
	rng *rand.Rand
	ids *rand.ChaCha8
	now time.Time
}

// Generate builds members, accounts, cards, goals and transactions whose
// references all resolve within the returned snapshot.
func Generate(opts Options) analytics.Snapshot {
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], opts.Seed)
	src := rand.NewChaCha8(key)
	g := &generator{rng: rand.New(src), ids: src, now: opts.Now}

	members := g.members()
	accounts := g.bankAccounts(members)
	cards := g.creditCards(members)

	txs := make([]models.Transaction, 0, opts.IncomeCount+opts.ExpenseCount)
	earners := members[:2]
	for i := 0; i < opts.IncomeCount; i++ {
		txs = append(txs, g.income(earners, accounts))
	}
	for i := 0; i < opts.ExpenseCount; i++ {
		txs = append(txs, g.expense(members, accounts, cards))
	}

	return analytics.Snapshot{
		Transactions: txs,
		Goals:        g.goals(members),
		CreditCards:  cards,
		BankAccounts: accounts,
		Members:      members,
	}
}

func (g *generator) base() models.Base {
	return models.Base{ID: uuid.NewFromReader(g.ids), CreatedAt: g.now, UpdatedAt: g.now}
}

func (g *generator) members() []models.FamilyMember {
	email := func(s string) *string { return &s }
	return []models.FamilyMember{
		{Base: g.base(), Name: "Helena Duarte", Role: "Mother", AvatarURL: "https://i.pravatar.cc/150?u=helena",
			Email: email("helena@duarte.family"), MonthlyIncome: decimal.NewNullDecimal(decimal.NewFromInt(8500))},
		{Base: g.base(), Name: "Marcos Duarte", Role: "Father", AvatarURL: "https://i.pravatar.cc/150?u=marcos",
			Email: email("marcos@duarte.family"), MonthlyIncome: decimal.NewNullDecimal(decimal.NewFromInt(7200))},
		{Base: g.base(), Name: "Lia Duarte", Role: "Daughter", AvatarURL: "https://i.pravatar.cc/150?u=lia"},
	}
}

func (g *generator) bankAccounts(members []models.FamilyMember) []models.BankAccount {
	checking := models.BankAccountTypeChecking
	savings := models.BankAccountTypeSavings
	bank := "Banco Horizonte"
	return []models.BankAccount{
		{Base: g.base(), Name: "Joint Checking", HolderID: members[0].ID, Balance: decimal.RequireFromString("12450.75"),
			BankName: &bank, AccountType: &checking},
		{Base: g.base(), Name: "Family Savings", HolderID: members[1].ID, Balance: decimal.RequireFromString("28300.00"),
			BankName: &bank, AccountType: &savings},
	}
}

func (g *generator) creditCards(members []models.FamilyMember) []models.CreditCard {
	digits := func(s string) *string { return &s }
	return []models.CreditCard{
		{Base: g.base(), Name: "Everyday Card", HolderID: members[0].ID, Limit: decimal.NewFromInt(10000),
			CurrentBill: decimal.RequireFromString("2340.50"), ClosingDay: 5, DueDay: 12, Theme: models.CardThemeLime,
			LastDigits: digits("4821")},
		{Base: g.base(), Name: "Platinum Card", HolderID: members[1].ID, Limit: decimal.NewFromInt(15000),
			CurrentBill: decimal.RequireFromString("4120.00"), ClosingDay: 20, DueDay: 28, Theme: models.CardThemeBlack,
			LastDigits: digits("1097")},
		{Base: g.base(), Name: "Online Shopping Card", HolderID: members[0].ID, Limit: decimal.NewFromInt(3000),
			CurrentBill: decimal.RequireFromString("615.90"), ClosingDay: 10, DueDay: 17, Theme: models.CardThemeWhite,
			LastDigits: digits("7735")},
	}
}

func (g *generator) goals(members []models.FamilyMember) []models.Goal {
	goal := func(title, category string, target, current int64, months int, member *string, status models.GoalStatus) models.Goal {
		return models.Goal{
			Base:          g.base(),
			Title:         title,
			TargetAmount:  decimal.NewFromInt(target),
			CurrentAmount: decimal.NewFromInt(current),
			Deadline:      g.now.AddDate(0, months, 0),
			Category:      category,
			MemberID:      member,
			Status:        status,
		}
	}
	lia := members[2].ID
	return []models.Goal{
		goal("Emergency fund", "Savings", 30000, 18500, 10, nil, models.GoalStatusActive),
		goal("Beach holiday", "Leisure", 12000, 4300, 7, nil, models.GoalStatusActive),
		goal("New laptop", "Education", 6500, 6500, -1, &lia, models.GoalStatusCompleted),
		goal("Car upgrade", "Transport", 45000, 9000, 24, nil, models.GoalStatusPaused),
	}
}

var (
	incomeDescriptions = map[string][]string{
		"Salary":      {"Monthly salary", "Salary deposit"},
		"Freelance":   {"Design project", "Consulting invoice"},
		"Investments": {"Dividends", "Fund yield"},
		"Rent":        {"Apartment rent received"},
		"Other":       {"Tax refund"},
	}
	expenseDescriptions = map[string][]string{
		"Food":      {"Supermarket", "Bakery", "Restaurant dinner", "Farmers market"},
		"Transport": {"Fuel", "Ride share", "Metro card"},
		"Housing":   {"Condo fee", "Plumber"},
		"Health":    {"Pharmacy", "Dentist", "Gym membership"},
		"Education": {"School supplies", "Online course", "English lessons"},
		"Leisure":   {"Cinema", "Concert tickets", "Streaming"},
		"Shopping":  {"Clothes", "Electronics store", "Home decor"},
		"Bills":     {"Electricity", "Internet", "Water", "Phone plan"},
		"Other":     {"Gift", "Donation"},
	}
)

func (g *generator) income(earners []models.FamilyMember, accounts []models.BankAccount) models.Transaction {
	category := pick(g.rng, analytics.DefaultIncomeCategories)
	member := pick(g.rng, earners).ID
	t := models.Transaction{
		Base:               g.base(),
		Type:               models.TransactionTypeIncome,
		Amount:             decimal.NewFromInt(int64(2000 + g.rng.IntN(5000))),
		Description:        pick(g.rng, incomeDescriptions[category]),
		Category:           category,
		Date:               g.pastDate(),
		AccountID:          pick(g.rng, accounts).ID,
		MemberID:           &member,
		Installments:       1,
		CurrentInstallment: 1,
		Status:             models.TransactionStatusCompleted,
		IsPaid:             true,
	}
	if g.chance(0.5) {
		monthly := models.RecurringPeriodMonthly
		t.IsRecurring = true
		t.RecurringPeriod = &monthly
	}
	return t
}

func (g *generator) expense(members []models.FamilyMember, accounts []models.BankAccount, cards []models.CreditCard) models.Transaction {
	category := pick(g.rng, analytics.DefaultExpenseCategories)
	member := pick(g.rng, members).ID
	cents := int64(50*100 + g.rng.IntN(800*100))
	t := models.Transaction{
		Base:               g.base(),
		Type:               models.TransactionTypeExpense,
		Amount:             decimal.New(cents, -2),
		Description:        pick(g.rng, expenseDescriptions[category]),
		Category:           category,
		Date:               g.pastDate(),
		MemberID:           &member,
		Installments:       1,
		CurrentInstallment: 1,
		Status:             models.TransactionStatusCompleted,
		IsPaid:             g.chance(0.7),
	}

	if g.chance(0.6) {
		t.AccountID = pick(g.rng, cards).ID
		if g.chance(0.4) {
			t.Installments = 2 + g.rng.IntN(6)
			t.CurrentInstallment = 1 + g.rng.IntN(t.Installments)
		}
	} else {
		t.AccountID = pick(g.rng, accounts).ID
	}

	if !g.chance(0.8) {
		t.Status = models.TransactionStatusPending
	}
	if t.Installments == 1 && g.chance(0.3) {
		monthly := models.RecurringPeriodMonthly
		t.IsRecurring = true
		t.RecurringPeriod = &monthly
	}
	return t
}

// pastDate returns noon of a day within the last spanDays days
func (g *generator) pastDate() time.Time {
	y, m, d := g.now.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, g.now.Location())
	return noon.AddDate(0, 0, -g.rng.IntN(spanDays))
}

func (g *generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
