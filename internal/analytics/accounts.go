package analytics

import (
	"sort"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"github.com/shopspring/decimal"
)

// SourceKind tells which collection a transaction's account id resolved to
type SourceKind string

const (
	SourceBankAccount SourceKind = "bank_account"
	SourceCreditCard  SourceKind = "credit_card"
)

// PaymentSource is the resolved target of a transaction's account id.
// Exactly one of BankAccount and CreditCard is set, matching Kind.
type PaymentSource struct {
	Kind        SourceKind          `json:"kind"`
	BankAccount *models.BankAccount `json:"bank_account,omitempty"`
	CreditCard  *models.CreditCard  `json:"credit_card,omitempty"`
}

// Name returns the display name of the resolved account or card
func (p PaymentSource) Name() string {
	switch p.Kind {
	case SourceBankAccount:
		return p.BankAccount.Name
	case SourceCreditCard:
		return p.CreditCard.Name
	}
	return ""
}

// ResolveAccount looks id up among bank accounts, then credit cards. The
// boolean is false when id matches neither, which is a normal outcome for
// transactions whose account was deleted.
func ResolveAccount(id string, accounts []models.BankAccount, cards []models.CreditCard) (PaymentSource, bool) {
	for i := range accounts {
		if accounts[i].ID == id {
			a := accounts[i]
			return PaymentSource{Kind: SourceBankAccount, BankAccount: &a}, true
		}
	}
	for i := range cards {
		if cards[i].ID == id {
			c := cards[i]
			return PaymentSource{Kind: SourceCreditCard, CreditCard: &c}, true
		}
	}
	return PaymentSource{}, false
}

// FindMember returns the member with the given id, if any
func FindMember(id *string, members []models.FamilyMember) (models.FamilyMember, bool) {
	if id == nil {
		return models.FamilyMember{}, false
	}
	for _, m := range members {
		if m.ID == *id {
			return m, true
		}
	}
	return models.FamilyMember{}, false
}

// SortCardsByBill returns a copy of cards ordered by current bill, highest first
func SortCardsByBill(cards []models.CreditCard) []models.CreditCard {
	out := make([]models.CreditCard, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentBill.GreaterThan(out[j].CurrentBill)
	})
	return out
}

// CardUsage is the share of the limit already spent, in percent
func CardUsage(card models.CreditCard) float64 {
	return percentOf(card.CurrentBill, card.Limit)
}

// CardAvailable is the remaining credit. Negative when over the limit.
func CardAvailable(card models.CreditCard) decimal.Decimal {
	return card.Limit.Sub(card.CurrentBill)
}

// GoalProgress is the saved share of the goal's target, in percent
func GoalProgress(goal models.Goal) float64 {
	return percentOf(goal.CurrentAmount, goal.TargetAmount)
}
