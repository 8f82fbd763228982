package balances

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/accounts"
)

// Balance is the closing balance of an account, descendants included.
// BalanceInAccountCurrency is only populated for accounts kept in a
// currency other than the company currency.
type Balance struct {
	Account                  string          `json:"account"`
	AccountCurrency          string          `json:"account_currency"`
	CompanyCurrency          string          `json:"company_currency"`
	Balance                  decimal.Decimal `json:"balance"`
	BalanceInAccountCurrency decimal.Decimal `json:"balance_in_account_currency"`
}

// AnnotateInput carries the tree nodes that were just rendered.
type AnnotateInput struct {
	Company   string          `json:"company"`
	Nodes     []accounts.Node `json:"nodes"`
	Deep      bool            `json:"deep"`
	CanReadGL bool            `json:"-"`
}

// Annotation is the balance label shown next to a tree node.
type Annotation struct {
	Node    string          `json:"node"`
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
	DrCr    string          `json:"dr_cr"`
}
