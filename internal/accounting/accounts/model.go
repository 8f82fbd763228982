package accounts

// Root types accepted for top-level group accounts.
const (
	RootTypeAsset     = "Asset"
	RootTypeLiability = "Liability"
	RootTypeEquity    = "Equity"
	RootTypeIncome    = "Income"
	RootTypeExpense   = "Expense"
)

// RootTypes lists the valid root types in display order.
var RootTypes = []string{RootTypeAsset, RootTypeLiability, RootTypeEquity, RootTypeIncome, RootTypeExpense}

// AccountTypeTax marks accounts that may carry a tax rate.
const AccountTypeTax = "Tax"

// AccountTypes lists the account type options offered by the creation dialog.
var AccountTypes = []string{
	"", "Accumulated Depreciation", "Asset Received But Not Billed", "Bank", "Cash", "Chargeable",
	"Capital Work in Progress", "Cost of Goods Sold", "Current Asset", "Current Liability", "Depreciation",
	"Direct Expense", "Direct Income", "Equity", "Expense Account", "Expenses Included In Asset Valuation",
	"Expenses Included In Valuation", "Fixed Asset", "Income Account", "Indirect Expense", "Indirect Income",
	"Liability", "Payable", "Receivable", "Round Off", "Service Received But Not Billed", "Stock",
	"Stock Adjustment", "Stock Received But Not Billed", AccountTypeTax, "Temporary",
}

// Account is a stored chart of accounts record. Name carries the company
// suffix, e.g. "1110 - Cash - AC".
type Account struct {
	Name            string   `json:"name"`
	AccountName     string   `json:"account_name"`
	AccountNumber   string   `json:"account_number,omitempty"`
	Company         string   `json:"company"`
	ParentAccount   string   `json:"parent_account,omitempty"`
	IsGroup         bool     `json:"is_group"`
	RootType        string   `json:"root_type,omitempty"`
	AccountType     string   `json:"account_type,omitempty"`
	AccountCurrency string   `json:"account_currency,omitempty"`
	TaxRate         *float64 `json:"tax_rate,omitempty"`
	Location        string   `json:"custom_location,omitempty"`
	CostCenter      string   `json:"custom_cost_center,omitempty"`
}

// LocationRef is a location referenced by accounts of a company.
type LocationRef struct {
	Name          string
	AccountNumber string
}

// Node is an entry of the chart of accounts tree. Value is the identifier
// sent back when the node is expanded; it is either a stored record name
// or a synthetic "number - name" base title.
type Node struct {
	Value           string   `json:"value"`
	Title           string   `json:"title,omitempty"`
	Expandable      bool     `json:"expandable"`
	IsLedger        bool     `json:"is_ledger"`
	HideAdd         bool     `json:"hide_add,omitempty"`
	IsRoot          bool     `json:"root,omitempty"`
	AccountCurrency string   `json:"account_currency,omitempty"`
	Parent          string   `json:"parent,omitempty"`
	Actions         []string `json:"actions,omitempty"`
	Children        []Node   `json:"children,omitempty"`
}

// ChildrenQuery selects the children of a tree node.
type ChildrenQuery struct {
	Company string
	Parent  string
}

// AddAccountInput is the payload of the "new account" dialog.
type AddAccountInput struct {
	Company         string   `json:"company" validate:"required"`
	Parent          string   `json:"parent_account"`
	AccountName     string   `json:"account_name" validate:"required"`
	AccountNumber   string   `json:"account_number"`
	IsGroup         bool     `json:"is_group"`
	RootType        string   `json:"root_type" validate:"omitempty,oneof=Asset Liability Equity Income Expense"`
	AccountType     string   `json:"account_type"`
	TaxRate         *float64 `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
	AccountCurrency string   `json:"account_currency" validate:"omitempty,len=3"`
	IsRoot          bool     `json:"is_root"`

	ActorID int64 `json:"-"`
}

// Route is a client navigation target.
type Route struct {
	Path    []string          `json:"path"`
	Options map[string]string `json:"route_options"`
	URL     string            `json:"url"`
}
