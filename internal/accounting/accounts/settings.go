package accounts

import (
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// Toolbar action identifiers.
const (
	ActionAddChild   = "add_child"
	ActionViewLedger = "view_ledger"
)

const basePath = "/accounting/tree/account"

// TreeSettings describes the chart of accounts tree view.
func TreeSettings(defaultCompany string) uischema.TreeSettings {
	return uischema.TreeSettings{
		Breadcrumb:   "Accounts",
		Title:        "Chart of Accounts",
		GetTreeRoot:  false,
		RootLabel:    "Accounts",
		GetTreeNodes: basePath + "/nodes",
		AddTreeNode:  basePath + "/nodes",
		OnGetNode:    basePath + "/balances",
		Filters: []uischema.Filter{
			{
				Fieldname: "company",
				Label:     "Company",
				Fieldtype: uischema.TypeSelect,
				Options:   "/masterdata/companies",
				Default:   defaultCompany,
				Reqd:      true,
			},
			{
				Fieldname: "root_company",
				Label:     "Root Company",
				Fieldtype: uischema.TypeData,
				Hidden:    true,
				DependsOn: []string{"company"},
			},
		},
		Fields: []uischema.Field{
			{Fieldname: "account_name", Label: "New Account Name", Fieldtype: uischema.TypeData, Reqd: true,
				Description: "Name of new Account. Note: Please don't create accounts for Customers and Suppliers"},
			{Fieldname: "account_number", Label: "Account Number", Fieldtype: uischema.TypeData,
				Description: "Number of new Account, it will be included in the account name as a prefix"},
			{Fieldname: "is_group", Label: "Is Group", Fieldtype: uischema.TypeCheck,
				Description: "Further accounts can be made under Groups, but entries can be made against non-Groups"},
			{Fieldname: "root_type", Label: "Root Type", Fieldtype: uischema.TypeSelect, Options: RootTypes,
				DependsOn: "eval:doc.is_group && !doc.parent_account"},
			{Fieldname: "account_type", Label: "Account Type", Fieldtype: uischema.TypeSelect, Options: AccountTypes,
				Description: "Optional. This setting will be used to filter in various transactions."},
			{Fieldname: "tax_rate", Label: "Tax Rate", Fieldtype: uischema.TypeFloat,
				DependsOn: "eval:doc.is_group==0&&doc.account_type=='Tax'"},
			{Fieldname: "account_currency", Label: "Currency", Fieldtype: uischema.TypeLink, Options: "Currency",
				Description: "Optional. Sets company's default currency, if not specified."},
		},
		IgnoreFields: []string{"parent_account"},
		MenuItems: []uischema.MenuItem{
			{Label: "New Company", Route: "/app/company/new", Permit: func(can func(string) bool) bool {
				return can(internalShared.PermCompanyCreate)
			}},
		},
		InnerButtons: innerButtons(),
		Toolbar: []uischema.ToolbarAction{
			{Label: "Add Child", Action: ActionAddChild, Condition: canAddChild},
			{Label: "View Ledger", Action: ActionViewLedger, Condition: canViewLedger},
		},
		ExtendToolbar: true,
	}
}

func canAddChild(n uischema.NodeContext) bool {
	return n.Allowed(internalShared.PermAccountCreate) &&
		(n.RootCompany == "" || n.IgnoreRootCompanyValidation) &&
		n.Expandable && !n.HideAdd
}

func canViewLedger(n uischema.NodeContext) bool {
	return !n.IsRoot && n.Allowed(internalShared.PermGLEntryView) && n.IsLedger
}

func innerButtons() []uischema.InnerButton {
	companyOnly := map[string]string{"company": "{company}"}
	buttons := []uischema.InnerButton{
		{Group: "View", Label: "Chart of Cost Centers", Route: []string{"Tree", "Cost Center"}},
		{Group: "View", Label: "Opening Invoice Creation Tool", Route: []string{"Form", "Opening Invoice Creation Tool"}},
		{Group: "View", Label: "Period Closing Voucher", Route: []string{"List", "Period Closing Voucher"}},
		{Group: "Create", Label: "Journal Entry", Route: []string{"Form", "Journal Entry", "new"}},
		{Group: "Create", Label: "Company", Route: []string{"Form", "Company", "new"}},
	}
	for _, report := range []string{
		"Trial Balance", GeneralLedgerReport, "Balance Sheet", "Profit and Loss Statement",
		"Cash Flow", "Accounts Payable", "Accounts Receivable",
	} {
		buttons = append(buttons, uischema.InnerButton{
			Group:        "Financial Statements",
			Label:        report,
			Route:        []string{"query-report", report},
			RouteOptions: companyOnly,
		})
	}
	return buttons
}

// DecorateActions sets the toolbar actions available on each node, recursing
// into children.
func DecorateActions(settings uischema.TreeSettings, nodes []Node, cc companies.Context, can func(string) bool) {
	for i := range nodes {
		nodes[i].Actions = settings.ActionsFor(uischema.NodeContext{
			Expandable:                  nodes[i].Expandable,
			IsLedger:                    nodes[i].IsLedger,
			IsRoot:                      nodes[i].IsRoot,
			HideAdd:                     nodes[i].HideAdd,
			RootCompany:                 cc.RootCompany,
			IgnoreRootCompanyValidation: cc.AllowAccountCreationAgainstChildCompany,
			Can:                         can,
		})
		DecorateActions(settings, nodes[i].Children, cc, can)
	}
}
