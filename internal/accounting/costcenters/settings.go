package costcenters

import "github.com/odyssey-erp/custom-accounting/internal/uischema"

const basePath = "/accounting/tree/cost-center"

// TreeSettings describes the cost center tree view.
func TreeSettings(defaultCompany string) uischema.TreeSettings {
	return uischema.TreeSettings{
		Breadcrumb:   "Accounts",
		Title:        "Chart of Cost Centers",
		RootLabel:    "Cost Centers",
		GetTreeNodes: basePath + "/nodes",
		AddTreeNode:  basePath + "/nodes",
		Filters: []uischema.Filter{{
			Fieldname: "company",
			Label:     "Company",
			Fieldtype: uischema.TypeSelect,
			Options:   "/masterdata/companies",
			Default:   defaultCompany,
		}},
		Fields: []uischema.Field{
			{Fieldname: "cost_center_name", Label: "New Cost Center Name", Fieldtype: uischema.TypeData, Reqd: true},
			{Fieldname: "is_group", Label: "Is Group", Fieldtype: uischema.TypeCheck},
			{Fieldname: "cost_center_number", Label: "Cost Center Number", Fieldtype: uischema.TypeData},
		},
		IgnoreFields: []string{"parent_cost_center"},
		InnerButtons: []uischema.InnerButton{{
			Group:        "View",
			Label:        "Chart of Accounts",
			Route:        []string{"Tree", "Account"},
			RouteOptions: map[string]string{"company": "{company}"},
		}},
	}
}
