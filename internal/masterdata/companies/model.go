package companies

// Company is a legal entity owning a chart of accounts. Child companies
// point at their parent through ParentCompany.
type Company struct {
	Name                                    string `json:"name"`
	Abbr                                    string `json:"abbr"`
	DefaultCurrency                         string `json:"default_currency"`
	ParentCompany                           string `json:"parent_company,omitempty"`
	AllowAccountCreationAgainstChildCompany bool   `json:"allow_account_creation_against_child_company"`
}

// Context is what the tree views need when the company filter changes.
type Context struct {
	Company                                 string `json:"company"`
	Abbr                                    string `json:"abbr"`
	DefaultCurrency                         string `json:"default_currency"`
	RootCompany                             string `json:"root_company"`
	AllowAccountCreationAgainstChildCompany bool   `json:"allow_account_creation_against_child_company"`
}

// ChildCreationBlocked reports whether records must be created on the root
// company instead of this one.
func (c Context) ChildCreationBlocked() bool {
	return c.RootCompany != "" && !c.AllowAccountCreationAgainstChildCompany
}
