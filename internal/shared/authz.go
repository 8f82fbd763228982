package shared

// Accounting permissions. Names follow "<doctype>.<action>".
const (
	PermAccountView   = "account.view"
	PermAccountCreate = "account.create"

	PermCostCenterView   = "cost_center.view"
	PermCostCenterCreate = "cost_center.create"

	PermGLEntryView = "gl_entry.view"

	PermCompanyCreate  = "company.create"
	PermLocationCreate = "location.create"

	PermReportAccountInquiry = "report.account_inquiry"
)

// Scopes lists every permission known to the service.
func Scopes() []string {
	return []string{
		PermAccountView,
		PermAccountCreate,
		PermCostCenterView,
		PermCostCenterCreate,
		PermGLEntryView,
		PermCompanyCreate,
		PermLocationCreate,
		PermReportAccountInquiry,
	}
}
