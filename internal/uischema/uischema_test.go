package uischema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsFor(t *testing.T) {
	settings := TreeSettings{Toolbar: []ToolbarAction{
		{Label: "Always", Action: "always"},
		{Label: "Ledger", Action: "ledger", Condition: func(n NodeContext) bool { return n.IsLedger && n.Allowed("gl_entry.view") }},
	}}

	can := func(p string) bool { return p == "gl_entry.view" }
	assert.Equal(t, []string{"always", "ledger"}, settings.ActionsFor(NodeContext{IsLedger: true, Can: can}))
	assert.Equal(t, []string{"always"}, settings.ActionsFor(NodeContext{IsLedger: true}))
}

func TestForViewerResolvesRoutesAndMenus(t *testing.T) {
	settings := TreeSettings{
		MenuItems: []MenuItem{
			{Label: "New Company", Route: "company/new", Permit: func(can func(string) bool) bool { return can("company.create") }},
			{Label: "Refresh", Route: "refresh"},
		},
		InnerButtons: []InnerButton{
			{Group: "Financial Statements", Label: "Trial Balance", Route: []string{"query-report", "Trial Balance"}, RouteOptions: map[string]string{"company": "{company}"}},
		},
	}

	got := settings.ForViewer(func(string) bool { return false }, Values{"company": "Acme"})
	require.Len(t, got.MenuItems, 1)
	assert.Equal(t, "Refresh", got.MenuItems[0].Label)
	assert.Equal(t, "Acme", got.InnerButtons[0].RouteOptions["company"])
	assert.Equal(t, "{company}", settings.InnerButtons[0].RouteOptions["company"])
}

func TestFilterSerializationOmitsFuncs(t *testing.T) {
	f := Filter{Fieldname: "account", Label: "Account", Fieldtype: TypeLink, Options: "Account",
		GetQuery: func(Values) LinkQuery { return LinkQuery{} }}
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "GetQuery")
	assert.Contains(t, string(raw), `"fieldtype":"Link"`)
}
