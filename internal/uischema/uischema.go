// Package uischema describes tree views and query reports to the browser
// client: filters, dialog fields, toolbar actions and navigation buttons.
// Behaviour that depends on the requesting user or node is kept in Go
// funcs and resolved server side before the descriptor is serialized.
package uischema

import "strings"

// Field types understood by the client.
const (
	TypeLink     = "Link"
	TypeData     = "Data"
	TypeDate     = "Date"
	TypeSelect   = "Select"
	TypeCheck    = "Check"
	TypeFloat    = "Float"
	TypeCurrency = "Currency"
)

// LinkQuery narrows the records offered by a Link filter.
type LinkQuery struct {
	Filters map[string]any `json:"filters,omitempty"`
	Query   string         `json:"query,omitempty"`
}

// Values holds the current filter values keyed by fieldname.
type Values map[string]string

// Filter is a report or tree filter control.
type Filter struct {
	Fieldname string   `json:"fieldname"`
	Label     string   `json:"label"`
	Fieldtype string   `json:"fieldtype"`
	Options   any      `json:"options,omitempty"`
	Default   any      `json:"default,omitempty"`
	Reqd      bool     `json:"reqd,omitempty"`
	Hidden    bool     `json:"hidden,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`

	// GetQuery derives the Link query from the other filter values.
	GetQuery func(Values) LinkQuery `json:"-"`
}

// Field is an input of the "new node" dialog.
type Field struct {
	Fieldname   string `json:"fieldname"`
	Label       string `json:"label"`
	Fieldtype   string `json:"fieldtype"`
	Options     any    `json:"options,omitempty"`
	Reqd        bool   `json:"reqd,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	DependsOn   string `json:"depends_on,omitempty"`
}

// NodeContext is what toolbar conditions see about a node and its viewer.
type NodeContext struct {
	Expandable bool
	IsLedger   bool
	IsRoot     bool
	HideAdd    bool

	RootCompany                 string
	IgnoreRootCompanyValidation bool

	Can func(perm string) bool
}

// Allowed reports whether the viewer holds perm.
func (c NodeContext) Allowed(perm string) bool {
	return c.Can != nil && c.Can(perm)
}

// ToolbarAction is a per-node button of a tree view.
type ToolbarAction struct {
	Label     string                 `json:"label"`
	Action    string                 `json:"action"`
	Condition func(NodeContext) bool `json:"-"`
}

// MenuItem is an entry of the page menu.
type MenuItem struct {
	Label  string                       `json:"label"`
	Route  string                       `json:"route"`
	Permit func(func(string) bool) bool `json:"-"`
}

// InnerButton is a grouped navigation button. Route may reference filter
// values as "{fieldname}" in RouteOptions.
type InnerButton struct {
	Group        string            `json:"group"`
	Label        string            `json:"label"`
	Route        []string          `json:"route"`
	RouteOptions map[string]string `json:"route_options,omitempty"`
}

// Resolve substitutes "{fieldname}" placeholders in RouteOptions.
func (b InnerButton) Resolve(values Values) InnerButton {
	if len(b.RouteOptions) == 0 {
		return b
	}
	opts := make(map[string]string, len(b.RouteOptions))
	for k, v := range b.RouteOptions {
		if strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}") {
			v = values[strings.Trim(v, "{}")]
		}
		opts[k] = v
	}
	b.RouteOptions = opts
	return b
}

// TreeSettings describes a tree view.
type TreeSettings struct {
	Breadcrumb    string          `json:"breadcrumb"`
	Title         string          `json:"title"`
	GetTreeRoot   bool            `json:"get_tree_root"`
	RootLabel     string          `json:"root_label"`
	GetTreeNodes  string          `json:"get_tree_nodes"`
	AddTreeNode   string          `json:"add_tree_node"`
	OnGetNode     string          `json:"on_get_node,omitempty"`
	Filters       []Filter        `json:"filters"`
	Fields        []Field         `json:"fields"`
	IgnoreFields  []string        `json:"ignore_fields,omitempty"`
	MenuItems     []MenuItem      `json:"menu_items,omitempty"`
	InnerButtons  []InnerButton   `json:"inner_buttons,omitempty"`
	Toolbar       []ToolbarAction `json:"toolbar,omitempty"`
	ExtendToolbar bool            `json:"extend_toolbar"`
}

// ActionsFor returns the toolbar actions whose conditions hold for node.
func (s TreeSettings) ActionsFor(node NodeContext) []string {
	var out []string
	for _, a := range s.Toolbar {
		if a.Condition == nil || a.Condition(node) {
			out = append(out, a.Action)
		}
	}
	return out
}

// ForViewer drops menu items the viewer may not use and resolves inner
// button routes against the current filter values.
func (s TreeSettings) ForViewer(can func(string) bool, values Values) TreeSettings {
	items := make([]MenuItem, 0, len(s.MenuItems))
	for _, m := range s.MenuItems {
		if m.Permit == nil || (can != nil && m.Permit(can)) {
			items = append(items, m)
		}
	}
	buttons := make([]InnerButton, 0, len(s.InnerButtons))
	for _, b := range s.InnerButtons {
		buttons = append(buttons, b.Resolve(values))
	}
	s.MenuItems = items
	s.InnerButtons = buttons
	return s
}

// ReportSettings describes a query report.
type ReportSettings struct {
	Filters      []Filter `json:"filters"`
	Tree         bool     `json:"tree"`
	NameField    string   `json:"name_field"`
	ParentField  string   `json:"parent_field"`
	InitialDepth int      `json:"initial_depth"`
}

// Filter returns the filter named fieldname.
func (r ReportSettings) Filter(fieldname string) (Filter, bool) {
	for _, f := range r.Filters {
		if f.Fieldname == fieldname {
			return f, true
		}
	}
	return Filter{}, false
}
