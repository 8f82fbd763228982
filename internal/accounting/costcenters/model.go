package costcenters

// CostCenter is a stored cost center. Name carries the company suffix.
type CostCenter struct {
	Name             string `json:"name"`
	CostCenterName   string `json:"cost_center_name"`
	CostCenterNumber string `json:"cost_center_number,omitempty"`
	Company          string `json:"company"`
	ParentCostCenter string `json:"parent_cost_center,omitempty"`
	IsGroup          bool   `json:"is_group"`
	Location         string `json:"custom_location,omitempty"`
}

// Node is an entry of the cost center tree.
type Node struct {
	Value      string `json:"value"`
	Expandable bool   `json:"expandable"`
	Parent     string `json:"parent,omitempty"`
}

// ChildrenQuery selects the children of a cost center tree node.
type ChildrenQuery struct {
	Company string
	Parent  string
	IsRoot  bool
}

// AddCostCenterInput is the payload of the "new cost center" dialog.
type AddCostCenterInput struct {
	Company          string `json:"company" validate:"required"`
	Parent           string `json:"parent_cost_center"`
	CostCenterName   string `json:"cost_center_name" validate:"required,max=140"`
	CostCenterNumber string `json:"cost_center_number" validate:"omitempty,max=40"`
	IsGroup          bool   `json:"is_group"`
	IsRoot           bool   `json:"is_root"`

	ActorID int64 `json:"-"`
}
