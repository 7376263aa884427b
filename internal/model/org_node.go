package model

import "time"

// 节点类型，取值与 orgchart.Kind 保持一致。
const (
	NodeKindDepartment = "DEPARTMENT"
	NodeKindEmployee   = "EMPLOYEE"
	NodeKindContractor = "CONTRACTOR"
)

// OrgNode 对应数据库中 org_nodes 表，一行是组织树中的一个节点。
// 树形结构通过 ParentID 指向父节点实现，SortOrder 记录节点在父节点下的位置。
// Amount 对员工是薪资，对外包是固定报酬，部门恒为 0。
type OrgNode struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ParentID  *string   `gorm:"type:varchar(36);index" json:"parentId"`
	Kind      string    `gorm:"type:varchar(16);not null" json:"kind"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Position  string    `gorm:"type:varchar(100);not null;default:''" json:"position"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"`
	SortOrder int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定 GORM 使用的表名
func (OrgNode) TableName() string {
	return "org_nodes"
}

// OrgNodeView 是组织节点的对外视图，用于 JSON 响应。
// 与 OrgNode（数据库模型）的区别：
//   - 不含 ID / ParentID / 审计字段
//   - 带有即时计算的 Budget、Headcount
//   - 部门可以嵌套 Children
type OrgNodeView struct {
	Kind         string         `json:"kind"`
	Name         string         `json:"name"`
	Position     string         `json:"position,omitempty"`
	Salary       *int64         `json:"salary,omitempty"`
	FixedPayment *int64         `json:"fixedPayment,omitempty"`
	Budget       int64          `json:"budget"`
	Headcount    int            `json:"headcount"`
	Children     []*OrgNodeView `json:"children,omitempty"`
}

// OrgSummary 是某个节点的汇总信息。
type OrgSummary struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Budget    int64    `json:"budget"`
	Headcount int      `json:"headcount"`
	Employees []string `json:"employees"`
}
