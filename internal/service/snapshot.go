package service

import (
	"errors"
	"fmt"

	"orgchart/internal/model"
	"orgchart/internal/orgchart"

	"github.com/google/uuid"
)

// Flatten 把组织树按先序展开为 org_nodes 行。每次都生成新的 ID；
// 同一个节点被挂在多个部门下时会展开成多行，重新加载后成为互相独立的节点。
func Flatten(root *orgchart.Department) []model.OrgNode {
	rows := make([]model.OrgNode, 0)

	var visit func(n orgchart.Node, parentID *string, order int)
	visit = func(n orgchart.Node, parentID *string, order int) {
		id := uuid.NewString()
		row := model.OrgNode{
			ID:        id,
			ParentID:  parentID,
			Kind:      string(orgchart.KindOf(n)),
			Name:      n.Name(),
			SortOrder: order,
		}
		switch v := n.(type) {
		case *orgchart.Employee:
			row.Position = v.Position()
			row.Amount = v.Salary()
		case *orgchart.Contractor:
			row.Position = v.Position()
			row.Amount = v.FixedPayment()
		}
		rows = append(rows, row)

		if d, ok := n.(*orgchart.Department); ok {
			for i, child := range d.Children() {
				visit(child, &id, i)
			}
		}
	}
	visit(root, nil, 0)
	return rows
}

// BuildTree 用两遍扫描从 org_nodes 行重建组织树：
// 1. 第一遍为每行创建节点并放入 map（id -> node）
// 2. 第二遍按 parent 关系挂到父部门下，行顺序即子节点顺序
//
// 父节点缺失或不是部门的行不会丢失，统一作为根节点处理。
// 恰好只有一个根且它是部门时直接作为整棵树的根，否则用 rootName 新建一个根部门收纳它们。
func BuildTree(rows []model.OrgNode, rootName string) (*orgchart.Department, error) {
	nodes := make(map[string]orgchart.Node, len(rows))
	for _, row := range rows {
		node, err := nodeOf(row)
		if err != nil {
			return nil, err
		}
		nodes[row.ID] = node
	}

	roots := make([]orgchart.Node, 0, 1)
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID != nil && *row.ParentID != "" {
			if parent, ok := nodes[*row.ParentID].(*orgchart.Department); ok {
				if err := parent.Add(node); err != nil {
					if errors.Is(err, orgchart.ErrCycle) {
						return nil, fmt.Errorf("org node %s: %w", row.ID, ErrCycle)
					}
					return nil, err
				}
				continue
			}
		}
		roots = append(roots, node)
	}

	if len(roots) == 1 {
		if d, ok := roots[0].(*orgchart.Department); ok {
			return d, nil
		}
	}
	root := orgchart.NewDepartment(rootName)
	for _, n := range roots {
		if err := root.Add(n); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func nodeOf(row model.OrgNode) (orgchart.Node, error) {
	switch row.Kind {
	case model.NodeKindDepartment:
		return orgchart.NewDepartment(row.Name), nil
	case model.NodeKindEmployee:
		return orgchart.NewEmployee(row.Name, row.Position, row.Amount), nil
	case model.NodeKindContractor:
		return orgchart.NewContractor(row.Name, row.Position, row.Amount), nil
	default:
		return nil, fmt.Errorf("org node %s: unknown kind %q", row.ID, row.Kind)
	}
}

// viewOf 构造节点视图；withChildren 为 true 时递归展开部门。
func viewOf(n orgchart.Node, withChildren bool) *model.OrgNodeView {
	view := &model.OrgNodeView{
		Kind:      string(orgchart.KindOf(n)),
		Name:      n.Name(),
		Budget:    n.Budget(),
		Headcount: n.EmployeeCount(),
	}
	switch v := n.(type) {
	case *orgchart.Employee:
		salary := v.Salary()
		view.Position = v.Position()
		view.Salary = &salary
	case *orgchart.Contractor:
		payment := v.FixedPayment()
		view.Position = v.Position()
		view.FixedPayment = &payment
	case *orgchart.Department:
		if withChildren {
			children := v.Children()
			view.Children = make([]*model.OrgNodeView, 0, len(children))
			for _, child := range children {
				view.Children = append(view.Children, viewOf(child, true))
			}
		}
	}
	return view
}
