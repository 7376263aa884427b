// Package orgchart 实现组织架构的组合树：公司 → 部门 → 员工/外包。
// 所有节点实现同一个 Node 接口；部门把每个操作递归委托给子节点并汇总结果，
// 叶子节点直接返回自身的值。
package orgchart

import (
	"errors"
	"io"
)

var (
	// ErrCycle 表示待添加节点的子树中已经包含目标部门（或就是目标部门本身），
	// 继续添加会让递归汇总无限循环。
	ErrCycle = errors.New("orgchart: adding node would create a cycle")
	// ErrNilNode 表示尝试添加 nil 节点。
	ErrNilNode = errors.New("orgchart: node is nil")
)

// Node 是组织节点的统一能力集合，员工、外包和部门都实现它。
type Node interface {
	// Name 返回节点名称，整棵树内不保证唯一。
	Name() string
	// ShowDetails 把节点的描述逐行写入 w；部门会继续输出全部下级。
	ShowDetails(w io.Writer) error
	// Budget 返回节点及其下级的正式员工薪资总和，外包费用不计入。
	Budget() int64
	// EmployeeCount 返回叶子节点（员工 + 外包）数量，叶子自身计为 1。
	EmployeeCount() int
	// FindByName 按先序遍历返回第一个名称完全相等的节点。
	FindByName(name string) (Node, bool)
	// AllEmployees 按先序从左到右返回所有叶子节点名称，包含外包。
	AllEmployees() []string
}

// Kind 标识节点类型，与 org_nodes.kind 列的取值一致。
type Kind string

const (
	KindDepartment Kind = "DEPARTMENT"
	KindEmployee   Kind = "EMPLOYEE"
	KindContractor Kind = "CONTRACTOR"
)

// KindOf 返回节点类型；未知实现返回空字符串。
func KindOf(n Node) Kind {
	switch n.(type) {
	case *Department:
		return KindDepartment
	case *Employee:
		return KindEmployee
	case *Contractor:
		return KindContractor
	default:
		return ""
	}
}

// Walk 以先序遍历 n 及其全部下级，根节点 depth 为 0。
// fn 返回错误时立即停止遍历并返回该错误。
func Walk(n Node, fn func(n Node, depth int) error) error {
	return walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(n Node, depth int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	d, ok := n.(*Department)
	if !ok {
		return nil
	}
	for _, child := range d.Children() {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
