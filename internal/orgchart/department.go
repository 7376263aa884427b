package orgchart

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// structureMu 串行化所有 Add：环检测与追加必须是一个原子步骤，
// 否则并发的 x.Add(y) 与 y.Add(x) 可能都通过检测。查询与 Remove 不需要它。
var structureMu sync.Mutex

// Department 是容器节点，按插入顺序持有子节点（员工、外包或下级部门）。
// 子节点列表由部门自己的读写锁保护；查询时先在读锁内复制一份列表，
// 再对副本递归，因此任意时刻只持有一个部门的锁。
type Department struct {
	name string

	mu       sync.RWMutex
	children []Node
}

func NewDepartment(name string) *Department {
	return &Department{name: name}
}

func (d *Department) Name() string { return d.name }

// Children 返回子节点列表的副本（插入顺序）。
func (d *Department) Children() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.children)
}

// Add 把节点追加到子节点列表末尾。
// 允许同一引用重复添加，也不检查重名；
// 但如果 n 的子树里已经包含 d（包括 n == d），返回 ErrCycle。
func (d *Department) Add(n Node) error {
	if n == nil {
		return ErrNilNode
	}
	structureMu.Lock()
	defer structureMu.Unlock()

	// 环检测必须在拿写锁之前完成，否则遍历到 d 时会自锁。
	if containsDepartment(n, d) {
		return ErrCycle
	}

	d.mu.Lock()
	d.children = append(d.children, n)
	d.mu.Unlock()
	return nil
}

// Remove 删除第一个引用相等的子节点，找到并删除时返回 true。
// 节点不存在时什么也不做。
func (d *Department) Remove(n Node) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, child := range d.children {
		if child == n {
			d.children = slices.Delete(d.children, i, i+1)
			return true
		}
	}
	return false
}

func (d *Department) ShowDetails(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Department: %s\n", d.name); err != nil {
		return err
	}
	for _, child := range d.Children() {
		if err := child.ShowDetails(w); err != nil {
			return err
		}
	}
	return nil
}

func (d *Department) Budget() int64 {
	var total int64
	for _, child := range d.Children() {
		total += child.Budget()
	}
	return total
}

// EmployeeCount 只统计叶子，部门本身不计数。
func (d *Department) EmployeeCount() int {
	total := 0
	for _, child := range d.Children() {
		total += child.EmployeeCount()
	}
	return total
}

// FindByName 先比较自身，再按顺序递归子节点，命中即返回。
func (d *Department) FindByName(name string) (Node, bool) {
	if d.name == name {
		return d, true
	}
	for _, child := range d.Children() {
		if found, ok := child.FindByName(name); ok {
			return found, true
		}
	}
	return nil, false
}

// AllEmployees 拼接各子节点的名单，部门自己的名称不会出现在结果里。
func (d *Department) AllEmployees() []string {
	names := make([]string, 0)
	for _, child := range d.Children() {
		names = append(names, child.AllEmployees()...)
	}
	return names
}

// containsDepartment 判断 target 是否就是 root 或位于 root 的子树中。
func containsDepartment(root Node, target *Department) bool {
	d, ok := root.(*Department)
	if !ok {
		return false
	}
	if d == target {
		return true
	}
	for _, child := range d.Children() {
		if containsDepartment(child, target) {
			return true
		}
	}
	return false
}
