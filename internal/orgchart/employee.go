package orgchart

import (
	"fmt"
	"io"
	"sync"
)

// Employee 是正式员工（叶子节点），薪资计入所在部门的预算。
type Employee struct {
	name     string
	position string

	mu     sync.RWMutex
	salary int64
}

func NewEmployee(name, position string, salary int64) *Employee {
	return &Employee{name: name, position: position, salary: salary}
}

func (e *Employee) Name() string     { return e.name }
func (e *Employee) Position() string { return e.position }

// Salary 返回当前薪资。
func (e *Employee) Salary() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.salary
}

// SetSalary 直接替换薪资，不校验正负。
// 部门预算每次查询都重新汇总，修改后立即可见。
func (e *Employee) SetSalary(salary int64) {
	e.mu.Lock()
	e.salary = salary
	e.mu.Unlock()
}

func (e *Employee) ShowDetails(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Employee: %s, Position: %s, Salary: %d\n", e.name, e.position, e.Salary())
	return err
}

func (e *Employee) Budget() int64 { return e.Salary() }

func (e *Employee) EmployeeCount() int { return 1 }

func (e *Employee) FindByName(name string) (Node, bool) {
	if e.name == name {
		return e, true
	}
	return nil, false
}

func (e *Employee) AllEmployees() []string {
	return []string{e.name}
}
