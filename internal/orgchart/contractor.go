package orgchart

import (
	"fmt"
	"io"
)

// Contractor 是外包人员（叶子节点）。
// 参与人数统计和名单查询，但其固定报酬不计入任何部门的预算。
type Contractor struct {
	name         string
	position     string
	fixedPayment int64
}

func NewContractor(name, position string, fixedPayment int64) *Contractor {
	return &Contractor{name: name, position: position, fixedPayment: fixedPayment}
}

func (c *Contractor) Name() string        { return c.name }
func (c *Contractor) Position() string    { return c.position }
func (c *Contractor) FixedPayment() int64 { return c.fixedPayment }

func (c *Contractor) ShowDetails(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Contractor: %s, Position: %s, Payment: %d\n", c.name, c.position, c.fixedPayment)
	return err
}

// Budget 恒为 0：外包费用不进入部门预算。
func (c *Contractor) Budget() int64 { return 0 }

func (c *Contractor) EmployeeCount() int { return 1 }

func (c *Contractor) FindByName(name string) (Node, bool) {
	if c.name == name {
		return c, true
	}
	return nil, false
}

func (c *Contractor) AllEmployees() []string {
	return []string{c.name}
}
