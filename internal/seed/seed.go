// Package seed 读写 YAML 格式的组织结构描述文件。
//
// 文件格式：根节点只有 name 和 children；每个子条目必须且只能设置
// department / employee / contractor 三个键之一，部门可以继续嵌套 children。
//
//	name: Company
//	children:
//	  - department: Development
//	    children:
//	      - employee: Aliya
//	        position: Developer
//	        salary: 1000
//	      - contractor: Bolat
//	        position: Tester
//	        payment: 800
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"orgchart/internal/orgchart"
)

// ErrInvalidSeed 表示种子文件结构不合法。
var ErrInvalidSeed = errors.New("invalid org seed")

type File struct {
	Name     string  `yaml:"name"`
	Children []Entry `yaml:"children,omitempty"`
}

type Entry struct {
	Department string  `yaml:"department,omitempty"`
	Employee   string  `yaml:"employee,omitempty"`
	Contractor string  `yaml:"contractor,omitempty"`
	Position   string  `yaml:"position,omitempty"`
	Salary     int64   `yaml:"salary,omitempty"`
	Payment    int64   `yaml:"payment,omitempty"`
	Children   []Entry `yaml:"children,omitempty"`
}

// LoadFile 读取并解析种子文件。
func LoadFile(path string) (*orgchart.Department, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse 把 YAML 解析为组织树，未知字段视为错误。
func Parse(data []byte) (*orgchart.Department, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSeed)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: root name is required", ErrInvalidSeed)
	}

	root := orgchart.NewDepartment(f.Name)
	if err := attach(root, f.Children, f.Name); err != nil {
		return nil, err
	}
	return root, nil
}

func attach(parent *orgchart.Department, entries []Entry, path string) error {
	for i, e := range entries {
		node, err := e.build(fmt.Sprintf("%s/children[%d]", path, i))
		if err != nil {
			return err
		}
		if err := parent.Add(node); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
		}
	}
	return nil
}

func (e Entry) build(path string) (orgchart.Node, error) {
	set := 0
	for _, v := range []string{e.Department, e.Employee, e.Contractor} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: %s: exactly one of department, employee, contractor must be set", ErrInvalidSeed, path)
	}

	switch {
	case e.Department != "":
		d := orgchart.NewDepartment(e.Department)
		if err := attach(d, e.Children, path); err != nil {
			return nil, err
		}
		return d, nil
	case len(e.Children) > 0:
		return nil, fmt.Errorf("%w: %s: only departments can have children", ErrInvalidSeed, path)
	case e.Employee != "":
		return orgchart.NewEmployee(e.Employee, e.Position, e.Salary), nil
	default:
		return orgchart.NewContractor(e.Contractor, e.Position, e.Payment), nil
	}
}

// Marshal 把组织树导出为与 Parse 兼容的 YAML。
func Marshal(root *orgchart.Department) ([]byte, error) {
	f := File{Name: root.Name(), Children: entriesOf(root)}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entriesOf(d *orgchart.Department) []Entry {
	children := d.Children()
	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		switch n := child.(type) {
		case *orgchart.Department:
			entries = append(entries, Entry{Department: n.Name(), Children: entriesOf(n)})
		case *orgchart.Employee:
			entries = append(entries, Entry{Employee: n.Name(), Position: n.Position(), Salary: n.Salary()})
		case *orgchart.Contractor:
			entries = append(entries, Entry{Contractor: n.Name(), Position: n.Position(), Payment: n.FixedPayment()})
		}
	}
	return entries
}
