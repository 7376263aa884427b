package seed

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"orgchart/internal/orgchart"
)

const companyYAML = `
name: Company
children:
  - department: Dev
    children:
      - employee: A
        position: Dev
        salary: 1000
      - employee: B
        position: Dev
        salary: 1200
      - contractor: C
        position: QA
        payment: 800
  - department: HR
    children:
      - employee: D
        position: Recruiter
        salary: 900
`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(companyYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if root.Name() != "Company" {
		t.Fatalf("root name = %q", root.Name())
	}
	if got := root.Budget(); got != 3100 {
		t.Fatalf("Budget() = %d, want 3100", got)
	}
	if got := root.EmployeeCount(); got != 4 {
		t.Fatalf("EmployeeCount() = %d, want 4", got)
	}

	dev, ok := root.FindByName("Dev")
	if !ok {
		t.Fatalf("Dev not found")
	}
	if got := dev.AllEmployees(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("Dev.AllEmployees() = %v", got)
	}
	c, _ := root.FindByName("C")
	if contractor, ok := c.(*orgchart.Contractor); !ok || contractor.FixedPayment() != 800 {
		t.Fatalf("C should be a contractor with payment 800, got %#v", c)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"no root name":   "children: []\n",
		"two kinds":      "name: X\nchildren:\n  - employee: A\n    contractor: B\n",
		"no kind":        "name: X\nchildren:\n  - position: Dev\n",
		"leaf children":  "name: X\nchildren:\n  - employee: A\n    children:\n      - employee: B\n",
		"unknown field":  "name: X\nbudget: 10\n",
		"malformed yaml": "name: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("Parse() error = %v, want ErrInvalidSeed", err)
			}
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	root, err := Parse([]byte(companyYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v\n%s", err, data)
	}
	if again.Budget() != root.Budget() || !reflect.DeepEqual(again.AllEmployees(), root.AllEmployees()) {
		t.Fatalf("round trip changed the tree:\n%s", data)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.yaml")
	if err := os.WriteFile(path, []byte(companyYAML), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	root, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if root.EmployeeCount() != 4 {
		t.Fatalf("EmployeeCount() = %d", root.EmployeeCount())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expect error for missing file")
	}
}
