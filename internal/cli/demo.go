package cli

import (
	"fmt"
	"io"
	"strings"

	"orgchart/internal/orgchart"

	"github.com/spf13/cobra"
)

// NewDemoCommand 创建 demo 命令：在内存中搭一家示例公司，依次演示各项操作。
func NewDemoCommand() *cobra.Command {
	var findName string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a sample company in memory and walk through every operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), findName)
		},
	}
	cmd.Flags().StringVar(&findName, "find", "Aliya", "name to look up with FindByName")
	return cmd
}

func runDemo(w io.Writer, findName string) error {
	aliya := orgchart.NewEmployee("Aliya", "Developer", 1000)
	erzhan := orgchart.NewEmployee("Erzhan", "Developer", 1200)
	bolat := orgchart.NewContractor("Bolat", "Tester", 800)
	aigul := orgchart.NewEmployee("Aigul", "Recruiter", 900)

	dev := orgchart.NewDepartment("Development")
	hr := orgchart.NewDepartment("Human Resources")
	company := orgchart.NewDepartment("Company")

	for _, step := range []struct {
		parent *orgchart.Department
		child  orgchart.Node
	}{
		{dev, aliya},
		{dev, erzhan},
		{dev, bolat},
		{hr, aigul},
		{company, dev},
		{company, hr},
	} {
		if err := step.parent.Add(step.child); err != nil {
			return err
		}
	}

	var b strings.Builder
	b.WriteString("Company structure:\n")
	if err := company.ShowDetails(&b); err != nil {
		return err
	}
	fmt.Fprintf(&b, "Total company budget: %d\n", company.Budget())
	fmt.Fprintf(&b, "Total company headcount: %d\n", company.EmployeeCount())

	fmt.Fprintf(&b, "\nChanging salary of %s...\n", erzhan.Name())
	erzhan.SetSalary(1300)
	fmt.Fprintf(&b, "Total company budget after salary change: %d\n", company.Budget())

	if found, ok := company.FindByName(findName); ok {
		b.WriteString("\nFound:\n")
		if err := found.ShowDetails(&b); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(&b, "\n%s not found.\n", findName)
	}

	fmt.Fprintf(&b, "\nAll employees of %s:\n", dev.Name())
	for _, name := range dev.AllEmployees() {
		b.WriteString(name + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
