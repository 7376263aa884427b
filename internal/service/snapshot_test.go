package service

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"orgchart/internal/model"
	"orgchart/internal/orgchart"
)

func details(t *testing.T, n orgchart.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := n.ShowDetails(&buf); err != nil {
		t.Fatalf("ShowDetails() error = %v", err)
	}
	return buf.String()
}

func TestFlattenBuildTree_RoundTrip(t *testing.T) {
	root := newCompany(t)

	rows := Flatten(root)
	if len(rows) != 7 {
		t.Fatalf("Flatten() produced %d rows, want 7", len(rows))
	}
	if rows[0].ParentID != nil || rows[0].Kind != model.NodeKindDepartment {
		t.Fatalf("first row should be the root department: %+v", rows[0])
	}

	rebuilt, err := BuildTree(rows, "ignored")
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	if got, want := details(t, rebuilt), details(t, root); got != want {
		t.Fatalf("round trip changed the tree:\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	root, err := BuildTree(nil, "Acme")
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	if root.Name() != "Acme" || root.EmployeeCount() != 0 {
		t.Fatalf("expected empty root named Acme, got %q with %d", root.Name(), root.EmployeeCount())
	}
}

// 父节点缺失的行不会丢失，与其他根一起挂到新建的根部门下。
func TestBuildTree_OrphansBecomeRoots(t *testing.T) {
	rows := []model.OrgNode{
		{ID: "dev", Kind: model.NodeKindDepartment, Name: "Dev"},
		{ID: "a", ParentID: strPtr("dev"), Kind: model.NodeKindEmployee, Name: "A", Amount: 10},
		{ID: "x", ParentID: strPtr("missing"), Kind: model.NodeKindContractor, Name: "X", Amount: 5},
		{ID: "y", ParentID: strPtr("a"), Kind: model.NodeKindEmployee, Name: "Y", Amount: 7, SortOrder: 1},
	}

	root, err := BuildTree(rows, "Acme")
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	if root.Name() != "Acme" {
		t.Fatalf("root name = %q, want Acme", root.Name())
	}
	if got := root.AllEmployees(); !reflect.DeepEqual(got, []string{"A", "X", "Y"}) {
		t.Fatalf("AllEmployees() = %v", got)
	}
	if root.Budget() != 17 {
		t.Fatalf("Budget() = %d, want 17", root.Budget())
	}
}

func TestBuildTree_UnknownKind(t *testing.T) {
	rows := []model.OrgNode{{ID: "z", Kind: "ROBOT", Name: "Z"}}
	if _, err := BuildTree(rows, "Acme"); err == nil {
		t.Fatalf("expect error for unknown kind")
	}
}

func TestBuildTree_Cycle(t *testing.T) {
	rows := []model.OrgNode{
		{ID: "a", ParentID: strPtr("b"), Kind: model.NodeKindDepartment, Name: "A"},
		{ID: "b", ParentID: strPtr("a"), Kind: model.NodeKindDepartment, Name: "B"},
	}
	if _, err := BuildTree(rows, "Acme"); !errors.Is(err, ErrCycle) {
		t.Fatalf("BuildTree() error = %v, want ErrCycle", err)
	}
}
