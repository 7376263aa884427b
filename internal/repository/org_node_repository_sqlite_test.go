package repository

import (
	"testing"

	"orgchart/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newSQLiteOrgNodeRepo(t *testing.T) OrgNodeRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error: %v", err)
	}
	// :memory: 库按连接隔离，只保留一个连接。
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.OrgNode{}); err != nil {
		t.Fatalf("AutoMigrate() error: %v", err)
	}
	return NewOrgNodeRepository(db)
}

func TestOrgNodeRepository_SQLiteRoundTrip(t *testing.T) {
	repo := newSQLiteOrgNodeRepo(t)

	first := []model.OrgNode{
		{ID: "root", Kind: model.NodeKindDepartment, Name: "Company"},
		{ID: "b", ParentID: strPtr("root"), Kind: model.NodeKindEmployee, Name: "B", Amount: 1200, SortOrder: 1},
		{ID: "a", ParentID: strPtr("root"), Kind: model.NodeKindEmployee, Name: "A", Amount: 1000, SortOrder: 0},
	}
	if err := repo.ReplaceAll(first); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}

	nodes, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	// sort_order 相同的按 id 排序：root(0) 与 a(0) 中 a 在前。
	if nodes[0].ID != "a" || nodes[1].ID != "root" || nodes[2].ID != "b" {
		t.Fatalf("unexpected order: %s, %s, %s", nodes[0].ID, nodes[1].ID, nodes[2].ID)
	}

	second := []model.OrgNode{{ID: "solo", Kind: model.NodeKindDepartment, Name: "Solo"}}
	if err := repo.ReplaceAll(second); err != nil {
		t.Fatalf("second ReplaceAll() error: %v", err)
	}
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count() = %d, want 1 after replace", count)
	}
}
