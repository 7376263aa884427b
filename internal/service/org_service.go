package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"orgchart/internal/model"
	"orgchart/internal/orgchart"
	"orgchart/internal/repository"
	"orgchart/pkg/log"
)

// OrgService 持有内存中的组织树，并把核心包的操作暴露给 Handler / CLI。
// 设计要点：
// 1. 所有查询都按名称定位节点（FindByName 的先序第一个匹配），空名称表示根节点。
// 2. 聚合值每次重新计算，不做缓存。
// 3. 配置了仓库时，每次变更后把整棵树的快照写回数据库；写库失败则从数据库重新加载，
//    内存与数据库保持一致。
type OrgService interface {
	Load() error
	Replace(root *orgchart.Department) error
	Root() *orgchart.Department

	Summary(name string) (*model.OrgSummary, error)
	Budget(name string) (int64, error)
	Headcount(name string) (int, error)
	Employees(name string) ([]string, error)
	Details(name string, w io.Writer) error
	Find(name string) (*model.OrgNodeView, error)
	Tree(name string) (*model.OrgNodeView, error)

	SetSalary(name string, salary int64) (*model.OrgNodeView, error)
	AddMember(department string, in MemberInput) (*model.OrgNodeView, error)
	RemoveMember(department, member string) error
}

// MemberInput 描述要挂到部门下的新节点。
// Amount 对员工是薪资，对外包是固定报酬，部门忽略该字段。
type MemberInput struct {
	Kind     string
	Name     string
	Position string
	Amount   int64
}

type orgService struct {
	repo     repository.OrgNodeRepository
	rootName string

	mu   sync.RWMutex
	root *orgchart.Department

	// writeMu 串行化“修改 + 写快照”，保证快照按修改顺序落库。
	writeMu sync.Mutex
}

// NewOrgService 创建服务。repo 可以为 nil，此时组织树只存在于内存中。
func NewOrgService(repo repository.OrgNodeRepository, root *orgchart.Department) OrgService {
	if root == nil {
		root = orgchart.NewDepartment("Company")
	}
	return &orgService{repo: repo, rootName: root.Name(), root: root}
}

func (s *orgService) Root() *orgchart.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

func (s *orgService) setRoot(root *orgchart.Department) {
	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
}

// Load 从仓库重建组织树。没有仓库时什么也不做。
func (s *orgService) Load() error {
	if s.repo == nil {
		return nil
	}
	rows, err := s.repo.FindAll()
	if err != nil {
		return fmt.Errorf("load org nodes: %w", err)
	}
	root, err := BuildTree(rows, s.rootName)
	if err != nil {
		return err
	}
	s.setRoot(root)
	log.Infow("Org tree loaded", "rows", len(rows), "headcount", root.EmployeeCount())
	return nil
}

// Replace 用一棵新树整体替换当前组织树（导入种子文件时使用）。
func (s *orgService) Replace(root *orgchart.Department) error {
	if root == nil {
		return ErrInvalidInput
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.repo != nil {
		if err := s.repo.ReplaceAll(Flatten(root)); err != nil {
			return fmt.Errorf("persist org tree: %w", err)
		}
	}
	s.setRoot(root)
	return nil
}

// resolve 定位节点：空名称为根节点，否则取先序遍历中第一个同名节点。
func (s *orgService) resolve(name string) (orgchart.Node, error) {
	root := s.Root()
	if name == "" {
		return root, nil
	}
	node, ok := root.FindByName(name)
	if !ok {
		return nil, ErrNodeNotFound
	}
	return node, nil
}

func (s *orgService) resolveDepartment(name string) (*orgchart.Department, error) {
	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	d, ok := node.(*orgchart.Department)
	if !ok {
		return nil, ErrNotDepartment
	}
	return d, nil
}

func (s *orgService) Summary(name string) (*model.OrgSummary, error) {
	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return &model.OrgSummary{
		Name:      node.Name(),
		Kind:      string(orgchart.KindOf(node)),
		Budget:    node.Budget(),
		Headcount: node.EmployeeCount(),
		Employees: node.AllEmployees(),
	}, nil
}

func (s *orgService) Budget(name string) (int64, error) {
	node, err := s.resolve(name)
	if err != nil {
		return 0, err
	}
	return node.Budget(), nil
}

func (s *orgService) Headcount(name string) (int, error) {
	node, err := s.resolve(name)
	if err != nil {
		return 0, err
	}
	return node.EmployeeCount(), nil
}

func (s *orgService) Employees(name string) ([]string, error) {
	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return node.AllEmployees(), nil
}

func (s *orgService) Details(name string, w io.Writer) error {
	node, err := s.resolve(name)
	if err != nil {
		return err
	}
	return node.ShowDetails(w)
}

// Find 返回单个节点的视图，不展开下级。
func (s *orgService) Find(name string) (*model.OrgNodeView, error) {
	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return viewOf(node, false), nil
}

// Tree 返回以该节点为根的完整嵌套视图。
func (s *orgService) Tree(name string) (*model.OrgNodeView, error) {
	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return viewOf(node, true), nil
}

// SetSalary 修改员工薪资。名称命中的第一个节点不是员工时返回 ErrNotEmployee。
func (s *orgService) SetSalary(name string, salary int64) (*model.OrgNodeView, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	node, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	e, ok := node.(*orgchart.Employee)
	if !ok {
		return nil, ErrNotEmployee
	}

	old := e.Salary()
	e.SetSalary(salary)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	log.Infow("Salary updated", "employee", name, "old", old, "new", salary)
	return viewOf(e, false), nil
}

// AddMember 在部门末尾追加一个新节点。
func (s *orgService) AddMember(department string, in MemberInput) (*model.OrgNodeView, error) {
	node, err := newMember(in)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	parent, err := s.resolveDepartment(department)
	if err != nil {
		return nil, err
	}
	if err := parent.Add(node); err != nil {
		if errors.Is(err, orgchart.ErrCycle) {
			return nil, ErrCycle
		}
		return nil, err
	}
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	log.Infow("Org member added", "department", parent.Name(), "kind", orgchart.KindOf(node), "name", node.Name())
	return viewOf(node, false), nil
}

// RemoveMember 移除部门下第一个同名的直接子节点。
func (s *orgService) RemoveMember(department, member string) error {
	if strings.TrimSpace(member) == "" {
		return ErrInvalidInput
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	parent, err := s.resolveDepartment(department)
	if err != nil {
		return err
	}
	for _, child := range parent.Children() {
		if child.Name() != member {
			continue
		}
		parent.Remove(child)
		if err := s.persistLocked(); err != nil {
			return err
		}
		log.Infow("Org member removed", "department", parent.Name(), "name", member)
		return nil
	}
	return ErrNodeNotFound
}

// persistLocked 写入快照；失败时从数据库回滚内存状态。调用方需持有 writeMu。
func (s *orgService) persistLocked() error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.ReplaceAll(Flatten(s.Root())); err != nil {
		log.Error("Failed to persist org tree, reloading last snapshot", err)
		if loadErr := s.Load(); loadErr != nil {
			log.Error("Failed to reload org tree", loadErr)
		}
		return fmt.Errorf("persist org tree: %w", err)
	}
	return nil
}

func newMember(in MemberInput) (orgchart.Node, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	position := strings.TrimSpace(in.Position)

	switch orgchart.Kind(strings.ToUpper(strings.TrimSpace(in.Kind))) {
	case orgchart.KindEmployee:
		return orgchart.NewEmployee(name, position, in.Amount), nil
	case orgchart.KindContractor:
		return orgchart.NewContractor(name, position, in.Amount), nil
	case orgchart.KindDepartment:
		return orgchart.NewDepartment(name), nil
	default:
		return nil, ErrInvalidInput
	}
}
