package handler

import (
	"bytes"
	"net/http"

	"orgchart/internal/middleware"
	"orgchart/internal/service"
	"orgchart/pkg/log"

	"github.com/gin-gonic/gin"
)

// MutationRecorder 记录组织树变更的结果，用于指标统计；可以为 nil。
type MutationRecorder interface {
	RecordMutation(operation string, err error)
}

// OrgHandler 负责组织树的查询接口（公开）和变更接口（管理员）。
// 节点一律按名称定位，取先序遍历的第一个同名节点。
type OrgHandler struct {
	orgService service.OrgService
	recorder   MutationRecorder
}

func NewOrgHandler(orgService service.OrgService, recorder MutationRecorder) *OrgHandler {
	return &OrgHandler{orgService: orgService, recorder: recorder}
}

// SetSalaryRequest 是修改薪资的请求体。salary 使用指针以区分“没传”和“传 0”。
type SetSalaryRequest struct {
	Salary *int64 `json:"salary" binding:"required"`
}

// AddMemberRequest 是向部门添加成员的请求体。
// kind 取值 EMPLOYEE / CONTRACTOR / DEPARTMENT（大小写不敏感）；
// amount 对员工是薪资，对外包是固定报酬。
type AddMemberRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
	Amount   int64  `json:"amount"`
}

func (h *OrgHandler) record(operation string, err error) {
	if h.recorder != nil {
		h.recorder.RecordMutation(operation, err)
	}
}

// Summary 返回根部门的汇总信息：预算、人数和成员名单。
func (h *OrgHandler) Summary(c *gin.Context) {
	summary, err := h.orgService.Summary("")
	if err != nil {
		respondError(c, "Summary", err)
		return
	}
	respondOK(c, http.StatusOK, "Org summary retrieved successfully", summary)
}

// Tree 返回整棵组织树（带每个节点的聚合值）。
func (h *OrgHandler) Tree(c *gin.Context) {
	tree, err := h.orgService.Tree(c.Param("name"))
	if err != nil {
		respondError(c, "Tree", err)
		return
	}
	respondOK(c, http.StatusOK, "Org tree retrieved successfully", tree)
}

// GetNode 返回单个节点的视图。
func (h *OrgHandler) GetNode(c *gin.Context) {
	view, err := h.orgService.Find(c.Param("name"))
	if err != nil {
		respondError(c, "GetNode", err)
		return
	}
	respondOK(c, http.StatusOK, "Org node retrieved successfully", view)
}

func (h *OrgHandler) Budget(c *gin.Context) {
	name := c.Param("name")
	budget, err := h.orgService.Budget(name)
	if err != nil {
		respondError(c, "Budget", err)
		return
	}
	respondOK(c, http.StatusOK, "Budget retrieved successfully", gin.H{
		"name":   name,
		"budget": budget,
	})
}

func (h *OrgHandler) Headcount(c *gin.Context) {
	name := c.Param("name")
	count, err := h.orgService.Headcount(name)
	if err != nil {
		respondError(c, "Headcount", err)
		return
	}
	respondOK(c, http.StatusOK, "Headcount retrieved successfully", gin.H{
		"name":      name,
		"headcount": count,
	})
}

func (h *OrgHandler) Employees(c *gin.Context) {
	name := c.Param("name")
	names, err := h.orgService.Employees(name)
	if err != nil {
		respondError(c, "Employees", err)
		return
	}
	respondOK(c, http.StatusOK, "Employees retrieved successfully", gin.H{
		"name":      name,
		"employees": names,
	})
}

// Details 以纯文本返回 ShowDetails 的输出，每行一个节点。
func (h *OrgHandler) Details(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.orgService.Details(c.Param("name"), &buf); err != nil {
		respondError(c, "Details", err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// SetSalary 修改员工薪资（管理员）。
func (h *OrgHandler) SetSalary(c *gin.Context) {
	var req SetSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, "SetSalary", err)
		return
	}

	view, err := h.orgService.SetSalary(c.Param("name"), *req.Salary)
	h.record("set_salary", err)
	if err != nil {
		respondError(c, "SetSalary", err)
		return
	}
	h.audit(c, "SetSalary", "employee", view.Name, "salary", *req.Salary)
	respondOK(c, http.StatusOK, "Salary updated successfully", view)
}

// AddMember 向部门末尾追加成员（管理员）。
func (h *OrgHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, "AddMember", err)
		return
	}

	view, err := h.orgService.AddMember(c.Param("name"), service.MemberInput{
		Kind:     req.Kind,
		Name:     req.Name,
		Position: req.Position,
		Amount:   req.Amount,
	})
	h.record("add_member", err)
	if err != nil {
		respondError(c, "AddMember", err)
		return
	}
	h.audit(c, "AddMember", "department", c.Param("name"), "member", view.Name)
	respondOK(c, http.StatusCreated, "Org member added successfully", view)
}

// RemoveMember 移除部门下第一个同名的直接成员（管理员）。
func (h *OrgHandler) RemoveMember(c *gin.Context) {
	department, member := c.Param("name"), c.Param("member")
	err := h.orgService.RemoveMember(department, member)
	h.record("remove_member", err)
	if err != nil {
		respondError(c, "RemoveMember", err)
		return
	}
	h.audit(c, "RemoveMember", "department", department, "member", member)
	respondOK(c, http.StatusOK, "Org member removed successfully", nil)
}

// audit 记录是哪个管理员做的修改。
func (h *OrgHandler) audit(c *gin.Context, op string, keysAndValues ...any) {
	operator := ""
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		operator = claims.Username
	}
	log.Infow("Org tree changed", append([]any{"op", op, "operator", operator}, keysAndValues...)...)
}
