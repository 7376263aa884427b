package metrics

import (
	"strconv"

	"orgchart/internal/orgchart"

	"github.com/prometheus/client_golang/prometheus"
)

// RootFunc 返回当前的组织树根节点。
type RootFunc func() *orgchart.Department

// OrgCollector 在每次抓取时遍历组织树，按部门导出预算和人数。
// 数值每次现算，与查询接口看到的结果一致。
type OrgCollector struct {
	root RootFunc

	budgetDesc    *prometheus.Desc
	headcountDesc *prometheus.Desc
}

func NewOrgCollector(root RootFunc) *OrgCollector {
	return &OrgCollector{
		root: root,
		budgetDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "department", "budget"),
			"Sum of employee salaries under the department (contractors excluded)",
			[]string{"department", "depth"}, nil,
		),
		headcountDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "department", "headcount"),
			"Number of employees and contractors under the department",
			[]string{"department", "depth"}, nil,
		),
	}
}

func (c *OrgCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.budgetDesc
	ch <- c.headcountDesc
}

func (c *OrgCollector) Collect(ch chan<- prometheus.Metric) {
	root := c.root()
	if root == nil {
		return
	}
	// 同名部门（含同一部门被挂到多处）只导出先序遍历中第一个，避免重复的标签组合。
	seen := make(map[string]struct{})
	_ = orgchart.Walk(root, func(n orgchart.Node, depth int) error {
		d, ok := n.(*orgchart.Department)
		if !ok {
			return nil
		}
		if _, dup := seen[d.Name()]; dup {
			return nil
		}
		seen[d.Name()] = struct{}{}

		depthLabel := strconv.Itoa(depth)
		ch <- prometheus.MustNewConstMetric(c.budgetDesc, prometheus.GaugeValue, float64(d.Budget()), d.Name(), depthLabel)
		ch <- prometheus.MustNewConstMetric(c.headcountDesc, prometheus.GaugeValue, float64(d.EmployeeCount()), d.Name(), depthLabel)
		return nil
	})
}
