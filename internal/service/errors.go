package service

import "errors"

// 哨兵错误：对外统一语义，Handler 通过 errors.Is 映射为 HTTP 状态码。
var (
	// ErrInvalidInput 参数缺失或取值非法
	ErrInvalidInput = errors.New("invalid input")
	// ErrNodeNotFound 按名称找不到节点（先序遍历第一个同名节点）
	ErrNodeNotFound = errors.New("org node not found")
	// ErrNotDepartment 目标节点不是部门，无法挂载或移除下级
	ErrNotDepartment = errors.New("org node is not a department")
	// ErrNotEmployee 目标节点不是正式员工，没有薪资可改
	ErrNotEmployee = errors.New("org node is not an employee")
	// ErrCycle 挂载后会形成环
	ErrCycle = errors.New("org node would create a cycle")

	// ErrInvalidCredentials 用户名或密码错误（统一返回，防止用户枚举）
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized 令牌无效、过期、类型不符或已注销
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBlacklistUnavailable 未配置 Redis，无法注销令牌
	ErrBlacklistUnavailable = errors.New("token blacklist unavailable")
	// ErrInternal 内部错误（对外不暴露细节）
	ErrInternal = errors.New("internal server error")
)
