package service

import "errors"

// 领域错误，由 handler 层统一翻译成响应码。
// 错误信息会直接返回给前端，不要带内部细节。
var (
	// ErrValidation 参数不合法（包括用户名重复）
	ErrValidation = errors.New("参数不合法")
	// ErrDuplicateUsername 用户名已存在
	ErrDuplicateUsername = errors.New("用户名已存在")
	// ErrAuthentication 用户名或密码错误
	ErrAuthentication = errors.New("用户名或密码错误")
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrForeignKey 引用的用户不存在
	ErrForeignKey = errors.New("关联的用户不存在")
	// ErrForbidden 不能操作别人的数据
	ErrForbidden = errors.New("无权操作该数据")
	// ErrDateRange 结束日期早于开始日期
	ErrDateRange = errors.New("结束日期不能早于开始日期")
)
