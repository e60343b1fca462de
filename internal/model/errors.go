package model

import "errors"

// 领域错误哨兵值
// service 层返回这些错误（可用 fmt.Errorf("%w") 包装），handler 层通过 errors.Is 映射为HTTP状态码
var (
	ErrUnauthorized          = errors.New("unauthorized")            // 未认证
	ErrForbidden             = errors.New("forbidden")               // 已认证但无权操作该记录
	ErrNotFound              = errors.New("not found")               // 记录不存在
	ErrInvalidTarget         = errors.New("invalid target user")     // 目标用户非法（如加自己为好友）
	ErrAlreadyFriends        = errors.New("already friends")         // 双方已是好友
	ErrRequestAlreadyPending = errors.New("request already pending") // 双方之间已有待处理请求
	ErrInvalidState          = errors.New("request already handled") // 请求已处于终态
)
