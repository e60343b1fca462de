package model

import (
	"time"
)

// 好友请求状态
// pending 为唯一可变状态，accepted/declined 为终态
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// FriendRequest 好友请求
// 有向记录：RequesterID 发起，TargetID 处理
// 约束：同一无序对之间最多存在一条 pending 请求（双向检查）
// 请求者撤回时整行删除（硬删除），不保留状态

type FriendRequest struct {
	ID          uint      `gorm:"primaryKey"`
	RequesterID uint      `gorm:"not null;index:idx_request_pair;comment:请求发起者ID"`
	TargetID    uint      `gorm:"not null;index:idx_request_pair;index:idx_request_target_status;comment:请求接收者ID"`
	Status      string    `gorm:"type:varchar(32);not null;default:'pending';index:idx_request_target_status;comment:请求状态"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (FriendRequest) TableName() string { return "friend_request" }

// IsTerminal 判断请求是否已处于终态
func (r *FriendRequest) IsTerminal() bool {
	return r.Status == RequestStatusAccepted || r.Status == RequestStatusDeclined
}
