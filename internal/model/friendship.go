package model

import (
	"time"
)

// Friendship 好友关系（无向边）
// 无序对 {a,b} 以规范顺序存储：UserOneID < UserTwoID
// (user_one_id, user_two_id) 上的唯一索引保证一条边只有一行，
// 无论由哪一方发起插入或查询

type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserOneID uint      `gorm:"not null;uniqueIndex:idx_friendship_pair;comment:较小的用户ID"`
	UserTwoID uint      `gorm:"not null;uniqueIndex:idx_friendship_pair;index;comment:较大的用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Friendship) TableName() string { return "friendship" }

// CanonicalPair 把无序用户对规范化为 (小ID, 大ID)
// 插入和查询都必须经过该函数，保证同一条边只有一种存储表示
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// OtherUser 返回边上另一方的用户ID
func (f *Friendship) OtherUser(userID uint) uint {
	if f.UserOneID == userID {
		return f.UserTwoID
	}
	return f.UserOneID
}

// Involves 判断用户是否是这条边的参与方
func (f *Friendship) Involves(userID uint) bool {
	return f.UserOneID == userID || f.UserTwoID == userID
}
