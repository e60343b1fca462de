package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 昵称显示偏好取值
const (
	DisplayPreferenceFirstName = "first_name" // 显示真实姓名
	DisplayPreferenceNickname  = "nickname"   // 显示昵称
)

// User 用户模型
// 索引与唯一约束：用户名唯一、邮箱唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文
// DisplayPreference 决定对外展示姓名还是昵称

type User struct {
	ID                uint           `gorm:"primaryKey"`
	Username          string         `gorm:"type:varchar(64);not null;uniqueIndex;comment:用户名"`
	Email             string         `gorm:"type:varchar(128);uniqueIndex;comment:邮箱"`
	PasswordHash      string         `gorm:"type:varchar(255);not null;comment:密码哈希"`
	FirstName         string         `gorm:"type:varchar(64);comment:名"`
	LastName          string         `gorm:"type:varchar(64);comment:姓"`
	Nickname          string         `gorm:"type:varchar(64);comment:昵称"`
	DisplayPreference string         `gorm:"type:varchar(32);default:'first_name';comment:展示偏好"`
	Avatar            string         `gorm:"type:varchar(255);comment:头像URL"`
	CreatedAt         time.Time      `gorm:"comment:创建时间"`
	UpdatedAt         time.Time      `gorm:"comment:更新时间"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }

// DisplayName 按展示偏好解析对外显示的名字
// 偏好为昵称且昵称非空时用昵称，否则用姓名，姓名为空时退回用户名
func (u *User) DisplayName() string {
	if u.DisplayPreference == DisplayPreferenceNickname && u.Nickname != "" {
		return u.Nickname
	}
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return u.Username
}
