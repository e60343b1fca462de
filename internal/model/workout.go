package model

import (
	"time"

	"gorm.io/gorm"
)

// Workout 训练记录
// 一次训练包含若干训练项（WorkoutActivity）
// StartTime 是动态流的排序键

type Workout struct {
	ID         uint              `gorm:"primaryKey"`
	UserID     uint              `gorm:"not null;index;comment:所属用户ID"`
	Title      string            `gorm:"type:varchar(128);not null;comment:训练标题"`
	Note       string            `gorm:"type:text;comment:备注"`
	StartTime  time.Time         `gorm:"not null;index;comment:训练开始时间"`
	Activities []WorkoutActivity `gorm:"foreignKey:WorkoutID"`
	CreatedAt  time.Time         `gorm:"comment:创建时间"`
	UpdatedAt  time.Time         `gorm:"comment:更新时间"`
	DeletedAt  gorm.DeletedAt    `gorm:"index"`
}

func (Workout) TableName() string { return "workout" }

// WorkoutActivity 单个训练项
// 动态流中每个训练项单独成一条记录

type WorkoutActivity struct {
	ID          uint   `gorm:"primaryKey"`
	WorkoutID   uint   `gorm:"not null;index;comment:所属训练ID"`
	Name        string `gorm:"type:varchar(128);not null;comment:训练项名称"`
	DurationMin int    `gorm:"comment:时长(分钟)"`
	Calories    int    `gorm:"comment:消耗卡路里"`
}

func (WorkoutActivity) TableName() string { return "workout_activity" }
