package repository

import (
	"errors"
	"time"

	"fittrack/internal/model"

	"gorm.io/gorm"
)

// WorkoutRepository 训练记录数据仓储
type WorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository 创建WorkoutRepository实例
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create 创建训练记录（训练项随主记录一起插入）
func (r *WorkoutRepository) Create(workout *model.Workout) error {
	return r.db.Create(workout).Error
}

// GetByID 根据ID获取训练记录（含训练项）
func (r *WorkoutRepository) GetByID(id uint) (*model.Workout, error) {
	var w model.Workout
	if err := r.db.Preload("Activities").First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListByOwner 列出某用户的训练记录，按开始时间倒序
func (r *WorkoutRepository) ListByOwner(userID uint, limit, offset int) ([]*model.Workout, error) {
	var workouts []*model.Workout
	err := r.db.Preload("Activities").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&workouts).Error
	return workouts, err
}

// ListByOwners 按所属用户集合批量拉取训练记录（动态流数据源）
// start/end 为可选的开始时间闭区间
func (r *WorkoutRepository) ListByOwners(ownerIDs []uint, start, end *time.Time) ([]*model.Workout, error) {
	if len(ownerIDs) == 0 {
		return []*model.Workout{}, nil
	}
	query := r.db.Preload("Activities").Where("user_id IN ?", ownerIDs)
	if start != nil {
		query = query.Where("start_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("start_time <= ?", *end)
	}
	var workouts []*model.Workout
	err := query.Find(&workouts).Error
	return workouts, err
}

// Delete 删除训练记录及其训练项
func (r *WorkoutRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&model.WorkoutActivity{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Workout{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
