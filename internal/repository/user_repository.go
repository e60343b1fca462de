package repository

import (
	"errors"

	"fittrack/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByIDs 批量获取用户，结果以用户ID为键
func (r *UserRepository) GetByIDs(ids []uint) (map[uint]*model.User, error) {
	result := make(map[uint]*model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*model.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// GetByUsernameOrEmail 根据用户名或邮箱获取用户（登录用）
func (r *UserRepository) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile 更新用户资料字段
func (r *UserRepository) UpdateProfile(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// Search 按姓名/昵称/邮箱做大小写不敏感的子串匹配，排除调用者本人
// 排序交给 service 层（需要本地化比较），这里只负责候选集和上限
func (r *UserRepository) Search(excludeUserID uint, query string, limit int) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + query + "%"
	err := r.db.
		Where("id <> ?", excludeUserID).
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(nickname) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}
