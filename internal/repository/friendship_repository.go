package repository

import (
	"errors"

	"fittrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipRepository 好友关系数据仓储
// 所有读写都先经过 model.CanonicalPair 规范化，表中一条边只有一行
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建FriendshipRepository实例
func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// AddEdge 插入好友边，已存在时为无操作（幂等）
func (r *FriendshipRepository) AddEdge(userA, userB uint) error {
	one, two := model.CanonicalPair(userA, userB)
	edge := &model.Friendship{UserOneID: one, UserTwoID: two}
	// 依赖 (user_one_id, user_two_id) 唯一索引，冲突时静默跳过
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
}

// HasEdge 判断两个用户之间是否存在好友边
func (r *FriendshipRepository) HasEdge(userA, userB uint) (bool, error) {
	one, two := model.CanonicalPair(userA, userB)
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("user_one_id = ? AND user_two_id = ?", one, two).
		Count(&count).Error
	return count > 0, err
}

// GetByID 根据边ID获取好友关系
func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListEdges 列出触及某用户的全部好友边，最新的在前
func (r *FriendshipRepository) ListEdges(userID uint) ([]*model.Friendship, error) {
	var edges []*model.Friendship
	err := r.db.
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&edges).Error
	return edges, err
}

// ListFriendIDs 列出某用户所有好友的用户ID
func (r *FriendshipRepository) ListFriendIDs(userID uint) ([]uint, error) {
	edges, err := r.ListEdges(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherUser(userID))
	}
	return ids, nil
}

// Delete 删除好友边
// 重复删除返回 model.ErrNotFound，便于上层实现幂等语义
func (r *FriendshipRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Friendship{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
