package repository

import (
	"errors"

	"fittrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRequestRepository 好友请求数据仓储
// 生命周期相关的写操作都在单个事务内完成，并发下的约束检查靠行锁保证
type FriendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository 创建FriendRequestRepository实例
func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// GetByID 根据ID获取好友请求
func (r *FriendRequestRepository) GetByID(id uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// CreatePending 创建一条 pending 请求
// 查重（双向 pending、已是好友）和插入在同一事务内完成，
// 避免两个用户同时互发请求时产生重复记录
func (r *FriendRequestRepository) CreatePending(requesterID, targetID uint) (*model.FriendRequest, error) {
	req := &model.FriendRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      model.RequestStatusPending,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 双向检查 pending 请求，加锁防止并发互发
		var pendingCount int64
		if err := tx.Model(&model.FriendRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("((requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)) AND status = ?",
				requesterID, targetID, targetID, requesterID, model.RequestStatusPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return model.ErrRequestAlreadyPending
		}

		// 已是好友则不允许再发请求
		one, two := model.CanonicalPair(requesterID, targetID)
		var edgeCount int64
		if err := tx.Model(&model.Friendship{}).
			Where("user_one_id = ? AND user_two_id = ?", one, two).
			Count(&edgeCount).Error; err != nil {
			return err
		}
		if edgeCount > 0 {
			return model.ErrAlreadyFriends
		}

		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListPendingIncoming 列出某用户收到的 pending 请求，最新的在前
func (r *FriendRequestRepository) ListPendingIncoming(userID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.
		Where("target_id = ? AND status = ?", userID, model.RequestStatusPending).
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// ListPendingOutgoing 列出某用户发出的 pending 请求，最新的在前
func (r *FriendRequestRepository) ListPendingOutgoing(userID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.
		Where("requester_id = ? AND status = ?", userID, model.RequestStatusPending).
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// Accept 接受请求：状态置为 accepted 并插入好友边，两步在同一事务内
// 请求已是 accepted 时直接返回成功（客户端重试造成的双重接受是无害空操作），
// 第二个返回值标识本次调用是否真的完成了 pending→accepted 流转，重试时为 false
// 请求已是 declined 时返回 model.ErrInvalidState
func (r *FriendRequestRepository) Accept(id uint) (*model.FriendRequest, bool, error) {
	var req model.FriendRequest
	transitioned := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		switch req.Status {
		case model.RequestStatusAccepted:
			// 重试的接受，不报错也不重复建边（边插入本身也幂等）
			return nil
		case model.RequestStatusDeclined:
			return model.ErrInvalidState
		}

		if err := tx.Model(&req).Update("status", model.RequestStatusAccepted).Error; err != nil {
			return err
		}
		req.Status = model.RequestStatusAccepted
		transitioned = true

		one, two := model.CanonicalPair(req.RequesterID, req.TargetID)
		edge := &model.Friendship{UserOneID: one, UserTwoID: two}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &req, transitioned, nil
}

// Decline 拒绝请求：状态置为 declined，不建边
// 终态请求不能再拒绝，返回 model.ErrInvalidState；只有重试的接受享有空操作豁免
func (r *FriendRequestRepository) Decline(id uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		if req.IsTerminal() {
			return model.ErrInvalidState
		}

		if err := tx.Model(&req).Update("status", model.RequestStatusDeclined).Error; err != nil {
			return err
		}
		req.Status = model.RequestStatusDeclined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Delete 删除请求记录（撤回时整行移除，之后可重新发起请求）
// 重复删除返回 model.ErrNotFound
func (r *FriendRequestRepository) Delete(id uint) error {
	result := r.db.Delete(&model.FriendRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
