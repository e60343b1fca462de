package service

import (
	"fmt"

	"fittrack/internal/model"
	"fittrack/pkg/logger"
	"fittrack/pkg/redis"

	"go.uber.org/zap"
)

// FriendRequestStore 好友请求存储接口，由 repository.FriendRequestRepository 实现
// CreatePending/Accept/Decline 内部保证各自的原子性
type FriendRequestStore interface {
	GetByID(id uint) (*model.FriendRequest, error)
	CreatePending(requesterID, targetID uint) (*model.FriendRequest, error)
	ListPendingIncoming(userID uint) ([]*model.FriendRequest, error)
	ListPendingOutgoing(userID uint) ([]*model.FriendRequest, error)
	// Accept 的第二个返回值标识是否真的发生了 pending→accepted 流转
	// （重试的接受返回 false），调用方据此决定要不要失效缓存和发通知
	Accept(id uint) (*model.FriendRequest, bool, error)
	Decline(id uint) (*model.FriendRequest, error)
	Delete(id uint) error
}

// FriendshipStore 好友关系存储接口，由 repository.FriendshipRepository 实现
// 只声明 FriendService 用到的读和删：建边走 FriendRequestStore.Accept 的事务
type FriendshipStore interface {
	GetByID(id uint) (*model.Friendship, error)
	ListEdges(userID uint) ([]*model.Friendship, error)
	Delete(id uint) error
}

// Notifier 通知投递接口
// 投递失败不影响触发它的业务操作
type Notifier interface {
	FriendRequestAccepted(recipientID uint, accepter *model.User) error
}

// 请求响应动作
const (
	RequestActionAccept  = "accept"
	RequestActionDecline = "decline"
)

// FriendService 好友服务：请求生命周期 + 好友关系
type FriendService struct {
	requests    FriendRequestStore
	friendships FriendshipStore
	users       UserStore
	notifier    Notifier
}

// NewFriendService 创建FriendService实例
func NewFriendService(requests FriendRequestStore, friendships FriendshipStore, users UserStore, notifier Notifier) *FriendService {
	return &FriendService{
		requests:    requests,
		friendships: friendships,
		users:       users,
		notifier:    notifier,
	}
}

// CreateRequest 发起好友请求
// 失败情形：目标是自己（ErrInvalidTarget）、目标不存在（ErrNotFound）、
// 已是好友（ErrAlreadyFriends）、双向已有 pending 请求（ErrRequestAlreadyPending）
func (s *FriendService) CreateRequest(actorID, targetID uint) (*model.FriendRequest, error) {
	if actorID == targetID {
		return nil, model.ErrInvalidTarget
	}
	if _, err := s.users.GetByID(targetID); err != nil {
		return nil, err
	}
	// 查重和插入在存储层同一事务内完成
	return s.requests.CreatePending(actorID, targetID)
}

// RequestWithUser 好友请求及对端用户
type RequestWithUser struct {
	Request *model.FriendRequest
	User    *model.User // incoming 时为发起者，outgoing 时为接收者
}

// ListRequests 列出某用户收到和发出的 pending 请求，均为最新在前
// 每条请求附带对端用户信息
func (s *FriendService) ListRequests(userID uint) (incoming, outgoing []*RequestWithUser, err error) {
	in, err := s.requests.ListPendingIncoming(userID)
	if err != nil {
		return nil, nil, err
	}
	out, err := s.requests.ListPendingOutgoing(userID)
	if err != nil {
		return nil, nil, err
	}

	// 批量取对端用户
	ids := make([]uint, 0, len(in)+len(out))
	for _, r := range in {
		ids = append(ids, r.RequesterID)
	}
	for _, r := range out {
		ids = append(ids, r.TargetID)
	}
	users, err := s.users.GetByIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	incoming = make([]*RequestWithUser, 0, len(in))
	for _, r := range in {
		incoming = append(incoming, &RequestWithUser{Request: r, User: users[r.RequesterID]})
	}
	outgoing = make([]*RequestWithUser, 0, len(out))
	for _, r := range out {
		outgoing = append(outgoing, &RequestWithUser{Request: r, User: users[r.TargetID]})
	}
	return incoming, outgoing, nil
}

// RespondToRequest 接受或拒绝好友请求
// 只有请求接收者可以处理（否则 ErrForbidden），发起者不能给自己的请求放行
// 接受时原子地建好友边并在事务提交后发出通知，通知失败不回滚
func (s *FriendService) RespondToRequest(actorID, requestID uint, action string) (*model.FriendRequest, error) {
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.TargetID != actorID {
		return nil, model.ErrForbidden
	}

	switch action {
	case RequestActionAccept:
		req, transitioned, err := s.requests.Accept(requestID)
		if err != nil {
			return nil, err
		}
		if !transitioned {
			// 重试的接受：存储层没有实际流转，不重复失效缓存或发通知
			return req, nil
		}

		// 双方的动态流都因新好友而变化
		_ = redis.InvalidateFeedCache(req.RequesterID, req.TargetID)

		// 通知发起者；投递失败只记日志，不影响已完成的接受
		accepter, uerr := s.users.GetByID(req.TargetID)
		if uerr == nil {
			if nerr := s.notifier.FriendRequestAccepted(req.RequesterID, accepter); nerr != nil {
				logger.Warn("好友接受通知投递失败",
					zap.Uint("request_id", req.ID),
					zap.Uint("recipient_id", req.RequesterID),
					zap.Error(nerr),
				)
			}
		}
		return req, nil

	case RequestActionDecline:
		return s.requests.Decline(requestID)

	default:
		return nil, fmt.Errorf("unknown action: %s", action)
	}
}

// CancelRequest 发起者撤回自己的 pending 请求
// 整行删除而非状态流转，之后同一对用户可以重新发起请求
func (s *FriendService) CancelRequest(actorID, requestID uint) error {
	req, err := s.requests.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.RequesterID != actorID {
		return model.ErrForbidden
	}
	if req.IsTerminal() {
		return model.ErrInvalidState
	}
	return s.requests.Delete(requestID)
}

// FriendEdge 好友边及对端用户
type FriendEdge struct {
	Friendship *model.Friendship
	User       *model.User
}

// ListFriends 列出某用户的好友，最新建立的在前
// 每条附带边ID（解除好友时用）和对端用户信息
func (s *FriendService) ListFriends(userID uint) ([]*FriendEdge, error) {
	edges, err := s.friendships.ListEdges(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherUser(userID))
	}
	users, err := s.users.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	friends := make([]*FriendEdge, 0, len(edges))
	for _, e := range edges {
		friends = append(friends, &FriendEdge{Friendship: e, User: users[e.OtherUser(userID)]})
	}
	return friends, nil
}

// Unfriend 解除好友关系
// 边的任意一方都可单方面删除，不需要对方确认
// 不涉及此边的用户操作返回 ErrForbidden，重复删除返回 ErrNotFound
func (s *FriendService) Unfriend(actorID, friendshipID uint) error {
	f, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return err
	}
	if !f.Involves(actorID) {
		return model.ErrForbidden
	}
	if err := s.friendships.Delete(friendshipID); err != nil {
		return err
	}

	_ = redis.InvalidateFeedCache(f.UserOneID, f.UserTwoID)
	return nil
}
