package service

import (
	"fittrack/internal/model"
	"fittrack/pkg/redis"
	"fittrack/pkg/websocket"
)

// PushNotifier Notifier 的默认实现
// 在线用户走WebSocket直推，离线用户落Redis待取列表，事件同时广播到Redis频道
// 所有投递都是尽力而为，失败由调用方记日志后吞掉
type PushNotifier struct{}

// NewPushNotifier 创建PushNotifier实例
func NewPushNotifier() *PushNotifier {
	return &PushNotifier{}
}

// FriendRequestAccepted 投递"好友请求被接受"通知
func (n *PushNotifier) FriendRequestAccepted(recipientID uint, accepter *model.User) error {
	notification := redis.NewNotification(
		redis.NotificationFriendRequestAccepted,
		recipientID,
		map[string]interface{}{
			"user_id":      accepter.ID,
			"display_name": accepter.DisplayName(),
			"avatar":       accepter.Avatar,
		},
	)

	// 频道广播失败不阻断直推
	err := redis.PublishNotification(notification)

	websocket.GetManager().SendNotification(recipientID, notification)
	return err
}
