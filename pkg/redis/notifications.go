package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification 通知事件
// 目前只有好友请求被接受一种类型，Payload 携带对端用户的展示信息
type Notification struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	UserID    uint                   `json:"user_id"` // 通知接收者
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// 通知事件类型
const (
	NotificationFriendRequestAccepted = "friend-request-accepted"
)

// 通知相关常量
const (
	PendingNotificationsKeyPrefix = "fittrack:notifications:" // 用户待取通知列表key前缀
	NotificationChannel           = "fittrack:events"         // 通知事件广播频道
	PendingNotificationsTTL       = 7 * 24 * time.Hour        // 待取通知7天过期
	MaxPendingNotifications       = 100                       // 每个用户最多保留的待取通知数
)

// NewNotification 构建一条通知事件
func NewNotification(notificationType string, userID uint, payload map[string]interface{}) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		Type:      notificationType,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// AddPendingNotification 把通知加入用户的待取列表（用户不在线时）
func AddPendingNotification(userID uint, notification *Notification) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingNotificationsKeyPrefix, userID)

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("序列化通知失败: %w", err)
	}

	// LPUSH到列表头部（最新的在前面），并截断到上限
	if err := client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("添加待取通知失败: %w", err)
	}
	if err := client.LTrim(ctx, key, 0, MaxPendingNotifications-1).Err(); err != nil {
		return fmt.Errorf("截断待取通知失败: %w", err)
	}
	if err := client.Expire(ctx, key, PendingNotificationsTTL).Err(); err != nil {
		return fmt.Errorf("设置待取通知TTL失败: %w", err)
	}

	return nil
}

// GetPendingNotifications 获取用户的待取通知（最多limit条，最新的在前）
func GetPendingNotifications(userID uint, limit int) ([]*Notification, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingNotificationsKeyPrefix, userID)

	items, err := client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取待取通知失败: %w", err)
	}

	notifications := make([]*Notification, 0, len(items))
	for _, item := range items {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

// ClearPendingNotifications 清空用户的待取通知（推送完成后调用）
func ClearPendingNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	key := fmt.Sprintf("%s%d", PendingNotificationsKeyPrefix, userID)
	return client.Del(ctx, key).Err()
}

// PublishNotification 把通知事件广播到事件频道（供其他进程订阅）
func PublishNotification(notification *Notification) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("序列化通知失败: %w", err)
	}

	return client.Publish(ctx, NotificationChannel, data).Err()
}
