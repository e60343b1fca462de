package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"fittrack/pkg/redis"

	"github.com/gorilla/websocket"
)

// Client 代表一个WebSocket连接的用户
// UserID: 用户ID
// Conn: WebSocket连接
// Send: 发送消息的通道

type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager 管理所有在线用户的WebSocket连接
// 用户在线时通知直接推送，不在线时落到Redis待取列表

type Manager struct {
	clients map[uint]*Client // 在线用户
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[uint]*Client),
}

// GetManager 获取全局WebSocket管理器
func GetManager() *Manager {
	return manager
}

// AddClient 添加新连接
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[userID] = client

	// 推送Redis中积压的待取通知
	go m.pushPendingNotifications(userID, client)
}

// RemoveClient 移除连接
func (m *Manager) RemoveClient(userID uint) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendNotification 推送通知给指定用户
// 若用户不在线则存入Redis待取列表，下次连接时补推
func (m *Manager) SendNotification(userID uint, notification *redis.Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		return
	}

	// 读锁持续到发送结束：RemoveClient在写锁内close(Send)，
	// 松开锁再发会撞上已关闭的通道
	m.lock.RLock()
	client, ok := m.clients[userID]
	if ok {
		// 在线，直接推送
		select {
		case client.Send <- data:
		default:
			// 发送失败，可能连接已断开
		}
	}
	m.lock.RUnlock()

	if !ok {
		// 不在线，存储到Redis待取列表
		go func() {
			_ = redis.AddPendingNotification(userID, notification)
		}()
	}
}

// IsOnline 判断用户是否在线
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// pushPendingNotifications 连接建立后补推积压的待取通知
func (m *Manager) pushPendingNotifications(userID uint, client *Client) {
	notifications, err := redis.GetPendingNotifications(userID, 50) // 最多补推50条
	if err != nil {
		return
	}

	for _, notification := range notifications {
		data, err := json.Marshal(notification)
		if err != nil {
			continue
		}

		select {
		case client.Send <- data:
		case <-time.After(5 * time.Second):
			// 发送超时，停止推送
			return
		}
	}

	// 推送完成后清空待取列表
	_ = redis.ClearPendingNotifications(userID)
}
