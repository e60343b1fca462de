package websocket

import (
	"sync"
	"testing"

	"fittrack/pkg/redis"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *Manager {
	return &Manager{clients: make(map[uint]*Client)}
}

func TestSendNotificationDeliversToOnlineClient(t *testing.T) {
	m := newTestManager()
	client := &Client{UserID: 1, Send: make(chan []byte, 1)}
	m.AddClient(1, client)
	assert.True(t, m.IsOnline(1))

	n := redis.NewNotification(redis.NotificationFriendRequestAccepted, 2, map[string]interface{}{"user_id": 2})
	m.SendNotification(1, n)

	select {
	case data := <-client.Send:
		assert.NotEmpty(t, data)
	default:
		t.Fatal("expected a delivered notification")
	}
}

func TestRemoveClientTakesUserOffline(t *testing.T) {
	m := newTestManager()
	m.AddClient(1, &Client{UserID: 1, Send: make(chan []byte, 1)})
	m.RemoveClient(1)
	assert.False(t, m.IsOnline(1))

	// removing twice is harmless
	m.RemoveClient(1)
}

// Sending and disconnecting race under load; neither side may touch the
// other's channel after close.
func TestSendNotificationConcurrentWithRemoveClient(t *testing.T) {
	n := redis.NewNotification(redis.NotificationFriendRequestAccepted, 2, nil)
	for i := 0; i < 200; i++ {
		m := newTestManager()
		m.AddClient(1, &Client{UserID: 1, Send: make(chan []byte, 1)})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.SendNotification(1, n)
		}()
		go func() {
			defer wg.Done()
			m.RemoveClient(1)
		}()
		wg.Wait()
	}
}
