package websocket

import (
	"encoding/json"
	"errors"
	"sync"

	"moments/internal/model"

	"github.com/gorilla/websocket"
)

// ErrSendBufferFull 客户端发送缓冲区已满，消息被丢弃
var ErrSendBufferFull = errors.New("websocket send buffer full")

// Client 代表一个WebSocket连接的用户
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient 创建客户端，发送缓冲区大小为 256
func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
}

// Manager 管理所有在线用户的WebSocket连接
// 每个用户只保留最近建立的一个连接；不在线的用户不保存任何待投递消息
type Manager struct {
	clients map[uint]*Client
	lock    sync.RWMutex
}

// NewManager 创建连接管理器
func NewManager() *Manager {
	return &Manager{clients: make(map[uint]*Client)}
}

// AddClient 添加新连接，替换该用户已有的连接
func (m *Manager) AddClient(client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[client.UserID]; ok && old != client {
		close(old.Send)
	}
	m.clients[client.UserID] = client
}

// RemoveClient 移除连接；若该用户已被新连接替换则不做处理
func (m *Manager) RemoveClient(client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[client.UserID]; ok && c == client {
		close(c.Send)
		delete(m.clients, client.UserID)
	}
}

// SendToUser 推送原始消息给指定用户，用户不在线时返回 false
func (m *Manager) SendToUser(userID uint, msg []byte) (bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		return false, nil
	}
	select {
	case client.Send <- msg:
		return true, nil
	default:
		return true, ErrSendBufferFull
	}
}

// IsOnline 判断用户是否在线
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// OnlineCount 当前在线连接数
func (m *Manager) OnlineCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.clients)
}

// PushNotification 实时推送通知，用户不在线时直接忽略
func (m *Manager) PushNotification(userID uint, n *model.Notification) error {
	return m.pushJSON(userID, map[string]interface{}{
		"type": "notification",
		"data": n,
	})
}

// PushChat 实时推送私信给接收者
func (m *Manager) PushChat(userID uint, msg *model.Message) error {
	return m.pushJSON(userID, map[string]interface{}{
		"type":        "chat",
		"id":          msg.ID,
		"sender_id":   msg.SenderID,
		"receiver_id": msg.ReceiverID,
		"content":     msg.Content,
		"timestamp":   msg.CreatedAt.Unix(),
	})
}

func (m *Manager) pushJSON(userID uint, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = m.SendToUser(userID, data)
	return err
}
