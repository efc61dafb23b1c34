package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"moments/config"
	"moments/internal/model"
	"moments/pkg/jwt"
	"moments/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReplacesConnection(t *testing.T) {
	m := NewManager()
	first := NewClient(1, nil)
	second := NewClient(1, nil)

	m.AddClient(first)
	m.AddClient(second)
	assert.Equal(t, 1, m.OnlineCount())

	// 旧连接的发送队列被关闭
	_, ok := <-first.Send
	assert.False(t, ok)

	// 旧连接退出时不影响新连接
	m.RemoveClient(first)
	assert.True(t, m.IsOnline(1))

	m.RemoveClient(second)
	assert.False(t, m.IsOnline(1))
}

func TestSendToOfflineUserIsDropped(t *testing.T) {
	m := NewManager()
	delivered, err := m.SendToUser(42, []byte("hi"))
	assert.False(t, delivered)
	assert.NoError(t, err)
	assert.NoError(t, m.PushNotification(42, &model.Notification{ID: 1}))
}

func TestSendBufferFull(t *testing.T) {
	m := NewManager()
	client := &Client{UserID: 1, Send: make(chan []byte, 1)}
	m.AddClient(client)

	_, err := m.SendToUser(1, []byte("a"))
	require.NoError(t, err)
	delivered, err := m.SendToUser(1, []byte("b"))
	assert.True(t, delivered)
	assert.ErrorIs(t, err, ErrSendBufferFull)
}

func TestPushChatFrame(t *testing.T) {
	m := NewManager()
	client := NewClient(2, nil)
	m.AddClient(client)

	msg := &model.Message{ID: 7, SenderID: 1, ReceiverID: 2, Content: "hello", CreatedAt: time.Unix(1700000000, 0)}
	require.NoError(t, m.PushChat(2, msg))

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(<-client.Send, &frame))
	assert.Equal(t, "chat", frame["type"])
	assert.EqualValues(t, 1, frame["sender_id"])
	assert.Equal(t, "hello", frame["content"])
	assert.EqualValues(t, 1700000000, frame["timestamp"])
}

type recordingChat struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func (r *recordingChat) ReceiveChat(senderID, receiverID uint, content string) error {
	r.mu.Lock()
	r.calls = append(r.calls, content)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func TestServeWS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.InitNop()

	jwtSvc := jwt.NewJWTService(config.JWTConfig{Secret: "ws-secret", ExpireTime: time.Hour, Issuer: "moments-test"})
	manager := NewManager()
	chat := &recordingChat{done: make(chan struct{}, 1)}
	h := NewHandler(manager, jwtSvc, chat, nil, config.WebSocketConfig{PingInterval: time.Second, ReadTimeout: 5 * time.Second})

	router := gin.New()
	router.GET("/ws", h.ServeWS)
	srv := httptest.NewServer(router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	// 缺少 token
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	token, err := jwtSvc.GenerateToken(5, "alice", model.RoleUser)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.IsOnline(5) }, time.Second, 10*time.Millisecond)

	require.NoError(t, manager.PushNotification(5, &model.Notification{ID: 3, Type: model.NotificationComment}))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"notification"`)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "chat", "receiver_id": 6, "content": "hi"}))
	select {
	case <-chat.done:
	case <-time.After(2 * time.Second):
		t.Fatal("chat frame not received")
	}
	chat.mu.Lock()
	assert.Equal(t, []string{"hi"}, chat.calls)
	chat.mu.Unlock()

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !manager.IsOnline(5) }, 2*time.Second, 10*time.Millisecond)
}
