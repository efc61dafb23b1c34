package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"moments/config"
	"moments/pkg/jwt"
	"moments/pkg/logger"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许跨域
	},
}

// ChatReceiver 处理客户端通过 WebSocket 发来的私信
type ChatReceiver interface {
	ReceiveChat(senderID, receiverID uint, content string) error
}

// PresenceTracker 记录用户在线状态
type PresenceTracker interface {
	SetOnline(ctx context.Context, userID uint, username string) error
	SetOffline(ctx context.Context, userID uint) error
	Refresh(ctx context.Context, userID uint) error
}

// inboundFrame 客户端发来的帧
type inboundFrame struct {
	Type       string `json:"type"`
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

// Handler /ws 端点
type Handler struct {
	manager  *Manager
	jwtSvc   *jwt.JWTService
	chat     ChatReceiver
	presence PresenceTracker
	cfg      config.WebSocketConfig
}

// NewHandler 创建WebSocket处理器，presence 可为 nil
func NewHandler(manager *Manager, jwtSvc *jwt.JWTService, chat ChatReceiver, presence PresenceTracker, cfg config.WebSocketConfig) *Handler {
	return &Handler{
		manager:  manager,
		jwtSvc:   jwtSvc,
		chat:     chat,
		presence: presence,
		cfg:      cfg,
	}
}

// ServeWS Gin路由处理函数
// 令牌从 query 参数 token 或 Sec-WebSocket-Protocol 头中读取
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}
	if token == "" {
		response.Unauthorized(c, "缺少token")
		return
	}

	caller, err := h.jwtSvc.ParseCaller(token)
	if err != nil {
		response.Unauthorized(c, "token无效或已过期")
		return
	}

	// 回显子协议，避免客户端提示 "Server sent no subprotocol"
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		logger.Warn("WebSocket升级失败", zap.Uint("user_id", caller.UserID), zap.Error(err))
		return
	}

	client := NewClient(caller.UserID, conn)
	h.manager.AddClient(client)
	h.setOnline(c.Request.Context(), caller)
	logger.Info("WebSocket连接建立", zap.Uint("user_id", caller.UserID))

	defer func() {
		h.manager.RemoveClient(client)
		// 被新连接替换时保持在线状态
		if !h.manager.IsOnline(caller.UserID) {
			h.setOffline(caller.UserID)
		}
		_ = conn.Close()
		logger.Info("WebSocket连接关闭", zap.Uint("user_id", caller.UserID))
	}()

	go h.writeLoop(client)
	h.readLoop(client)
}

// writeLoop 写协程：转发发送队列并定时发送ping心跳
func (h *Handler) writeLoop(client *Client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

// readLoop 读协程，超时未收到任何读事件则断开
func (h *Handler) readLoop(client *Client) {
	conn := client.Conn
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	})
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		h.handleFrame(client.UserID, payload)
	}
}

// handleFrame 处理单个客户端帧，无法解析或未知类型的帧直接忽略
func (h *Handler) handleFrame(userID uint, payload []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return
	}
	switch frame.Type {
	case "chat":
		if frame.ReceiverID == 0 || strings.TrimSpace(frame.Content) == "" {
			return
		}
		if err := h.chat.ReceiveChat(userID, frame.ReceiverID, frame.Content); err != nil {
			logger.Debug("WebSocket私信被丢弃",
				zap.Uint("sender_id", userID),
				zap.Uint("receiver_id", frame.ReceiverID),
				zap.Error(err),
			)
		}
	case "heartbeat":
		if h.presence != nil {
			if err := h.presence.Refresh(context.Background(), userID); err != nil {
				logger.Debug("刷新在线状态失败", zap.Uint("user_id", userID), zap.Error(err))
			}
		}
	}
}

func (h *Handler) setOnline(ctx context.Context, caller *jwt.Caller) {
	if h.presence == nil {
		return
	}
	if err := h.presence.SetOnline(ctx, caller.UserID, caller.Username); err != nil {
		logger.Warn("设置在线状态失败", zap.Uint("user_id", caller.UserID), zap.Error(err))
	}
}

func (h *Handler) setOffline(userID uint) {
	if h.presence == nil {
		return
	}
	if err := h.presence.SetOffline(context.Background(), userID); err != nil {
		logger.Warn("设置离线状态失败", zap.Uint("user_id", userID), zap.Error(err))
	}
}
