package handler

import (
	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageHandler 私信处理器
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler 创建MessageHandler实例
func NewMessageHandler(s *service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// Send 发送私信，非好友返回400
func (h *MessageHandler) Send(c *gin.Context) {
	var r struct {
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.service.Send(jwt.GetCaller(c).ID(), r.ReceiverID, r.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "发送成功", msg)
}

// History 与好友的聊天记录
func (h *MessageHandler) History(c *gin.Context) {
	friendID, ok := queryID(c, "friendId")
	if !ok {
		return
	}
	list, err := h.service.History(jwt.GetCaller(c).ID(), friendID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// Unread 未读私信
func (h *MessageHandler) Unread(c *gin.Context) {
	list, err := h.service.Unread(jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// MarkAsRead 将某个发送者的私信标记为已读
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	senderID, ok := queryID(c, "senderId")
	if !ok {
		return
	}
	n, err := h.service.MarkAsRead(jwt.GetCaller(c).ID(), senderID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": n})
}

// Delete 删除自己发送的私信
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
