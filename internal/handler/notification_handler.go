package handler

import (
	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(s *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.service.List(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkAsRead(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已标记为已读", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(jwt.GetCaller(c)); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "全部标记为已读", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
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
