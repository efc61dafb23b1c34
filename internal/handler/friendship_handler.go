package handler

import (
	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	service *service.FriendshipService
}

func NewFriendshipHandler(s *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{service: s}
}

// SendRequest 发送好友请求，已有关系时返回现有记录
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var r struct {
		FriendID uint `json:"friend_id"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.service.SendRequest(jwt.GetCaller(c).ID(), r.FriendID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, f)
}

// Accept 接受好友请求
func (h *FriendshipHandler) Accept(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	f, err := h.service.Accept(id, jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, f)
}

// Reject 拒绝好友请求
func (h *FriendshipHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	f, err := h.service.Reject(id, jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, f)
}

// List 当前用户参与的全部关系
func (h *FriendshipHandler) List(c *gin.Context) {
	list, err := h.service.ListByUser(jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// Friends 当前用户的好友ID列表
func (h *FriendshipHandler) Friends(c *gin.Context) {
	ids, err := h.service.ListFriends(jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ids)
}

// Pending 待处理的好友请求
func (h *FriendshipHandler) Pending(c *gin.Context) {
	list, err := h.service.ListPendingIncoming(jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// Delete 删除当前用户发起的、指向 friendId 的关系
func (h *FriendshipHandler) Delete(c *gin.Context) {
	friendID, ok := paramID(c, "friendId")
	if !ok {
		return
	}
	if err := h.service.Delete(jwt.GetCaller(c).ID(), friendID); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Check 两个用户是否为好友
func (h *FriendshipHandler) Check(c *gin.Context) {
	userID, ok := queryID(c, "userId")
	if !ok {
		return
	}
	friendID, ok := queryID(c, "friendId")
	if !ok {
		return
	}
	response.Success(c, h.service.AreFriends(userID, friendID))
}
