package handler

import (
	"context"

	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/redis"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// OnlineLister 查询在线用户
type OnlineLister interface {
	OnlineUsers(ctx context.Context) ([]redis.PresenceData, error)
}

type UserHandler struct {
	service  *service.UserService
	presence OnlineLister
}

// NewUserHandler 创建用户处理器，presence 为 nil 时在线列表为空
func NewUserHandler(s *service.UserService, presence OnlineLister) *UserHandler {
	return &UserHandler{service: s, presence: presence}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	var r struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Register(r.Username, r.Email, r.Nickname, r.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册成功", &response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	var r struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登录成功", &response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// GetProfile 获取当前用户资料
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(jwt.GetCaller(c).ID())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// UpdateProfile 更新当前用户资料，未提交的字段保持不变
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var r struct {
		Nickname   *string `json:"nickname"`
		Email      *string `json:"email"`
		Avatar     *string `json:"avatar"`
		Background *string `json:"background"`
		Bio        *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.service.UpdateProfile(jwt.GetCaller(c), service.ProfileInput{
		Nickname:   r.Nickname,
		Email:      r.Email,
		Avatar:     r.Avatar,
		Background: r.Background,
		Bio:        r.Bio,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "资料已更新", response.FilterUserInfo(user))
}

// GetUser 查看其他用户的公开资料
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetProfile(id)
	if err != nil {
		handleError(c, err)
		return
	}
	info := response.FilterUserInfo(user)
	info.Email = ""
	response.Success(c, info)
}

// OnlineUsers 获取在线用户列表
func (h *UserHandler) OnlineUsers(c *gin.Context) {
	if h.presence == nil {
		response.Success(c, []redis.PresenceData{})
		return
	}
	users, err := h.presence.OnlineUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}
