package handler

import (
	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端接口，路由组上已挂载管理员校验，服务层仍会再次校验
type AdminHandler struct {
	users       *service.UserService
	posts       *service.PostService
	comments    *service.CommentService
	friendships *service.FriendshipService
}

func NewAdminHandler(users *service.UserService, posts *service.PostService, comments *service.CommentService, friendships *service.FriendshipService) *AdminHandler {
	return &AdminHandler{users: users, posts: posts, comments: comments, friendships: friendships}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, response.FilterUserList(users))
}

// CreateUser 创建用户，未填写密码时使用默认密码
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var r struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.AdminCreate(jwt.GetCaller(c), r.Username, r.Email, r.Nickname, r.Password, r.Role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, response.FilterUserInfo(user))
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var r struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.UpdateRole(jwt.GetCaller(c), id, r.Role); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "角色已更新", nil)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.users.ResetPassword(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "密码已重置", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.AdminList(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, posts)
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.posts.Delete(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) ListComments(c *gin.Context) {
	list, err := h.comments.AdminList(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Delete(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) ListFriendships(c *gin.Context) {
	list, err := h.friendships.ListAll(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *AdminHandler) CreateFriendship(c *gin.Context) {
	var r struct {
		UserID   uint   `json:"user_id" binding:"required"`
		FriendID uint   `json:"friend_id" binding:"required"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.friendships.AdminCreate(jwt.GetCaller(c), r.UserID, r.FriendID, r.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, f)
}

func (h *AdminHandler) UpdateFriendshipStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var r struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.friendships.AdminUpdateStatus(jwt.GetCaller(c), id, r.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, f)
}

func (h *AdminHandler) DeleteFriendship(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.friendships.AdminDeleteByID(jwt.GetCaller(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
