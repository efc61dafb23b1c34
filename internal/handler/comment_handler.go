package handler

import (
	"strconv"

	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(s *service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// ListByPost 文章的评论
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	list, err := h.service.ListByPost(postID, jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// ListByPosition 文章某个位置上的评论
func (h *CommentHandler) ListByPosition(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		response.BadRequest(c, "无效的position")
		return
	}
	list, err := h.service.ListByPostAndPosition(postID, position, jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

// Create 发表评论
func (h *CommentHandler) Create(c *gin.Context) {
	var r struct {
		PostID   uint   `json:"post_id" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Position *int   `json:"position"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.service.Create(jwt.GetCaller(c), r.PostID, r.Content, r.Position)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, comment)
}

// Update 修改评论
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var r struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.service.Update(jwt.GetCaller(c), id, r.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, comment)
}

// Delete 删除评论
func (h *CommentHandler) Delete(c *gin.Context) {
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
