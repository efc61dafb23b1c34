package handler

import (
	"strconv"

	"moments/internal/model"
	"moments/internal/service"
	"moments/pkg/jwt"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// postRequest 文章请求体
// media / tag_ids 省略或为 null 时更新不改动，[] 表示清空
type postRequest struct {
	CategoryID *uint             `json:"category_id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Weather    string            `json:"weather"`
	Mood       string            `json:"mood"`
	Location   string            `json:"location"`
	Visibility string            `json:"visibility"`
	Status     string            `json:"status"`
	Media      []model.BlogMedia `json:"media"`
	TagIDs     []uint            `json:"tag_ids"`
}

func (r *postRequest) input() service.PostInput {
	return service.PostInput{
		CategoryID: r.CategoryID,
		Title:      r.Title,
		Content:    r.Content,
		Weather:    r.Weather,
		Mood:       r.Mood,
		Location:   r.Location,
		Visibility: r.Visibility,
		Status:     r.Status,
		Media:      r.Media,
		TagIDs:     r.TagIDs,
	}
}

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(s *service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// List 可见文章列表，带 userId 时只列出该作者的文章
func (h *PostHandler) List(c *gin.Context) {
	viewer := jwt.GetCaller(c)
	var (
		posts []*model.BlogPost
		err   error
	)
	if raw := c.Query("userId"); raw != "" {
		ownerID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			response.BadRequest(c, "无效的userId")
			return
		}
		posts, err = h.service.GetVisibleByUser(uint(ownerID), viewer)
	} else {
		posts, err = h.service.GetVisible(viewer)
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, posts)
}

// Get 单篇文章，不可见时返回404
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := h.service.GetVisibleByID(id, jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

// Create 发布文章或保存草稿
func (h *PostHandler) Create(c *gin.Context) {
	var r postRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.service.Create(jwt.GetCaller(c), r.input())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, post)
}

// Update 更新文章，仅作者或管理员
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var r postRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.service.Update(jwt.GetCaller(c), id, r.input())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 删除文章，仅作者或管理员
func (h *PostHandler) Delete(c *gin.Context) {
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

// ListDrafts 当前用户的草稿
func (h *PostHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.service.ListDrafts(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, drafts)
}

// LatestDraft 当前用户最近编辑的草稿
func (h *PostHandler) LatestDraft(c *gin.Context) {
	draft, err := h.service.LatestDraft(jwt.GetCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, draft)
}
