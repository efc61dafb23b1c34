package handler

import (
	"moments/internal/service"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签处理器
type TagHandler struct {
	service *service.TagService
}

func NewTagHandler(s *service.TagService) *TagHandler {
	return &TagHandler{service: s}
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List()
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tag, err := h.service.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tag)
}

// Create 创建标签，同名标签已存在时返回已有标签
func (h *TagHandler) Create(c *gin.Context) {
	var r struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.service.Create(r.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// CategoryHandler 分类处理器
type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryRequest struct {
	Name      string `json:"name" binding:"required"`
	IconURL   string `json:"icon_url"`
	SortOrder int    `json:"sort_order"`
}

func (r categoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, IconURL: r.IconURL, SortOrder: r.SortOrder}
}

func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.service.List()
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := h.service.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var r categoryRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.service.Create(r.input())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var r categoryRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.service.Update(id, r.input())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
