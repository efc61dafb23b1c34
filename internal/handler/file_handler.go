package handler

import (
	"moments/internal/service"
	"moments/pkg/response"

	"github.com/gin-gonic/gin"
)

// FileHandler 图片上传处理器
type FileHandler struct {
	service *service.FileService
}

func NewFileHandler(s *service.FileService) *FileHandler {
	return &FileHandler{service: s}
}

// UploadImage 上传文章图片
func (h *FileHandler) UploadImage(c *gin.Context) { h.upload(c, service.FolderImages) }

// UploadAvatar 上传头像
func (h *FileHandler) UploadAvatar(c *gin.Context) { h.upload(c, service.FolderAvatars) }

// UploadBackground 上传个人主页背景
func (h *FileHandler) UploadBackground(c *gin.Context) { h.upload(c, service.FolderBackgrounds) }

func (h *FileHandler) upload(c *gin.Context, folder string) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少上传文件")
		return
	}
	src, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "无法读取上传文件")
		return
	}
	defer src.Close()

	url, err := h.service.UploadImage(c.Request.Context(), folder, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, src)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// Delete 根据URL删除文件
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("url")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
