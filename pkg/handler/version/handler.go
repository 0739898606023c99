package version

import (
	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/internal/pkg/version"
	"github.com/deniskimskku/writing-hub/pkg/response"
)

// Handler 版本信息处理器
type Handler struct{}

// NewHandler 创建版本信息处理器实例
func NewHandler() *Handler {
	return &Handler{}
}

// GetVersion 获取版本信息
// @Summary      获取版本信息
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response  "版本信息"
// @Router       /version [get]
func (h *Handler) GetVersion(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
	response.Success(c, version.GetBuildInfo(), "获取版本信息成功")
}
