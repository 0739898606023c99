package tag

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/response"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

// Handler 封装了标签相关的 HTTP 处理器。
type Handler struct {
	searchSvc *search.SearchService
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(searchSvc *search.SearchService) *Handler {
	return &Handler{searchSvc: searchSvc}
}

// List
// @Summary      获取标签列表
// @Description  返回全部标签及文章数量，按名称排序
// @Tags         文章标签
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.TagEntry} "成功响应"
// @Router       /public/tags [get]
func (h *Handler) List(c *gin.Context) {
	response.Success(c, h.searchSvc.Tags(), "获取列表成功")
}

// Landing
// @Summary      获取标签落地页
// @Description  返回标签下的文章、相关标签和 meta description
// @Tags         文章标签
// @Produce      json
// @Param        slug path string true "标签 slug"
// @Success      200 {object} response.Response{data=model.TagLanding} "成功响应"
// @Failure      404 {object} response.Response "标签不存在"
// @Router       /public/tags/{slug} [get]
func (h *Handler) Landing(c *gin.Context) {
	landing, ok := h.searchSvc.TagLanding(c.Param("slug"))
	if !ok {
		response.Fail(c, http.StatusNotFound, "标签不存在")
		return
	}
	response.Success(c, landing, "获取成功")
}
