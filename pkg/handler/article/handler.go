package article

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/response"
	article_service "github.com/deniskimskku/writing-hub/pkg/service/article"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

// DefaultRelatedLimit 文章详情中相关文章的默认数量
const DefaultRelatedLimit = 3

// Handler 封装了公开文章相关的 HTTP 处理器。
type Handler struct {
	svc       article_service.Service
	searchSvc *search.SearchService
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc article_service.Service, searchSvc *search.SearchService) *Handler {
	return &Handler{svc: svc, searchSvc: searchSvc}
}

// ListPublic
// @Summary      获取文章列表
// @Description  返回全部文章摘要，按日期倒序，可按标签筛选
// @Tags         公开文章
// @Produce      json
// @Param        tag query string false "标签名称"
// @Success      200 {object} response.Response{data=[]model.ArticleSummary} "成功响应"
// @Router       /public/articles [get]
func (h *Handler) ListPublic(c *gin.Context) {
	articles := h.searchSvc.Articles()
	if tag := c.Query("tag"); tag != "" {
		articles = search.ArticlesByTag(articles, tag)
	}
	response.Success(c, articles, "获取列表成功")
}

// GetPublic
// @Summary      获取文章详情
// @Description  返回渲染后的文章和相关文章
// @Tags         公开文章
// @Produce      json
// @Param        slug path string true "文章 slug"
// @Param        related query int false "相关文章数量" default(3)
// @Success      200 {object} response.Response{data=model.ArticleDetail} "成功响应"
// @Failure      404 {object} response.Response "文章未找到"
// @Router       /public/articles/{slug} [get]
func (h *Handler) GetPublic(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.Fail(c, http.StatusBadRequest, "文章 slug 不能为空")
		return
	}

	article, err := h.svc.Get(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err, "获取文章失败")
		return
	}

	limit := DefaultRelatedLimit
	if raw := c.Query("related"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			limit = n
		}
	}
	related := []model.ArticleSummary{}
	if limit > 0 {
		related = h.searchSvc.Related(slug, limit)
	}

	response.Success(c, model.ArticleDetail{Article: article, Related: related}, "获取成功")
}
