package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/response"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

type Handler struct {
	searchService *search.SearchService
}

func NewHandler(searchService *search.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// Search 搜索接口。q 和 tags 都可以为空，此时返回全部文章。
// @Summary      搜索文章
// @Description  按关键词（全部命中，允许少量拼写错误）和标签（任一命中）过滤文章
// @Tags         文章搜索
// @Produce      json
// @Param        q     query  string  false  "搜索关键词"
// @Param        tags  query  string  false  "标签，逗号分隔或重复参数"
// @Success      200  {object}  response.Response  "搜索成功"
// @Failure      400  {object}  response.Response  "参数错误"
// @Router       /public/search [get]
func (h *Handler) Search(c *gin.Context) {
	var query model.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err, "搜索失败")
		return
	}
	response.Success(c, result, "搜索成功")
}
