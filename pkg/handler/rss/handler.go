package rss

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/response"
	"github.com/deniskimskku/writing-hub/pkg/service/rss"
)

// Handler RSS 处理器
type Handler struct {
	rssService rss.Service
}

// NewHandler 创建 RSS 处理器
func NewHandler(rssService rss.Service) *Handler {
	return &Handler{rssService: rssService}
}

// GetRSSFeed 获取 RSS feed
// @Summary      获取RSS订阅源
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "RSS XML内容"
// @Failure      500  {object}  response.Response  "生成RSS feed失败"
// @Router       /rss.xml [get]
func (h *Handler) GetRSSFeed(c *gin.Context) {
	feed, err := h.rssService.GenerateFeed(c.Request.Context(), &rss.RSSOptions{BuildTime: time.Now()})
	if err != nil {
		log.Printf("[RSS Handler] 生成 RSS feed 失败: %v", err)
		response.Fail(c, http.StatusInternalServerError, "生成RSS feed失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(h.rssService.GenerateXML(feed)))
}
