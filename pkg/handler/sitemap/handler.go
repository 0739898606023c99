package sitemap

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniskimskku/writing-hub/pkg/service/sitemap"
)

// Handler 站点地图处理器
type Handler struct {
	sitemapService sitemap.Service
}

// NewHandler 创建站点地图处理器
func NewHandler(sitemapService sitemap.Service) *Handler {
	return &Handler{
		sitemapService: sitemapService,
	}
}

// GetSitemap 获取站点地图
// @Summary      获取站点地图
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "XML格式的站点地图"
// @Failure      500  {string}  string  "生成失败"
// @Router       /sitemap.xml [get]
func (h *Handler) GetSitemap(c *gin.Context) {
	urlset, err := h.sitemapService.GenerateSitemap(c.Request.Context())
	if err != nil {
		log.Printf("[Sitemap Handler] 生成站点地图失败: %v", err)
		c.String(http.StatusInternalServerError, "生成站点地图失败")
		return
	}
	body, err := h.sitemapService.GenerateXML(urlset)
	if err != nil {
		c.String(http.StatusInternalServerError, "生成XML失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// GetRobots 获取robots.txt
// @Summary      获取robots.txt
// @Tags         辅助工具
// @Produce      plain
// @Success      200  {string}  string  "robots.txt内容"
// @Router       /robots.txt [get]
func (h *Handler) GetRobots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.String(http.StatusOK, h.sitemapService.GenerateRobots())
}
