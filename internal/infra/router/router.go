package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deniskimskku/writing-hub/internal/app/middleware"
	article_handler "github.com/deniskimskku/writing-hub/pkg/handler/article"
	rss_handler "github.com/deniskimskku/writing-hub/pkg/handler/rss"
	search_handler "github.com/deniskimskku/writing-hub/pkg/handler/search"
	sitemap_handler "github.com/deniskimskku/writing-hub/pkg/handler/sitemap"
	tag_handler "github.com/deniskimskku/writing-hub/pkg/handler/tag"
	version_handler "github.com/deniskimskku/writing-hub/pkg/handler/version"
)

// NoCacheMiddleware 接口响应不允许被 CDN 缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	articleHandler *article_handler.Handler
	searchHandler  *search_handler.Handler
	tagHandler     *tag_handler.Handler
	rssHandler     *rss_handler.Handler
	sitemapHandler *sitemap_handler.Handler
	versionHandler *version_handler.Handler
	searchLimiter  *middleware.IPRateLimiter
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
// searchLimiter 为 nil 时搜索接口不限流。
func NewRouter(
	articleHandler *article_handler.Handler,
	searchHandler *search_handler.Handler,
	tagHandler *tag_handler.Handler,
	rssHandler *rss_handler.Handler,
	sitemapHandler *sitemap_handler.Handler,
	versionHandler *version_handler.Handler,
	searchLimiter *middleware.IPRateLimiter,
) *Router {
	return &Router{
		articleHandler: articleHandler,
		searchHandler:  searchHandler,
		tagHandler:     tagHandler,
		rssHandler:     rssHandler,
		sitemapHandler: sitemapHandler,
		versionHandler: versionHandler,
		searchLimiter:  searchLimiter,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
func (r *Router) Setup(engine *gin.Engine) {
	apiGroup := engine.Group("/api")
	apiGroup.Use(NoCacheMiddleware())

	r.registerArticleRoutes(apiGroup)
	r.registerSearchRoutes(apiGroup)
	r.registerTagRoutes(apiGroup)
	r.registerVersionRoutes(apiGroup)
	r.registerFeedRoutes(engine) // 直接注册到engine，不使用/api前缀

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) registerArticleRoutes(api *gin.RouterGroup) {
	articlesPublic := api.Group("/public/articles")
	{
		articlesPublic.GET("", r.articleHandler.ListPublic)
		articlesPublic.GET("/:slug", r.articleHandler.GetPublic)
	}
}

func (r *Router) registerSearchRoutes(api *gin.RouterGroup) {
	if r.searchLimiter != nil {
		api.GET("/public/search", middleware.RateLimit(r.searchLimiter), r.searchHandler.Search)
		return
	}
	api.GET("/public/search", r.searchHandler.Search)
}

func (r *Router) registerTagRoutes(api *gin.RouterGroup) {
	tagsPublic := api.Group("/public/tags")
	{
		tagsPublic.GET("", r.tagHandler.List)
		tagsPublic.GET("/:slug", r.tagHandler.Landing)
	}
}

func (r *Router) registerVersionRoutes(api *gin.RouterGroup) {
	api.GET("/version", r.versionHandler.GetVersion)
}

func (r *Router) registerFeedRoutes(engine *gin.Engine) {
	engine.GET("/rss.xml", r.rssHandler.GetRSSFeed)
	engine.GET("/sitemap.xml", r.sitemapHandler.GetSitemap)
	engine.GET("/robots.txt", r.sitemapHandler.GetRobots)
}
