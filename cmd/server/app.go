package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/deniskimskku/writing-hub/internal/app/bootstrap"
	"github.com/deniskimskku/writing-hub/internal/app/listener"
	"github.com/deniskimskku/writing-hub/internal/app/middleware"
	"github.com/deniskimskku/writing-hub/internal/app/task"
	"github.com/deniskimskku/writing-hub/internal/infra/persistence/database"
	"github.com/deniskimskku/writing-hub/internal/infra/router"
	"github.com/deniskimskku/writing-hub/internal/infra/watcher"
	"github.com/deniskimskku/writing-hub/internal/pkg/debounce"
	"github.com/deniskimskku/writing-hub/internal/pkg/event"
	"github.com/deniskimskku/writing-hub/internal/pkg/version"
	"github.com/deniskimskku/writing-hub/pkg/config"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	article_handler "github.com/deniskimskku/writing-hub/pkg/handler/article"
	rss_handler "github.com/deniskimskku/writing-hub/pkg/handler/rss"
	search_handler "github.com/deniskimskku/writing-hub/pkg/handler/search"
	sitemap_handler "github.com/deniskimskku/writing-hub/pkg/handler/sitemap"
	tag_handler "github.com/deniskimskku/writing-hub/pkg/handler/tag"
	version_handler "github.com/deniskimskku/writing-hub/pkg/handler/version"
	article_service "github.com/deniskimskku/writing-hub/pkg/service/article"
	rss_service "github.com/deniskimskku/writing-hub/pkg/service/rss"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
	sitemap_service "github.com/deniskimskku/writing-hub/pkg/service/sitemap"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

// shutdownTimeout 优雅关闭 HTTP 服务的最长等待时间
const shutdownTimeout = 10 * time.Second

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg            *config.Config
	engine         *gin.Engine
	server         *http.Server
	scheduler      *task.Scheduler
	contentWatcher *watcher.ContentWatcher
	searchLimiter  *middleware.IPRateLimiter
	appVersion     string
	articleRepo    repository.ArticleRepository
	articleService article_service.Service
	searchService  *search.SearchService
	rssService     rss_service.Service
	sitemapService sitemap_service.Service
	cacheSvc       utility.CacheService
	eventBus       *event.EventBus
	listener       *listener.ContentChangeListener

	watchCancel context.CancelFunc
}

func (a *App) PrintBanner() {
	banner := `
 __      __        .__  __  .__                 ___ ___      ___.
/  \    /  \_______|__|/  |_|__| ____    ____  /   |   \ __ _\_ |__
\   \/\/   /\_  __ \  \   __\  |/    \  / ___\/    ~    \  |  \ __ \
 \        /  |  | \/  ||  | |  |   |  \/ /_/  >    Y    /  |  / \_\ \
  \__/\  /   |__|  |__||__| |__|___|  /\___  / \___|_  /|____/|___  /
       \/                           \//_____/        \/           \/
`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Writing Hub - Version: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp(cfg *config.Config) (*App, func(), error) {
	appVersion := version.GetVersion()

	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Phase 1: 初始化基础设施 ---
	// 尝试连接 Redis（如果失败，将自动降级到内存缓存）
	redisClient, err := database.NewRedisClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}
	cacheSvc := utility.NewCacheServiceWithFallback(
		redisClient,
		cfg.GetInt(config.KeyCacheCapacity),
		cfg.GetDuration(config.KeyCacheTTL),
	)
	eventBus := event.NewEventBus()

	cleanup := func() {
		log.Println("执行清理操作...")
		eventBus.Shutdown()
		closeRedis(redisClient)
	}

	// --- Phase 2: 初始化内容仓库 ---
	bootstrapper := bootstrap.NewBootstrapper(cfg)
	articleRepo, err := bootstrapper.InitializeContent()
	if err != nil {
		return nil, cleanup, fmt.Errorf("内容初始化失败: %w", err)
	}

	// --- Phase 3: 初始化业务逻辑层 ---
	articleSvc := article_service.NewService(articleRepo, cacheSvc, cfg.GetDuration(config.KeyCacheTTL))
	searchSvc := search.NewSearchService(bootstrapper.SearchOptions(), cacheSvc)
	if err := bootstrapper.LoadSnapshot(context.Background(), articleRepo, searchSvc); err != nil {
		return nil, cleanup, err
	}
	siteURL := cfg.GetString(config.KeySiteURL)
	rssSvc := rss_service.NewService(articleRepo, cacheSvc, rss_service.SiteInfo{
		URL:         siteURL,
		Title:       cfg.GetString(config.KeySiteTitle),
		Description: cfg.GetString(config.KeySiteDescription),
	})
	sitemapSvc := sitemap_service.NewService(articleRepo, siteURL)

	// --- Phase 4: 初始化事件监听与后台任务 ---
	contentListener := listener.NewContentChangeListener(eventBus, articleRepo, articleSvc, searchSvc, rssSvc)
	scheduler := task.NewScheduler(eventBus, cfg.GetString(config.KeyContentReloadCron))
	if err := scheduler.RegisterJobs(); err != nil {
		return nil, cleanup, err
	}

	// --- Phase 5: 初始化表现层 ---
	var searchLimiter *middleware.IPRateLimiter
	if limit := cfg.GetInt(config.KeySearchRateLimit); limit > 0 {
		searchLimiter = middleware.NewIPRateLimiter(limit, limit/2+1)
	}
	appRouter := router.NewRouter(
		article_handler.NewHandler(articleSvc, searchSvc),
		search_handler.NewHandler(searchSvc),
		tag_handler.NewHandler(searchSvc),
		rss_handler.NewHandler(rssSvc),
		sitemap_handler.NewHandler(sitemapSvc),
		version_handler.NewHandler(),
		searchLimiter,
	)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.Cors())
	appRouter.Setup(engine)

	app := &App{
		cfg:            cfg,
		engine:         engine,
		scheduler:      scheduler,
		searchLimiter:  searchLimiter,
		appVersion:     appVersion,
		articleRepo:    articleRepo,
		articleService: articleSvc,
		searchService:  searchSvc,
		rssService:     rssSvc,
		sitemapService: sitemapSvc,
		cacheSvc:       cacheSvc,
		eventBus:       eventBus,
		listener:       contentListener,
	}

	log.Printf("✅ 应用初始化完成 (缓存: %s)", utility.GetCacheServiceType(cacheSvc))
	return app, cleanup, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) ArticleService() article_service.Service {
	return a.articleService
}

func (a *App) SearchService() *search.SearchService {
	return a.searchService
}

func (a *App) CacheService() utility.CacheService {
	return a.cacheSvc
}

func (a *App) EventBus() *event.EventBus {
	return a.eventBus
}

func (a *App) Version() string {
	return a.appVersion
}

// Run 启动后台任务和 HTTP 服务，阻塞直到服务关闭
func (a *App) Run() error {
	a.scheduler.Start()

	if a.cfg.GetBool(config.KeyContentWatch) {
		ctx, cancel := context.WithCancel(context.Background())
		w, err := watcher.NewContentWatcher(
			a.cfg.GetString(config.KeyContentArticlesDir),
			a.cfg.GetString(config.KeyContentIndexFile),
			debounce.DefaultWindow,
			a.eventBus,
		)
		if err != nil {
			cancel()
			log.Printf("⚠️ 内容监听启动失败，仅依赖定时重载: %v", err)
		} else {
			w.Start(ctx)
			a.contentWatcher = w
			a.watchCancel = cancel
		}
	}

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	a.server = &http.Server{
		Addr:              ":" + port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止 HTTP 服务和后台任务
func (a *App) Stop() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.server.Shutdown(ctx); err != nil {
			log.Printf("HTTP 服务关闭出错: %v", err)
		}
		cancel()
	}
	if a.watchCancel != nil {
		a.watchCancel()
		_ = a.contentWatcher.Stop()
		log.Println("内容监听已停止。")
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.searchLimiter != nil {
		a.searchLimiter.Stop()
	}
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	log.Println("关闭 Redis 连接...")
	if err := client.Close(); err != nil {
		log.Printf("关闭 Redis 连接出错: %v", err)
	}
}
