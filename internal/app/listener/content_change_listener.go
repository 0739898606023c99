// Package listener 订阅事件总线上的事件，协调后续处理。
package listener

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/deniskimskku/writing-hub/internal/pkg/event"
	"github.com/deniskimskku/writing-hub/internal/pkg/metrics"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	article_service "github.com/deniskimskku/writing-hub/pkg/service/article"
	"github.com/deniskimskku/writing-hub/pkg/service/rss"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

// reloadTimeout 单次重新加载的超时时间
const reloadTimeout = 30 * time.Second

// ContentChangeListener 监听 ContentChanged 事件：清理渲染缓存并重新加载检索快照。
type ContentChangeListener struct {
	repo       repository.ArticleRepository
	articleSvc article_service.Service
	searchSvc  *search.SearchService
	rssSvc     rss.Service

	// 多个 worker 可能同时收到事件，重新加载需要串行
	mu sync.Mutex
}

// NewContentChangeListener 创建监听器并订阅 ContentChanged 事件。rssSvc 可以为 nil。
func NewContentChangeListener(
	eventBus *event.EventBus,
	repo repository.ArticleRepository,
	articleSvc article_service.Service,
	searchSvc *search.SearchService,
	rssSvc rss.Service,
) *ContentChangeListener {
	l := &ContentChangeListener{
		repo:       repo,
		articleSvc: articleSvc,
		searchSvc:  searchSvc,
		rssSvc:     rssSvc,
	}
	if eventBus != nil {
		eventBus.Subscribe(event.ContentChanged, l.handleContentChanged)
	}
	return l
}

// handleContentChanged 是事件处理器
func (l *ContentChangeListener) handleContentChanged(payload interface{}) {
	p, ok := payload.(event.ContentChangedPayload)
	if !ok {
		log.Printf("[ContentChangeListener] 错误：收到的 ContentChanged 事件负载类型不正确: %T", payload)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := l.Reload(ctx, p); err != nil {
		log.Printf("[ContentChangeListener] 重新加载失败 (来源: %s): %v", p.Source, err)
	}
}

// Reload 清理受影响的缓存，然后重新加载摘要并替换检索快照
func (l *ContentChangeListener) Reload(ctx context.Context, p event.ContentChangedPayload) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.All() {
		if err := l.articleSvc.InvalidateAll(ctx); err != nil {
			log.Printf("[ContentChangeListener] 清理全部文章缓存失败: %v", err)
		}
	} else {
		log.Printf("[ContentChangeListener] 文章变化: %v (来源: %s)", p.Slugs, p.Source)
		if err := l.articleSvc.Invalidate(ctx, p.Slugs...); err != nil {
			log.Printf("[ContentChangeListener] 清理文章缓存失败: %v", err)
		}
	}
	if l.rssSvc != nil {
		if err := l.rssSvc.InvalidateCache(ctx); err != nil {
			log.Printf("[ContentChangeListener] 清理 RSS 缓存失败: %v", err)
		}
	}

	summaries, err := l.repo.ListSummaries(ctx)
	metrics.RecordReload(err, len(summaries))
	if err != nil {
		return fmt.Errorf("读取文章摘要失败: %w", err)
	}
	l.searchSvc.Load(summaries)

	if err := l.searchSvc.ClearResultCache(ctx); err != nil {
		log.Printf("[ContentChangeListener] %v", err)
	}
	return nil
}
