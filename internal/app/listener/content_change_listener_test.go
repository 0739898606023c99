package listener

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniskimskku/writing-hub/internal/infra/persistence/content"
	"github.com/deniskimskku/writing-hub/internal/pkg/event"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	article_service "github.com/deniskimskku/writing-hub/pkg/service/article"
	"github.com/deniskimskku/writing-hub/pkg/service/rss"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

type fixture struct {
	dir        string
	cache      utility.CacheService
	articleSvc article_service.Service
	searchSvc  *search.SearchService
	rssSvc     rss.Service
	listener   *ContentChangeListener
}

func writeArticle(t *testing.T, dir, slug, title string) {
	t.Helper()
	body := "---\ntitle: " + title + "\ndate: 2024-05-01\ntags: [RAG]\n---\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(body), 0644))
}

func newFixture(t *testing.T, bus *event.EventBus) *fixture {
	t.Helper()
	dir := t.TempDir()
	writeArticle(t, dir, "rag-poisoning", "RAG Poisoning")

	repo := content.NewMarkdownRepository(dir)
	cache := utility.NewMemoryCacheService(100, time.Minute)
	f := &fixture{
		dir:        dir,
		cache:      cache,
		articleSvc: article_service.NewService(repo, cache, time.Minute),
		searchSvc:  search.NewSearchService(search.DefaultOptions(), cache),
		rssSvc:     rss.NewService(repo, cache, rss.SiteInfo{URL: "https://deniskim1.com"}),
	}
	f.listener = NewContentChangeListener(bus, repo, f.articleSvc, f.searchSvc, f.rssSvc)
	return f
}

func TestReload_SingleArticle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.listener.Reload(ctx, event.ContentChangedPayload{Source: "test"}))
	assert.Equal(t, uint64(1), f.searchSvc.Generation())

	article, err := f.articleSvc.Get(ctx, "rag-poisoning")
	require.NoError(t, err)
	assert.Equal(t, "RAG Poisoning", article.Title)
	_, err = f.rssSvc.GenerateFeed(ctx, nil)
	require.NoError(t, err)
	_, err = f.searchSvc.Search(ctx, model.SearchQuery{Query: "rag"})
	require.NoError(t, err)

	// 修改文章后只刷新这一篇
	writeArticle(t, f.dir, "rag-poisoning", "RAG Poisoning Revisited")
	require.NoError(t, f.listener.Reload(ctx, event.ContentChangedPayload{Slugs: []string{"rag-poisoning"}, Source: "test"}))

	article, err = f.articleSvc.Get(ctx, "rag-poisoning")
	require.NoError(t, err)
	assert.Equal(t, "RAG Poisoning Revisited", article.Title)
	assert.Equal(t, uint64(2), f.searchSvc.Generation())
	assert.Equal(t, "RAG Poisoning Revisited", f.searchSvc.Articles()[0].Title)

	rssKeys, _ := f.cache.Scan(ctx, utility.KeyNamespace+"rss:*")
	assert.Empty(t, rssKeys, "RSS 缓存已清理")
	resultKeys, _ := f.cache.Scan(ctx, search.KeyPrefixResult+"*")
	assert.Empty(t, resultKeys, "检索结果缓存已清理")
}

func TestReload_NewArticleAfterNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.articleSvc.Get(ctx, "new-post")
	require.Error(t, err)

	writeArticle(t, f.dir, "new-post", "New Post")
	require.NoError(t, f.listener.Reload(ctx, event.ContentChangedPayload{}))

	article, err := f.articleSvc.Get(ctx, "new-post")
	require.NoError(t, err, "整体刷新应清除不存在标记")
	assert.Equal(t, "New Post", article.Title)
	assert.Len(t, f.searchSvc.Articles(), 2)
}

func TestListener_HandlesBusEvents(t *testing.T) {
	bus := event.NewEventBusWithWorkers(2)
	defer bus.Shutdown()
	f := newFixture(t, bus)

	require.True(t, bus.Publish(event.ContentChanged, event.ContentChangedPayload{Source: "test"}))
	require.Eventually(t, func() bool {
		return f.searchSvc.Generation() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// 负载类型错误时忽略
	require.True(t, bus.Publish(event.ContentChanged, "oops"))
	require.True(t, bus.Publish(event.ContentChanged, event.ContentChangedPayload{Slugs: []string{"x"}}))
	require.Eventually(t, func() bool {
		return f.searchSvc.Generation() == 2
	}, 2*time.Second, 10*time.Millisecond)
}
