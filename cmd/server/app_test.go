package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniskimskku/writing-hub/internal/pkg/event"
	"github.com/deniskimskku/writing-hub/pkg/config"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

func newTestConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	articlesDir := filepath.Join(root, "articles")
	require.NoError(t, os.MkdirAll(articlesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(articlesDir, "rag-poisoning.md"),
		[]byte("---\ntitle: RAG Poisoning\ndate: 2024-05-01\ntags: [RAG]\n---\nBody.\n"), 0644))

	cfg, err := config.Load(filepath.Join(root, "conf.ini"))
	require.NoError(t, err)
	cfg.Set(config.KeyContentArticlesDir, articlesDir)
	cfg.Set(config.KeyContentIndexFile, filepath.Join(root, "missing.json"))
	cfg.Set(config.KeyContentWatch, false)
	return cfg, articlesDir
}

func TestNewApp_MemoryCache(t *testing.T) {
	cfg, articlesDir := newTestConfig(t)

	app, cleanup, err := NewApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	defer app.Stop()

	assert.Equal(t, utility.CacheTypeMemory, utility.GetCacheServiceType(app.CacheService()))
	assert.Len(t, app.SearchService().Articles(), 1)
	assert.NotEmpty(t, app.Version())
	assert.Same(t, cfg, app.Config())

	w := httptest.NewRecorder()
	app.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/search?q=rag", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// 新文章通过事件总线进入快照
	require.NoError(t, os.WriteFile(filepath.Join(articlesDir, "llm.md"),
		[]byte("---\ntitle: LLM\ndate: 2024-06-01\n---\n"), 0644))
	require.True(t, app.EventBus().Publish(event.ContentChanged, event.ContentChangedPayload{Source: "test"}))
	require.Eventually(t, func() bool {
		return len(app.SearchService().Articles()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewApp_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg, _ := newTestConfig(t)
	cfg.Set(config.KeyRedisAddr, mr.Addr())

	app, cleanup, err := NewApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	defer app.Stop()

	require.Equal(t, utility.CacheTypeRedis, utility.GetCacheServiceType(app.CacheService()))

	_, err = app.SearchService().Search(context.Background(), model.SearchQuery{Query: "rag"})
	require.NoError(t, err)
	_, err = app.ArticleService().Get(context.Background(), "rag-poisoning")
	require.NoError(t, err)

	assert.NotEmpty(t, mr.Keys())
	for _, key := range mr.Keys() {
		assert.Contains(t, key, utility.KeyNamespace)
	}
}

func TestNewApp_InvalidCron(t *testing.T) {
	cfg, _ := newTestConfig(t)
	cfg.Set(config.KeyContentReloadCron, "not a schedule")

	_, cleanup, err := NewApp(cfg)
	require.Error(t, err)
	require.NotNil(t, cleanup)
	cleanup()
}
