package search

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

func newLoadedService(t *testing.T, cache utility.CacheService) *SearchService {
	t.Helper()
	svc := NewSearchService(DefaultOptions(), cache)
	svc.Load(sampleArticles())
	return svc
}

func TestSearchService_Empty(t *testing.T) {
	svc := NewSearchService(DefaultOptions(), nil)

	assert.Equal(t, uint64(0), svc.Generation())
	assert.Empty(t, svc.Articles())
	assert.Empty(t, svc.Tags())

	result, err := svc.Search(context.Background(), model.SearchQuery{Query: "rag"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Matched)
	assert.Empty(t, result.Hits)
}

func TestSearchService_Load(t *testing.T) {
	svc := NewSearchService(DefaultOptions(), nil)
	input := sampleArticles()
	svc.Load(input)

	assert.Equal(t, uint64(1), svc.Generation())
	assert.False(t, svc.LoadedAt().IsZero())
	assert.Len(t, svc.Articles(), 3)
	assert.Len(t, svc.Tags(), 4)

	// 修改输入不影响快照
	input[0].Title = "changed"
	assert.Equal(t, "RAG Poisoning Attacks", svc.Articles()[0].Title)

	svc.Load(input[:1])
	assert.Equal(t, uint64(2), svc.Generation())
	assert.Len(t, svc.Articles(), 1)
}

func TestSearchService_Search(t *testing.T) {
	svc := newLoadedService(t, nil)

	result, err := svc.Search(context.Background(), model.SearchQuery{Query: "  RAG  "})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, []string{"rag"}, result.Terms)
	require.Len(t, result.Hits, 1)

	hit := result.Hits[0]
	assert.Equal(t, "rag-poisoning", hit.Article.Slug)
	assert.Equal(t, []model.Segment{
		{Text: "RAG", Match: true},
		{Text: " Poisoning Attacks"},
	}, hit.TitleSegments)
	require.Len(t, hit.TagSegments, 2)
	assert.Equal(t, []model.Segment{{Text: "RAG", Match: true}}, hit.TagSegments[0])
	assert.Equal(t, []model.Segment{{Text: "Security"}}, hit.TagSegments[1])
}

func TestSearchService_SearchTags(t *testing.T) {
	svc := newLoadedService(t, nil)

	tests := []struct {
		name     string
		tags     []string
		expected []string
	}{
		{"逗号分隔", []string{"Security,Privacy"}, []string{"rag-poisoning", "privacy-notes"}},
		{"重复参数", []string{"Security", "Security"}, []string{"rag-poisoning"}},
		{"空值被忽略", []string{" ", ",,"}, []string{"rag-poisoning", "llm-jailbreaks", "privacy-notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(context.Background(), model.SearchQuery{Tags: tt.tags})
			require.NoError(t, err)
			slugs := make([]string, len(result.Hits))
			for i, hit := range result.Hits {
				slugs[i] = hit.Article.Slug
			}
			assert.Equal(t, tt.expected, slugs)
			assert.NotNil(t, result.Terms)
		})
	}
}

func TestSearchService_ResultCache(t *testing.T) {
	ctx := context.Background()
	cache := utility.NewMemoryCacheService(100, time.Minute)
	svc := newLoadedService(t, cache)

	first, err := svc.Search(ctx, model.SearchQuery{Query: "security", Tags: []string{"RAG"}})
	require.NoError(t, err)

	keys, err := cache.Scan(ctx, KeyPrefixResult+"*")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], KeyPrefixResult+"1:"))

	second, err := svc.Search(ctx, model.SearchQuery{Query: "SECURITY", Tags: []string{"RAG"}})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	keys, _ = cache.Scan(ctx, KeyPrefixResult+"*")
	assert.Len(t, keys, 1, "同一查询应命中同一个缓存键")

	// 新快照使用新的代数
	svc.Load(sampleArticles()[1:])
	third, err := svc.Search(ctx, model.SearchQuery{Query: "security", Tags: []string{"RAG"}})
	require.NoError(t, err)
	assert.Equal(t, 0, third.Matched)

	require.NoError(t, svc.ClearResultCache(ctx))
	keys, _ = cache.Scan(ctx, KeyPrefixResult+"*")
	assert.Empty(t, keys)
}

func TestSearchService_Related(t *testing.T) {
	svc := NewSearchService(DefaultOptions(), nil)
	svc.Load(relatedFixture())

	related := svc.Related("a", 2)
	assert.Equal(t, []string{"c", "e"}, slugsOf(related))
}

func TestSearchService_TagLanding(t *testing.T) {
	svc := NewSearchService(DefaultOptions(), nil)
	svc.Load(relatedFixture())

	landing, ok := svc.TagLanding("rag")
	require.True(t, ok)
	assert.Equal(t, model.TagEntry{Name: "RAG", Slug: "rag", Count: 3}, landing.Tag)
	assert.Equal(t, []string{"d", "c", "a"}, slugsOf(landing.Articles))
	assert.Equal(t, "3 research articles on RAG. Related topics: Security, LLM.", landing.MetaDescription)
	require.Len(t, landing.RelatedTags, 2)

	landing, ok = svc.TagLanding("privacy")
	require.True(t, ok)
	assert.Equal(t, "1 research article on Privacy.", landing.MetaDescription)

	_, ok = svc.TagLanding("missing")
	assert.False(t, ok)
}

func TestSearchService_TagLandingTruncated(t *testing.T) {
	svc := NewSearchService(DefaultOptions(), nil)
	articles := []model.ArticleSummary{{Slug: "x", Tags: []string{"RAG"}}}
	for i := 0; i < 30; i++ {
		articles[0].Tags = append(articles[0].Tags, strings.Repeat("Topic", 6)+string(rune('A'+i%26))+string(rune('a'+i/26)))
	}
	svc.Load(articles)
	landing, ok := svc.TagLanding("rag")
	require.True(t, ok)
	assert.LessOrEqual(t, len([]rune(landing.MetaDescription)), 158)
	assert.True(t, strings.HasSuffix(landing.MetaDescription, "…"))
}

func TestResultKey(t *testing.T) {
	a := resultKey(1, []string{"rag"}, []string{"Security", "Privacy"})
	b := resultKey(1, []string{"rag"}, []string{"Privacy", "Security"})
	c := resultKey(2, []string{"rag"}, []string{"Privacy", "Security"})
	d := resultKey(1, []string{"rag", "security"}, nil)

	assert.Equal(t, a, b, "标签顺序不影响缓存键")
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(c, KeyPrefixResult+"2:"))
}
