package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/deniskimskku/writing-hub/internal/pkg/metrics"
	"github.com/deniskimskku/writing-hub/internal/pkg/strutil"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

const (
	// KeyPrefixResult 检索结果缓存前缀，后接快照代数和查询摘要
	KeyPrefixResult = utility.KeyNamespace + "search:result:"
	resultCacheTTL  = 10 * time.Minute

	// RelatedTagLimit 落地页展示的相关标签数量
	RelatedTagLimit = 6
)

// snapshot 一次加载得到的只读文章集合
type snapshot struct {
	articles   []model.ArticleSummary
	tags       []model.TagEntry
	generation uint64
	loadedAt   time.Time
}

// SearchService 持有当前文章快照并提供检索。
// Load 以原子方式替换快照，读操作不加锁。
type SearchService struct {
	opts     Options
	cacheSvc utility.CacheService
	current  atomic.Pointer[snapshot]
	gen      atomic.Uint64
}

// NewSearchService 创建检索服务，cacheSvc 可以为 nil（不缓存结果）
func NewSearchService(opts Options, cacheSvc utility.CacheService) *SearchService {
	s := &SearchService{opts: opts, cacheSvc: cacheSvc}
	s.current.Store(&snapshot{
		articles: []model.ArticleSummary{},
		tags:     []model.TagEntry{},
	})
	return s
}

// Load 替换文章快照。旧代数的结果缓存自然失效。
func (s *SearchService) Load(articles []model.ArticleSummary) {
	copied := make([]model.ArticleSummary, len(articles))
	copy(copied, articles)
	next := &snapshot{
		articles:   copied,
		tags:       TagEntries(copied),
		generation: s.gen.Add(1),
		loadedAt:   time.Now(),
	}
	s.current.Store(next)
	log.Printf("🔄 检索快照已更新: 第 %d 代, %d 篇文章, %d 个标签", next.generation, len(next.articles), len(next.tags))
}

// Articles 返回当前快照中的文章（日期倒序）
func (s *SearchService) Articles() []model.ArticleSummary {
	return s.current.Load().articles
}

// Tags 返回当前快照中的标签
func (s *SearchService) Tags() []model.TagEntry {
	return s.current.Load().tags
}

// Generation 当前快照代数，未加载时为 0
func (s *SearchService) Generation() uint64 {
	return s.current.Load().generation
}

// LoadedAt 当前快照的加载时间
func (s *SearchService) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}

// Search 执行过滤并生成高亮片段
func (s *SearchService) Search(ctx context.Context, q model.SearchQuery) (*model.SearchResult, error) {
	start := time.Now()
	snap := s.current.Load()
	terms := SplitTerms(q.Query)
	tags := normalizeTags(q.Tags)

	key := resultKey(snap.generation, terms, tags)
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.Get(ctx, key); err == nil && cached != "" {
			var result model.SearchResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				metrics.RecordSearch(true, time.Since(start))
				return &result, nil
			}
		}
	}

	matched := s.opts.Filter(snap.articles, q.Query, tags)
	result := &model.SearchResult{
		Total:   len(snap.articles),
		Matched: len(matched),
		Terms:   terms,
		Hits:    make([]*model.SearchHit, 0, len(matched)),
	}
	if result.Terms == nil {
		result.Terms = []string{}
	}
	for _, article := range matched {
		hit := &model.SearchHit{
			Article:             article,
			TitleSegments:       Highlight(article.Title, terms),
			DescriptionSegments: Highlight(article.Description, terms),
			TagSegments:         make([][]model.Segment, len(article.Tags)),
		}
		for i, tag := range article.Tags {
			hit.TagSegments[i] = Highlight(tag, terms)
		}
		result.Hits = append(result.Hits, hit)
	}

	if s.cacheSvc != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cacheSvc.Set(ctx, key, string(data), resultCacheTTL); err != nil {
				log.Printf("[检索服务] 写入结果缓存失败: %v", err)
			}
		}
	}
	metrics.RecordSearch(false, time.Since(start))
	return result, nil
}

// Related 返回与 slug 对应文章相关的文章
func (s *SearchService) Related(slug string, limit int) []model.ArticleSummary {
	return RelatedArticles(s.current.Load().articles, slug, limit)
}

// TagLanding 生成标签落地页数据，slug 不存在时返回 false
func (s *SearchService) TagLanding(slug string) (*model.TagLanding, bool) {
	snap := s.current.Load()
	name, ok := TagBySlug(snap.tags, slug)
	if !ok {
		return nil, false
	}
	var entry model.TagEntry
	for _, e := range snap.tags {
		if e.Slug == slug {
			entry = e
			break
		}
	}

	articles := ArticlesByTag(snap.articles, name)
	related := RelatedTags(snap.articles, name, RelatedTagLimit)
	return &model.TagLanding{
		Tag:             entry,
		MetaDescription: strutil.TruncateForMeta(tagMetaDescription(name, len(articles), related), strutil.DefaultMetaLength),
		RelatedTags:     related,
		Articles:        articles,
	}, true
}

// ClearResultCache 清除所有检索结果缓存
func (s *SearchService) ClearResultCache(ctx context.Context) error {
	if s.cacheSvc == nil {
		return nil
	}
	n, err := s.cacheSvc.DeletePattern(ctx, KeyPrefixResult+"*")
	if err != nil {
		return fmt.Errorf("清理检索缓存失败: %w", err)
	}
	if n > 0 {
		log.Printf("已清理 %d 个检索结果缓存", n)
	}
	return nil
}

func tagMetaDescription(name string, count int, related []model.TagEntry) string {
	noun := "articles"
	if count == 1 {
		noun = "article"
	}
	desc := fmt.Sprintf("%d research %s on %s.", count, noun, name)
	if len(related) > 0 {
		names := make([]string, len(related))
		for i, r := range related {
			names[i] = r.Name
		}
		desc += " Related topics: " + strings.Join(names, ", ") + "."
	}
	return desc
}

// normalizeTags 拆分逗号分隔的参数并去掉空值，保持出现顺序
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		for _, tag := range strings.Split(item, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func resultKey(generation uint64, terms, tags []string) string {
	sortedTags := append([]string(nil), tags...)
	sort.Strings(sortedTags)
	h := sha256.New()
	h.Write([]byte(strings.Join(terms, " ")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(sortedTags, "\x1f")))
	return fmt.Sprintf("%s%d:%s", KeyPrefixResult, generation, hex.EncodeToString(h.Sum(nil)))
}
