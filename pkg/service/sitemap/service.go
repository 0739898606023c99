package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

// Service 站点地图服务接口
type Service interface {
	// GenerateSitemap 生成站点地图
	GenerateSitemap(ctx context.Context) (*URLSet, error)
	// GenerateXML 序列化为带 XML 声明的文本
	GenerateXML(urlset *URLSet) ([]byte, error)
	// GenerateRobots 生成robots.txt
	GenerateRobots() string
}

// service 站点地图服务实现
type service struct {
	articleRepo repository.ArticleRepository
	baseURL     string
	now         func() time.Time
}

// NewService 创建站点地图服务
func NewService(articleRepo repository.ArticleRepository, baseURL string) Service {
	return &service{
		articleRepo: articleRepo,
		baseURL:     strings.TrimRight(baseURL, "/"),
		now:         time.Now,
	}
}

// GenerateSitemap 生成站点地图：固定页面、标签页、文章页
func (s *service) GenerateSitemap(ctx context.Context) (*URLSet, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("站点URL未配置")
	}

	articles, err := s.articleRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}
	now := s.now()

	items := make([]SitemapItem, 0, len(DefaultStaticPages)+len(articles)*2)
	for _, page := range DefaultStaticPages {
		items = append(items, SitemapItem{
			URL:          s.baseURL + page.Route,
			LastModified: now,
			ChangeFreq:   page.ChangeFreq,
			Priority:     page.Priority,
		})
	}

	// 文章修改时间只查一次
	modTimes := make(map[string]time.Time, len(articles))
	for _, article := range articles {
		if t, ok := s.articleRepo.ModTime(article.Slug); ok {
			modTimes[article.Slug] = t
		} else {
			modTimes[article.Slug] = now
		}
	}

	for _, entry := range search.TagEntries(articles) {
		var latest time.Time
		for _, article := range search.ArticlesByTag(articles, entry.Name) {
			if t := modTimes[article.Slug]; t.After(latest) {
				latest = t
			}
		}
		if latest.IsZero() {
			latest = now
		}
		items = append(items, SitemapItem{
			URL:          fmt.Sprintf("%s/writing/tag/%s", s.baseURL, entry.Slug),
			LastModified: latest,
			ChangeFreq:   ChangeFreqMonthly,
			Priority:     0.6,
		})
	}

	for _, article := range articles {
		items = append(items, SitemapItem{
			URL:          fmt.Sprintf("%s/writing/%s", s.baseURL, article.Slug),
			LastModified: modTimes[article.Slug],
			ChangeFreq:   ChangeFreqMonthly,
			Priority:     0.7,
		})
	}

	urlset := &URLSet{
		Xmlns: SitemapNamespace,
		URLs:  make([]URL, len(items)),
	}
	for i, item := range items {
		urlset.URLs[i] = item.ToURL()
	}
	return urlset, nil
}

// GenerateXML 序列化站点地图
func (s *service) GenerateXML(urlset *URLSet) ([]byte, error) {
	body, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化站点地图失败: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// GenerateRobots 生成robots.txt
func (s *service) GenerateRobots() string {
	return fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /api/

Sitemap: %s/sitemap.xml
`, s.baseURL)
}
