package rss

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

// FeedLanguage 站点内容语言
const FeedLanguage = "en-US"

// Service RSS 服务接口
type Service interface {
	// GenerateFeed 生成 RSS feed
	GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error)
	// GenerateXML 生成 RSS XML 字符串
	GenerateXML(feed *RSSFeed) string
	// InvalidateCache 清除 RSS 缓存
	InvalidateCache(ctx context.Context) error
}

// service RSS 服务实现
type service struct {
	repo     repository.ArticleRepository
	cacheSvc utility.CacheService
	site     SiteInfo
}

// NewService 创建 RSS 服务，cacheSvc 可以为 nil
func NewService(repo repository.ArticleRepository, cacheSvc utility.CacheService, site SiteInfo) Service {
	site.URL = strings.TrimRight(site.URL, "/")
	return &service{
		repo:     repo,
		cacheSvc: cacheSvc,
		site:     site,
	}
}

// rssCacheKey RSS feed 缓存键
const rssCacheKey = utility.KeyNamespace + "rss:feed:latest"

// rssCacheTTL RSS feed 缓存过期时间
const rssCacheTTL = time.Hour

// GenerateFeed 生成 RSS feed（支持缓存）。
// 只收录同时具有 slug、标题和日期的文章。
func (s *service) GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error) {
	if opts == nil {
		opts = &RSSOptions{}
	}
	useCache := s.cacheSvc != nil && opts.ItemCount <= 0
	if useCache {
		if cachedData, err := s.cacheSvc.Get(ctx, rssCacheKey); err == nil && cachedData != "" {
			var feed RSSFeed
			if err := json.Unmarshal([]byte(cachedData), &feed); err == nil {
				return &feed, nil
			}
		}
	}

	if opts.BuildTime.IsZero() {
		opts.BuildTime = time.Now()
	}

	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}

	articles := make([]model.ArticleSummary, 0, len(summaries))
	for _, article := range summaries {
		if article.Slug == "" || article.Title == "" || article.Date == "" {
			continue
		}
		articles = append(articles, article)
	}
	if opts.ItemCount > 0 && len(articles) > opts.ItemCount {
		articles = articles[:opts.ItemCount]
	}

	lastBuild := opts.BuildTime.UTC().Format(time.RFC1123Z)
	if len(articles) > 0 {
		lastBuild = toRFC822(articles[0].Date, opts.BuildTime)
	}

	feed := &RSSFeed{
		Title:         s.site.Title,
		Link:          s.site.URL + "/writing",
		SelfLink:      s.site.URL + "/rss.xml",
		Description:   s.site.Description,
		Language:      FeedLanguage,
		LastBuildDate: lastBuild,
		Items:         make([]RSSItem, 0, len(articles)),
	}
	for _, article := range articles {
		feed.Items = append(feed.Items, s.buildRSSItem(article, opts.BuildTime))
	}

	if useCache {
		if feedData, err := json.Marshal(feed); err == nil {
			_ = s.cacheSvc.Set(ctx, rssCacheKey, string(feedData), rssCacheTTL)
		}
	}
	return feed, nil
}

// InvalidateCache 清除 RSS 缓存
func (s *service) InvalidateCache(ctx context.Context) error {
	if s.cacheSvc == nil {
		return nil
	}
	return s.cacheSvc.Delete(ctx, rssCacheKey)
}

// buildRSSItem 构建单个 RSS 条目
func (s *service) buildRSSItem(article model.ArticleSummary, buildTime time.Time) RSSItem {
	articleLink := fmt.Sprintf("%s/writing/%s", s.site.URL, article.Slug)
	categories := make([]string, len(article.Tags))
	copy(categories, article.Tags)

	return RSSItem{
		Title:       article.Title,
		Link:        articleLink,
		Description: article.Description,
		PubDate:     toRFC822(article.Date, buildTime),
		GUID:        articleLink,
		Categories:  categories,
	}
}

// toRFC822 将日历日期转换为当天 00:00 UTC，无法解析时使用 fallback
func toRFC822(date string, fallback time.Time) string {
	summary := model.ArticleSummary{Date: date}
	if t, ok := summary.PublishedAt(); ok {
		return t.UTC().Format(time.RFC1123Z)
	}
	return fallback.UTC().Format(time.RFC1123Z)
}

// GenerateXML 生成 RSS XML 字符串
func (s *service) GenerateXML(feed *RSSFeed) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	sb.WriteString("\n")

	sb.WriteString("  <channel>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(feed.Title)))
	sb.WriteString(fmt.Sprintf("    <link>%s</link>\n", xmlEscape(feed.Link)))
	sb.WriteString(fmt.Sprintf("    <description>%s</description>\n", xmlEscape(feed.Description)))
	sb.WriteString(fmt.Sprintf("    <language>%s</language>\n", feed.Language))
	sb.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", feed.LastBuildDate))
	sb.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\"/>\n", xmlEscape(feed.SelfLink)))

	for _, item := range feed.Items {
		sb.WriteString("    <item>\n")
		sb.WriteString(fmt.Sprintf("      <title>%s</title>\n", xmlEscape(item.Title)))
		sb.WriteString(fmt.Sprintf("      <link>%s</link>\n", xmlEscape(item.Link)))
		sb.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", xmlEscape(item.GUID)))
		sb.WriteString(fmt.Sprintf("      <description>%s</description>\n", xmlEscape(item.Description)))
		sb.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PubDate))
		for _, category := range item.Categories {
			sb.WriteString(fmt.Sprintf("      <category>%s</category>\n", xmlEscape(category)))
		}
		sb.WriteString("    </item>\n")
	}

	sb.WriteString("  </channel>\n")
	sb.WriteString("</rss>\n")

	return sb.String()
}

// xmlEscape 转义 XML 特殊字符
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
