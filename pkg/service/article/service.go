package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/deniskimskku/writing-hub/internal/pkg/metrics"
	"github.com/deniskimskku/writing-hub/internal/pkg/parser"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	"github.com/deniskimskku/writing-hub/pkg/service/utility"
)

// 缓存相关常量
const (
	KeyPrefixArticle = utility.KeyNamespace + "article:"
	// notFoundMarker 表示文章不存在的缓存值，避免反复读盘
	notFoundMarker = "null"
	notFoundTTL    = time.Minute
)

// Service 文章服务接口
type Service interface {
	// List 返回全部摘要（日期倒序）
	List(ctx context.Context) ([]model.ArticleSummary, error)
	// Get 返回渲染后的文章，不存在时返回 repository.ErrArticleNotFound
	Get(ctx context.Context, slug string) (*model.Article, error)
	// Slugs 返回内容目录中的全部 slug
	Slugs(ctx context.Context) ([]string, error)
	// Invalidate 清除指定文章的渲染缓存
	Invalidate(ctx context.Context, slugs ...string) error
	// InvalidateAll 清除全部渲染缓存
	InvalidateAll(ctx context.Context) error
}

// service 文章服务实现。渲染缓存通过构造函数注入，生命周期由调用方管理。
type service struct {
	repo     repository.ArticleRepository
	cacheSvc utility.CacheService
	cacheTTL time.Duration
}

// NewService 创建文章服务
func NewService(repo repository.ArticleRepository, cacheSvc utility.CacheService, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cacheSvc: cacheSvc,
		cacheTTL: cacheTTL,
	}
}

func (s *service) List(ctx context.Context) ([]model.ArticleSummary, error) {
	return s.repo.ListSummaries(ctx)
}

func (s *service) Slugs(ctx context.Context) ([]string, error) {
	return s.repo.ListSlugs(ctx)
}

// Get 先查缓存，未命中时读取 markdown 并渲染
func (s *service) Get(ctx context.Context, slug string) (*model.Article, error) {
	key := KeyPrefixArticle + slug

	if cached, err := s.cacheSvc.Get(ctx, key); err != nil {
		log.Printf("[文章服务] 读取缓存 %s 失败: %v", key, err)
	} else if cached == notFoundMarker {
		metrics.RecordRender("not_found")
		return nil, repository.ErrArticleNotFound
	} else if cached != "" {
		var article model.Article
		if err := json.Unmarshal([]byte(cached), &article); err == nil {
			metrics.RecordRender("hit")
			return &article, nil
		}
		log.Printf("[文章服务] 缓存 %s 内容无效，重新渲染", key)
	}

	source, err := s.repo.FindSource(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			_ = s.cacheSvc.Set(ctx, key, notFoundMarker, notFoundTTL)
			metrics.RecordRender("not_found")
			return nil, err
		}
		metrics.RecordRender("error")
		return nil, err
	}

	article, err := Render(source)
	if err != nil {
		metrics.RecordRender("error")
		return nil, fmt.Errorf("渲染文章 %s 失败: %w", slug, err)
	}

	if data, err := json.Marshal(article); err == nil {
		if err := s.cacheSvc.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			log.Printf("[文章服务] 写入缓存 %s 失败: %v", key, err)
		}
	}
	metrics.RecordRender("rendered")
	return article, nil
}

// Render 将原始 markdown 渲染为完整文章
func Render(source *model.ArticleSource) (*model.Article, error) {
	contentHTML, err := parser.MarkdownToHTML(source.Markdown)
	if err != nil {
		return nil, err
	}
	toc, err := parser.ExtractTOC(contentHTML)
	if err != nil {
		return nil, fmt.Errorf("生成目录失败: %w", err)
	}

	return &model.Article{
		ArticleSummary: source.Summary,
		ContentHTML:    contentHTML,
		UpdatedAt:      source.ModTime.UTC().Format(model.DateLayout),
		WordCount:      parser.WordCount(source.Markdown),
		ReadingTime:    parser.ReadingTime(source.Markdown),
		TOC:            toc,
	}, nil
}

func (s *service) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = KeyPrefixArticle + slug
	}
	return s.cacheSvc.Delete(ctx, keys...)
}

func (s *service) InvalidateAll(ctx context.Context) error {
	n, err := s.cacheSvc.DeletePattern(ctx, KeyPrefixArticle+"*")
	if err != nil {
		return fmt.Errorf("清理文章缓存失败: %w", err)
	}
	if n > 0 {
		log.Printf("已清理 %d 个文章缓存", n)
	}
	return nil
}
