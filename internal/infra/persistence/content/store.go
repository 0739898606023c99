package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/deniskimskku/writing-hub/internal/pkg/parser"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
)

// markdownExt 文章文件扩展名
const markdownExt = ".md"

// fileStore 封装对文章目录的读取，两种仓库实现共用
type fileStore struct {
	articlesDir string
}

// ArticlePath 返回 slug 对应的 markdown 文件路径
func (s *fileStore) ArticlePath(slug string) string {
	return filepath.Join(s.articlesDir, slug+markdownExt)
}

// FindSource 读取单篇文章
func (s *fileStore) FindSource(ctx context.Context, slug string) (*model.ArticleSource, error) {
	if !validSlug(slug) {
		return nil, repository.ErrArticleNotFound
	}

	path := s.ArticlePath(slug)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrArticleNotFound
		}
		return nil, fmt.Errorf("读取文章 %s 失败: %w", slug, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("获取文章 %s 文件信息失败: %w", slug, err)
	}

	fm, body, err := parser.SplitFrontMatter(data)
	if err != nil {
		if !errors.Is(err, parser.ErrNoFrontMatter) {
			return nil, fmt.Errorf("文章 %s: %w", slug, err)
		}
		fm = &model.FrontMatter{}
	}

	return &model.ArticleSource{
		Summary:  fm.ToSummary(slug),
		Markdown: body,
		ModTime:  info.ModTime(),
	}, nil
}

// ListSlugs 列出目录中的所有 .md 文件，目录不存在时返回空列表
func (s *fileStore) ListSlugs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.articlesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("读取文章目录失败: %w", err)
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, markdownExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, markdownExt))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// ModTime 返回文章文件的修改时间，文件不存在时 ok 为 false
func (s *fileStore) ModTime(slug string) (time.Time, bool) {
	if !validSlug(slug) {
		return time.Time{}, false
	}
	info, err := os.Stat(s.ArticlePath(slug))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// validSlug 拒绝可能逃出文章目录的 slug
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.Contains(slug, "..")
}

// SortByDateDesc 按发布日期倒序稳定排序，无法解析的日期排在最后
func SortByDateDesc(summaries []model.ArticleSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		ti, okI := summaries[i].PublishedAt()
		tj, okJ := summaries[j].PublishedAt()
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}

// normalizeAll 补全缺省字段并丢弃没有 slug 的条目
func normalizeAll(raw []model.ArticleSummary, source string) []model.ArticleSummary {
	summaries := make([]model.ArticleSummary, 0, len(raw))
	for i, item := range raw {
		item = model.NormalizeSummary(item)
		if item.Slug == "" {
			log.Printf("[警告] %s 第 %d 条文章缺少 slug，已跳过", source, i+1)
			continue
		}
		summaries = append(summaries, item)
	}
	return summaries
}

// dedupeBySlug 同一个 slug 只保留排序后的第一条，其余记录警告后丢弃
func dedupeBySlug(summaries []model.ArticleSummary, source string) []model.ArticleSummary {
	seen := make(map[string]struct{}, len(summaries))
	kept := summaries[:0]
	for _, item := range summaries {
		if _, dup := seen[item.Slug]; dup {
			log.Printf("[警告] %s 中 slug %q 重复（%s），已跳过", source, item.Slug, item.Title)
			continue
		}
		seen[item.Slug] = struct{}{}
		kept = append(kept, item)
	}
	return kept
}
