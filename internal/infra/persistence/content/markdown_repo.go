package content

import (
	"context"
	"errors"
	"log"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
)

// MarkdownRepository 直接扫描文章目录，从每个文件的 front matter 中生成摘要
type MarkdownRepository struct {
	fileStore
}

var _ repository.ArticleRepository = (*MarkdownRepository)(nil)

// NewMarkdownRepository 创建基于 markdown 目录的仓库
func NewMarkdownRepository(articlesDir string) *MarkdownRepository {
	return &MarkdownRepository{fileStore: fileStore{articlesDir: articlesDir}}
}

// ListSummaries 扫描全部 .md 文件。单个文件读取失败只记录日志，不影响其它文章。
func (r *MarkdownRepository) ListSummaries(ctx context.Context) ([]model.ArticleSummary, error) {
	slugs, err := r.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}

	raw := make([]model.ArticleSummary, 0, len(slugs))
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		source, err := r.FindSource(ctx, slug)
		if err != nil {
			if !errors.Is(err, repository.ErrArticleNotFound) {
				log.Printf("[警告] 跳过文章 %s: %v", slug, err)
			}
			continue
		}
		raw = append(raw, source.Summary)
	}

	summaries := normalizeAll(raw, r.articlesDir)
	SortByDateDesc(summaries)
	summaries = dedupeBySlug(summaries, r.articlesDir)
	return summaries, nil
}
