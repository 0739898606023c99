package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// ErrArticleNotFound 文章不存在
var ErrArticleNotFound = errors.New("文章不存在")

// ArticleRepository 定义了文章内容仓库的接口。
// 它只读：文章在进程生命周期内不会被修改，内容变更通过重新加载体现。
type ArticleRepository interface {
	// ListSummaries 返回全部文章摘要，按日期倒序（稳定排序）。
	ListSummaries(ctx context.Context) ([]model.ArticleSummary, error)

	// FindSource 读取单篇文章的 markdown 原文，不存在时返回 ErrArticleNotFound。
	FindSource(ctx context.Context, slug string) (*model.ArticleSource, error)

	// ListSlugs 返回内容目录中所有 .md 文件对应的 slug。
	ListSlugs(ctx context.Context) ([]string, error)

	// ModTime 返回文章文件的修改时间，文件不存在时 ok 为 false。
	ModTime(slug string) (time.Time, bool)
}
