package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
)

// IndexRepository 从 articles-index.json 读取摘要，从文章目录读取正文
type IndexRepository struct {
	fileStore
	indexPath string
}

var _ repository.ArticleRepository = (*IndexRepository)(nil)

// NewIndexRepository 创建基于 JSON 索引文件的仓库
func NewIndexRepository(indexPath, articlesDir string) *IndexRepository {
	return &IndexRepository{
		fileStore: fileStore{articlesDir: articlesDir},
		indexPath: indexPath,
	}
}

// IndexPath 返回索引文件路径
func (r *IndexRepository) IndexPath() string {
	return r.indexPath
}

// ListSummaries 读取索引文件。tags 缺失或为 null 时视为空列表。
func (r *IndexRepository) ListSummaries(ctx context.Context) ([]model.ArticleSummary, error) {
	data, err := os.ReadFile(r.indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ArticleSummary{}, nil
		}
		return nil, fmt.Errorf("读取文章索引失败: %w", err)
	}

	var raw []model.ArticleSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析文章索引 %s 失败: %w", r.indexPath, err)
	}

	summaries := normalizeAll(raw, r.indexPath)
	SortByDateDesc(summaries)
	summaries = dedupeBySlug(summaries, r.indexPath)
	return summaries, nil
}

// WriteIndex 将摘要写回索引文件（两个空格缩进）
func WriteIndex(path string, summaries []model.ArticleSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建索引目录失败: %w", err)
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化文章索引失败: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入文章索引失败: %w", err)
	}
	return nil
}
