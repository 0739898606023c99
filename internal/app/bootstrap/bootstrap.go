// Package bootstrap 启动时准备内容目录、选择文章仓库并加载首个检索快照。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/deniskimskku/writing-hub/internal/infra/persistence/content"
	"github.com/deniskimskku/writing-hub/internal/pkg/metrics"
	"github.com/deniskimskku/writing-hub/pkg/config"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

type Bootstrapper struct {
	cfg *config.Config
}

func NewBootstrapper(cfg *config.Config) *Bootstrapper {
	return &Bootstrapper{cfg: cfg}
}

// InitializeContent 检查内容目录，返回合适的文章仓库。
// 索引文件存在时使用索引，否则直接扫描 markdown 目录。
func (b *Bootstrapper) InitializeContent() (repository.ArticleRepository, error) {
	log.Println("--- 开始执行内容初始化引导程序 ---")

	articlesDir := b.cfg.GetString(config.KeyContentArticlesDir)
	indexFile := b.cfg.GetString(config.KeyContentIndexFile)

	info, err := os.Stat(articlesDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("⚠️ 文章目录 %s 不存在，将创建空目录", articlesDir)
		if err := os.MkdirAll(articlesDir, 0755); err != nil {
			return nil, fmt.Errorf("创建文章目录失败: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("检查文章目录失败: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("文章路径 %s 不是目录", articlesDir)
	}

	var repo repository.ArticleRepository
	if indexFile != "" && fileExists(indexFile) {
		log.Printf("    - 使用文章索引: %s", indexFile)
		repo = content.NewIndexRepository(indexFile, articlesDir)
	} else {
		log.Printf("    - 未找到文章索引，扫描目录: %s", articlesDir)
		repo = content.NewMarkdownRepository(articlesDir)
	}

	log.Println("--- 内容初始化引导程序执行完成 ---")
	return repo, nil
}

// LoadSnapshot 读取全部摘要并装入检索服务
func (b *Bootstrapper) LoadSnapshot(ctx context.Context, repo repository.ArticleRepository, searchSvc *search.SearchService) error {
	summaries, err := repo.ListSummaries(ctx)
	metrics.RecordReload(err, len(summaries))
	if err != nil {
		return fmt.Errorf("加载文章摘要失败: %w", err)
	}
	searchSvc.Load(summaries)
	return nil
}

// SearchOptions 从配置读取模糊匹配阈值
func (b *Bootstrapper) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	if v := b.cfg.GetInt(config.KeySearchFuzzyMinTermLength); v > 0 {
		opts.FuzzyMinTermLength = v
	}
	if v := b.cfg.GetInt(config.KeySearchFuzzyMaxDistance); v >= 0 {
		opts.FuzzyMaxDistance = v
	}
	return opts
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
