package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/deniskimskku/writing-hub/internal/infra/persistence/content"
	"github.com/deniskimskku/writing-hub/pkg/config"
	rss_service "github.com/deniskimskku/writing-hub/pkg/service/rss"
	sitemap_service "github.com/deniskimskku/writing-hub/pkg/service/sitemap"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write rss.xml and sitemap.xml for the static export",
		Long: `Write rss.xml and sitemap.xml into the static export directory.

Nothing is written when the output directory or the article index
does not exist, so the command is safe to run before the first export.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := runBuild(cmd.Context(), opts.cfg, outDir, time.Now())
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "static export directory")
	return cmd
}

// runBuild 生成 feed 文件，返回写出的文件路径
func runBuild(ctx context.Context, cfg *config.Config, outDir string, now time.Time) ([]string, error) {
	indexFile := cfg.GetString(config.KeyContentIndexFile)
	if !dirExists(outDir) || !fileExists(indexFile) {
		return nil, nil
	}

	repo := content.NewIndexRepository(indexFile, cfg.GetString(config.KeyContentArticlesDir))
	siteURL := cfg.GetString(config.KeySiteURL)

	rssSvc := rss_service.NewService(repo, nil, rss_service.SiteInfo{
		URL:         siteURL,
		Title:       cfg.GetString(config.KeySiteTitle),
		Description: cfg.GetString(config.KeySiteDescription),
	})
	feed, err := rssSvc.GenerateFeed(ctx, &rss_service.RSSOptions{BuildTime: now})
	if err != nil {
		return nil, err
	}
	rssPath := filepath.Join(outDir, "rss.xml")
	if err := os.WriteFile(rssPath, []byte(rssSvc.GenerateXML(feed)), 0644); err != nil {
		return nil, fmt.Errorf("写入 rss.xml 失败: %w", err)
	}

	sitemapSvc := sitemap_service.NewService(repo, siteURL)
	urlset, err := sitemapSvc.GenerateSitemap(ctx)
	if err != nil {
		return nil, err
	}
	body, err := sitemapSvc.GenerateXML(urlset)
	if err != nil {
		return nil, err
	}
	sitemapPath := filepath.Join(outDir, "sitemap.xml")
	if err := os.WriteFile(sitemapPath, body, 0644); err != nil {
		return nil, fmt.Errorf("写入 sitemap.xml 失败: %w", err)
	}

	return []string{rssPath, sitemapPath}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
