// Package cli 提供 writing-hub 的命令行入口。
package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/deniskimskku/writing-hub/internal/app/bootstrap"
	"github.com/deniskimskku/writing-hub/internal/pkg/version"
	"github.com/deniskimskku/writing-hub/pkg/config"
	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
	"github.com/deniskimskku/writing-hub/pkg/service/search"
)

// rootOptions 所有子命令共享的参数
type rootOptions struct {
	configPath string
	quiet      bool
	cfg        *config.Config
}

// NewRootCmd 创建根命令，不带子命令时等同于 serve
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "writing-hub",
		Short: "Article search, feeds and API for the writing section",
		Long: `writing-hub serves the writing section of the portfolio site:
article summaries, rendered articles, tag pages, search with typo
tolerance, RSS feed and sitemap.

Run without a subcommand to start the HTTP server.`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.quiet {
				log.SetOutput(io.Discard)
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.SetVersionTemplate("writing-hub version {{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath, "path to the ini config file")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress log output")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newBuildCmd(opts))
	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newTagsCmd(opts))

	return cmd
}

// Execute 运行根命令
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// loadSearch 选择仓库并加载检索快照，供只读子命令使用
func loadSearch(ctx context.Context, opts *rootOptions) (repository.ArticleRepository, *search.SearchService, error) {
	b := bootstrap.NewBootstrapper(opts.cfg)
	repo, err := b.InitializeContent()
	if err != nil {
		return nil, nil, err
	}
	svc := search.NewSearchService(b.SearchOptions(), nil)
	if err := b.LoadSnapshot(ctx, repo, svc); err != nil {
		return nil, nil, fmt.Errorf("加载文章失败: %w", err)
	}
	return repo, svc, nil
}
