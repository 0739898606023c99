package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deniskimskku/writing-hub/internal/infra/persistence/content"
	"github.com/deniskimskku/writing-hub/pkg/config"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the article index from markdown front matter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, path, err := runIndex(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d articles into %s\n", n, path)
			return nil
		},
	}
}

// runIndex 扫描 markdown 目录并重写索引文件（日期倒序）
func runIndex(ctx context.Context, cfg *config.Config) (int, string, error) {
	repo := content.NewMarkdownRepository(cfg.GetString(config.KeyContentArticlesDir))
	summaries, err := repo.ListSummaries(ctx)
	if err != nil {
		return 0, "", err
	}
	path := cfg.GetString(config.KeyContentIndexFile)
	if err := content.WriteIndex(path, summaries); err != nil {
		return 0, "", err
	}
	return len(summaries), path, nil
}
