package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// searchOptions 搜索命令参数
type searchOptions struct {
	tags   []string
	format string // "text", "json"
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var sopts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search articles with the same rules as the site",
		Long: `Search articles by keywords and tags.

Every keyword must match (typos are tolerated for longer words);
any of the given tags is enough.

Examples:
  writing-hub search "prompt injection"
  writing-hub search poisning
  writing-hub search --tag Security --tag RAG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadSearch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			result, err := svc.Search(cmd.Context(), model.SearchQuery{
				Query: strings.Join(args, " "),
				Tags:  sopts.tags,
			})
			if err != nil {
				return err
			}
			return printSearchResult(cmd.OutOrStdout(), result, sopts.format)
		},
	}

	cmd.Flags().StringArrayVarP(&sopts.tags, "tag", "t", nil, "filter by tag (repeatable)")
	cmd.Flags().StringVarP(&sopts.format, "format", "f", "text", "output format: text, json")
	return cmd
}

func printSearchResult(w io.Writer, result *model.SearchResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	fmt.Fprintf(w, "%d of %d articles\n", result.Matched, result.Total)
	for i, hit := range result.Hits {
		fmt.Fprintf(w, "\n%d. %s  (%s, %s)\n", i+1, renderSegments(hit.TitleSegments), hit.Article.Date, hit.Article.Slug)
		if hit.Article.Description != "" {
			fmt.Fprintf(w, "   %s\n", renderSegments(hit.DescriptionSegments))
		}
		if len(hit.TagSegments) > 0 {
			tags := make([]string, len(hit.TagSegments))
			for j, segs := range hit.TagSegments {
				tags[j] = renderSegments(segs)
			}
			fmt.Fprintf(w, "   tags: %s\n", strings.Join(tags, ", "))
		}
	}
	return nil
}

// renderSegments 用方括号标出命中的片段
func renderSegments(segments []model.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Match {
			sb.WriteString("[")
			sb.WriteString(seg.Text)
			sb.WriteString("]")
			continue
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
