package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their slugs and article counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadSearch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSLUG\tCOUNT")
			for _, entry := range svc.Tags() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", entry.Name, entry.Slug, entry.Count)
			}
			return tw.Flush()
		},
	}
}
