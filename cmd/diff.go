package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/domain"
)

var (
	diffContextFlag  int
	diffExcludeFlags []string
	diffNoCacheFlag  bool
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Show the changes instrument would make",
		Long:  "Show unified diffs between the original sources and their instrumented form without writing anything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return currentWorkflow(cmd).Diff(domain.DiffArgs{
				ListArgs: domain.ListArgs{
					Paths:    parsePaths(args),
					Exclude:  diffExcludeFlags,
					UseCache: !diffNoCacheFlag,
				},
				Context: diffContextFlag,
			})
		},
	}
	cmd.Flags().IntVar(&diffContextFlag, "context", domain.DefaultDiffContext, "number of context lines around each change")
	cmd.Flags().StringArrayVarP(&diffExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().BoolVar(&diffNoCacheFlag, "no-cache", false, "ignore the transform cache")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
