package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/domain"
)

const listLongDescription = `List every JavaScript and TypeScript source under the given paths together
with what an instrument run would do to it: transform it, add the overlay
bootstrap, leave it unchanged or skip it. Nothing is written.`

// listCmd represents the list command.
var listCmd = newListCmd()
var listExcludeFlags []string
var listNoCacheFlag bool

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and planned instrumentation",
		Long:  listLongDescription,
		RunE:  runList,
	}

	addListFlags(cmd)

	return cmd
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().BoolVar(&listNoCacheFlag, "no-cache", false, "ignore the transform cache")
}

func runList(cmd *cobra.Command, args []string) error {
	return currentWorkflow(cmd).List(domain.ListArgs{
		Paths:    parsePaths(args),
		Exclude:  listExcludeFlags,
		UseCache: !listNoCacheFlag,
	})
}

func init() {
	rootCmd.AddCommand(listCmd)
}
