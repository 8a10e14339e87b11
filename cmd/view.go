package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/domain"
	m "github.com/mouse-blink/butterfly/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved instrument reports",
		Long:  "View the reports saved by earlier instrument runs from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return currentWorkflow(cmd).View(domain.ViewArgs{Reports: m.Path(cfg.Reports.Dir)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
