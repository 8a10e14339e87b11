package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/adapter"
	m "github.com/mouse-blink/butterfly/internal/model"
)

var overlayOutFlag string

// overlayCmd represents the overlay command.
var overlayCmd = newOverlayCmd()

func newOverlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Print the overlay bootstrap module",
		Long: `Print the module served for the overlay import of instrumented entry files,
or write it to a file with --out.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The bootstrap module is rendered even when instrumentation is disabled.
			opts := cfg.PipelineOptions("")
			opts.Enabled = true

			code, ok := newPipeline(opts).Load(opts.OverlayImport)
			if !ok {
				return fmt.Errorf("overlay module %q is not served", opts.OverlayImport)
			}

			if overlayOutFlag == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), code)
				return err
			}

			fs := adapter.NewLocalSourceFSAdapter()

			out, err := fs.Abs(m.Path(overlayOutFlag))
			if err != nil {
				return err
			}

			if err := fs.WriteFile(out, []byte(code), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			logger.Info().Str("file", string(out)).Msg("overlay module written")

			return nil
		},
	}
	cmd.Flags().StringVarP(&overlayOutFlag, "out", "o", "", "file receiving the overlay module")

	return cmd
}

func init() {
	rootCmd.AddCommand(overlayCmd)
}
