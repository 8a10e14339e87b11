package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/adapter"
	m "github.com/mouse-blink/butterfly/internal/model"
)

// cacheCmd represents the cache command.
var cacheCmd = newCacheCmd()

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the transform cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached transform result",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := adapter.NewTransformCache(m.Path(cfg.Cache.Dir)).Clear(); err != nil {
				return err
			}

			logger.Info().Str("dir", cfg.Cache.Dir).Msg("transform cache cleared")

			return nil
		},
	})

	return cmd
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
