package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/domain"
	m "github.com/mouse-blink/butterfly/internal/model"
)

const instrumentLongDescription = `Instrument every selected source. Changed files are written below --out,
mirroring their path relative to the scan root, or rewritten in place with
--write. One report per file is saved in the reports directory.`

var (
	instrumentOutFlag        string
	instrumentWriteFlag      bool
	instrumentParallelFlag   int
	instrumentExcludeFlags   []string
	instrumentNoCacheFlag    bool
	instrumentFirstMatchFlag bool
	instrumentShardFlag      string
)

// instrumentCmd represents the instrument command.
var instrumentCmd = newInstrumentCmd()

func newInstrumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instrument [paths...]",
		Short: "Instrument sources and save reports",
		Long:  instrumentLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if instrumentFirstMatchFlag {
				cfg.Track.FirstMatchOnly = true
			}

			shardIndex, totalShards := parseShardFlag(instrumentShardFlag)

			return currentWorkflow(cmd).Instrument(domain.InstrumentArgs{
				ListArgs: domain.ListArgs{
					Paths:    parsePaths(args),
					Exclude:  instrumentExcludeFlags,
					UseCache: !instrumentNoCacheFlag,
				},
				Out:             m.Path(instrumentOutFlag),
				InPlace:         instrumentWriteFlag,
				Reports:         m.Path(cfg.Reports.Dir),
				Threads:         instrumentParallelFlag,
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}
	cmd.Flags().StringVarP(&instrumentOutFlag, "out", "o", "", "directory receiving the instrumented files")
	cmd.Flags().BoolVar(&instrumentWriteFlag, "write", false, "rewrite the sources in place")
	cmd.Flags().IntVarP(&instrumentParallelFlag, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().StringArrayVarP(&instrumentExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().BoolVar(&instrumentNoCacheFlag, "no-cache", false, "ignore the transform cache")
	cmd.Flags().BoolVar(&instrumentFirstMatchFlag, "first-match", false, "emit at most one tracking call per line")
	cmd.Flags().StringVarP(&instrumentShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")

	return cmd
}

func init() {
	rootCmd.AddCommand(instrumentCmd)
}
