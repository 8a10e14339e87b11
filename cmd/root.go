// Package cmd provides the root command and CLI setup for butterfly.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/butterfly/internal/adapter"
	"github.com/mouse-blink/butterfly/internal/config"
	"github.com/mouse-blink/butterfly/internal/controller"
	"github.com/mouse-blink/butterfly/internal/domain"
	"github.com/mouse-blink/butterfly/internal/logging"
	m "github.com/mouse-blink/butterfly/internal/model"
)

const nodeEnvVar = "NODE_ENV"

const defaultReportsDir = ".butterfly-reports"

const rootLongDescription = `Butterfly instruments React components so that every state updater called
from inside a useEffect callback reports itself to the butterfly overlay
before it runs. Entry files (main.tsx, main.jsx, ...) get the overlay
bootstrap import.

Instrumentation is active when NODE_ENV=development, when butterfly.toml sets
enabled = true, or when --enable is passed.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./lib    scan multiple directories`

var (
	configFlag     string
	reportsDirFlag string
	logLevelFlag   string
	logFormatFlag  string
	enableFlag     bool
)

// workflow replaces the wired workflow when set.
var workflow domain.Workflow

// cfg and logger are resolved before every command runs.
var (
	cfg    = config.Default()
	logger = logging.Discard()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "butterfly [paths...]",
		Short: "React state update tracking instrumenter",
		Long:  rootLongDescription,
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return prepare(cmd)
		},
		RunE: runList,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "path to "+config.FileName+" (default: nearest one above the working directory)")
	flags.StringVarP(&reportsDirFlag, "reports", "r", defaultReportsDir, "directory holding instrument reports")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: "+strings.Join(logging.Levels, ", "))
	flags.StringVar(&logFormatFlag, "log-format", "", "log format: console or json")
	flags.BoolVar(&enableFlag, "enable", false, "instrument regardless of NODE_ENV and the enabled setting")

	addListFlags(cmd)

	return cmd
}

// prepare resolves the configuration and the logger from the global flags.
func prepare(cmd *cobra.Command) error {
	resolved, err := config.Resolve(configFlag, ".")
	if err != nil {
		return err
	}

	if enableFlag {
		resolved.ForceEnable()
	}

	if logLevelFlag != "" {
		resolved.Logging.Level = strings.ToLower(logLevelFlag)
	}

	if logFormatFlag != "" {
		resolved.Logging.Format = strings.ToLower(logFormatFlag)
	}

	if flag := cmd.Flags().Lookup("reports"); flag != nil && flag.Changed {
		resolved.Reports.Dir = reportsDirFlag
	}

	if err := resolved.Validate(); err != nil {
		return err
	}

	cfg = resolved
	logger = logging.NewFormat(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	source := cfg.Path
	if source == "" {
		source = "defaults"
	}

	logger.Debug().
		Str("config", source).
		Bool("enabled", cfg.IsEnabled(os.Getenv(nodeEnvVar))).
		Msg("configuration resolved")

	return nil
}

// currentWorkflow returns the injected workflow or wires one from cfg.
func currentWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	fs := adapter.NewLocalSourceFSAdapter()

	var cache adapter.TransformCache
	if cfg.Cache.Enabled {
		cache = adapter.NewTransformCache(m.Path(cfg.Cache.Dir))
	}

	pipeline := newPipeline(cfg.PipelineOptions(os.Getenv(nodeEnvVar)))
	instrumenter := domain.NewInstrumenter(fs, cache, pipeline, logger)
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(fs, adapter.NewReportStore(), ui, instrumenter, logger)
}

func newPipeline(opts m.PipelineOptions) domain.Pipeline {
	return domain.NewPipeline(opts, logger)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}

// parsePaths converts arguments to paths, scanning the working directory
// recursively when none are given.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
