package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/butterfly/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool      string `yaml:"tool"`
	Version   string `yaml:"version"`
	GitCommit string `yaml:"git_commit,omitempty"`
	BuildDate string `yaml:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show butterfly build information",
		Args:  cobra.ExactArgs(0),
		// Build information does not depend on the configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := versionOptions{
				format:   strings.ToLower(versionFormat),
				showHash: versionShowHash || versionShowFull,
				showDate: versionShowDate || versionShowFull,
			}

			switch opts.format {
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), opts)
				return nil
			case "yaml":
				return renderVersionYAML(cmd.OutOrStdout(), opts)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or yaml)", versionFormat)
			}
		},
	}
	cmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	cmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|yaml)")

	return cmd
}

func renderVersionPretty(out io.Writer, opts versionOptions) {
	_, _ = fmt.Fprintf(out, "butterfly %s\n", version.Banner())

	if opts.showHash {
		_, _ = fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	}

	if opts.showDate {
		_, _ = fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionYAML(out io.Writer, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "butterfly",
		Version: strings.TrimSpace(version.Version),
	}

	if payload.Version == "" {
		payload.Version = "dev"
	}

	if opts.showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}

	if opts.showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	if err := enc.Encode(payload); err != nil {
		return err
	}

	return enc.Close()
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}

	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
