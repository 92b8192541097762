package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"irkit/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
	showFull bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &versionOptions{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show irkit build metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(opts.format)
			switch format {
			case "pretty", "json":
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
			}
			showHash := opts.showHash || opts.showFull
			showDate := opts.showDate || opts.showFull
			if format == "json" {
				return renderVersionJSON(cmd.OutOrStdout(), showHash, showDate)
			}
			renderVersionPretty(cmd.OutOrStdout(), rootOpts.useColor, showHash, showDate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&opts.showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&opts.showFull, "full", false, "show all build metadata")
	cmd.Flags().StringVar(&opts.format, "output", "pretty", "output format (pretty|json)")
	return cmd
}

func currentVersion() string {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		return "dev"
	}
	return v
}

func renderVersionPretty(out io.Writer, color, showHash, showDate bool) {
	fmt.Fprintf(out, "irkit %s\n", version.Colored(currentVersion(), color))
	if showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	}
	if showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, showHash, showDate bool) error {
	payload := versionPayload{Tool: "irkit", Version: currentVersion()}
	if showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
