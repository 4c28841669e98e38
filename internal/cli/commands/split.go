package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/getsentry/anylog/pkg/anylog"
	"github.com/getsentry/anylog/pkg/config"
	"github.com/getsentry/anylog/pkg/output"
	"github.com/getsentry/anylog/pkg/stream"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// SplitOptions holds command-line options for the split command.
type SplitOptions struct {
	ConfigFile  string
	Output      string
	Zone        string
	Now         string
	Merge       bool
	OnlyMatched bool
	Verbose     bool
	Quiet       bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split [log-file...]",
		Short: "Split log lines into timestamp and message",
		Long: `Split each line of the given log files into a recognized timestamp and the
remaining message. The timestamp convention is detected per line from a
fixed catalog of grammars; lines without a detectable timestamp pass
through with their full text as the message.

Reads stdin when no files are given or when a file is "-".

Timestamps without an explicit UTC offset get the fallback zone; syslog
style timestamps without a year get it inferred from the reference clock.
Pin both with --zone and --now for reproducible output.

Exit codes:
  0 - Lines processed
  1 - No line carried a recognized timestamp
  2 - Configuration or runtime error`,
		Example: `  anylog split /var/log/system.log
  anylog split --zone +02:00 --now 2024-06-03T00:00:00Z app.log
  anylog split --merge --only-matched api.log worker.log
  kubectl logs my-pod | anylog split -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Zone, "zone", "", "Fallback zone for timestamps without an offset (e.g. +02:00, UTC, Europe/Vienna)")
	cmd.Flags().StringVar(&opts.Now, "now", "", "Reference time for year inference, RFC 3339 (default: current time)")
	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Merge multiple files chronologically by timestamp")
	cmd.Flags().BoolVar(&opts.OnlyMatched, "only-matched", false, "Drop lines without a recognized timestamp")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include source location and grammar name per line")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-line output")

	return cmd
}

func runSplit(cmd *cobra.Command, args []string, opts *SplitOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	if opts.Zone != "" {
		if loc, err = config.ParseZone(opts.Zone); err != nil {
			return fmt.Errorf("invalid zone: %w", err)
		}
	}

	format := cfg.Output
	if opts.Output != "" {
		format = opts.Output
	}

	now := time.Now()
	if opts.Now != "" {
		if now, err = time.Parse(time.RFC3339, opts.Now); err != nil {
			return fmt.Errorf("invalid reference time %q: %w", opts.Now, err)
		}
	}

	splitter := anylog.New(
		anylog.WithFallbackZone(loc),
		anylog.WithFutureTolerance(cfg.FutureTolerance),
	)

	source, names, err := buildSource(cmd, args, cfg, splitter, now, opts)
	if err != nil {
		return err
	}
	defer source.Close()

	start := time.Now()
	var entries []*stream.Entry
	for {
		entry, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	ExitCode = 0
	report := output.NewReport(entries, output.Metadata{
		Sources:       names,
		ReferenceTime: now,
		FallbackZone:  loc.String(),
		Duration:      time.Since(start),
	})
	if report.Summary.LinesProcessed > 0 && report.Summary.LinesMatched == 0 {
		ExitCode = 1
	}

	formatter, err := newFormatter(format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	return formatter.Format(ctx, report, cmd.OutOrStdout())
}

// buildSource assembles the input source: stdin, a sequential file source,
// or a chronological merge across files.
func buildSource(cmd *cobra.Command, args []string, cfg *config.Config, splitter *anylog.Splitter, now time.Time, opts *SplitOptions) (stream.Source, []string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}

	if len(patterns) == 0 || (len(patterns) == 1 && patterns[0] == "-") {
		src := stream.NewReaderSource("-", cmd.InOrStdin(), splitter, now)
		src.SkipUnmatched = opts.OnlyMatched
		return src, []string{"-"}, nil
	}

	files, err := stream.ExpandGlobs(patterns)
	if err != nil {
		return nil, nil, err
	}

	if opts.Merge && len(files) > 1 {
		// One source per file; merging needs timestamps, so unmatched
		// lines are always dropped here.
		sources := make([]stream.Source, 0, len(files))
		for _, file := range files {
			src := stream.NewFileSource([]string{file}, splitter, now)
			src.SkipUnmatched = true
			sources = append(sources, src)
		}
		return stream.NewMergedSource(sources...), files, nil
	}

	src := stream.NewFileSource(files, splitter, now)
	src.SkipUnmatched = opts.OnlyMatched
	return src, files, nil
}

func newFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	switch format {
	case "text", "":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (must be text or json)", format)
	}
}
