package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/getsentry/anylog/pkg/config"
	"github.com/getsentry/anylog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
	Zone       string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect which timestamp grammars match a log file",
		Long: `Analyze a log file to see which timestamp grammars recognize its lines.

Samples lines from the file and scores every grammar in the catalog, so
ambiguity between grammars stays visible. The grammar the splitter would
actually pick per line is the highest-priority one that matches.

Example:
  anylog detect /var/log/myapp.log
  anylog detect --sample 500 /var/log/large.log
  anylog detect --all -o json app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching grammars, not just the best one")
	cmd.Flags().StringVar(&opts.Zone, "zone", "", "Fallback zone for sample timestamps without an offset")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	detectorOpts := []detector.Option{detector.WithSampleSize(opts.SampleSize)}
	if opts.Zone != "" {
		loc, err := config.ParseZone(opts.Zone)
		if err != nil {
			return fmt.Errorf("invalid zone: %w", err)
		}
		detectorOpts = append(detectorOpts, detector.WithFallbackZone(loc))
	}

	d := detector.New(detectorOpts...)

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd, result, logFile, opts)
	default:
		return outputDetectText(cmd, result, logFile, opts)
	}
}

func outputDetectText(cmd *cobra.Command, result *detector.Result, logFile string, opts *DetectOptions) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Timestamp Grammar Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with timestamps: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No timestamp grammar matched.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: the file may use an uncommon convention.")
		fmt.Fprintln(w, "Check the first few lines manually to identify the timestamp shape.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Best grammar: %s (priority rank %d)\n", best.Name, best.Rank)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	if !best.SampleTime.IsZero() {
		fmt.Fprintf(w, "Parsed as: %s\n", best.SampleTime.Format(time.RFC3339Nano))
	}
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Other matching grammars ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (rank %d, %.1f%% confidence)\n", i+2, m.Name, m.Rank, m.Confidence*100)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a grammar match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Rank       int     `json:"rank"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	SampleTime string  `json:"sample_time,omitempty"`
}

// JSONDetectOutput represents the full JSON output of detect.
type JSONDetectOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
	ParsedLines  int         `json:"parsed_lines"`
}

func outputDetectJSON(cmd *cobra.Command, result *detector.Result, logFile string, opts *DetectOptions) error {
	out := JSONDetectOutput{
		File:         logFile,
		SampledLines: result.SampledLines,
		ParsedLines:  result.ParsedLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // only the best match
	}

	for _, m := range matches {
		jm := JSONMatch{
			Name:       m.Name,
			Rank:       m.Rank,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		}
		if !m.SampleTime.IsZero() {
			jm.SampleTime = m.SampleTime.Format(time.RFC3339Nano)
		}
		out.Matches = append(out.Matches, jm)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
