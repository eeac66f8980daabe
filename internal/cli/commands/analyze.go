package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/delulu-meter/internal/config"
	engine "github.com/markdave123-py/delulu-meter/internal/core/analysis_engine"
	"github.com/markdave123-py/delulu-meter/internal/core/jobstore"
	"github.com/markdave123-py/delulu-meter/internal/core/sentiment"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output     string
	Top        int
	Gap        time.Duration
	ConfigPath string
	Workers    int
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <chat-file>",
		Short: "Analyze an exported chat",
		Long: `Analyze an exported WhatsApp chat and print its metrics.

Plain text exports are read directly; PDF, Word and HTML copies of a chat
are converted to text first.

Exit codes:
  0 - Report printed
  2 - The file could not be read or contained no chat messages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Number of keyword themes (default from config)")
	cmd.Flags().DurationVar(&opts.Gap, "gap", 0, "Silence that breaks a conversation run, e.g. 30m")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML file with analysis thresholds")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Parallel parse workers")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("invalid output format %q (must be text or json)", opts.Output)
	}

	tuning := config.DefaultTuning()
	if opts.ConfigPath != "" {
		t, err := config.LoadTuning(ctx, opts.ConfigPath, tuning)
		if err != nil {
			return err
		}
		tuning = t
	}
	if opts.Top > 0 {
		tuning.TopKeywords = opts.Top
	}
	metricOpts := tuning.MetricOptions()
	if opts.Gap > 0 {
		metricOpts.Gap = opts.Gap
	}

	path := args[0]
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided chat path is expected
	if err != nil {
		return fmt.Errorf("reading chat: %w", err)
	}

	eng := engine.NewEngine(
		jobstore.NewMemoryStore(),
		sentiment.NewLexiconScorer(),
		engine.NewDocconvExtractor(false),
		nil,
		&engine.EngineConfig{
			MaxLines:     tuning.MaxLines,
			BatchLines:   tuning.BatchLines,
			ParseWorkers: opts.Workers,
			Metrics:      metricOpts,
		},
	)

	bundle, err := eng.Analyze(ctx, engine.Upload{
		Data:        data,
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}
	return writeText(out, bundle)
}

// writeText renders a bundle as a plain report.
func writeText(w io.Writer, b *models.Bundle) error {
	var sb strings.Builder
	ov := b.Overview

	fmt.Fprintf(&sb, "Messages:        %d from %s\n", b.TotalMessages, strings.Join(b.Authors, ", "))
	fmt.Fprintf(&sb, "Span:            %d days (%d active, %.1f msgs/day)\n", ov.SpanDays, ov.ActiveDays, ov.AvgMessagesPerDay)
	fmt.Fprintf(&sb, "Balance:         %s\n", b.EngagementBalance)
	fmt.Fprintf(&sb, "Harmony score:   %.1f\n", b.HarmonyScore)
	fmt.Fprintf(&sb, "Longest run:     %s\n", b.ContinuityIndex.Duration)
	fmt.Fprintf(&sb, "Mood swings:     %.3f\n", b.SentimentVariability)
	fmt.Fprintf(&sb, "Delulu score:    %d (%s)\n", ov.DeluluScore, ov.RelationshipVibe)
	fmt.Fprintf(&sb, "Reply speed:     %d min, %d%% from one person\n", ov.AvgReplyMinutes, ov.OneSidedPercent)
	fmt.Fprintf(&sb, "Typing energy:   %d words/message, dryness %d%%\n", ov.TypingEnergy, ov.Dryness)

	sb.WriteString("\nPer author:\n")
	for _, a := range b.Authors {
		fmt.Fprintf(&sb, "  %s\n", a)
		fmt.Fprintf(&sb, "    starts:      %.1f%% of days\n", b.InitiationIndex[a])
		if rt, ok := b.ReplyTimes[a]; ok {
			fmt.Fprintf(&sb, "    reply time:  %.1f min\n", rt)
		}
		fmt.Fprintf(&sb, "    style:       %s\n", b.CommunicationStyle[a])
		fmt.Fprintf(&sb, "    emoji:       %d\n", b.EmojiUsage[a])
		fmt.Fprintf(&sb, "    late night:  %d\n", b.LateActivity[a])
	}

	if len(b.KeywordThemes) > 0 {
		sb.WriteString("\nTop words:\n")
		for _, k := range b.KeywordThemes {
			fmt.Fprintf(&sb, "  %-14s %d\n", k.Word, k.Count)
		}
	}

	if len(b.SentimentTimeline) > 0 {
		days := make([]string, 0, len(b.SentimentTimeline))
		for d := range b.SentimentTimeline {
			days = append(days, d)
		}
		sort.Strings(days)
		sb.WriteString("\nMood by day:\n")
		for _, d := range days {
			fmt.Fprintf(&sb, "  %s  %+.3f\n", d, b.SentimentTimeline[d])
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
