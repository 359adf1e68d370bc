// Package cli provides the command-line interface for bmorganize.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaher/bmorganize/internal/app"
	"github.com/dmaher/bmorganize/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	flagTimeout     time.Duration
	flagConcurrency int
	flagHeadFirst   bool
	flagSkipProbe   bool
	flagRate        int
	flagPerHost     int
	flagSimilarity  float64
	flagOutDir      string
	flagLogLevel    string
	flagLogFile     string
)

var rootCmd = &cobra.Command{
	Use:   "bmorganize <bookmarks.html>",
	Short: "Analyze an exported browser bookmarks file",
	Long: `bmorganize parses a browser bookmark export (the HTML file produced by
"Export bookmarks"), finds duplicate entries, probes every distinct URL
for liveness, and writes CSV/JSON reports plus a console summary.

Artifacts written to the output directory (overwriting existing files):
  dead_bookmarks.csv        bookmarks whose URL is dead or errored
  working_bookmarks.csv     bookmarks whose URL responded
  duplicate_bookmarks.csv   duplicate URL groups and similar-title clusters
  bookmark_analysis.json    the full result set

Examples:
  bmorganize bookmarks.html
  bmorganize bookmarks.html --concurrency 50 --timeout 5s
  bmorganize bookmarks.html --skip-probe --out-dir ./reports`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    run,

	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.DurationVar(&flagTimeout, "timeout", 10*time.Second, "per-probe HTTP timeout")
	f.IntVar(&flagConcurrency, "concurrency", 20, "number of concurrent probes")
	f.BoolVar(&flagHeadFirst, "head-first", true, "try HEAD before GET (fallback to GET if needed)")
	f.BoolVar(&flagSkipProbe, "skip-probe", false, "skip liveness probing, only parse and deduplicate")
	f.IntVar(&flagRate, "rate", 20, "max probes per second overall")
	f.IntVar(&flagPerHost, "per-host-rate", 4, "max probes per second against a single host")
	f.Float64Var(&flagSimilarity, "similarity", 0.85, "title-similarity threshold for advisory clusters (0..1]")
	f.StringVar(&flagOutDir, "out-dir", ".", "directory the report artifacts are written to")
	f.StringVar(&flagLogLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	f.StringVar(&flagLogFile, "log-file", "", "also write JSON logs to this file")
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("bookmarks file: %w", err)
	}

	cfg := buildConfig(cmd)

	log, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	return app.Run(cmd.Context(), cfg, inputPath, cmd.OutOrStdout(), log)
}

// buildConfig starts from the environment and lets explicitly-set flags
// win over it.
func buildConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()

	f := cmd.Flags()
	if f.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = flagConcurrency
	}
	if f.Changed("head-first") {
		cfg.HeadFirst = flagHeadFirst
	}
	if f.Changed("skip-probe") {
		cfg.SkipProbe = flagSkipProbe
	}
	if f.Changed("rate") {
		cfg.Rate = flagRate
	}
	if f.Changed("per-host-rate") {
		cfg.PerHostRate = flagPerHost
	}
	if f.Changed("similarity") {
		cfg.TitleSimilarity = flagSimilarity
	}
	if f.Changed("out-dir") {
		cfg.OutDir = flagOutDir
	}
	if f.Changed("log-level") {
		cfg.LogLevel = config.ParseLogLevel(flagLogLevel)
	}
	if f.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}

	return cfg.Clamped()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
