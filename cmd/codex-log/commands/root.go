package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clsung/codex-log/internal/config"
	"github.com/clsung/codex-log/internal/converter"
	"github.com/clsung/codex-log/internal/logging"
	"github.com/clsung/codex-log/internal/watch"
)

var (
	logLevel   string
	configPath string
	watchMode  bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codex-log <input> <output.html>",
		Short: "Convert Codex JSONL logs to static HTML reports",
		Long: `codex-log converts Codex conversation logs to HTML.

INPUT is either a history.jsonl file or a sessions directory; a directory
input is converted with project grouping. OUTPUT is the HTML file to write.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runConvert,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic verbosity: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/codex-log/config.yaml)")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and re-render when the input file changes")

	rootCmd.AddCommand(NewSessionsCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewBrowseCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger, honoring flag overrides.
func setup() (*config.Config, *zap.SugaredLogger, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDefaultPath()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := logging.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input %s does not exist: %w", inputPath, err)
	}

	conv := converter.New(cfg.HistoryPath, log)

	if info.IsDir() {
		// A directory input means session files with project grouping.
		return conv.ConvertSessions(inputPath, outputPath)
	}

	if err := conv.Convert(inputPath, outputPath); err != nil {
		return err
	}

	if !watchMode {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch.File(ctx, inputPath, log, func() error {
		return conv.Convert(inputPath, outputPath)
	})
}
