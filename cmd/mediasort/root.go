package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/sorter"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
		statusFile string
		logLevel   string
		logFormat  string

		dryRun        bool
		move          bool
		mediaOnly     bool
		excludeHidden bool
		resume        bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "mediasort [flags] SOURCE...",
		Short: "Sort media files into year-based folders",
		Long: `mediasort organizes photos, videos and gifs into year-named folders,
parsing dates from filenames or falling back to creation timestamps while
preserving the relative directory structure of each source tree.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override config file values only when set.
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("status-file") {
				cfg.StatusFile = statusFile
			}
			if flags.Changed("move") {
				cfg.Move = move
			}
			if flags.Changed("media-only") {
				cfg.MediaOnly = mediaOnly
			}
			if flags.Changed("exclude-hidden") {
				cfg.ExcludeHidden = excludeHidden
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			cfg.Sources = args
			cfg.DryRun = dryRun
			cfg.Resume = resume
			cfg.Verbose = verbose

			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if !cfg.DryRun {
				if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			level := cfg.LogLevel
			if cfg.Verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			runErr := sorter.New(&cfg, logger).Run(ctx)
			if errors.Is(runErr, sorter.ErrInterrupted) {
				// Progress was checkpointed; exit cleanly.
				return nil
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: sibling of first source with _sorted suffix)")
	cmd.Flags().StringVar(&statusFile, "status-file", "", "Status file for resume capability")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without actually doing it")
	cmd.Flags().BoolVar(&move, "move", false, "Move files instead of copying them")
	cmd.Flags().BoolVar(&mediaOnly, "media-only", false, "Only process media files (photos, videos, gifs)")
	cmd.Flags().BoolVar(&excludeHidden, "exclude-hidden", false, "Exclude hidden files and directories")
	cmd.Flags().BoolVar(&resume, "resume", false, "Resume from previous interrupted operation without prompting")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (show all file operations)")

	return cmd
}
