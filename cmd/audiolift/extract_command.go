package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"audiolift/internal/batch"
	"audiolift/internal/config"
	"audiolift/internal/deps"
	"audiolift/internal/extraction"
	"audiolift/internal/journal"
	"audiolift/internal/logging"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var continueOnError bool
	var overwrite bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "extract <folder>",
		Short: "Extract the Japanese audio track of every video in a folder",
		Long: `Scan a folder for video files and extract the Japanese audio track of each
into a sibling .mp3 named after the source file.

Files with a single audio track use that track regardless of its language
tag. Files with several use the first track tagged Japanese; when none is,
the run halts unless --continue-on-error is given.

Examples:
  audiolift extract ~/anime/season1
  audiolift extract --dry-run ~/anime/season1
  audiolift extract --continue-on-error --overwrite ~/anime/season1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			folder, err := expandFolderArg(args[0])
			if err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			if err := deps.Verify(deps.Default(cfg.FFprobeBinary(), cfg.FFmpegBinary())); err != nil {
				return err
			}

			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			driver := batch.NewDriver(
				batch.FFprobeProber{Binary: cfg.FFprobeBinary()},
				extraction.New(cfg.FFmpegBinary(), overwrite || cfg.Extraction.OverwriteExisting),
				store,
				logger,
			)

			summary, runErr := driver.Run(runCtx, batch.Options{
				Folder:          folder,
				Extensions:      cfg.Scan.Extensions,
				ContinueOnError: continueOnError || cfg.Batch.ContinueOnError,
				DryRun:          dryRun,
			})

			logger.Info("run finished",
				logging.Int("processed", summary.Processed),
				logging.Int("extracted", summary.Extracted),
				logging.Int("skipped", summary.Skipped),
				logging.Int("failed", summary.Failed),
			)
			return runErr
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Skip files that fail instead of halting the run")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing .mp3 outputs")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Probe and select tracks without running ffmpeg")

	return cmd
}

func expandFolderArg(arg string) (string, error) {
	folder := strings.TrimSpace(arg)
	if folder == "" {
		return "", fmt.Errorf("folder argument is required")
	}
	expanded, err := config.ExpandPath(folder)
	if err != nil {
		return "", fmt.Errorf("resolve folder: %w", err)
	}
	return expanded, nil
}
