package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"audiolift/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the outcomes of past extraction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit, failedOnly)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journaled extractions yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.OutputPath
				if entry.Status == journal.StatusFailed {
					detail = entry.Error
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					string(entry.Status),
					entry.SourcePath,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Status", "Source", "Output / Error"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed extractions")

	return cmd
}
