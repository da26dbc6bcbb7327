package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audiolift/internal/config"
	"audiolift/internal/fileutil"
	"audiolift/internal/language"
	"audiolift/internal/media/audio"
	"audiolift/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "List the audio tracks of a video file and the one extraction would pick",
		Long: `Probe a single video file with ffprobe and show its audio tracks: container
stream index, language tag, codec, and channel count. The track extraction
would pick is marked. Useful for checking why a file fails selection without
touching the filesystem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve file: %w", err)
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			tracks := audio.Tracks(result.Streams)
			selected, selectErr := audio.SelectJapanese(tracks)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", path)
			if format := result.Format.FormatName; format != "" {
				fmt.Fprintf(out, "Container: %s\n", format)
			}

			if len(tracks) == 0 {
				fmt.Fprintln(out, "No audio tracks found.")
				return audio.ErrNoAudioTracks
			}

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				marker := ""
				if selectErr == nil && track.StreamIndex == selected.StreamIndex {
					marker = "extract"
				}
				lang := track.RawLanguage
				if lang == "" {
					lang = "-"
				}
				channels := "-"
				if track.Channels > 0 {
					channels = strconv.Itoa(track.Channels)
				}
				rows = append(rows, []string{
					strconv.Itoa(track.StreamIndex),
					lang,
					language.DisplayName(track.Language),
					track.Codec,
					channels,
					track.Title,
					marker,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Stream", "Tag", "Language", "Codec", "Ch", "Title", ""},
				rows,
				1, 5,
			))

			if selectErr != nil {
				if errors.Is(selectErr, audio.ErrNoJapaneseTrack) {
					fmt.Fprintln(out, "No Japanese track among multiple audio tracks; extraction would fail.")
				}
				return selectErr
			}

			fmt.Fprintf(out, "Would extract stream %d (%s) to %s\n",
				selected.StreamIndex, selected.Label(), fileutil.OutputPath(path))
			return nil
		},
	}

	return cmd
}
