package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"audiolift/internal/fileutil"
)

// ErrOutputExists reports a refusal to clobber an existing output file when
// overwriting is disabled.
var ErrOutputExists = errors.New("output file already exists")

// Extractor runs ffmpeg to transcode a single audio stream to MP3.
type Extractor struct {
	// Binary is the ffmpeg executable, resolved via PATH when relative.
	Binary string
	// Overwrite allows replacing an existing output file. Off by default:
	// the extractor fails with ErrOutputExists instead of clobbering.
	Overwrite bool
}

// New returns an Extractor for the given ffmpeg binary.
func New(binary string, overwrite bool) *Extractor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{Binary: binary, Overwrite: overwrite}
}

// Extract transcodes the container stream streamIndex of source into an MP3
// at dest. The stream index is the container-level index reported by
// ffprobe, not the position among audio streams.
func (e *Extractor) Extract(ctx context.Context, source string, streamIndex int, dest string) error {
	if streamIndex < 0 {
		return fmt.Errorf("extract audio: invalid stream index %d", streamIndex)
	}
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return errors.New("extract audio: source and destination are required")
	}
	if !e.Overwrite && fileutil.Exists(dest) {
		return fmt.Errorf("extract audio: %w: %s", ErrOutputExists, dest)
	}

	existedBefore := fileutil.Exists(dest)
	cmd := exec.CommandContext(ctx, e.Binary, e.args(source, streamIndex, dest)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		// ffmpeg may leave a truncated file behind on failure.
		if !existedBefore {
			_ = os.Remove(dest)
		}
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (e *Extractor) args(source string, streamIndex int, dest string) []string {
	overwriteFlag := "-n"
	if e.Overwrite {
		overwriteFlag = "-y"
	}
	return []string{
		overwriteFlag,
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-vn",
		"-sn",
		"-dn",
		"-q:a", "0",
		dest,
	}
}
