package batch

import (
	"context"

	"audiolift/internal/media/audio"
	"audiolift/internal/media/ffprobe"
)

// FFprobeProber probes media files by shelling out to ffprobe.
type FFprobeProber struct {
	Binary string
}

// Probe runs ffprobe against path and returns its ordered audio track list.
func (p FFprobeProber) Probe(ctx context.Context, path string) ([]audio.Track, error) {
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return nil, err
	}
	return audio.Tracks(result.Streams), nil
}
