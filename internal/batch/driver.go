package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audiolift/internal/fileutil"
	"audiolift/internal/journal"
	"audiolift/internal/logging"
	"audiolift/internal/media/audio"
	"audiolift/internal/scanner"
)

// ErrFolderLocked reports that another run already holds the folder lock.
var ErrFolderLocked = errors.New("folder is locked by another run")

// Prober lists the audio tracks of a media file.
type Prober interface {
	Probe(ctx context.Context, path string) ([]audio.Track, error)
}

// Extractor writes one container stream of source to an MP3 at dest.
type Extractor interface {
	Extract(ctx context.Context, source string, streamIndex int, dest string) error
}

// Recorder persists per-file outcomes. The journal store satisfies this.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) error
}

// Options controls a batch run.
type Options struct {
	Folder     string
	Extensions []string
	// ContinueOnError skips failed files instead of halting the run.
	ContinueOnError bool
	// DryRun stops after track selection; ffmpeg is never invoked.
	DryRun bool
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	Processed int
	Extracted int
	Skipped   int
	Failed    int
}

// Driver walks a folder sequentially: probe, select, extract, one file at a
// time. There is no concurrency; files are independent and processed in
// lexicographic order.
type Driver struct {
	prober    Prober
	extractor Extractor
	recorder  Recorder
	logger    *slog.Logger
}

// NewDriver wires a driver. recorder may be nil to disable journaling;
// logger may be nil for silent operation.
func NewDriver(prober Prober, extractor Extractor, recorder Recorder, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{prober: prober, extractor: extractor, recorder: recorder, logger: logger}
}

// Run processes every video file in opts.Folder. The first failure halts
// the run unless ContinueOnError is set; outputs written before the halt
// stay on disk. The returned summary is valid even when err is non-nil.
func (d *Driver) Run(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := d.logger.With(logging.String("run_id", summary.RunID))

	info, err := os.Stat(opts.Folder)
	if err != nil {
		return summary, fmt.Errorf("scan folder: %w", err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("scan folder: %s is not a directory", opts.Folder)
	}

	lock := flock.New(filepath.Join(opts.Folder, ".audiolift.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire folder lock: %w", err)
	}
	if !locked {
		return summary, fmt.Errorf("%w: %s", ErrFolderLocked, opts.Folder)
	}
	defer func() { _ = lock.Unlock() }()

	files, err := scanner.Videos(opts.Folder, opts.Extensions)
	if err != nil {
		return summary, err
	}
	logger.Info("scan complete",
		logging.String("folder", opts.Folder),
		logging.Int("files", len(files)),
	)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Processed++
		if err := d.processFile(ctx, logger, opts, file, &summary); err != nil {
			summary.Failed++
			if !opts.ContinueOnError {
				return summary, fmt.Errorf("%s: %w", file, err)
			}
			logger.Warn("file skipped after failure",
				logging.String("file", file),
				logging.Error(err),
			)
		}
	}

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d files failed", summary.Failed, summary.Processed)
	}
	return summary, nil
}

func (d *Driver) processFile(ctx context.Context, logger *slog.Logger, opts Options, file string, summary *Summary) error {
	started := time.Now()

	tracks, err := d.prober.Probe(ctx, file)
	if err != nil {
		err = fmt.Errorf("probe: %w", err)
		d.record(ctx, logger, journal.Entry{
			RunID:      summary.RunID,
			SourcePath: file,
			Status:     journal.StatusFailed,
			Error:      err.Error(),
			Duration:   time.Since(started),
		})
		return err
	}

	track, err := audio.SelectJapanese(tracks)
	if err != nil {
		d.record(ctx, logger, journal.Entry{
			RunID:      summary.RunID,
			SourcePath: file,
			Status:     journal.StatusFailed,
			Error:      err.Error(),
			Duration:   time.Since(started),
		})
		return err
	}

	output := fileutil.OutputPath(file)
	logger.Info("track selected",
		logging.String("file", file),
		logging.Int("stream", track.StreamIndex),
		logging.String("track", track.Label()),
	)

	if opts.DryRun {
		summary.Skipped++
		d.record(ctx, logger, journal.Entry{
			RunID:       summary.RunID,
			SourcePath:  file,
			OutputPath:  output,
			StreamIndex: track.StreamIndex,
			Language:    track.Language,
			Status:      journal.StatusSkipped,
			Duration:    time.Since(started),
		})
		return nil
	}

	if err := d.extractor.Extract(ctx, file, track.StreamIndex, output); err != nil {
		d.record(ctx, logger, journal.Entry{
			RunID:       summary.RunID,
			SourcePath:  file,
			OutputPath:  output,
			StreamIndex: track.StreamIndex,
			Language:    track.Language,
			Status:      journal.StatusFailed,
			Error:       err.Error(),
			Duration:    time.Since(started),
		})
		return err
	}

	summary.Extracted++
	elapsed := time.Since(started)
	logger.Info("extraction complete",
		logging.String("file", file),
		logging.String("output", output),
		logging.Duration("elapsed", elapsed),
	)
	d.record(ctx, logger, journal.Entry{
		RunID:       summary.RunID,
		SourcePath:  file,
		OutputPath:  output,
		StreamIndex: track.StreamIndex,
		Language:    track.Language,
		Status:      journal.StatusExtracted,
		Duration:    elapsed,
	})
	return nil
}

func (d *Driver) record(ctx context.Context, logger *slog.Logger, entry journal.Entry) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Record(ctx, entry); err != nil {
		// A journal write failure must not fail the extraction itself.
		logger.Warn("journal write failed",
			logging.String("file", entry.SourcePath),
			logging.Error(err),
		)
	}
}
