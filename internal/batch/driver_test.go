package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"audiolift/internal/journal"
	"audiolift/internal/media/audio"
)

type fakeProber struct {
	tracks map[string][]audio.Track
	err    map[string]error
}

func (f *fakeProber) Probe(_ context.Context, path string) ([]audio.Track, error) {
	name := filepath.Base(path)
	if err, ok := f.err[name]; ok {
		return nil, err
	}
	return f.tracks[name], nil
}

type fakeExtractor struct {
	calls []string
	fail  map[string]error
}

func (f *fakeExtractor) Extract(_ context.Context, source string, streamIndex int, dest string) error {
	name := filepath.Base(source)
	f.calls = append(f.calls, fmt.Sprintf("%s:%d:%s", name, streamIndex, filepath.Base(dest)))
	if err, ok := f.fail[name]; ok {
		return err
	}
	return nil
}

type memoryRecorder struct {
	entries []journal.Entry
}

func (m *memoryRecorder) Record(_ context.Context, entry journal.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func makeFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunExtractsJapaneseTrack(t *testing.T) {
	dir := makeFolder(t, "movie.mkv")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"movie.mkv": {
			{StreamIndex: 1, Position: 0, Language: "eng"},
			{StreamIndex: 2, Position: 1, Language: "jpn"},
		},
	}}
	extractor := &fakeExtractor{}
	recorder := &memoryRecorder{}

	driver := NewDriver(prober, extractor, recorder, nil)
	summary, err := driver.Run(context.Background(), Options{Folder: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Extracted != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(extractor.calls) != 1 || extractor.calls[0] != "movie.mkv:2:movie.mp3" {
		t.Fatalf("unexpected extractor calls %v", extractor.calls)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Status != journal.StatusExtracted {
		t.Fatalf("unexpected journal entries %+v", recorder.entries)
	}
	if recorder.entries[0].RunID != summary.RunID {
		t.Fatal("journal entry must carry the run ID")
	}
}

func TestRunSingleTrackIgnoresLanguage(t *testing.T) {
	dir := makeFolder(t, "clip.mp4")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"clip.mp4": {{StreamIndex: 1, Position: 0}},
	}}
	extractor := &fakeExtractor{}

	_, err := NewDriver(prober, extractor, nil, nil).Run(context.Background(), Options{Folder: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(extractor.calls) != 1 || extractor.calls[0] != "clip.mp4:1:clip.mp3" {
		t.Fatalf("unexpected extractor calls %v", extractor.calls)
	}
}

func TestRunHaltsOnFirstFailure(t *testing.T) {
	dir := makeFolder(t, "a.mkv", "b.mkv", "c.mkv")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"a.mkv": {{StreamIndex: 1}},
		"b.mkv": {
			{StreamIndex: 1, Language: "eng"},
			{StreamIndex: 2, Language: "kor"},
		},
		"c.mkv": {{StreamIndex: 1}},
	}}
	extractor := &fakeExtractor{}
	recorder := &memoryRecorder{}

	summary, err := NewDriver(prober, extractor, recorder, nil).Run(context.Background(), Options{Folder: dir})
	if !errors.Is(err, audio.ErrNoJapaneseTrack) {
		t.Fatalf("expected ErrNoJapaneseTrack, got %v", err)
	}
	if !strings.Contains(err.Error(), "b.mkv") {
		t.Fatalf("expected error to name the offending file, got %v", err)
	}
	// a.mkv processed before the halt, c.mkv never reached.
	if summary.Extracted != 1 || summary.Processed != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(extractor.calls) != 1 {
		t.Fatalf("expected one extraction before halt, got %v", extractor.calls)
	}
	last := recorder.entries[len(recorder.entries)-1]
	if last.Status != journal.StatusFailed || last.SourcePath != filepath.Join(dir, "b.mkv") {
		t.Fatalf("unexpected failure entry %+v", last)
	}
}

func TestRunContinueOnError(t *testing.T) {
	dir := makeFolder(t, "a.mkv", "b.mkv", "c.mkv")
	prober := &fakeProber{
		tracks: map[string][]audio.Track{
			"a.mkv": {{StreamIndex: 1}},
			"c.mkv": {{StreamIndex: 1}},
		},
		err: map[string]error{"b.mkv": errors.New("ffprobe exploded")},
	}
	extractor := &fakeExtractor{}

	summary, err := NewDriver(prober, extractor, nil, nil).Run(context.Background(), Options{Folder: dir, ContinueOnError: true})
	if err == nil {
		t.Fatal("expected run to report the failure")
	}
	if summary.Extracted != 2 || summary.Failed != 1 || summary.Processed != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(extractor.calls) != 2 {
		t.Fatalf("expected both good files extracted, got %v", extractor.calls)
	}
}

func TestRunDryRunSkipsExtraction(t *testing.T) {
	dir := makeFolder(t, "movie.mkv")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"movie.mkv": {{StreamIndex: 1, Language: "jpn"}},
	}}
	extractor := &fakeExtractor{}
	recorder := &memoryRecorder{}

	summary, err := NewDriver(prober, extractor, recorder, nil).Run(context.Background(), Options{Folder: dir, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(extractor.calls) != 0 {
		t.Fatalf("dry run must not invoke ffmpeg, got %v", extractor.calls)
	}
	if summary.Skipped != 1 || summary.Extracted != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Status != journal.StatusSkipped {
		t.Fatalf("unexpected journal entries %+v", recorder.entries)
	}
}

func TestRunEmptyTrackListFails(t *testing.T) {
	dir := makeFolder(t, "silent.mkv")
	prober := &fakeProber{tracks: map[string][]audio.Track{"silent.mkv": {}}}

	_, err := NewDriver(prober, &fakeExtractor{}, nil, nil).Run(context.Background(), Options{Folder: dir})
	if !errors.Is(err, audio.ErrNoAudioTracks) {
		t.Fatalf("expected ErrNoAudioTracks, got %v", err)
	}
}

func TestRunExtractionFailureRecorded(t *testing.T) {
	dir := makeFolder(t, "movie.mkv")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"movie.mkv": {{StreamIndex: 1, Language: "jpn"}},
	}}
	extractor := &fakeExtractor{fail: map[string]error{"movie.mkv": errors.New("ffmpeg exit 1")}}
	recorder := &memoryRecorder{}

	summary, err := NewDriver(prober, extractor, recorder, nil).Run(context.Background(), Options{Folder: dir})
	if err == nil {
		t.Fatal("expected extraction failure to surface")
	}
	if summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Status != journal.StatusFailed {
		t.Fatalf("unexpected journal entries %+v", recorder.entries)
	}
}

func TestRunFailsWhenFolderLocked(t *testing.T) {
	dir := makeFolder(t, "movie.mkv")
	held := flock.New(filepath.Join(dir, ".audiolift.lock"))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	prober := &fakeProber{tracks: map[string][]audio.Track{
		"movie.mkv": {{StreamIndex: 1}},
	}}
	_, err = NewDriver(prober, &fakeExtractor{}, nil, nil).Run(context.Background(), Options{Folder: dir})
	if !errors.Is(err, ErrFolderLocked) {
		t.Fatalf("expected ErrFolderLocked, got %v", err)
	}
}

func TestRunScansOnlyVideoFiles(t *testing.T) {
	dir := makeFolder(t, "movie.mkv", "notes.txt")
	prober := &fakeProber{tracks: map[string][]audio.Track{
		"movie.mkv": {{StreamIndex: 1}},
	}}
	extractor := &fakeExtractor{}

	summary, err := NewDriver(prober, extractor, nil, nil).Run(context.Background(), Options{Folder: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected only the video file processed, got %+v", summary)
	}
}
