package audio

import (
	"errors"
	"strconv"
	"strings"

	"audiolift/internal/language"
	"audiolift/internal/media/ffprobe"
)

// Japanese is the normalized language tag extraction looks for.
const Japanese = "jpn"

var (
	// ErrNoAudioTracks reports a container with no audio streams at all.
	ErrNoAudioTracks = errors.New("no audio tracks found")

	// ErrNoJapaneseTrack reports a multi-track container where no stream
	// carries a Japanese language tag.
	ErrNoJapaneseTrack = errors.New("no japanese audio track found")
)

// Track describes one audio stream eligible for extraction.
type Track struct {
	// StreamIndex is the container stream index, the N in ffmpeg's "-map 0:N".
	StreamIndex int
	// Position is the zero-based position among the audio streams only.
	Position int
	// Language is the normalized ISO 639-2 tag, or "" when the stream is untagged.
	Language string
	// RawLanguage preserves the tag exactly as the container recorded it.
	RawLanguage string
	Codec       string
	CodecLong   string
	Channels    int
	Title       string
	Default     bool
}

// Label returns a human-readable summary of the track for logs and tables.
func (t Track) Label() string {
	parts := make([]string, 0, 4)
	if t.Language != "" {
		parts = append(parts, language.DisplayName(t.Language))
	}
	codec := t.CodecLong
	if codec == "" {
		codec = t.Codec
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if t.Channels > 0 {
		parts = append(parts, strconv.Itoa(t.Channels)+"ch")
	}
	if t.Title != "" {
		parts = append(parts, t.Title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}

// Tracks builds the ordered audio track list from probed streams. Non-audio
// streams are skipped; probe order is preserved.
func Tracks(streams []ffprobe.Stream) []Track {
	tracks := make([]Track, 0, len(streams))
	position := 0
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		raw := language.ExtractFromTags(stream.Tags)
		track := Track{
			StreamIndex: stream.Index,
			Position:    position,
			RawLanguage: raw,
			Codec:       stream.CodecName,
			CodecLong:   stream.CodecLong,
			Channels:    channelCount(stream),
			Title:       normalizeTitle(stream.Tags),
			Default:     stream.Disposition != nil && stream.Disposition["default"] == 1,
		}
		if raw != "" {
			if normalized := language.Normalize(raw); normalized != "und" {
				track.Language = normalized
			} else {
				track.Language = raw
			}
		}
		tracks = append(tracks, track)
		position++
	}
	return tracks
}

// SelectJapanese picks the audio track to extract:
//
//   - a single track is used unconditionally, whatever its tag says;
//   - among multiple tracks the first one tagged Japanese wins;
//   - no Japanese tag among multiple tracks fails with ErrNoJapaneseTrack;
//   - an empty list fails with ErrNoAudioTracks.
func SelectJapanese(tracks []Track) (Track, error) {
	switch len(tracks) {
	case 0:
		return Track{}, ErrNoAudioTracks
	case 1:
		return tracks[0], nil
	}
	for _, track := range tracks {
		if track.Language == Japanese {
			return track, nil
		}
	}
	return Track{}, ErrNoJapaneseTrack
}

func normalizeTitle(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"title", "TITLE", "handler_name", "HANDLER_NAME"} {
		if value, ok := tags[key]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 0
	case strings.HasPrefix(layout, "7.1"):
		return 8
	case strings.HasPrefix(layout, "6.1"):
		return 7
	case strings.HasPrefix(layout, "5.1"):
		return 6
	case layout == "stereo", strings.HasPrefix(layout, "2.0"):
		return 2
	case layout == "mono", strings.HasPrefix(layout, "1.0"):
		return 1
	}
	return 0
}
