// Package audio builds audio track lists from probed streams and picks the
// track to extract.
//
// The selection rule is deliberately simple: a file with one audio track
// uses that track no matter how it is tagged, and a file with several uses
// the first track whose normalized language tag is Japanese. Anything else
// is an error the caller surfaces, not a guess.
//
// Key types:
//   - Track: one audio stream with its container index and normalized language
//
// Primary entry points:
//   - Tracks: converts probed streams into the ordered track list
//   - SelectJapanese: applies the selection rule
package audio
