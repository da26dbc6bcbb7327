// Package extraction wraps ffmpeg for pulling one audio stream out of a
// video container into a standalone MP3. The mapping uses the container
// stream index ffprobe reported, and the overwrite policy is explicit:
// existing outputs fail with ErrOutputExists unless overwriting was
// requested.
package extraction
