// Package scanner lists the video files a batch run will process. The scan
// is a flat directory read with an extension filter, nothing more.
package scanner
