package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool audiolift relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the external tool requirements for an extraction run.
// Binary overrides come from config; empty strings fall back to PATH names.
func Default(ffprobeBinary, ffmpegBinary string) []Requirement {
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return []Requirement{
		{Name: "ffprobe", Command: ffprobeBinary, Description: "Lists audio streams and language tags"},
		{Name: "ffmpeg", Command: ffmpegBinary, Description: "Extracts and transcodes audio to MP3"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Available = true
			status.Command = resolved
		}
		results = append(results, status)
	}
	return results
}

// Verify returns an error naming the first missing required tool, or nil
// when every requirement resolves.
func Verify(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if !status.Available && !status.Optional {
			return fmt.Errorf("missing dependency %s: %s", status.Name, status.Detail)
		}
	}
	return nil
}
