package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// StateDir holds the extraction journal database.
	StateDir string `toml:"state_dir"`
	// LogDir receives the run log next to stdout output. Empty disables file logging.
	LogDir string `toml:"log_dir"`
}

// Scan contains configuration for the folder scan.
type Scan struct {
	// Extensions lists the video file extensions considered, with or without
	// the leading dot.
	Extensions []string `toml:"extensions"`
}

// Extraction contains configuration for probing and transcoding.
type Extraction struct {
	FFprobeBinary     string `toml:"ffprobe_binary"`
	FFmpegBinary      string `toml:"ffmpeg_binary"`
	OverwriteExisting bool   `toml:"overwrite_existing"`
}

// Batch contains configuration for batch run semantics.
type Batch struct {
	// ContinueOnError opts into skip-and-continue instead of halting the
	// whole run at the first file that fails.
	ContinueOnError bool `toml:"continue_on_error"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration for audiolift.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Scan       Scan       `toml:"scan"`
	Extraction Extraction `toml:"extraction"`
	Batch      Batch      `toml:"batch"`
	Logging    Logging    `toml:"logging"`
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to target.
func CreateSample(target string) error {
	return os.WriteFile(target, []byte(sampleConfig), 0o644)
}

// ExpandPath expands a leading tilde and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// FFprobeBinary returns the configured ffprobe command, defaulting to PATH lookup.
func (c *Config) FFprobeBinary() string {
	if strings.TrimSpace(c.Extraction.FFprobeBinary) == "" {
		return "ffprobe"
	}
	return c.Extraction.FFprobeBinary
}

// FFmpegBinary returns the configured ffmpeg command, defaulting to PATH lookup.
func (c *Config) FFmpegBinary() string {
	if strings.TrimSpace(c.Extraction.FFmpegBinary) == "" {
		return "ffmpeg"
	}
	return c.Extraction.FFmpegBinary
}

// JournalPath returns the location of the extraction journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// EnsureDirectories creates the state and log directories when missing.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if c.Paths.LogDir != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultConfigPath returns the expanded default config file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/audiolift/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error: defaults apply and exists reports false.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	loaded := Default()

	resolved, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&loaded); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loaded.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, "", false, err
	}

	return &loaded, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
