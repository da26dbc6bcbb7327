package config

const (
	defaultStateDir  = "~/.local/share/audiolift"
	defaultLogDir    = "~/.local/share/audiolift/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

var defaultExtensions = []string{".mkv", ".mp4", ".avi"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Scan: Scan{
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
