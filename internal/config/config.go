package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSettingsPath = "/etc/forage-portfwd/config.toml"
	DefaultInput        = "./port_conf.yaml"
	DefaultOutput       = "/etc/network/interfaces.d/port_forwards"
	// StdoutPath as output writes generated rules to standard output.
	StdoutPath = "-"
)

// Settings holds tool defaults from config.toml. Command-line flags take
// precedence over every field.
type Settings struct {
	Input       string `toml:"input"`
	Output      string `toml:"output"`
	Root        string `toml:"root"`         // Filesystem root the output path is resolved under
	MetricsFile string `toml:"metrics_file"` // node-exporter textfile, empty to disable
	JSON        bool   `toml:"json"`         // JSON log output
	Strict      bool   `toml:"strict"`       // Fail when rules are disabled or blocks fail
}

// DefaultSettings returns the built-in settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Root:   "/",
	}
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Input) == "" {
		return fmt.Errorf("input is required")
	}
	if strings.TrimSpace(s.Output) == "" {
		return fmt.Errorf("output is required")
	}
	if s.Root != "" && !filepath.IsAbs(s.Root) {
		return fmt.Errorf("root must be an absolute path (got %q)", s.Root)
	}
	if s.MetricsFile != "" && !strings.HasSuffix(s.MetricsFile, ".prom") {
		return fmt.Errorf("metrics_file must end in .prom for the textfile collector (got %q)", s.MetricsFile)
	}
	return nil
}

// LoadSettings reads settings from path on top of DefaultSettings. A missing
// file is not an error unless required is set.
func LoadSettings(path string, required bool) (*Settings, error) {
	settings := DefaultSettings()

	md, err := toml.DecodeFile(path, settings)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown settings keys: %s", strings.Join(keys, ", "))
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}
