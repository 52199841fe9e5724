package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/viu/internal/highlight"
	"pkt.systems/viu/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int             `mapstructure:"config_version" yaml:"config_version"`
	Highlight     HighlightConfig `mapstructure:"highlight" yaml:"highlight"`
	Format        FormatConfig    `mapstructure:"format" yaml:"format"`
	Logging       LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	SSH           SSHConfig       `mapstructure:"ssh" yaml:"ssh"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// HighlightConfig selects the syntax highlighting style and color depth.
type HighlightConfig struct {
	Style string `mapstructure:"style" yaml:"style"`
	// Language forces a lexer; empty detects from the file name and content.
	Language     string `mapstructure:"language" yaml:"language"`
	ColorProfile string `mapstructure:"color_profile" yaml:"color_profile"`
}

// FormatConfig controls reflowing before highlighting.
type FormatConfig struct {
	Gofmt    bool `mapstructure:"gofmt" yaml:"gofmt"`
	TabWidth int  `mapstructure:"tab_width" yaml:"tab_width"`
	Wrap     bool `mapstructure:"wrap" yaml:"wrap"`
}

// LoggingConfig controls where logs go while the screen is taken over.
type LoggingConfig struct {
	// File receives structured logs; empty discards logs during a session.
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// SSHConfig configures viu serve.
type SSHConfig struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	HostKeyPath    string `mapstructure:"host_key_path" yaml:"host_key_path"`
	AuthorizedKeys string `mapstructure:"authorized_keys" yaml:"authorized_keys"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Highlight: HighlightConfig{
			Style:        highlight.DefaultStyle,
			ColorProfile: string(schema.ColorAuto),
		},
		Format: FormatConfig{
			Gofmt:    true,
			TabWidth: 4,
			Wrap:     true,
		},
		Logging: LoggingConfig{
			Level: string(schema.LogInfo),
		},
		SSH: SSHConfig{
			Addr:           ":2222",
			HostKeyPath:    filepath.Join(dir, "ssh_host_ed25519"),
			AuthorizedKeys: filepath.Join("$HOME", ".ssh", "authorized_keys"),
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "viu"), nil
}
