package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/viu"
	"pkt.systems/viu/internal/appconfig"
	"pkt.systems/viu/schema"
)

// viewFlags are shared by the local viewer and serve.
type viewFlags struct {
	configPath string
	style      string
	language   string
	color      string
	tabWidth   int
	noGofmt    bool
	noWrap     bool
	logFile    string
	logLevel   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&f.style, "style", "s", "", "highlight style (see `viu styles`)")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "force the highlight language")
	cmd.Flags().StringVar(&f.color, "color", "", "color profile: auto, truecolor, ansi256, ansi or ascii")
	cmd.Flags().IntVar(&f.tabWidth, "tab-width", 0, "spaces per tab")
	cmd.Flags().BoolVar(&f.noGofmt, "no-gofmt", false, "do not gofmt Go sources")
	cmd.Flags().BoolVar(&f.noWrap, "no-wrap", false, "truncate long lines instead of wrapping them")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file while viewing")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info or error")
}

// load reads the config file and applies the flags that were set on cmd.
func (f *viewFlags) load(cmd *cobra.Command) (appconfig.Config, error) {
	cfg, err := appconfig.Load(f.configPath)
	if err != nil {
		return appconfig.Config{}, err
	}
	f.apply(cmd, &cfg)
	return cfg, nil
}

func (f *viewFlags) apply(cmd *cobra.Command, cfg *appconfig.Config) {
	changed := cmd.Flags().Changed
	if changed("style") {
		cfg.Highlight.Style = f.style
	}
	if changed("language") {
		cfg.Highlight.Language = f.language
	}
	if changed("color") {
		cfg.Highlight.ColorProfile = f.color
	}
	if changed("tab-width") {
		cfg.Format.TabWidth = f.tabWidth
	}
	if changed("no-gofmt") {
		cfg.Format.Gofmt = !f.noGofmt
	}
	if changed("no-wrap") {
		cfg.Format.Wrap = !f.noWrap
	}
	if changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
}

func documentOptions(cfg appconfig.Config, filename string) (viu.Options, error) {
	profile, err := schema.NormalizeColorProfile(cfg.Highlight.ColorProfile)
	if err != nil {
		return viu.Options{}, err
	}
	return viu.Options{
		Filename:     filename,
		Language:     cfg.Highlight.Language,
		Style:        cfg.Highlight.Style,
		ColorProfile: profile,
		Gofmt:        cfg.Format.Gofmt,
		TabWidth:     cfg.Format.TabWidth,
		Wrap:         cfg.Format.Wrap,
	}, nil
}
