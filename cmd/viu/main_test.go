package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"pkt.systems/viu/internal/appconfig"
	"pkt.systems/viu/schema"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestViewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.go")
	out, err := execute(t, path)
	if !errors.Is(err, schema.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	if want := "File '" + path + "' does not exist.\n"; out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestViewRequiresOneFile(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Fatalf("expected argument error")
	}
	if _, err := execute(t, "a", "b"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestHelpListsKeys(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"q          Quit", "j  DOWN", "k  UP"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help, got %q", want, out)
		}
	}
}

func TestStylesListsDefault(t *testing.T) {
	out, err := execute(t, "styles")
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	if !strings.Contains(out, "monokai (default)\n") {
		t.Fatalf("expected default style marker, got %q", out)
	}
}

func TestVersionPrintsModule(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, " v") {
		t.Fatalf("expected a version, got %q", out)
	}
}

func TestConfigInitWritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viu", "config.yaml")
	out, err := execute(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected written path in output, got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Fatalf("expected error without --force")
	}
	if _, err := appconfig.Load(path); err != nil {
		t.Fatalf("load written config: %v", err)
	}
}

func TestViewFlagsOverrideConfig(t *testing.T) {
	root := &cobra.Command{Use: "viu"}
	var flags viewFlags
	flags.register(root)
	if err := root.ParseFlags([]string{"--style", "dracula", "--no-gofmt", "--color", "ansi"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	flags.apply(root, &cfg)
	if cfg.Highlight.Style != "dracula" || cfg.Format.Gofmt || cfg.Highlight.ColorProfile != "ansi" {
		t.Fatalf("expected flags applied, got %+v", cfg)
	}
	if !cfg.Format.Wrap {
		t.Fatalf("unset flags must keep config values")
	}
	opts, err := documentOptions(cfg, "main.go")
	if err != nil {
		t.Fatalf("document options: %v", err)
	}
	if opts.ColorProfile != schema.ColorANSI || opts.Filename != "main.go" {
		t.Fatalf("unexpected options %+v", opts)
	}
}
