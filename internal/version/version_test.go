package version

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestCurrentPrefersBuildVersion(t *testing.T) {
	old := buildVersion
	buildVersion = "v1.2.3"
	t.Cleanup(func() { buildVersion = old })

	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected build version, got %q", got)
	}
}

func TestFromBuildInfoPseudoVersion(t *testing.T) {
	ts := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "pkt.systems/viu", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
			{Key: "vcs.time", Value: ts.Format(time.RFC3339)},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	got := fromBuildInfo(info, "")
	if got.Version != "v0.0.0-20250102030405-1234567890ab" {
		t.Fatalf("unexpected version %q", got.Version)
	}
	if !got.Dirty || got.Revision != "1234567890abcdef" {
		t.Fatalf("expected dirty build with revision, got %+v", got)
	}
	if got.String() != "pkt.systems/viu v0.0.0-20250102030405-1234567890ab (modified)" {
		t.Fatalf("unexpected string %q", got.String())
	}
}

func TestFromBuildInfoWithoutInfo(t *testing.T) {
	got := fromBuildInfo(nil, "")
	if got.Module != defaultModule || got.Version != "v0.0.0-unknown" {
		t.Fatalf("unexpected fallback %+v", got)
	}
	if pseudoVersion(nil) != "" {
		t.Fatalf("expected empty pseudo version for nil build info")
	}
}

func TestFromBuildInfoModuleVersion(t *testing.T) {
	info := &debug.BuildInfo{Main: debug.Module{Path: "example.com/fork", Version: "v0.4.0"}}
	got := fromBuildInfo(info, "")
	if got.Module != "example.com/fork" || got.Version != "v0.4.0" {
		t.Fatalf("unexpected info %+v", got)
	}
}
