package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_EmptyPathFallsBackToDefaults(t *testing.T) {
	// Run in a directory with no revoice.yaml.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Segmentation.MaxGap != 0.5 {
		t.Errorf("MaxGap = %v, want default 0.5", cfg.Segmentation.MaxGap)
	}
	if cfg.Schedule.Drift != "forward" {
		t.Errorf("Drift = %q, want default forward", cfg.Schedule.Drift)
	}
}

func TestLoad_ExplicitMissingPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revoice.yaml")
	body := `
segmentation:
  max_gap: 0.8
schedule:
  drift: strict
media:
  background_volume: 0.12
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Segmentation.MaxGap != 0.8 {
		t.Errorf("MaxGap = %v, want override 0.8", cfg.Segmentation.MaxGap)
	}
	if cfg.Schedule.Drift != "strict" {
		t.Errorf("Drift = %q, want override strict", cfg.Schedule.Drift)
	}
	if cfg.Media.BackgroundVolume != 0.12 {
		t.Errorf("BackgroundVolume = %v, want override 0.12", cfg.Media.BackgroundVolume)
	}

	// Fields the file does not mention keep their defaults.
	if cfg.Segmentation.PauseThreshold != 2.0 {
		t.Errorf("PauseThreshold = %v, want default 2.0", cfg.Segmentation.PauseThreshold)
	}
	if cfg.Voice.ModelID != "eleven_multilingual_v2" {
		t.Errorf("ModelID = %q, want default", cfg.Voice.ModelID)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("segmentation: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/screen-studio", filepath.Join(home, "screen-studio")},
		{"./pieces", "./pieces"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := ExpandPath("~user/x"); !strings.HasPrefix(got, "~") {
		t.Errorf("ExpandPath(~user/x) = %q, want untouched", got)
	}
}
