package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/subkit/internal/subtitle"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Batch.Concurrency != 1 || cfg.Batch.Overwrite {
		t.Errorf("unexpected batch defaults: %+v", cfg.Batch)
	}
	if cfg.ParseOptions() != subtitle.DefaultOptions() {
		t.Errorf("unexpected parse options: %+v", cfg.ParseOptions())
	}
	if cfg.Log.Level != "info" || cfg.Log.Output != "stderr" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if !cfg.ScriptTags().IsZero() {
		t.Errorf("expected no script tags by default, got %+v", cfg.ScriptTags())
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := writeConfig(t, "subkit.toml", `
[log]
level = "debug"
format = "json"

[parse]
on_malformed_timecode = "error"

[batch]
concurrency = 4
output_dir = "out"

[style]
presets_file = "presets.toml"

[style.cjk]
font_name = "STKaiti"
font_size = 20.0
color = "#FFFFFF"

[style.latin]
font_name = "Arial"
font_size = 9.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.MaxBackups != 3 {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	opts := cfg.ParseOptions()
	if opts.OnMalformedTimecode != subtitle.TimecodeFail || opts.OnMalformedColor != subtitle.ColorUseDefault {
		t.Errorf("unexpected parse options: %+v", opts)
	}
	if cfg.Batch.Concurrency != 4 || cfg.Batch.OutputDir != "out" {
		t.Errorf("unexpected batch config: %+v", cfg.Batch)
	}
	tags := cfg.ScriptTags()
	if tags.CJK.FontName != "STKaiti" || tags.CJK.FontSize != 20 || tags.Latin.FontSize != 9 {
		t.Errorf("unexpected script tags: %+v", tags)
	}
	if cfg.Style.PresetsFile != "presets.toml" {
		t.Errorf("unexpected presets file %q", cfg.Style.PresetsFile)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "subkit.yaml", "batch:\n  concurrency: 2\n")
	t.Setenv("SUBKIT_BATCH_CONCURRENCY", "6")
	t.Setenv("SUBKIT_PARSE_ON_MALFORMED_COLOR", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Batch.Concurrency != 6 {
		t.Errorf("expected env to win, got concurrency %d", cfg.Batch.Concurrency)
	}
	if cfg.ParseOptions().OnMalformedColor != subtitle.ColorFail {
		t.Errorf("unexpected color policy %q", cfg.Parse.OnMalformedColor)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"policy", "parse:\n  on_malformed_color: ignore\n", "color policy"},
		{"concurrency", "batch:\n  concurrency: 0\n", "concurrency"},
		{"tag color", "style:\n  cjk:\n    color: yellow\n", "cjk color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "subkit.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
