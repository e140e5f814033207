package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
Hello world

2
00:00:03,000 --> 00:00:04,000
你好 friend
`

// execute runs the root command with a quiet config file in dir.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	configFile := filepath.Join(dir, "subkit.yaml")
	if err := os.WriteFile(configFile, []byte("log:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configFile))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(input, []byte(sampleSRT), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out", "movie.vtt")

	stdout, err := execute(t, dir, "convert", input, "-f", "vtt", "-o", output)
	if err != nil {
		t.Fatalf("convert error = %v, output:\n%s", err, stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.500\nHello world\n\n" +
		"00:00:03.000 --> 00:00:04.000\n你好 friend\n\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
	if !strings.Contains(stdout, output) {
		t.Errorf("stdout %q does not name the output file", stdout)
	}

	// a second run without --overwrite must not clobber the file
	if _, err := execute(t, dir, "convert", input, "-f", "vtt", "-o", output); err == nil {
		t.Error("second convert error = nil, want output exists error")
	}
}

func TestPresetsCommand(t *testing.T) {
	stdout, err := execute(t, t.TempDir(), "presets")
	if err != nil {
		t.Fatalf("presets error = %v", err)
	}
	for _, id := range []string{"default", "bilingual", "large-print"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("presets output missing %q:\n%s", id, stdout)
		}
	}
}
