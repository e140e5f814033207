package styling

import (
	"slices"
	"testing"
)

func collect(text string) []Run {
	return slices.Collect(Runs(text))
}

func TestRuns(t *testing.T) {
	got := collect(`{\an8}你好，世界\NHello, world\\N!!{\b1}x`)
	want := []Run{
		{Kind: RunOverride, Text: `{\an8}`},
		{Kind: RunText, Text: "你好，世界", Script: ScriptCJK},
		{Kind: RunBreak, Text: `\N`},
		{Kind: RunText, Text: "Hello, world", Script: ScriptLatin},
		{Kind: RunBreak, Text: `\\N`},
		{Kind: RunText, Text: "!!", Script: ScriptNone},
		{Kind: RunOverride, Text: `{\b1}`},
		{Kind: RunText, Text: "x", Script: ScriptLatin},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Runs mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestRunsBreakMarkersAreNeverLatin(t *testing.T) {
	for _, text := range []string{`\N`, `\\N`, `\n`, `\h`} {
		runs := collect(text)
		if len(runs) != 1 || runs[0].Kind != RunBreak || runs[0].Script != ScriptNone {
			t.Errorf("%q: expected a single break run, got %+v", text, runs)
		}
	}
}

func TestRunsEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Run
	}{
		{"empty", "", nil},
		{"unclosed brace", "{abc", []Run{{Kind: RunText, Text: "{abc", Script: ScriptLatin}}},
		{"lone backslash", `a\b`, []Run{{Kind: RunText, Text: `a\b`, Script: ScriptLatin}}},
		{"punctuation", "...", []Run{{Kind: RunText, Text: "...", Script: ScriptNone}}},
		{"mixed span counts as latin", "OK 好", []Run{{Kind: RunText, Text: "OK 好", Script: ScriptLatin}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("Runs(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRunsIsRestartableAndStopsEarly(t *testing.T) {
	seq := Runs(`a\Nb\Nc`)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) != 5 {
		t.Errorf("expected identical 5-run passes, got %v and %v", first, second)
	}

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected early stop after 2 runs, got %d", count)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Script
	}{
		{"中文", ScriptCJK},
		{"abc", ScriptLatin},
		{"Hello世界", ScriptLatin},
		{"世界 OK", ScriptLatin},
		{"123 !?", ScriptNone},
		{"ｱｲｳ", ScriptNone},
		{"é", ScriptNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
