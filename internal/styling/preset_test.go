package styling

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPresetsBuiltins(t *testing.T) {
	r, err := LoadPresets("")
	if err != nil {
		t.Fatalf("LoadPresets returned error: %v", err)
	}
	for _, id := range []string{"default", "bilingual", "large-print"} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("expected builtin preset %q", id)
		}
	}

	bilingual, _ := r.Get("bilingual")
	want := ScriptTags{
		CJK:   TagSet{FontName: "STKaiti", FontSize: 10, Color: "#FFFFFF"},
		Latin: TagSet{FontSize: 9, Color: "#FFFF00"},
	}
	if bilingual.ScriptTags != want {
		t.Errorf("bilingual script tags = %+v, want %+v", bilingual.ScriptTags, want)
	}
	if def, _ := r.Get("default"); !def.ScriptTags.IsZero() {
		t.Errorf("default preset should carry no script tags, got %+v", def.ScriptTags)
	}
}

func TestLoadPresetsFile(t *testing.T) {
	content := `
[[preset]]
id = "anime"
name = "Anime"
category = "fansub"
tags = ["bold", "outline"]

[preset.style]
font_name = "Trebuchet MS"
font_size = 22.0
primary_color = "#FFFFFF"
bold = true
margin_v = 25

[preset.script_tags.latin]
font_name = "Verdana"
font_size = 12.0

[[preset]]
id = "default"
name = "House default"

[preset.style]
font_name = "Helvetica"
`
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write presets file: %v", err)
	}

	r, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets returned error: %v", err)
	}

	anime, ok := r.Get("anime")
	if !ok {
		t.Fatal("expected preset anime")
	}
	if *anime.Style.FontName != "Trebuchet MS" || *anime.Style.FontSize != 22 || !*anime.Style.Bold || *anime.Style.MarginV != 25 {
		t.Errorf("unexpected style: %+v", anime.Style)
	}
	if anime.Style.Italic != nil {
		t.Error("unset fields must stay nil")
	}
	if anime.ScriptTags.Latin != (TagSet{FontName: "Verdana", FontSize: 12}) || !anime.ScriptTags.CJK.IsZero() {
		t.Errorf("unexpected script tags: %+v", anime.ScriptTags)
	}
	if len(anime.Tags) != 2 || anime.Category != "fansub" {
		t.Errorf("unexpected metadata: %+v", anime)
	}

	def, _ := r.Get("default")
	if def.Name != "House default" || *def.Style.FontName != "Helvetica" {
		t.Errorf("file preset should replace builtin, got %+v", def)
	}

	list := r.List()
	if len(list) != 4 {
		t.Errorf("expected 4 presets, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		a, b := list[i-1], list[i]
		if a.Category > b.Category || (a.Category == b.Category && a.ID > b.ID) {
			t.Errorf("List not sorted at %d: %s/%s before %s/%s", i, a.Category, a.ID, b.Category, b.ID)
		}
	}
}

func TestParsePresetsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "[[preset]]\nid = \"x\"\ncolour = \"red\"\n"},
		{"missing id", "[[preset]]\nname = \"x\"\n"},
		{"invalid style", "[[preset]]\nid = \"x\"\n[preset.style]\nalignment = 12\n"},
		{"not toml", "[[preset"},
		{"invalid script tag color", "[[preset]]\nid = \"x\"\n[preset.script_tags.cjk]\ncolor = \"red\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePresets(strings.NewReader(tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	if _, err := LoadPresets(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
