package styling

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/subkit/internal/subtitle"
)

// Preset is a named, reusable style override, optionally with per-script
// run tags.
type Preset struct {
	ID          string     `toml:"id"`
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Category    string     `toml:"category"`
	Tags        []string   `toml:"tags"`
	Style       Override   `toml:"style"`
	ScriptTags  ScriptTags `toml:"script_tags"`
}

type presetFile struct {
	Presets []Preset `toml:"preset"`
}

// Registry holds presets by id.
type Registry struct {
	byID map[string]Preset
}

// BuiltinPresets are always available and can be replaced by id from a
// presets file.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			ID:          "default",
			Name:        "Default",
			Description: "Arial 16, white text with a thin black outline",
			Category:    "general",
			Tags:        []string{"plain"},
			Style: Override{
				FontName:     Ptr("Arial"),
				FontSize:     Ptr(16.0),
				PrimaryColor: Ptr("#FFFFFF"),
				OutlineColor: Ptr("#000000"),
				Outline:      Ptr(1.0),
				Alignment:    Ptr(2),
			},
		},
		{
			ID:          "bilingual",
			Name:        "Bilingual",
			Description: "Kaiti CJK lines in white over small yellow Latin lines, raised off the bottom edge",
			Category:    "cjk",
			Tags:        []string{"cjk", "bilingual"},
			Style: Override{
				FontName: Ptr("STKaiti"),
				FontSize: Ptr(10.0),
				MarginV:  Ptr(40),
			},
			ScriptTags: ScriptTags{
				CJK:   TagSet{FontName: "STKaiti", FontSize: 10, Color: "#FFFFFF"},
				Latin: TagSet{FontSize: 9, Color: "#FFFF00"},
			},
		},
		{
			ID:          "large-print",
			Name:        "Large print",
			Description: "Bold 28pt text with a heavy outline",
			Category:    "accessibility",
			Tags:        []string{"large", "bold"},
			Style: Override{
				FontSize: Ptr(28.0),
				Bold:     Ptr(true),
				Outline:  Ptr(3.0),
				Shadow:   Ptr(1.0),
			},
		},
	}
}

// NewRegistry validates presets and indexes them by id. Later presets
// replace earlier ones with the same id.
func NewRegistry(presets ...Preset) (*Registry, error) {
	r := &Registry{byID: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has no id", p.Name)
		}
		if _, err := Validate(p.Style.ApplyTo(subtitle.DefaultStyle())); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
		if err := p.ScriptTags.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		r.byID[p.ID] = p
	}
	return r, nil
}

// ParsePresets reads [[preset]] tables from TOML on top of the builtins.
func ParsePresets(reader io.Reader) (*Registry, error) {
	var file presetFile
	decoder := toml.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode TOML presets: %w", err)
	}
	return NewRegistry(append(BuiltinPresets(), file.Presets...)...)
}

// LoadPresets reads a presets file. An empty path yields the builtins only.
func LoadPresets(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(BuiltinPresets()...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file '%s': %w", path, err)
	}
	defer f.Close()

	return ParsePresets(f)
}

func (r *Registry) Get(id string) (Preset, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// List returns presets sorted by category, then id.
func (r *Registry) List() []Preset {
	out := make([]Preset, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}
