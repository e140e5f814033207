package styling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/subkit/internal/subtitle"
)

// TagSet is the inline styling given to one class of text run. Empty fields
// emit no tag.
type TagSet struct {
	FontName string  `toml:"font_name" mapstructure:"font_name"`
	FontSize float64 `toml:"font_size" mapstructure:"font_size"`
	Color    string  `toml:"color" mapstructure:"color"`
}

func (t TagSet) IsZero() bool {
	return t == TagSet{}
}

// Merge layers next on top of t: non-empty fields in next win.
func (t TagSet) Merge(next TagSet) TagSet {
	if next.FontName != "" {
		t.FontName = next.FontName
	}
	if next.FontSize > 0 {
		t.FontSize = next.FontSize
	}
	if next.Color != "" {
		t.Color = next.Color
	}
	return t
}

func (t TagSet) validate(class string) error {
	if t.FontSize < 0 {
		return fmt.Errorf("%w: %s font size must not be negative", ErrInvalidStyle, class)
	}
	if t.Color != "" {
		if _, err := subtitle.NormalizeHex(t.Color); err != nil {
			return fmt.Errorf("%w: %s color: %v", ErrInvalidStyle, class, err)
		}
	}
	return nil
}

// block renders the override block, e.g. {\fnArial\fs20\1c&H00D7FF&}
func (t TagSet) block() string {
	if t.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("{")
	if t.FontName != "" {
		sb.WriteString(`\fn` + t.FontName)
	}
	if t.FontSize > 0 {
		sb.WriteString(`\fs` + strconv.FormatFloat(t.FontSize, 'f', -1, 64))
	}
	if t.Color != "" {
		sb.WriteString(`\1c` + subtitle.TagColor(t.Color))
	}
	sb.WriteString("}")
	return sb.String()
}

// ScriptTags configures the CJK and Latin tag sets independently.
type ScriptTags struct {
	CJK   TagSet `toml:"cjk" mapstructure:"cjk"`
	Latin TagSet `toml:"latin" mapstructure:"latin"`
}

func (s ScriptTags) IsZero() bool {
	return s.CJK.IsZero() && s.Latin.IsZero()
}

func (s ScriptTags) Merge(next ScriptTags) ScriptTags {
	return ScriptTags{CJK: s.CJK.Merge(next.CJK), Latin: s.Latin.Merge(next.Latin)}
}

func (s ScriptTags) Validate() error {
	if err := s.CJK.validate("cjk"); err != nil {
		return err
	}
	return s.Latin.validate("latin")
}

// TagText prefixes every classified text run with its tag block. Override
// blocks, line breaks and unclassified runs are copied unchanged.
func TagText(text string, tags ScriptTags) string {
	cjk, latin := tags.CJK.block(), tags.Latin.block()

	var sb strings.Builder
	for run := range Runs(text) {
		if run.Kind == RunText {
			switch run.Script {
			case ScriptCJK:
				sb.WriteString(cjk)
			case ScriptLatin:
				sb.WriteString(latin)
			}
		}
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// ApplyScriptTags tags the runs of every cue. The result holds ASS markup, so
// plain text documents have their line breaks turned into \N and come back
// with Format set to ASS.
func ApplyScriptTags(doc *subtitle.Document, tags ScriptTags) (*subtitle.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to apply script tags: document is nil")
	}
	if err := tags.Validate(); err != nil {
		return nil, fmt.Errorf("failed to apply script tags: %w", err)
	}

	out := doc.Clone()
	if tags.IsZero() {
		return out, nil
	}

	for i := range out.Events {
		text := out.Events[i].Text
		if out.Format != subtitle.FormatASS {
			text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", `\N`)
		}
		out.Events[i].Text = TagText(text, tags)
	}
	out.Format = subtitle.FormatASS
	out.Touch()
	return out, nil
}
