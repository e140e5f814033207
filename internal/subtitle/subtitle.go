package subtitle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// represents supported subtitle formats
type Format string

const (
	FormatASS Format = "ass"
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatSUB Format = "sub"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatASS, FormatSRT, FormatVTT, FormatSUB}

// ParseFormat maps a user supplied tag to a Format. "ssa" is accepted as ASS.
func ParseFormat(tag string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "ass", "ssa":
		return FormatASS, nil
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "sub":
		return FormatSUB, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, tag)
	}
}

// text attributes of a named style
type Style struct {
	Name           string
	FontName       string
	FontSize       float64
	PrimaryColor   string
	SecondaryColor string
	OutlineColor   string
	BackColor      string
	Bold           bool
	Italic         bool
	Underline      bool
	StrikeOut      bool
	ScaleX         float64
	ScaleY         float64
	Spacing        float64
	Angle          float64
	BorderStyle    int
	Outline        float64
	Shadow         float64
	Alignment      int
	MarginL        int
	MarginR        int
	MarginV        int
	Encoding       int
}

// single key/value line from [Script Info] with no dedicated Info field
type InfoField struct {
	Key   string
	Value string
}

// script level metadata
type Info struct {
	Title                 string
	ScriptType            string
	WrapStyle             int
	PlayResX              int
	PlayResY              int
	ScaledBorderAndShadow bool
	LastStyleStorage      string
	VideoAspectRatio      string
	VideoZoom             float64
	VideoPosition         float64
	Extra                 []InfoField
}

// represents single timed caption
type Cue struct {
	ID       string
	Start    time.Duration
	End      time.Duration
	Text     string
	StyleRef string
	Actor    string
	Layer    int
	MarginL  int
	MarginR  int
	MarginV  int
	Effect   string
}

// represents a complete subtitle document in format neutral form
type Document struct {
	ID         string
	Name       string
	SourcePath string
	Format     Format
	Styles     []Style
	Events     []Cue
	Info       Info
	Created    time.Time
	Modified   time.Time
}

const DefaultStyleName = "Default"

// DefaultStyle is used for formats that carry no styling and as the base
// for style overrides on documents with an empty style table.
func DefaultStyle() Style {
	return Style{
		Name:           DefaultStyleName,
		FontName:       "Arial",
		FontSize:       16,
		PrimaryColor:   "#FFFFFF",
		SecondaryColor: "#FF0000",
		OutlineColor:   "#000000",
		BackColor:      "#000000",
		ScaleX:         100,
		ScaleY:         100,
		BorderStyle:    1,
		Alignment:      2,
		Encoding:       1,
	}
}

func DefaultInfo() Info {
	return Info{
		ScriptType:       "v4.00+",
		PlayResX:         1920,
		PlayResY:         1080,
		LastStyleStorage: DefaultStyleName,
		VideoAspectRatio: "16:9",
		VideoZoom:        1,
	}
}

// now is swapped in tests that need stable timestamps
var now = time.Now

func newDocument(format Format, filename string) *Document {
	ts := now()
	return &Document{
		ID:       uuid.NewString(),
		Name:     filename,
		Format:   format,
		Styles:   []Style{DefaultStyle()},
		Events:   []Cue{},
		Info:     DefaultInfo(),
		Created:  ts,
		Modified: ts,
	}
}

// Touch stamps the modification time.
func (d *Document) Touch() {
	d.Modified = now()
}

// Clone returns a deep copy that shares no slices with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Styles = append([]Style(nil), d.Styles...)
	c.Events = append([]Cue(nil), d.Events...)
	c.Info.Extra = append([]InfoField(nil), d.Info.Extra...)
	return &c
}

// StyleFor resolves a cue style reference. Dangling or empty references
// resolve to the first style; ok is false when the table is empty.
func (d *Document) StyleFor(ref string) (Style, bool) {
	if len(d.Styles) == 0 {
		return Style{}, false
	}
	for _, s := range d.Styles {
		if s.Name == ref {
			return s, true
		}
	}
	return d.Styles[0], true
}

// Duration returns the end time of the last-ending cue.
func (d *Document) Duration() time.Duration {
	var last time.Duration
	for _, c := range d.Events {
		if c.End > last {
			last = c.End
		}
	}
	return last
}
