package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var errNilDocument = errors.New("document is nil")

// Advanced SubStation Alpha format
type ASSWriter struct{}

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// MicroDVD format
type SUBWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatASS:
		return &ASSWriter{}, nil
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatSUB:
		return &SUBWriter{}, nil
	default:
		return nil, &ExportError{Format: string(format), Err: unsupported(format)}
	}
}

func (w *ASSWriter) Write(doc *Document) (string, error) {
	if doc == nil {
		return "", &ExportError{Format: string(FormatASS), Err: errNilDocument}
	}

	var sb strings.Builder
	info := doc.Info
	scriptType := info.ScriptType
	if scriptType == "" {
		scriptType = "v4.00+"
	}

	// script info section
	sb.WriteString("[Script Info]\n")
	writeInfoLine(&sb, "Title", info.Title)
	writeInfoLine(&sb, "ScriptType", scriptType)
	writeInfoLine(&sb, "WrapStyle", strconv.Itoa(info.WrapStyle))
	writeInfoLine(&sb, "PlayResX", strconv.Itoa(info.PlayResX))
	writeInfoLine(&sb, "PlayResY", strconv.Itoa(info.PlayResY))
	writeInfoLine(&sb, "ScaledBorderAndShadow", yesNo(info.ScaledBorderAndShadow))
	if info.LastStyleStorage != "" {
		writeInfoLine(&sb, "Last Style Storage", info.LastStyleStorage)
	}
	if info.VideoAspectRatio != "" {
		writeInfoLine(&sb, "Video Aspect Ratio", info.VideoAspectRatio)
	}
	writeInfoLine(&sb, "Video Zoom", formatFloat(info.VideoZoom))
	writeInfoLine(&sb, "Video Position", formatFloat(info.VideoPosition))
	for _, f := range info.Extra {
		writeInfoLine(&sb, f.Key, f.Value)
	}
	sb.WriteString("\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: " + strings.Join(defaultStyleColumns, ", ") + "\n")
	styles := doc.Styles
	if len(styles) == 0 {
		styles = []Style{DefaultStyle()}
	}
	for _, s := range styles {
		sb.WriteString("Style: " + styleRow(s) + "\n")
	}
	sb.WriteString("\n")

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: " + strings.Join(defaultEventColumns, ", ") + "\n")
	for _, cue := range doc.Events {
		styleRef := cue.StyleRef
		if styleRef == "" {
			styleRef = styles[0].Name
		}
		sb.WriteString(fmt.Sprintf("Dialogue: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s\n",
			cue.Layer,
			FormatTimecode(cue.Start, FormatASS),
			FormatTimecode(cue.End, FormatASS),
			assField(styleRef),
			assField(cue.Actor),
			cue.MarginL,
			cue.MarginR,
			cue.MarginV,
			assField(cue.Effect),
			escapeASSText(cue.Text)))
	}

	return sb.String(), nil
}

func (w *SRTWriter) Write(doc *Document) (string, error) {
	if doc == nil {
		return "", &ExportError{Format: string(FormatSRT), Err: errNilDocument}
	}

	blocks := make([]string, 0, len(doc.Events))
	for i, cue := range doc.Events {
		// index (1-based), timestamps, text
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s\n",
			i+1,
			FormatTimecode(cue.Start, FormatSRT),
			FormatTimecode(cue.End, FormatSRT),
			cueBody(doc, cue.Text)))
	}

	return strings.Join(blocks, "\n"), nil
}

func (w *VTTWriter) Write(doc *Document) (string, error) {
	if doc == nil {
		return "", &ExportError{Format: string(FormatVTT), Err: errNilDocument}
	}

	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for _, cue := range doc.Events {
		sb.WriteString(fmt.Sprintf("%s --> %s\n%s\n\n",
			FormatTimecode(cue.Start, FormatVTT),
			FormatTimecode(cue.End, FormatVTT),
			cueBody(doc, cue.Text)))
	}

	return sb.String(), nil
}

func (w *SUBWriter) Write(doc *Document) (string, error) {
	if doc == nil {
		return "", &ExportError{Format: string(FormatSUB), Err: errNilDocument}
	}

	var sb strings.Builder
	for _, cue := range doc.Events {
		text := strings.ReplaceAll(cueBody(doc, cue.Text), "\n", "|")
		if text == "" {
			// a cue line needs at least one character after the frames
			text = " "
		}
		sb.WriteString(fmt.Sprintf("{%s}{%s}%s\n",
			FormatTimecode(cue.Start, FormatSUB),
			FormatTimecode(cue.End, FormatSUB),
			text))
	}

	return sb.String(), nil
}

func styleRow(s Style) string {
	fields := []string{
		assField(s.Name),
		assField(s.FontName),
		formatFloat(s.FontSize),
		FromCanonical(s.PrimaryColor),
		FromCanonical(s.SecondaryColor),
		FromCanonical(s.OutlineColor),
		FromCanonical(s.BackColor),
		assBool(s.Bold),
		assBool(s.Italic),
		assBool(s.Underline),
		assBool(s.StrikeOut),
		formatFloat(s.ScaleX),
		formatFloat(s.ScaleY),
		formatFloat(s.Spacing),
		formatFloat(s.Angle),
		strconv.Itoa(s.BorderStyle),
		formatFloat(s.Outline),
		formatFloat(s.Shadow),
		strconv.Itoa(s.Alignment),
		strconv.Itoa(s.MarginL),
		strconv.Itoa(s.MarginR),
		strconv.Itoa(s.MarginV),
		strconv.Itoa(s.Encoding),
	}
	return strings.Join(fields, ",")
}

func writeInfoLine(sb *strings.Builder, key, value string) {
	sb.WriteString(key + ": " + value + "\n")
}

var (
	overrideBlockRegex = regexp.MustCompile(`\{[^}]*\}`)
	assBreakReplacer   = strings.NewReplacer(`\\N`, "\n", `\N`, "\n", `\n`, "\n", `\h`, " ")
)

// PlainText strips ASS override blocks and turns break markers into text.
func PlainText(text string) string {
	text = overrideBlockRegex.ReplaceAllString(text, "")
	return assBreakReplacer.Replace(text)
}

// cue text for line based formats: no ASS markup and no blank lines,
// which would end the cue early on re-read
func cueBody(doc *Document, text string) string {
	if doc.Format == FormatASS {
		text = PlainText(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isBlank(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", "\\N")
}

// commas separate fields and newlines separate rows
func assField(s string) string {
	return strings.NewReplacer(",", ";", "\r", "", "\n", " ").Replace(s)
}

func assBool(b bool) string {
	if b {
		return "-1"
	}
	return "0"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
