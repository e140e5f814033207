package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	defaultStyleColumns = []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"OutlineColour", "BackColour", "Bold", "Italic", "Underline", "StrikeOut",
		"ScaleX", "ScaleY", "Spacing", "Angle", "BorderStyle", "Outline",
		"Shadow", "Alignment", "MarginL", "MarginR", "MarginV", "Encoding",
	}
	legacyStyleColumns = []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"TertiaryColour", "BackColour", "Bold", "Italic", "BorderStyle",
		"Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV",
		"AlphaLevel", "Encoding",
	}
	defaultEventColumns = []string{
		"Layer", "Start", "End", "Style", "Name",
		"MarginL", "MarginR", "MarginV", "Effect", "Text",
	}
)

type assSection int

const (
	sectionNone assSection = iota
	sectionInfo
	sectionStyles
	sectionLegacyStyles
	sectionEvents
	sectionProject
)

// parses ASS and SSA scripts
type ASSParser struct {
	options Options
}

// state carried across lines of one script
type assReader struct {
	options      Options
	doc          *Document
	section      assSection
	styleColumns []string
	eventColumns []string
	styles       []Style
	eventIndex   int
}

func (p *ASSParser) Parse(content, filename string) (*Document, error) {
	r := &assReader{
		options: p.options,
		doc:     newDocument(FormatASS, filename),
	}

	for i, line := range splitLines(content) {
		if err := r.readLine(line, i+1); err != nil {
			return nil, &ParseError{
				Format:   string(FormatASS),
				Filename: filename,
				Err:      err,
			}
		}
	}

	if len(r.styles) > 0 {
		r.doc.Styles = r.styles
	}
	return r.doc, nil
}

func (r *assReader) readLine(line string, lineNum int) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "!:") {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		r.enterSection(trimmed)
		return nil
	}

	key, value, ok := strings.Cut(trimmed, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch r.section {
	case sectionInfo:
		r.readInfo(key, value, true)
	case sectionProject:
		r.readInfo(key, value, false)
	case sectionStyles, sectionLegacyStyles:
		switch {
		case strings.EqualFold(key, "Format"):
			r.styleColumns = splitColumns(value)
		case strings.EqualFold(key, "Style"):
			style, err := r.readStyle(value)
			if err != nil {
				return fmt.Errorf("style at line %d: %w", lineNum, err)
			}
			r.styles = append(r.styles, style)
		}
	case sectionEvents:
		switch {
		case strings.EqualFold(key, "Format"):
			r.eventColumns = splitColumns(value)
		case strings.EqualFold(key, "Dialogue"):
			return r.readDialogue(value, lineNum)
		}
	}
	return nil
}

func (r *assReader) enterSection(header string) {
	name := strings.ToLower(strings.TrimSpace(header[1 : len(header)-1]))
	switch name {
	case "script info":
		r.section = sectionInfo
	case "v4+ styles":
		r.section = sectionStyles
	case "v4 styles":
		r.section = sectionLegacyStyles
	case "events":
		r.section = sectionEvents
	case "aegisub project garbage":
		r.section = sectionProject
	default:
		r.section = sectionNone
	}
}

func (r *assReader) readInfo(key, value string, keepUnknown bool) {
	info := &r.doc.Info
	switch normalizeKey(key) {
	case "title":
		info.Title = value
	case "scripttype":
		info.ScriptType = value
	case "wrapstyle":
		info.WrapStyle = parseIntField(value, info.WrapStyle)
	case "playresx":
		info.PlayResX = parseIntField(value, info.PlayResX)
	case "playresy":
		info.PlayResY = parseIntField(value, info.PlayResY)
	case "scaledborderandshadow":
		info.ScaledBorderAndShadow = strings.EqualFold(value, "yes")
	case "laststylestorage":
		info.LastStyleStorage = value
	case "videoaspectratio":
		info.VideoAspectRatio = value
	case "videozoom", "videozoompercent":
		info.VideoZoom = parseFloatField(value, info.VideoZoom)
	case "videoposition", "videopan":
		info.VideoPosition = parseFloatField(value, info.VideoPosition)
	default:
		if keepUnknown {
			info.Extra = append(info.Extra, InfoField{Key: key, Value: value})
		}
	}
}

func (r *assReader) readStyle(value string) (Style, error) {
	columns := r.styleColumns
	if len(columns) == 0 {
		columns = defaultStyleColumns
		if r.section == sectionLegacyStyles {
			columns = legacyStyleColumns
		}
	}

	fields := fieldMap(columns, splitASSFields(value, len(columns)))
	style := DefaultStyle()

	if name := fields["name"]; name != "" {
		style.Name = name
	}
	if font := fields["fontname"]; font != "" {
		style.FontName = font
	}
	if size := parseFloatField(fields["fontsize"], 0); size > 0 {
		style.FontSize = size
	}

	colors := []struct {
		columns []string
		target  *string
	}{
		{[]string{"primarycolour"}, &style.PrimaryColor},
		{[]string{"secondarycolour"}, &style.SecondaryColor},
		{[]string{"outlinecolour", "tertiarycolour"}, &style.OutlineColor},
		{[]string{"backcolour"}, &style.BackColor},
	}
	for _, c := range colors {
		for _, col := range c.columns {
			raw, ok := fields[col]
			if !ok || raw == "" {
				continue
			}
			hex, err := r.decodeColor(raw)
			if err != nil {
				return style, fmt.Errorf("%s of %q: %w", col, style.Name, err)
			}
			*c.target = hex
		}
	}

	style.Bold = parseBoolField(fields["bold"])
	style.Italic = parseBoolField(fields["italic"])
	style.Underline = parseBoolField(fields["underline"])
	style.StrikeOut = parseBoolField(fields["strikeout"])
	style.ScaleX = parseFloatField(fields["scalex"], style.ScaleX)
	style.ScaleY = parseFloatField(fields["scaley"], style.ScaleY)
	style.Spacing = parseFloatField(fields["spacing"], style.Spacing)
	style.Angle = parseFloatField(fields["angle"], style.Angle)
	style.BorderStyle = parseIntField(fields["borderstyle"], style.BorderStyle)
	style.Outline = parseFloatField(fields["outline"], style.Outline)
	style.Shadow = parseFloatField(fields["shadow"], style.Shadow)
	style.MarginL = parseIntField(fields["marginl"], style.MarginL)
	style.MarginR = parseIntField(fields["marginr"], style.MarginR)
	style.MarginV = parseIntField(fields["marginv"], style.MarginV)
	style.Encoding = parseIntField(fields["encoding"], style.Encoding)

	alignment := parseIntField(fields["alignment"], style.Alignment)
	if r.section == sectionLegacyStyles {
		alignment = legacyAlignment(alignment)
	}
	if alignment >= 1 && alignment <= 9 {
		style.Alignment = alignment
	}

	return style, nil
}

func (r *assReader) decodeColor(raw string) (string, error) {
	decode := DecodeColor
	if r.section == sectionLegacyStyles {
		decode = DecodeLegacyColor
	}
	hex, err := decode(raw)
	if err != nil {
		if r.options.strictColor() {
			return "", err
		}
		return fallbackColor, nil
	}
	return hex, nil
}

func (r *assReader) readDialogue(value string, lineNum int) error {
	columns := r.eventColumns
	if len(columns) == 0 {
		columns = defaultEventColumns
	}
	fields := fieldMap(columns, splitASSFields(value, len(columns)))

	start, err := ParseTimecode(fields["start"], FormatASS)
	if err == nil {
		var end time.Duration
		end, err = ParseTimecode(fields["end"], FormatASS)
		if err == nil {
			r.appendCue(fields, start, end)
			return nil
		}
	}

	if r.options.strictTimecode() {
		var te *TimecodeError
		if errors.As(err, &te) {
			te.Line = lineNum
		}
		return err
	}
	return nil
}

func (r *assReader) appendCue(fields map[string]string, start, end time.Duration) {
	styleRef := fields["style"]
	if styleRef == "" {
		styleRef = DefaultStyleName
	}

	r.doc.Events = append(r.doc.Events, Cue{
		ID:       fmt.Sprintf("event-%d", r.eventIndex),
		Start:    start,
		End:      end,
		Text:     fields["text"],
		StyleRef: styleRef,
		Actor:    fields["name"],
		Layer:    parseIntField(fields["layer"], 0),
		MarginL:  parseIntField(fields["marginl"], 0),
		MarginR:  parseIntField(fields["marginr"], 0),
		MarginV:  parseIntField(fields["marginv"], 0),
		Effect:   fields["effect"],
	})
	r.eventIndex++
}

// splits into at most numFields parts; the last part keeps any commas
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}
	return strings.SplitN(content, ",", numFields)
}

func splitColumns(format string) []string {
	columns := strings.Split(format, ",")
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}

// column name (lowercased) to field value; text keeps surrounding spaces
func fieldMap(columns, values []string) map[string]string {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		key := strings.ToLower(col)
		if key == "text" {
			fields[key] = values[i]
			continue
		}
		fields[key] = strings.TrimSpace(values[i])
	}
	return fields
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, " ", ""))
}

// SSA alignment: 1-3 bottom, +4 top, +8 middle
func legacyAlignment(a int) int {
	switch {
	case a >= 1 && a <= 3:
		return a
	case a >= 5 && a <= 7:
		return a + 2
	case a >= 9 && a <= 11:
		return a - 5
	default:
		return 0
	}
}

func parseIntField(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

func parseFloatField(value string, def float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func parseBoolField(value string) bool {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	return err == nil && v != 0
}
