package subtitle

import (
	"fmt"
	"strings"
)

type vttState int

const (
	vttAwaitingCue vttState = iota
	vttInsideCue
	// header, NOTE, STYLE and REGION blocks, and the text of cues whose
	// timing failed to parse
	vttSkipping
)

// parses WebVTT text
type VTTParser struct {
	options Options
}

func (p *VTTParser) Parse(content, filename string) (*Document, error) {
	doc := newDocument(FormatVTT, filename)

	state := vttAwaitingCue
	var current *Cue
	var textLines []string
	pendingID := ""

	closeCue := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			doc.Events = append(doc.Events, *current)
		}
		current = nil
		textLines = nil
	}

	for i, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)

		if i == 0 && strings.HasPrefix(trimmed, "WEBVTT") {
			state = vttSkipping
			continue
		}

		if trimmed == "" {
			closeCue()
			pendingID = ""
			state = vttAwaitingCue
			continue
		}

		// a timing line opens a cue in every state
		if strings.Contains(trimmed, "-->") {
			closeCue()
			cue, err := p.openCue(trimmed, i+1, pendingID, len(doc.Events))
			pendingID = ""
			if err != nil {
				if p.options.strictTimecode() {
					return nil, &ParseError{Format: string(FormatVTT), Filename: filename, Err: err}
				}
				state = vttSkipping
				continue
			}
			current = cue
			state = vttInsideCue
			continue
		}

		if state == vttSkipping {
			continue
		}
		if state == vttAwaitingCue && isVTTBlockHeader(trimmed) {
			state = vttSkipping
			continue
		}

		switch state {
		case vttInsideCue:
			if !isVTTNote(trimmed) {
				textLines = append(textLines, strings.TrimRight(line, " \t"))
			}
		case vttAwaitingCue:
			pendingID = trimmed
		}
	}
	closeCue()

	return doc, nil
}

func (p *VTTParser) openCue(timing string, lineNum int, id string, position int) (*Cue, error) {
	m := timingLineRegex.FindStringSubmatch(timing)
	if m == nil {
		return nil, &TimecodeError{Format: FormatVTT, Value: timing, Line: lineNum}
	}
	start, err := ParseTimecode(m[1], FormatVTT)
	if err != nil {
		return nil, withLine(err, lineNum)
	}
	end, err := ParseTimecode(m[2], FormatVTT)
	if err != nil {
		return nil, withLine(err, lineNum)
	}

	if id == "" {
		id = fmt.Sprintf("event-%d", position)
	}
	return &Cue{
		ID:       id,
		Start:    start,
		End:      end,
		StyleRef: DefaultStyleName,
	}, nil
}

func isVTTNote(line string) bool {
	return line == "NOTE" || strings.HasPrefix(line, "NOTE ") || strings.HasPrefix(line, "NOTE\t")
}

func isVTTBlockHeader(line string) bool {
	return isVTTNote(line) || line == "STYLE" || line == "REGION"
}
