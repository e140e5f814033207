package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parses SubRip text
type SRTParser struct {
	options Options
}

func (p *SRTParser) Parse(content, filename string) (*Document, error) {
	doc := newDocument(FormatSRT, filename)

	var block []string
	blockStart := 0

	flush := func() error {
		defer func() { block = nil }()
		if len(block) == 0 {
			return nil
		}
		cue, err := parseSRTBlock(block, blockStart, len(doc.Events))
		if err != nil {
			if p.options.strictTimecode() {
				return err
			}
			return nil
		}
		if cue != nil {
			doc.Events = append(doc.Events, *cue)
		}
		return nil
	}

	for i, line := range splitLines(content) {
		if isBlank(line) {
			if err := flush(); err != nil {
				return nil, srtParseError(filename, err)
			}
			continue
		}
		if len(block) == 0 {
			blockStart = i + 1
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return nil, srtParseError(filename, err)
	}

	return doc, nil
}

// parseSRTBlock returns a nil cue for blocks without a timing line
func parseSRTBlock(block []string, lineNum, position int) (*Cue, error) {
	timingAt := -1
	for i := 0; i < len(block) && i < 2; i++ {
		if strings.Contains(block[i], "-->") {
			timingAt = i
			break
		}
	}
	if timingAt == -1 {
		return nil, nil
	}

	m := timingLineRegex.FindStringSubmatch(block[timingAt])
	if m == nil {
		return nil, &TimecodeError{Format: FormatSRT, Value: block[timingAt], Line: lineNum + timingAt}
	}
	start, err := ParseTimecode(m[1], FormatSRT)
	if err != nil {
		return nil, withLine(err, lineNum+timingAt)
	}
	end, err := ParseTimecode(m[2], FormatSRT)
	if err != nil {
		return nil, withLine(err, lineNum+timingAt)
	}

	id := fmt.Sprintf("event-%d", position)
	if timingAt == 1 {
		if index, err := strconv.Atoi(strings.TrimSpace(block[0])); err == nil {
			id = fmt.Sprintf("event-%d", index)
		}
	}

	return &Cue{
		ID:       id,
		Start:    start,
		End:      end,
		Text:     strings.Join(block[timingAt+1:], "\n"),
		StyleRef: DefaultStyleName,
	}, nil
}

func withLine(err error, line int) error {
	var te *TimecodeError
	if errors.As(err, &te) {
		te.Line = line
	}
	return err
}

func srtParseError(filename string, err error) error {
	return &ParseError{Format: string(FormatSRT), Filename: filename, Err: err}
}
