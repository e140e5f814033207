package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var subLineRegex = regexp.MustCompile(`\{(\d+)\}\{(\d+)\}(.+)`)

// parses MicroDVD lines of the form {start}{end}text
type SUBParser struct {
	options Options
}

func (p *SUBParser) Parse(content, filename string) (*Document, error) {
	doc := newDocument(FormatSUB, filename)

	for i, line := range splitLines(content) {
		m := subLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		start, err := ParseTimecode(m[1], FormatSUB)
		if err == nil {
			end, endErr := ParseTimecode(m[2], FormatSUB)
			if endErr == nil {
				doc.Events = append(doc.Events, Cue{
					ID:       fmt.Sprintf("event-%d", len(doc.Events)),
					Start:    start,
					End:      end,
					Text:     strings.ReplaceAll(strings.TrimRight(m[3], " \t"), "|", "\n"),
					StyleRef: DefaultStyleName,
				})
				continue
			}
			err = endErr
		}

		if p.options.strictTimecode() {
			return nil, &ParseError{
				Format:   string(FormatSUB),
				Filename: filename,
				Err:      withLine(err, i+1),
			}
		}
	}

	return doc, nil
}
