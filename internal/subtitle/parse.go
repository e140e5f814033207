package subtitle

import (
	"regexp"
	"strings"
)

// interface for parsing subtitle text
type Parser interface {
	Parse(content, filename string) (*Document, error)
}

// interface for serializing documents to subtitle text
type Writer interface {
	Write(doc *Document) (string, error)
}

// creates the parser for a format
func NewParser(format Format, opts Options) (Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, &ParseError{Format: string(format), Err: err}
	}

	switch format {
	case FormatASS:
		return &ASSParser{options: opts}, nil
	case FormatSRT:
		return &SRTParser{options: opts}, nil
	case FormatVTT:
		return &VTTParser{options: opts}, nil
	case FormatSUB:
		return &SUBParser{options: opts}, nil
	default:
		return nil, &ParseError{Format: string(format), Err: unsupported(format)}
	}
}

// ParseFile builds a document from subtitle text in the declared format.
func ParseFile(content string, format Format, filename string, opts Options) (*Document, error) {
	parser, err := NewParser(format, opts)
	if err != nil {
		return nil, err
	}
	return parser.Parse(content, filename)
}

// ExportFile serializes doc into the target format.
func ExportFile(doc *Document, format Format) (string, error) {
	writer, err := NewWriter(format)
	if err != nil {
		return "", err
	}
	return writer.Write(doc)
}

var timingLineRegex = regexp.MustCompile(`^\s*(\S+?)\s*-->\s*(\S+)`)

// splitLines normalizes line endings and drops a leading byte order mark
func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
