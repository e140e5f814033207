package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open reads a subtitle file, choosing the parser from the file extension.
func Open(path string, opts Options) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	content, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	doc, err := ParseFile(content, format, filepath.Base(path), opts)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = path
	return doc, nil
}

// WriteFile serializes doc into format and writes it to path, creating
// parent directories as needed.
func WriteFile(doc *Document, format Format, path string) error {
	content, err := ExportFile(doc, format)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}

// subtitle format based on file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatASS:
		return ".ass"
	case FormatVTT:
		return ".vtt"
	case FormatSUB:
		return ".sub"
	default:
		return ".srt"
	}
}

// OutputPath replaces the extension of src with the one for format. When dir
// is set the file is placed there instead of next to src.
func OutputPath(src string, format Format, dir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, base+GetExtensionForFormat(format))
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
