package subtitle

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode turns raw file bytes into text. A UTF-8 or UTF-16 (either byte
// order) BOM selects the encoding and is removed; without one the input is
// read as UTF-8 with invalid sequences replaced.
func Decode(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), decoder))
	if err != nil {
		return "", fmt.Errorf("failed to decode subtitle text: %w", err)
	}
	return string(out), nil
}
