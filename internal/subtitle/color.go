package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	fallbackColor    = "#FFFFFF"
	fallbackASSColor = "&H00FFFFFF"
)

// ToCanonical decodes an ASS &H[AA]BBGGRR value into #RRGGBB. Anything that
// cannot be decoded yields #FFFFFF; use DecodeColor to detect that case.
func ToCanonical(ass string) string {
	hex, err := DecodeColor(ass)
	if err != nil {
		return fallbackColor
	}
	return hex
}

// DecodeColor is the strict form of ToCanonical. The alpha byte of an 8 digit
// value is dropped. A trailing "&" as used by inline override tags is accepted.
func DecodeColor(ass string) (string, error) {
	v := strings.TrimSpace(ass)
	if len(v) < 2 || !strings.EqualFold(v[:2], "&H") {
		return "", &ColorError{Value: ass}
	}
	digits := strings.TrimSuffix(v[2:], "&")
	if (len(digits) != 6 && len(digits) != 8) || !isHex(digits) {
		return "", &ColorError{Value: ass}
	}

	bgr := strings.ToUpper(digits[len(digits)-6:])
	return "#" + bgr[4:6] + bgr[2:4] + bgr[0:2], nil
}

// DecodeLegacyColor decodes an SSA v4 style colour. SSA writes colours as
// decimal BGR integers (65535 is yellow); &H values are accepted too.
func DecodeLegacyColor(ssa string) (string, error) {
	v := strings.TrimSpace(ssa)
	if v == "" || strings.Trim(v, "0123456789") != "" {
		return DecodeColor(ssa)
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return "", &ColorError{Value: ssa}
	}
	n &= 0xFFFFFF
	return fmt.Sprintf("#%02X%02X%02X", n&0xFF, (n>>8)&0xFF, (n>>16)&0xFF), nil
}

// FromCanonical encodes #RRGGBB as an opaque &H00BBGGRR value. Malformed
// input encodes as opaque white.
func FromCanonical(hex string) string {
	rgb, err := NormalizeHex(hex)
	if err != nil {
		return fallbackASSColor
	}
	return "&H00" + swapRB(rgb[1:])
}

// TagColor encodes #RRGGBB in the &HBBGGRR& form used by \c and \1c tags.
func TagColor(hex string) string {
	rgb, err := NormalizeHex(hex)
	if err != nil {
		rgb = fallbackColor
	}
	return "&H" + swapRB(rgb[1:]) + "&"
}

// NormalizeHex validates a #RRGGBB value and returns it uppercased.
func NormalizeHex(hex string) (string, error) {
	v := strings.TrimSpace(hex)
	if len(v) != 7 || v[0] != '#' || !isHex(v[1:]) {
		return "", &ColorError{Value: hex}
	}
	return strings.ToUpper(v), nil
}

func swapRB(rrggbb string) string {
	return rrggbb[4:6] + rrggbb[2:4] + rrggbb[0:2]
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return s != ""
}
