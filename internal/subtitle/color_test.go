package subtitle

import (
	"errors"
	"testing"
)

func TestToCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&H00FFFFFF", "#FFFFFF"},
		{"&H000000FF", "#FF0000"},
		{"&HFF00FF00", "#00FF00"},
		{"&H80FF0000", "#0000FF"},
		{"&H0000FF", "#FF0000"},
		{"&h00ff8000", "#0080FF"},
		{"&H00D7FF&", "#FFD700"},
		{" &H00000000 ", "#000000"},
		{"garbage", "#FFFFFF"},
		{"", "#FFFFFF"},
		{"&H", "#FFFFFF"},
		{"&H12345", "#FFFFFF"},
		{"&H00GGGGGG", "#FFFFFF"},
		{"00FFFFFF", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToCanonical(tt.in); got != tt.want {
				t.Errorf("ToCanonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeColorStrict(t *testing.T) {
	if _, err := DecodeColor("garbage"); !errors.Is(err, ErrMalformedColor) {
		t.Errorf("expected ErrMalformedColor, got %v", err)
	}
	got, err := DecodeColor("&H00336699")
	if err != nil {
		t.Fatalf("DecodeColor returned error: %v", err)
	}
	if got != "#996633" {
		t.Errorf("DecodeColor = %q, want #996633", got)
	}
}

func TestFromCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FFFFFF", "&H00FFFFFF"},
		{"#FF0000", "&H000000FF"},
		{"#0080ff", "&H00FF8000"},
		{"#123456", "&H00563412"},
		{"123456", "&H00FFFFFF"},
		{"#12345", "&H00FFFFFF"},
		{"", "&H00FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FromCanonical(tt.in); got != tt.want {
				t.Errorf("FromCanonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#123ABC", "#FEDCBA"} {
		if got := ToCanonical(FromCanonical(hex)); got != hex {
			t.Errorf("ToCanonical(FromCanonical(%q)) = %q", hex, got)
		}
	}
}

func TestTagColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FFD700", "&H00D7FF&"},
		{"#ff0000", "&H0000FF&"},
		{"bad", "&HFFFFFF&"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TagColor(tt.in); got != tt.want {
				t.Errorf("TagColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeLegacyColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"65535", "#FFFF00", false},
		{"16777215", "#FFFFFF", false},
		{"255", "#FF0000", false},
		{"0", "#000000", false},
		{" 16711680 ", "#0000FF", false},
		{"&H0000FFFF", "#FFFF00", false},
		{"99999999999", "", true},
		{"12ab", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeLegacyColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedColor) {
					t.Fatalf("DecodeLegacyColor(%q) error = %v, want ErrMalformedColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLegacyColor(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DecodeLegacyColor(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
