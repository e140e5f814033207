package styling

import (
	"errors"
	"testing"

	"github.com/mgpai22/subkit/internal/subtitle"
)

func parseSRT(t *testing.T, content string) *subtitle.Document {
	t.Helper()
	doc, err := subtitle.ParseFile(content, subtitle.FormatSRT, "test.srt", subtitle.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	return doc
}

func TestApplyChangesOnlyGivenFields(t *testing.T) {
	doc := parseSRT(t, "1\n00:00:01,000 --> 00:00:03,000\nHello World")
	before := doc.Styles[0]

	out, err := Apply(doc, Override{
		FontName: Ptr("Times New Roman"),
		FontSize: Ptr(20.0),
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	got := out.Styles[0]
	if got.FontName != "Times New Roman" || got.FontSize != 20 {
		t.Errorf("expected Times New Roman 20, got %s %v", got.FontName, got.FontSize)
	}

	want := before
	want.FontName = "Times New Roman"
	want.FontSize = 20
	if got != want {
		t.Errorf("other fields changed:\n got %+v\nwant %+v", got, want)
	}

	if doc.Styles[0] != before {
		t.Error("Apply mutated its input")
	}
	if out.Modified.Before(doc.Modified) {
		t.Error("expected modified to be stamped")
	}
}

func TestApplyCreatesDefaultStyle(t *testing.T) {
	doc := parseSRT(t, "")
	doc.Styles = nil

	out, err := Apply(doc, Override{Bold: Ptr(true)})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(out.Styles) != 1 || out.Styles[0].Name != subtitle.DefaultStyleName || !out.Styles[0].Bold {
		t.Errorf("unexpected styles: %+v", out.Styles)
	}
	if doc.Styles != nil {
		t.Error("Apply mutated its input")
	}
}

func TestApplyRejectsInvalidStyle(t *testing.T) {
	doc := parseSRT(t, "")

	tests := []struct {
		name string
		o    Override
	}{
		{"zero font size", Override{FontSize: Ptr(0.0)}},
		{"negative font size", Override{FontSize: Ptr(-3.0)}},
		{"alignment too low", Override{Alignment: Ptr(0)}},
		{"alignment too high", Override{Alignment: Ptr(10)}},
		{"bad color", Override{PrimaryColor: Ptr("red")}},
		{"empty font", Override{FontName: Ptr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(doc, tt.o)
			if !errors.Is(err, ErrInvalidStyle) {
				t.Errorf("expected ErrInvalidStyle, got %v", err)
			}
		})
	}
}

func TestApplyNormalizesColor(t *testing.T) {
	out, err := Apply(parseSRT(t, ""), Override{BackColor: Ptr("#a0b1c2")})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if out.Styles[0].BackColor != "#A0B1C2" {
		t.Errorf("expected uppercase color, got %s", out.Styles[0].BackColor)
	}
}

func TestOverrideMerge(t *testing.T) {
	base := Override{FontName: Ptr("Arial"), FontSize: Ptr(16.0)}
	merged := base.Merge(Override{FontSize: Ptr(24.0), Italic: Ptr(true)})

	if *merged.FontName != "Arial" || *merged.FontSize != 24 || !*merged.Italic {
		t.Errorf("unexpected merge result: %+v", merged)
	}
	if *base.FontSize != 16 {
		t.Error("Merge mutated its receiver")
	}
	if !(Override{}).IsZero() || merged.IsZero() {
		t.Error("IsZero misreported")
	}
}
