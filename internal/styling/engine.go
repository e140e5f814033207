// Package styling edits the style table and the inline markup of subtitle
// documents. Every operation returns a new document and leaves its input
// untouched.
package styling

import (
	"errors"
	"fmt"

	"github.com/mgpai22/subkit/internal/subtitle"
)

var ErrInvalidStyle = errors.New("invalid style")

// Override is a partial style. Nil fields leave the target untouched.
type Override struct {
	FontName       *string  `toml:"font_name" mapstructure:"font_name"`
	FontSize       *float64 `toml:"font_size" mapstructure:"font_size"`
	PrimaryColor   *string  `toml:"primary_color" mapstructure:"primary_color"`
	SecondaryColor *string  `toml:"secondary_color" mapstructure:"secondary_color"`
	OutlineColor   *string  `toml:"outline_color" mapstructure:"outline_color"`
	BackColor      *string  `toml:"back_color" mapstructure:"back_color"`
	Bold           *bool    `toml:"bold" mapstructure:"bold"`
	Italic         *bool    `toml:"italic" mapstructure:"italic"`
	Underline      *bool    `toml:"underline" mapstructure:"underline"`
	StrikeOut      *bool    `toml:"strike_out" mapstructure:"strike_out"`
	ScaleX         *float64 `toml:"scale_x" mapstructure:"scale_x"`
	ScaleY         *float64 `toml:"scale_y" mapstructure:"scale_y"`
	Spacing        *float64 `toml:"spacing" mapstructure:"spacing"`
	Angle          *float64 `toml:"angle" mapstructure:"angle"`
	BorderStyle    *int     `toml:"border_style" mapstructure:"border_style"`
	Outline        *float64 `toml:"outline" mapstructure:"outline"`
	Shadow         *float64 `toml:"shadow" mapstructure:"shadow"`
	Alignment      *int     `toml:"alignment" mapstructure:"alignment"`
	MarginL        *int     `toml:"margin_l" mapstructure:"margin_l"`
	MarginR        *int     `toml:"margin_r" mapstructure:"margin_r"`
	MarginV        *int     `toml:"margin_v" mapstructure:"margin_v"`
	Encoding       *int     `toml:"encoding" mapstructure:"encoding"`
}

// Ptr returns a pointer to v, for building Override literals.
func Ptr[T any](v T) *T {
	return &v
}

// IsZero reports whether o sets no field.
func (o Override) IsZero() bool {
	return o == Override{}
}

// Merge layers next on top of o: fields set in next win.
func (o Override) Merge(next Override) Override {
	out := o
	pick(&out.FontName, next.FontName)
	pick(&out.FontSize, next.FontSize)
	pick(&out.PrimaryColor, next.PrimaryColor)
	pick(&out.SecondaryColor, next.SecondaryColor)
	pick(&out.OutlineColor, next.OutlineColor)
	pick(&out.BackColor, next.BackColor)
	pick(&out.Bold, next.Bold)
	pick(&out.Italic, next.Italic)
	pick(&out.Underline, next.Underline)
	pick(&out.StrikeOut, next.StrikeOut)
	pick(&out.ScaleX, next.ScaleX)
	pick(&out.ScaleY, next.ScaleY)
	pick(&out.Spacing, next.Spacing)
	pick(&out.Angle, next.Angle)
	pick(&out.BorderStyle, next.BorderStyle)
	pick(&out.Outline, next.Outline)
	pick(&out.Shadow, next.Shadow)
	pick(&out.Alignment, next.Alignment)
	pick(&out.MarginL, next.MarginL)
	pick(&out.MarginR, next.MarginR)
	pick(&out.MarginV, next.MarginV)
	pick(&out.Encoding, next.Encoding)
	return out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ApplyTo returns s with the fields of o written over it.
func (o Override) ApplyTo(s subtitle.Style) subtitle.Style {
	set(&s.FontName, o.FontName)
	set(&s.FontSize, o.FontSize)
	set(&s.PrimaryColor, o.PrimaryColor)
	set(&s.SecondaryColor, o.SecondaryColor)
	set(&s.OutlineColor, o.OutlineColor)
	set(&s.BackColor, o.BackColor)
	set(&s.Bold, o.Bold)
	set(&s.Italic, o.Italic)
	set(&s.Underline, o.Underline)
	set(&s.StrikeOut, o.StrikeOut)
	set(&s.ScaleX, o.ScaleX)
	set(&s.ScaleY, o.ScaleY)
	set(&s.Spacing, o.Spacing)
	set(&s.Angle, o.Angle)
	set(&s.BorderStyle, o.BorderStyle)
	set(&s.Outline, o.Outline)
	set(&s.Shadow, o.Shadow)
	set(&s.Alignment, o.Alignment)
	set(&s.MarginL, o.MarginL)
	set(&s.MarginR, o.MarginR)
	set(&s.MarginV, o.MarginV)
	set(&s.Encoding, o.Encoding)
	return s
}

// Validate checks the invariants every style in a document must hold and
// uppercases its colors.
func Validate(s subtitle.Style) (subtitle.Style, error) {
	if !(s.FontSize > 0) {
		return s, fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidStyle, s.FontSize)
	}
	if s.Alignment < 1 || s.Alignment > 9 {
		return s, fmt.Errorf("%w: alignment must be 1-9, got %d", ErrInvalidStyle, s.Alignment)
	}
	if s.FontName == "" {
		return s, fmt.Errorf("%w: font name is empty", ErrInvalidStyle)
	}

	for _, c := range []*string{&s.PrimaryColor, &s.SecondaryColor, &s.OutlineColor, &s.BackColor} {
		hex, err := subtitle.NormalizeHex(*c)
		if err != nil {
			return s, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
		}
		*c = hex
	}
	return s, nil
}

// Apply merges o into the document's first style, creating it from
// DefaultStyle when the table is empty.
func Apply(doc *subtitle.Document, o Override) (*subtitle.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to apply style: document is nil")
	}

	out := doc.Clone()
	if len(out.Styles) == 0 {
		out.Styles = []subtitle.Style{subtitle.DefaultStyle()}
	}

	style, err := Validate(o.ApplyTo(out.Styles[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to apply style: %w", err)
	}
	out.Styles[0] = style
	out.Touch()
	return out, nil
}
