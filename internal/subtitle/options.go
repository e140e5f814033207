package subtitle

import "fmt"

// what to do with an ASS color field that cannot be decoded
type ColorPolicy string

const (
	ColorUseDefault ColorPolicy = "default"
	ColorFail       ColorPolicy = "error"
)

// what to do with a cue whose timestamps cannot be parsed
type TimecodePolicy string

const (
	TimecodeSkip TimecodePolicy = "skip"
	TimecodeFail TimecodePolicy = "error"
)

// Options controls how parsers react to malformed sub-fields. The zero
// value behaves like DefaultOptions.
type Options struct {
	OnMalformedColor    ColorPolicy
	OnMalformedTimecode TimecodePolicy
}

func DefaultOptions() Options {
	return Options{
		OnMalformedColor:    ColorUseDefault,
		OnMalformedTimecode: TimecodeSkip,
	}
}

// Validate rejects unknown policy values.
func (o Options) Validate() error {
	switch o.OnMalformedColor {
	case "", ColorUseDefault, ColorFail:
	default:
		return fmt.Errorf("unknown color policy %q: use default or error", o.OnMalformedColor)
	}
	switch o.OnMalformedTimecode {
	case "", TimecodeSkip, TimecodeFail:
	default:
		return fmt.Errorf("unknown timecode policy %q: use skip or error", o.OnMalformedTimecode)
	}
	return nil
}

func (o Options) strictColor() bool {
	return o.OnMalformedColor == ColorFail
}

func (o Options) strictTimecode() bool {
	return o.OnMalformedTimecode == TimecodeFail
}
