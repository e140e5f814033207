package styling

import (
	"iter"
	"strings"
)

// writing system detected in a text run
type Script int

const (
	ScriptNone Script = iota
	ScriptCJK
	ScriptLatin
)

func (s Script) String() string {
	switch s {
	case ScriptCJK:
		return "cjk"
	case ScriptLatin:
		return "latin"
	default:
		return "none"
	}
}

type RunKind int

const (
	RunText RunKind = iota
	// a {...} override block
	RunOverride
	// \N, \\N, \n or \h
	RunBreak
)

// Run is one segment of ASS dialogue text. Only text runs carry a script.
type Run struct {
	Kind   RunKind
	Text   string
	Script Script
}

// Runs splits dialogue text into override blocks, line break markers and the
// text between them. The sequence is lazy and can be ranged over repeatedly.
func Runs(text string) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		start := 0
		flush := func(end int) bool {
			if end <= start {
				return true
			}
			chunk := text[start:end]
			return yield(Run{Kind: RunText, Text: chunk, Script: Classify(chunk)})
		}

		i := 0
		for i < len(text) {
			switch text[i] {
			case '{':
				closing := strings.IndexByte(text[i:], '}')
				if closing == -1 {
					i++
					continue
				}
				if !flush(i) {
					return
				}
				end := i + closing + 1
				if !yield(Run{Kind: RunOverride, Text: text[i:end]}) {
					return
				}
				i, start = end, end
			case '\\':
				n := breakLen(text[i:])
				if n == 0 {
					i++
					continue
				}
				if !flush(i) {
					return
				}
				if !yield(Run{Kind: RunBreak, Text: text[i : i+n]}) {
					return
				}
				i += n
				start = i
			default:
				i++
			}
		}
		flush(len(text))
	}
}

// length of the break marker at the start of s, or 0
func breakLen(s string) int {
	if strings.HasPrefix(s, `\\N`) {
		return 3
	}
	if len(s) >= 2 {
		switch s[1] {
		case 'N', 'n', 'h':
			return 2
		}
	}
	return 0
}

// Classify reports Latin when s holds an ASCII letter, CJK when it holds a
// CJK unified ideograph in U+4E00-U+9FA5 and no Latin letter, and None
// otherwise. Mixed runs count as Latin.
func Classify(s string) Script {
	cjk := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			return ScriptLatin
		case r >= 0x4E00 && r <= 0x9FA5:
			cjk = true
		}
	}
	if cjk {
		return ScriptCJK
	}
	return ScriptNone
}
