package symbol

import (
	"strings"

	"github.com/auraframes/genesis-bridge/errors"
)

// DefaultPrefix is the linkage prefix managed callers expect.
const DefaultPrefix = "Java"

// Export describes a caller-side fully-qualified method reference.
type Export struct {
	Prefix string // linkage prefix; DefaultPrefix if empty
	Type   string // fully-qualified caller type, dot separated
	Method string // method name on the caller type
}

// Mangle returns the linkable export symbol for e.
// Examples:
//   - {Type: "com.auraframes.fx.MainActivity", Method: "stringFromJNI"}
//     -> "Java_com_auraframes_fx_MainActivity_stringFromJNI"
//   - {Type: "com.my_app.Main", Method: "greet"}
//     -> "Java_com_my_1app_Main_greet"
func (e Export) Mangle() string {
	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var b strings.Builder
	b.WriteString(prefix)
	for _, qualifier := range strings.Split(e.Type, ".") {
		b.WriteByte('_')
		b.WriteString(escapeName(qualifier))
	}
	b.WriteByte('_')
	b.WriteString(escapeName(e.Method))
	return b.String()
}

// Validate reports whether e can produce a resolvable symbol.
func (e Export) Validate() error {
	if e.Type == "" {
		return errors.InvalidInput(errors.PhaseParse, "export has empty type")
	}
	if e.Method == "" {
		return errors.InvalidInput(errors.PhaseParse, "export has empty method")
	}
	for _, qualifier := range strings.Split(e.Type, ".") {
		if qualifier == "" {
			return errors.InvalidInput(errors.PhaseParse, "type "+e.Type+" has an empty qualifier")
		}
	}
	return nil
}

// Parse recovers the Export an exported symbol was derived from.
// It is the inverse of Mangle for any Export that passes Validate.
func Parse(s string) (Export, error) {
	segments := splitSegments(s)
	if len(segments) < 3 {
		return Export{}, errors.InvalidInput(errors.PhaseParse, "symbol "+s+" needs a prefix, at least one qualifier, and a method")
	}

	for i, seg := range segments {
		if seg == "" {
			return Export{}, errors.InvalidInput(errors.PhaseParse, "symbol "+s+" has an empty segment")
		}
		unescaped, err := unescapeName(seg)
		if err != nil {
			return Export{}, err.WithSymbol(s)
		}
		segments[i] = unescaped
	}

	return Export{
		Prefix: segments[0],
		Type:   strings.Join(segments[1:len(segments)-1], "."),
		Method: segments[len(segments)-1],
	}, nil
}

// escapeName escapes one qualifier or method name for linkage.
func escapeName(name string) string {
	if !strings.ContainsAny(name, "_;[") {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '_':
			b.WriteString("_1")
		case ';':
			b.WriteString("_2")
		case '[':
			b.WriteString("_3")
		default:
			b.WriteByte(name[i])
		}
	}
	return b.String()
}

// unescapeName reverses escapeName for one symbol segment.
func unescapeName(seg string) (string, *errors.Error) {
	if !strings.ContainsRune(seg, '_') {
		return seg, nil
	}
	var b strings.Builder
	for i := 0; i < len(seg); i++ {
		if seg[i] != '_' {
			b.WriteByte(seg[i])
			continue
		}
		if i+1 >= len(seg) {
			return "", errors.InvalidInput(errors.PhaseParse, "dangling escape at end of segment "+seg)
		}
		i++
		switch seg[i] {
		case '1':
			b.WriteByte('_')
		case '2':
			b.WriteByte(';')
		case '3':
			b.WriteByte('[')
		default:
			return "", errors.InvalidInput(errors.PhaseParse, "unknown escape _"+string(seg[i])+" in segment "+seg)
		}
	}
	return b.String(), nil
}

// splitSegments splits a symbol at separator underscores. An underscore
// followed by a digit is part of an escape sequence, not a separator,
// because names never start with a digit.
func splitSegments(s string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			i++ // escape sequence, keep inside the segment
			continue
		}
		segments = append(segments, s[start:i])
		start = i + 1
	}
	segments = append(segments, s[start:])
	return segments
}
