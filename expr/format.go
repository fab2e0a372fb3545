package expr

import (
	"strings"

	"github.com/pkg/errors"
)

// FormatSegmentKind identifies whether a compiled format segment is literal
// text or a '%' directive to be filled in at evaluation time.
type FormatSegmentKind int

const (
	// FormatLiteral is plain output text (after \-escape processing).
	FormatLiteral FormatSegmentKind = iota
	// FormatDirective is a '%' conversion, identified by Directive.
	FormatDirective
)

// FormatSegment is one piece of a compiled -printf/-fprintf format string.
type FormatSegment struct {
	Kind      FormatSegmentKind
	Literal   string
	Directive byte
	// SubDirective carries the second character of two-character
	// directives, such as the X in %AX or %TX.
	SubDirective byte
	// Width carries the raw flags/width/precision run between '%' and the
	// directive letter (e.g. "-10" for "%-10p"), applied via fmt.Sprintf's
	// own %s width verb when rendering the directive's text.
	Width string
}

// Format is a compiled -printf/-fprintf format string: a flat sequence of
// literal and directive segments, evaluated left to right.
type Format struct {
	Segments []FormatSegment
}

// directiveTakesSubDirective reports whether directive is one of the
// two-character time directives (%A, %T, %C), which consume a following
// character selecting the time representation (@, Y, m, d, H, M, S, etc.).
func directiveTakesSubDirective(directive byte) bool {
	return directive == 'A' || directive == 'T' || directive == 'C'
}

// CompileFormat parses a -printf/-fprintf format string into a Format.
// Supported directives mirror GNU find's set: %p %f %h %P %d %l %y %Y %s %b
// %g %G %u %U %m %M %i %n %k %F %% plus the %A/%T/%C time families, an
// optional [-+0-9.]* flags/width/precision run between '%' and the
// directive letter (e.g. %-10p), and the \n \t \\ \NNN (octal) etc.
// backslash escapes.
func CompileFormat(source string) (*Format, error) {
	var format Format
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			format.Segments = append(format.Segments, FormatSegment{
				Kind:    FormatLiteral,
				Literal: literal.String(),
			})
			literal.Reset()
		}
	}

	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '\\':
			if i+1 >= len(runes) {
				return nil, errors.New("trailing backslash in format string")
			}
			i++
			if runes[i] >= '0' && runes[i] <= '7' {
				value := 0
				digits := 0
				for digits < 3 && i < len(runes) && runes[i] >= '0' && runes[i] <= '7' {
					value = value*8 + int(runes[i]-'0')
					i++
					digits++
				}
				i--
				literal.WriteByte(byte(value))
				continue
			}
			switch runes[i] {
			case 'n':
				literal.WriteByte('\n')
			case 't':
				literal.WriteByte('\t')
			case '\\':
				literal.WriteByte('\\')
			case 'a':
				literal.WriteByte('\a')
			case 'b':
				literal.WriteByte('\b')
			case 'f':
				literal.WriteByte('\f')
			case 'r':
				literal.WriteByte('\r')
			case 'v':
				literal.WriteByte('\v')
			default:
				literal.WriteRune(runes[i])
			}
		case '%':
			if i+1 >= len(runes) {
				return nil, errors.New("trailing percent in format string")
			}
			i++
			var width strings.Builder
			for i < len(runes) && strings.ContainsRune("-+0123456789.", runes[i]) {
				width.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, errors.New("incomplete directive in format string")
			}
			directive := byte(runes[i])
			if directive == '%' {
				literal.WriteByte('%')
				continue
			}
			flushLiteral()
			segment := FormatSegment{Kind: FormatDirective, Directive: directive, Width: width.String()}
			if directiveTakesSubDirective(directive) {
				if i+1 >= len(runes) {
					return nil, errors.Errorf("directive %%%c requires a following character", directive)
				}
				i++
				segment.SubDirective = byte(runes[i])
			}
			format.Segments = append(format.Segments, segment)
		default:
			literal.WriteRune(c)
		}
	}
	flushLiteral()

	return &format, nil
}
