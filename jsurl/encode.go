package jsurl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Stringify converts a Value to its encoded text. A nil Value (absent)
// encodes to the empty string.
func Stringify(v *Value) string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v *Value) {
	if v == nil || v.kind == KindNull {
		sb.WriteString("~null")
		return
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			sb.WriteString("~true")
		} else {
			sb.WriteString("~false")
		}

	case KindNumber:
		sb.WriteByte('~')
		sb.WriteString(formatNumber(v.numVal))

	case KindString:
		sb.WriteString("~'")
		writeEscaped(sb, v.strVal)

	case KindArray:
		sb.WriteString("~(")
		if len(v.arrVal) == 0 {
			// bare '~' marks the empty array; '~()' would read as an
			// empty object
			sb.WriteByte('~')
		}
		for _, elem := range v.arrVal {
			writeValue(sb, elem)
		}
		sb.WriteByte(')')

	case KindObject:
		sb.WriteString("~(")
		for i, m := range v.objVal {
			if i > 0 {
				sb.WriteByte('~')
			}
			writeEscaped(sb, m.Key)
			writeValue(sb, m.Value)
		}
		sb.WriteByte(')')
	}
}

// formatNumber emits the shortest literal that round-trips. Integral values
// drop the decimal point, matching what the console writes for timestamps.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeEscaped emits a string body or object key.
//
// Printable ASCII passes through, with exceptions: ' becomes !, ! doubles to
// !!, and % plus the structural characters ~ ( ) * are hex-escaped as *HH.
// Everything below 0x20 is *HH; code points at or above 0x80 are **HHHH,
// astral code points as a surrogate pair of **HHHH escapes.
func writeEscaped(sb *strings.Builder, s string) {
	for _, r := range s {
		switch {
		case r == '\'':
			sb.WriteByte('!')
		case r == '!':
			sb.WriteString("!!")
		case r == '%' || r == '~' || r == '(' || r == ')' || r == '*':
			fmt.Fprintf(sb, "*%02x", r)
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		case r < 0x80:
			fmt.Fprintf(sb, "*%02x", r)
		case r <= 0xffff:
			fmt.Fprintf(sb, "**%04x", r)
		default:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(sb, "**%04x**%04x", hi, lo)
		}
	}
}
