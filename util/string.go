package util

import (
	"fmt"
	"strings"
)

// JoinString renders each element with String and joins them with sep
func JoinString[S fmt.Stringer](elems []S, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i != 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(elem.String())
	}
	return sb.String()
}

// JoinErrorsWith renders errs one per line, each preceded by prefix
func JoinErrorsWith(prefix string, errs []error, sep string) string {
	sb := strings.Builder{}
	for i, err := range errs {
		if i != 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// StringTakeUntil returns the string up to and excluding char as well as the remainder excluding char
//
// if char was not found, then tail returns the empty string
func StringTakeUntil(s string, char rune) (head string, tail string) {
	for i, r := range s {
		if r == char && len(s[i:]) != 0 {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
