//go:build js && wasm

package suite

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/typing"
)

// NormalizeAndShow parses its first argument and returns its normal form
func NormalizeAndShow(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "typing-utils panicked: " + fmt.Sprint(r)
		}
	}()

	e, err := parser.Parse(args[0].String())
	if err != nil {
		return showError(err)
	}
	t, err := typing.Normalize(e)
	if err != nil {
		return showError(err)
	}
	return t.String()
}

// IsSubtypeAndShow decides whether its first argument is a subtype of its second
func IsSubtypeAndShow(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "typing-utils panicked: " + fmt.Sprint(r)
		}
	}()

	left, err := parser.Parse(args[0].String())
	if err != nil {
		return showError(err)
	}
	right, err := parser.Parse(args[1].String())
	if err != nil {
		return showError(err)
	}
	res, err := typing.IsSubtype(left, right, typing.Env{})
	if err != nil {
		return showError(err)
	}
	return res.String()
}

// RunAndShow runs the YAML suite in its first argument and reports every case
func RunAndShow(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "typing-utils panicked: " + fmt.Sprint(r)
		}
	}()

	s, err := Load(strings.NewReader(args[0].String()))
	if err != nil {
		return showError(err)
	}
	results, errs := s.Run()
	sb := strings.Builder{}
	for _, r := range results {
		if r.Passed {
			sb.WriteString("ok   ")
		} else {
			sb.WriteString("FAIL ")
		}
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	for _, e := range errs.Errors() {
		sb.WriteString(tperr.FormatWithCode(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func showError(err error) string {
	var errs *tperr.Errors
	errs = errs.WithErr(err)
	sb := strings.Builder{}
	sb.WriteString("the expression has the following errors:\n")
	for _, e := range errs.Errors() {
		sb.WriteString(tperr.FormatWithCode(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}
