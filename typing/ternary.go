package typing

import (
	"fmt"
	"strings"
)

// Ternary is the result of a subtype check. Unknown means the types are not
// provably related, which is different from False.
type Ternary uint8

const (
	False Ternary = iota
	True
	Unknown
)

func TernaryOf(b bool) Ternary {
	if b {
		return True
	}
	return False
}

func (t Ternary) String() string {
	switch t {
	case False:
		return "False"
	case True:
		return "True"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Ternary(%d)", uint8(t))
	}
}

// Bool returns the boolean value of t, and whether it is known
func (t Ternary) Bool() (value bool, known bool) {
	return t == True, t != Unknown
}

// And is the Kleene conjunction: False wins over Unknown, which wins over True
func (t Ternary) And(other Ternary) Ternary {
	switch {
	case t == False || other == False:
		return False
	case t == Unknown || other == Unknown:
		return Unknown
	default:
		return True
	}
}

// Or is the Kleene disjunction: True wins over Unknown, which wins over False
func (t Ternary) Or(other Ternary) Ternary {
	switch {
	case t == True || other == True:
		return True
	case t == Unknown || other == Unknown:
		return Unknown
	default:
		return False
	}
}

func (t Ternary) Not() Ternary {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

func ParseTernary(s string) (Ternary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return True, nil
	case "false":
		return False, nil
	case "unknown":
		return Unknown, nil
	default:
		return False, fmt.Errorf("invalid subtype result %q: expected true, false or unknown", s)
	}
}

func (t Ternary) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

func (t *Ternary) UnmarshalText(text []byte) error {
	parsed, err := ParseTernary(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// anyOf is True as soon as check is True for one element
func anyOf[T any](elems []T, check func(T) (Ternary, error)) (Ternary, error) {
	res := False
	for _, elem := range elems {
		r, err := check(elem)
		if err != nil {
			return False, err
		}
		if r == True {
			return True, nil
		}
		res = res.Or(r)
	}
	return res, nil
}

// allOf is False as soon as check is False for one element
func allOf[T any](elems []T, check func(T) (Ternary, error)) (Ternary, error) {
	res := True
	for _, elem := range elems {
		r, err := check(elem)
		if err != nil {
			return False, err
		}
		if r == False {
			return False, nil
		}
		res = res.And(r)
	}
	return res, nil
}
