package typing

import (
	"slices"

	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/util"
)

type pairKey struct {
	left, right uint64
}

// assumption is a pair being checked, and the structural depth it was entered at
type assumption struct {
	left, right Type
	structural  int
}

func (a assumption) is(left, right Type) bool {
	return a.left.Equal(left) && a.right.Equal(right)
}

// subtypeSolver holds the state of a single top level subtype check
type subtypeSolver struct {
	checker *Checker
	env     Env

	depth int // current recursion depth
	// structural counts how many generic argument lists the current check is nested in
	structural int
	// assumptions holds the pairs with a forward reference or bound type
	// variable that are being checked, by the hashes of both sides
	assumptions map[pairKey][]assumption
	stack       util.Stack[assumption]
}

func (c *Checker) newSolver(env Env) *subtypeSolver {
	return &subtypeSolver{
		checker:     c,
		env:         env,
		assumptions: make(map[pairKey][]assumption),
	}
}

func (s *subtypeSolver) check(left, right Type) (res Ternary, err error) {
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.checker.depthLimit {
		return False, tperr.New(tperr.RecursionLimit{Left: left.String(), Right: right.String(), Limit: s.checker.depthLimit})
	}
	defer func() {
		if err == nil {
			s.checker.subtypeLogger.Debug("subtype step", "left", left, "right", right, "result", res.String(), "depth", s.depth)
		}
	}()

	if left.Equal(right) {
		return True, nil
	}
	if isDeferred(left) || isDeferred(right) {
		return s.checkDeferred(left, right)
	}
	if right.Origin.Kind == KindAny {
		return True, nil
	}

	switch {
	case left.isUnion() && right.isUnion():
		return s.cover(left.Args.(Unordered), right.Args.(Unordered))
	case right.isUnion():
		return anyOf(right.Args.(Unordered).Members(), func(r Type) (Ternary, error) {
			return s.check(left, r)
		})
	case left.isUnion():
		if right.IsBare() && originSubtype(left.Origin, right.Origin) {
			return True, nil
		}
		return allOf(left.Args.(Unordered).Members(), func(l Type) (Ternary, error) {
			return s.check(l, right)
		})
	}

	// only unbound type variables are left, bound ones were replaced by their bounds
	leftVar, rightVar := left.Origin.Kind == KindTypeVar, right.Origin.Kind == KindTypeVar
	switch {
	case leftVar && rightVar:
		return Unknown, nil
	case leftVar || rightVar:
		return False, nil
	}

	if right.IsBare() {
		return TernaryOf(originSubtype(left.Origin, right.Origin)), nil
	}
	if !originSubtype(left.Origin, right.Origin) {
		return False, nil
	}
	return s.compareArgs(left.Args, right.Args)
}

// isDeferred is true for types that stand for another type: forward
// references and type variables with a bound
func isDeferred(t Type) bool {
	switch t.Origin.Kind {
	case KindForwardRef:
		return true
	case KindTypeVar:
		return t.Origin.Bound() != nil
	default:
		return false
	}
}

// checkDeferred expands forward references and bounds before checking again.
// Meeting the same pair again after descending into generic arguments means
// the types are recursive, and the pair is assumed to hold. Meeting it again
// without descending can never terminate and is an error.
func (s *subtypeSolver) checkDeferred(left, right Type) (Ternary, error) {
	key := pairKey{left: left.Hash(), right: right.Hash()}
	if entered, ok := s.assumed(key, left, right); ok {
		if s.structural > entered.structural {
			return True, nil
		}
		return False, tperr.New(tperr.ForwardRefCycle{Chain: s.chainFrom(entered)})
	}
	entry := assumption{left: left, right: right, structural: s.structural}
	s.assumptions[key] = append(s.assumptions[key], entry)
	s.stack.Push(entry)
	defer func() {
		entries := s.assumptions[key]
		if len(entries) == 1 {
			delete(s.assumptions, key)
		} else {
			s.assumptions[key] = entries[:len(entries)-1]
		}
		s.stack.Pop()
	}()

	left, err := s.expand(left)
	if err != nil {
		return False, err
	}
	right, err = s.expand(right)
	if err != nil {
		return False, err
	}
	return s.check(left, right)
}

// assumed finds the assumption for left <: right. Different pairs may share a key.
func (s *subtypeSolver) assumed(key pairKey, left, right Type) (assumption, bool) {
	for _, a := range s.assumptions[key] {
		if a.is(left, right) {
			return a, true
		}
	}
	return assumption{}, false
}

func (s *subtypeSolver) chainFrom(entered assumption) []string {
	frames := s.stack.From(func(a assumption) bool { return a.is(entered.left, entered.right) })
	chain := util.Map(frames, func(a assumption) string { return a.left.String() + " <: " + a.right.String() })
	return append(chain, entered.left.String()+" <: "+entered.right.String())
}

// expand resolves forward references in the Env and replaces bound type
// variables with their bound, until t is neither
func (s *subtypeSolver) expand(t Type) (Type, error) {
	var seen []string
	for isDeferred(t) {
		name := t.Origin.Name
		if t.Origin.Kind == KindTypeVar {
			name = "~" + name
		}
		if slices.Contains(seen, name) {
			return Type{}, tperr.New(tperr.ForwardRefCycle{Chain: append(seen, name)})
		}
		seen = append(seen, name)

		if t.Origin.Kind == KindTypeVar {
			t = *t.Origin.Bound()
			continue
		}
		e, err := s.checker.introspector.ResolveForward(&texpr.ForwardRef{Expr: t.Origin.Name}, s.env)
		if err != nil {
			return Type{}, err
		}
		if t, err = s.checker.normalize(e); err != nil {
			return Type{}, err
		}
	}
	return t, nil
}

// cover is true when every member of left which is not also a member of
// right is a subtype of some member of right
func (s *subtypeSolver) cover(left, right Unordered) (Ternary, error) {
	var excluded []Type
	for _, l := range left.Members() {
		if !right.Contains(l) {
			excluded = append(excluded, l)
		}
	}
	if len(excluded) == 0 {
		return True, nil
	}
	rightMembers := right.Members()
	return allOf(excluded, func(l Type) (Ternary, error) {
		return anyOf(rightMembers, func(r Type) (Ternary, error) {
			return s.check(l, r)
		})
	})
}

func (s *subtypeSolver) compareArgs(left, right Args) (Ternary, error) {
	s.structural++
	defer func() { s.structural-- }()

	switch right := right.(type) {
	case Ordered:
		left, ok := left.(Ordered)
		if !ok {
			return False, nil
		}
		if isVariadic(left, right) {
			return allOf(left, func(l Type) (Ternary, error) {
				return s.check(l, right[0])
			})
		}
		if len(left) != len(right) {
			return False, nil
		}
		pairs := make([]util.Pair[Type, Type], 0, len(left))
		for i := range left {
			pairs = append(pairs, util.NewPair(left[i], right[i]))
		}
		return allOf(pairs, func(p util.Pair[Type, Type]) (Ternary, error) {
			return s.check(p.Fst, p.Snd)
		})
	case Unordered:
		left, ok := left.(Unordered)
		if !ok {
			return False, nil
		}
		return s.cover(left, right)
	default:
		return False, nil
	}
}

// isVariadic is true when left is a fixed length argument list and right is
// of the form [X, ...]
func isVariadic(left, right Ordered) bool {
	return len(left) > 0 && !left[len(left)-1].isEllipsis() &&
		len(right) == 2 && right[1].isEllipsis()
}
