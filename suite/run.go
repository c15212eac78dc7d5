package suite

import (
	"fmt"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/typing"
)

type Result struct {
	Case Case
	// Got is the subtype result, only set for subtype cases
	Got typing.Ternary
	// Normalized holds the normal form of every expression of a normalisation case
	Normalized []typing.Type
	Passed     bool
	Err        error
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", r.Case, r.Err)
	case r.Case.isNormalize():
		return fmt.Sprintf("%s: %v", r.Case, r.Normalized)
	default:
		return fmt.Sprintf("%s: got %s, want %s", r.Case, r.Got, r.Case.Want.Result)
	}
}

// Run checks every case of s. The returned Errors hold the errors of
// every case that could not be decided, and of building the scope or
// environment, in which case no case runs.
func (s *Suite) Run(opts ...typing.Option) ([]Result, *tperr.Errors) {
	var errs *tperr.Errors
	scope, err := s.Scope()
	if err != nil {
		return nil, errs.WithErr(err)
	}
	env, err := s.Env(scope)
	if err != nil {
		return nil, errs.WithErr(err)
	}

	r := runner{
		checker: typing.NewChecker(append([]typing.Option{typing.WithScope(scope)}, opts...)...),
		names:   texpr.Layered(env, scope),
		env:     env,
	}
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		res := r.run(c)
		if res.Err != nil {
			errs = errs.WithErr(res.Err)
		}
		logger.Debug("ran case", "suite", s.Name, "case", c.String(), "passed", res.Passed)
		results = append(results, res)
	}
	if errs.HasError() {
		logger.Warn("some cases could not be decided", "suite", s.Name, "errors", errs)
	}
	return results, errs
}

// Passed is true when every result passed
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

type runner struct {
	checker *typing.Checker
	names   texpr.Names
	env     typing.Env
}

func (r runner) run(c Case) Result {
	res := Result{Case: c}
	if c.isNormalize() {
		res.Normalized, res.Err = r.normalizeAll(c.Normalize)
		res.Passed = res.Err == nil && allEqual(res.Normalized)
		return res
	}

	left, err := r.parse(c.Left)
	if err != nil {
		res.Err = err
		return res
	}
	right, err := r.parse(c.Right)
	if err != nil {
		res.Err = err
		return res
	}
	res.Got, res.Err = r.checker.IsSubtype(left, right, r.env)
	res.Passed = res.Err == nil && res.Got == c.Want.Result
	return res
}

// parse resolves names in the forward references of the suite first,
// so that a case can be written against JSON rather than 'JSON'
func (r runner) parse(src string) (texpr.Expr, error) {
	e, err := parser.ParseExpr(src, r.names)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", src, err)
	}
	return e, nil
}

func (r runner) normalizeAll(srcs []string) ([]typing.Type, error) {
	normalized := make([]typing.Type, 0, len(srcs))
	for _, src := range srcs {
		e, err := r.parse(src)
		if err != nil {
			return nil, err
		}
		t, err := r.checker.Normalize(e)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, t)
	}
	return normalized, nil
}

func allEqual(ts []typing.Type) bool {
	for _, t := range ts[1:] {
		if !t.Equal(ts[0]) {
			return false
		}
	}
	return true
}
