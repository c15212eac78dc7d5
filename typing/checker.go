package typing

import (
	"log/slog"

	"github.com/bojiang/typing-utils/internal/log"
	"github.com/bojiang/typing-utils/texpr"
)

const defaultDepthLimit = 250

// Checker normalises type expressions and decides subtyping between them.
// A Checker is immutable once built and safe for concurrent use.
type Checker struct {
	introspector    Introspector
	scope           texpr.Scope
	depthLimit      int
	normaliseLogger *slog.Logger
	subtypeLogger   *slog.Logger
}

type Option func(*Checker)

// WithIntrospector replaces the HostIntrospector the Checker would otherwise build from its Scope
func WithIntrospector(i Introspector) Option {
	return func(c *Checker) { c.introspector = i }
}

// WithScope sets the names forward references are evaluated in, after the Env
func WithScope(s texpr.Scope) Option {
	return func(c *Checker) { c.scope = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		c.normaliseLogger = l.With("section", "typing.normalize")
		c.subtypeLogger = l.With("section", "typing.subtype")
	}
}

// WithDepthLimit bounds how deep a single subtype check may recurse.
// Non positive limits are ignored.
func WithDepthLimit(limit int) Option {
	return func(c *Checker) {
		if limit > 0 {
			c.depthLimit = limit
		}
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		scope:      texpr.Universe,
		depthLimit: defaultDepthLimit,
	}
	WithLogger(log.DefaultLogger)(c)
	for _, opt := range opts {
		opt(c)
	}
	if c.introspector == nil {
		c.introspector = HostIntrospector{Scope: c.scope}
	}
	return c
}

var defaultChecker = NewChecker(WithIntrospector(defaultIntrospector))

// IsSubtype reports whether left is a subtype of right, resolving forward
// references in env, using the default Checker
func IsSubtype(left, right texpr.Expr, env Env) (Ternary, error) {
	return defaultChecker.IsSubtype(left, right, env)
}

// IsNormalSubtype is IsSubtype for already normalised types
func IsNormalSubtype(left, right Type, env Env) (Ternary, error) {
	return defaultChecker.IsNormalSubtype(left, right, env)
}

func (c *Checker) IsSubtype(left, right texpr.Expr, env Env) (Ternary, error) {
	l, err := c.Normalize(left)
	if err != nil {
		return False, err
	}
	r, err := c.Normalize(right)
	if err != nil {
		return False, err
	}
	return c.IsNormalSubtype(l, r, env)
}

func (c *Checker) IsNormalSubtype(left, right Type, env Env) (res Ternary, err error) {
	defer func() {
		if err != nil {
			c.subtypeLogger.Warn("could not decide subtyping", "left", left, "right", right, "error", err)
			return
		}
		c.subtypeLogger.Debug("decided subtyping", "left", left, "right", right, "result", res.String())
	}()
	return c.newSolver(env).check(left, right)
}
