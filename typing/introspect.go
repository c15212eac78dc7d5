package typing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
)

// Introspector extracts the head and arguments of raw type expressions,
// and evaluates forward references.
type Introspector interface {
	// OriginOf returns the unsubscripted head of e, or nil if e is a leaf
	OriginOf(e texpr.Expr) (texpr.Expr, error)
	// ArgsOf returns the arguments of e in order. Callables have exactly two:
	// their parameter list (or Ellipsis) and their return type.
	ArgsOf(e texpr.Expr) ([]texpr.Expr, error)
	// ResolveForward evaluates ref in env. It fails with tperr.UnresolvedReference
	// when a name is bound neither in env nor in the builtin names.
	ResolveForward(ref *texpr.ForwardRef, env Env) (texpr.Expr, error)
}

var _ Introspector = HostIntrospector{}

// HostIntrospector introspects texpr expressions. Forward references are
// evaluated as annotations, resolving names first in the Env and then in Scope.
type HostIntrospector struct {
	Scope texpr.Scope
}

func (HostIntrospector) OriginOf(e texpr.Expr) (texpr.Expr, error) {
	switch e := e.(type) {
	case *texpr.Subscript:
		if e.Head == nil {
			return nil, tperr.New(tperr.UnhashableTypeArgument{Head: "<nil>"})
		}
		if alias, ok := e.Head.(*texpr.Alias); ok && alias.Target != nil {
			return alias.Target, nil
		}
		return e.Head, nil
	case *texpr.Alias:
		if e.Target == nil {
			return nil, tperr.New(tperr.UnsupportedExpressionShape{Shape: "alias " + e.String() + " without target"})
		}
		return e.Target, nil
	case nil, *texpr.Class, *texpr.Special, *texpr.ParamList, *texpr.ForwardRef, *texpr.TypeVar:
		return nil, nil
	}
	if e == texpr.None || e == texpr.Ellipsis {
		return nil, nil
	}
	return nil, tperr.New(tperr.UnsupportedExpressionShape{Shape: fmt.Sprintf("%T", e)})
}

func (HostIntrospector) ArgsOf(e texpr.Expr) ([]texpr.Expr, error) {
	switch e := e.(type) {
	case *texpr.Subscript:
		args := slices.Clone(e.Args)
		if e.Head == texpr.Optional {
			args = append(args, texpr.None)
		}
		return args, nil
	case *texpr.ParamList:
		return slices.Clone(e.Params), nil
	case nil, *texpr.Class, *texpr.Alias, *texpr.Special, *texpr.ForwardRef, *texpr.TypeVar:
		return nil, nil
	}
	if e == texpr.None || e == texpr.Ellipsis {
		return nil, nil
	}
	return nil, tperr.New(tperr.UnsupportedExpressionShape{Shape: fmt.Sprintf("%T", e)})
}

func (i HostIntrospector) ResolveForward(ref *texpr.ForwardRef, env Env) (texpr.Expr, error) {
	src := strings.TrimSpace(ref.Expr)
	if e, ok := env.Lookup(src); ok {
		return e, nil
	}
	return parser.ParseExpr(src, texpr.Layered(env, i.Scope))
}

var defaultIntrospector Introspector = HostIntrospector{Scope: texpr.Universe}

// OriginOf returns the unsubscripted head of e, or nil if e has no head
func OriginOf(e texpr.Expr) (texpr.Expr, error) {
	return defaultIntrospector.OriginOf(e)
}

// ArgsOf returns the arguments of e
func ArgsOf(e texpr.Expr) ([]texpr.Expr, error) {
	return defaultIntrospector.ArgsOf(e)
}
