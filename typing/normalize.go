package typing

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
)

// canonicalOrigins maps every alias and special form head to its one canonical Origin.
// Classes are their own canonical origin and are not stored.
var canonicalOrigins = buildCanonicalOrigins()

func buildCanonicalOrigins() *immutable.Map[string, Origin] {
	builder := immutable.NewMapBuilder[string, Origin](immutable.NewHasher(""))
	for _, alias := range texpr.Aliases {
		builder.Set(aliasKey(alias), ClassOrigin(alias.Target))
	}
	builder.Set(specialKey(texpr.Any), AnyOrigin)
	builder.Set(specialKey(texpr.Union), UnionOrigin)
	builder.Set(specialKey(texpr.Optional), UnionOrigin)
	builder.Set(specialKey(texpr.Generic), SpecialOrigin(texpr.Generic.Name))
	return builder.Map()
}

func aliasKey(a *texpr.Alias) string     { return "alias:" + a.QualifiedName() }
func specialKey(s *texpr.Special) string { return "special:" + s.Name }

// canonicalHead resolves the head of a generic expression through the alias table
func canonicalHead(head texpr.Expr) (Origin, error) {
	switch head := head.(type) {
	case *texpr.Class:
		return ClassOrigin(head), nil
	case *texpr.Alias:
		if o, ok := canonicalOrigins.Get(aliasKey(head)); ok {
			return o, nil
		}
		if head.Target == nil {
			return Origin{}, tperr.New(tperr.UnhashableTypeArgument{Head: head.String()})
		}
		return ClassOrigin(head.Target), nil
	case *texpr.Special:
		if o, ok := canonicalOrigins.Get(specialKey(head)); ok {
			return o, nil
		}
		return SpecialOrigin(head.Name), nil
	}
	if head == texpr.None {
		return ClassOrigin(texpr.NoneType), nil
	}
	if head == nil {
		return Origin{}, tperr.New(tperr.UnhashableTypeArgument{Head: "<nil>"})
	}
	return Origin{}, tperr.New(tperr.UnhashableTypeArgument{Head: texpr.Describe(head)})
}

// leafOrigin is the canonical origin of an expression without arguments
func (c *Checker) leafOrigin(e texpr.Expr) (Origin, error) {
	switch e := e.(type) {
	case *texpr.Class, *texpr.Alias, *texpr.Special:
		return canonicalHead(e)
	case *texpr.ForwardRef:
		return ForwardRefOrigin(e.Expr), nil
	case *texpr.TypeVar:
		if e.Bound == nil {
			return TypeVarOrigin(e.Name, nil), nil
		}
		bound, err := c.normalize(e.Bound)
		if err != nil {
			return Origin{}, err
		}
		return TypeVarOrigin(e.Name, &bound), nil
	}
	switch {
	case texpr.IsNone(e):
		return ClassOrigin(texpr.NoneType), nil
	case e == texpr.Ellipsis:
		return EllipsisOrigin, nil
	default:
		return Origin{}, tperr.New(tperr.UnsupportedExpressionShape{Shape: fmt.Sprintf("%T", e)})
	}
}

// Normalize converts e into its canonical form using the default Checker
func Normalize(e texpr.Expr) (Type, error) {
	return defaultChecker.Normalize(e)
}

// Normalize converts e into its canonical form. Aliases resolve to the class
// they stand for and union members become an unordered set. Nested unions are
// not flattened, and forward references and type variables stay unresolved.
func (c *Checker) Normalize(e texpr.Expr) (res Type, err error) {
	defer func() {
		if err != nil {
			c.normaliseLogger.Warn("could not normalise type", "type", texpr.Slog(e), "error", err)
			return
		}
		c.normaliseLogger.Debug("normalised type", "type", texpr.Slog(e), "result", res)
	}()
	return c.normalize(e)
}

func (c *Checker) normalize(e texpr.Expr) (Type, error) {
	if params, ok := e.(*texpr.ParamList); ok {
		return c.normalizeGroup(params.Params)
	}
	head, err := c.introspector.OriginOf(e)
	if err != nil {
		return Type{}, err
	}
	if head == nil {
		origin, err := c.leafOrigin(e)
		if err != nil {
			return Type{}, err
		}
		return Bare(origin), nil
	}
	origin, err := canonicalHead(head)
	if err != nil {
		return Type{}, err
	}
	rawArgs, err := c.introspector.ArgsOf(e)
	if err != nil {
		return Type{}, err
	}
	if len(rawArgs) == 0 {
		return Bare(origin), nil
	}

	args := make([]Type, 0, len(rawArgs))
	for _, rawArg := range rawArgs {
		arg, err := c.normalize(rawArg)
		if err != nil {
			return Type{}, err
		}
		args = append(args, arg)
	}
	if origin.Kind == KindUnion {
		return UnionOf(args...), nil
	}
	return Generic(origin, args...), nil
}

func (c *Checker) normalizeGroup(params []texpr.Expr) (Type, error) {
	group := make([]Type, 0, len(params))
	for _, param := range params {
		p, err := c.normalize(param)
		if err != nil {
			return Type{}, err
		}
		group = append(group, p)
	}
	return Group(group...), nil
}

// Denormalize rebuilds an expression from t, such that normalising it again
// gives a Type equal to t
func Denormalize(t Type) texpr.Expr {
	switch t.Origin.Kind {
	case KindGroup:
		return &texpr.ParamList{Params: denormalizeAll(orderedArgs(t))}
	case KindUnion:
		if !t.isUnion() {
			return texpr.Union
		}
		members := t.Args.(Unordered).Members()
		return &texpr.Subscript{Head: texpr.Union, Args: denormalizeAll(members)}
	}

	var head texpr.Expr
	switch t.Origin.Kind {
	case KindClass:
		head = t.Origin.Class
	case KindAny:
		head = texpr.Any
	case KindEllipsis:
		head = texpr.Ellipsis
	case KindForwardRef:
		head = &texpr.ForwardRef{Expr: t.Origin.Name}
	case KindTypeVar:
		tv := &texpr.TypeVar{Name: t.Origin.Name}
		if t.Origin.bound != nil {
			tv.Bound = Denormalize(*t.Origin.bound)
		}
		head = tv
	case KindSpecial:
		head = &texpr.Special{Name: t.Origin.Name}
		if t.Origin.Name == texpr.Generic.Name {
			head = texpr.Generic
		}
	}
	if t.IsBare() {
		return head
	}
	return &texpr.Subscript{Head: head, Args: denormalizeAll(orderedArgs(t))}
}

func orderedArgs(t Type) []Type {
	args, _ := t.Args.(Ordered)
	return args
}

func denormalizeAll(ts []Type) []texpr.Expr {
	exprs := make([]texpr.Expr, 0, len(ts))
	for _, t := range ts {
		exprs = append(exprs, Denormalize(t))
	}
	return exprs
}
