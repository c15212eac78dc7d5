// Package texpr models type annotations of the host language as immutable expression trees.
package texpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bojiang/typing-utils/util"
)

// Expr is a raw type expression, as written by a user in an annotation.
// It is not canonical: typing.List[int] and list[int] are different Expr values
// describing the same type.
type Expr interface {
	fmt.Stringer
	isExpr()
}

var (
	_ Expr = (*Class)(nil)
	_ Expr = (*Alias)(nil)
	_ Expr = (*Special)(nil)
	_ Expr = (*Subscript)(nil)
	_ Expr = (*ParamList)(nil)
	_ Expr = (*ForwardRef)(nil)
	_ Expr = (*TypeVar)(nil)
	_ Expr = ellipsisExpr{}
	_ Expr = noneExpr{}
)

// Alias is a named spelling of an existing class, like typing.List for list.
// Subscripting an alias parameterises its Target.
type Alias struct {
	Module string
	Name   string
	Target *Class
}

func (*Alias) isExpr() {}
func (a *Alias) String() string {
	return a.QualifiedName()
}
func (a *Alias) QualifiedName() string {
	return a.Module + "." + a.Name
}

// Special is a special form which is not a class, such as typing.Any or typing.Union
type Special struct {
	Name string
}

func (*Special) isExpr()          {}
func (s *Special) String() string { return "typing." + s.Name }

var (
	Any      = &Special{Name: "Any"}
	Union    = &Special{Name: "Union"}
	Optional = &Special{Name: "Optional"}
	Generic  = &Special{Name: "Generic"}
)

// Subscript is a generic applied to arguments, i.e. Head[Args...]
//
// For a Callable, Args is always two elements: a *ParamList (or Ellipsis) and the return type
type Subscript struct {
	Head Expr
	Args []Expr
}

func (*Subscript) isExpr() {}
func (s *Subscript) String() string {
	if len(s.Args) == 0 {
		return s.Head.String() + "[()]"
	}
	return s.Head.String() + "[" + util.JoinString(s.Args, ", ") + "]"
}

// ParamList is the ordered parameter list of a callable, [A, B] in Callable[[A, B], R]
type ParamList struct {
	Params []Expr
}

func (*ParamList) isExpr() {}
func (p *ParamList) String() string {
	return "[" + util.JoinString(p.Params, ", ") + "]"
}

// ForwardRef is a type written as a string, to be evaluated later against an environment
type ForwardRef struct {
	Expr string
}

func (*ForwardRef) isExpr() {}
func (f *ForwardRef) String() string {
	return "ForwardRef(" + strconv.Quote(f.Expr) + ")"
}

// TypeVar is a type variable. Bound may be nil.
type TypeVar struct {
	Name  string
	Bound Expr
}

func (*TypeVar) isExpr() {}
func (t *TypeVar) String() string {
	return "~" + t.Name
}

type ellipsisExpr struct{}

func (ellipsisExpr) isExpr()        {}
func (ellipsisExpr) String() string { return "..." }

// Ellipsis is the '...' marker of variadic tuples and untyped callable parameters
var Ellipsis Expr = ellipsisExpr{}

type noneExpr struct{}

func (noneExpr) isExpr()        {}
func (noneExpr) String() string { return "None" }

// None is the None literal when used as a type. It stands for NoneType.
var None Expr = noneExpr{}

// IsNone is true for None, for NoneType and for the absent (nil) expression
func IsNone(e Expr) bool {
	return e == nil || e == None || e == NoneType
}

// NewUnion builds Union[args...] the way the host Union constructor does:
// directly nested unions are flattened, duplicates removed and a single
// remaining member is returned unwrapped.
func NewUnion(args ...Expr) Expr {
	flat := make([]Expr, 0, len(args))
	seen := make(map[any]struct{}, len(args))
	var add func(e Expr)
	add = func(e Expr) {
		if e == nil {
			e = None
		}
		if sub, ok := e.(*Subscript); ok && sub.Head == Union {
			for _, member := range sub.Args {
				add(member)
			}
			return
		}
		key := unionKey(e)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		flat = append(flat, e)
	}
	for _, arg := range args {
		add(arg)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Subscript{Head: Union, Args: flat}
}

// unionKey identifies e among the members of a union. Classes and type
// variables are distinct objects even when they share a name.
func unionKey(e Expr) any {
	switch e := e.(type) {
	case *Class, *TypeVar:
		return e
	default:
		return e.String()
	}
}

// NewOptional is Optional[e], or Union[e, None]
func NewOptional(e Expr) Expr {
	return NewUnion(e, None)
}

// NewCallable builds Callable[[params...], ret]
func NewCallable(params []Expr, ret Expr) *Subscript {
	return &Subscript{
		Head: TypingCallable,
		Args: []Expr{&ParamList{Params: params}, ret},
	}
}

// NewVariadicCallable builds Callable[..., ret]
func NewVariadicCallable(ret Expr) *Subscript {
	return &Subscript{
		Head: TypingCallable,
		Args: []Expr{Ellipsis, ret},
	}
}

// NewTuple builds Tuple[elems...]. Use Ellipsis as the last element for variadic tuples.
func NewTuple(elems ...Expr) *Subscript {
	return &Subscript{Head: TypingTuple, Args: elems}
}

// Of builds Head[args...]
func Of(head Expr, args ...Expr) *Subscript {
	return &Subscript{Head: head, Args: args}
}

// Describe is a short name for the kind of e, useful in error messages
func Describe(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Class:
		return "class " + e.String()
	case *Alias:
		return "alias " + e.String()
	case *Special:
		return "special form " + e.String()
	case *Subscript:
		return "generic " + e.String()
	case *ParamList:
		return "parameter list " + e.String()
	case *ForwardRef:
		return "forward reference " + strconv.Quote(e.Expr)
	case *TypeVar:
		return "type variable " + e.Name
	default:
		return fmt.Sprintf("%T %s", e, strings.TrimSpace(e.String()))
	}
}
