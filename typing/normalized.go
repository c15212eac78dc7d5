package typing

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"log/slog"
	"slices"
	"strings"

	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/util"
	"github.com/hashicorp/go-set/v3"
)

type OriginKind uint8

const (
	_ OriginKind = iota
	KindClass
	KindAny
	KindUnion
	KindEllipsis
	// KindGroup is the origin of a callable's parameter list
	KindGroup
	KindForwardRef
	KindTypeVar
	// KindSpecial covers special forms other than Any and Union, like Generic
	KindSpecial
)

func (k OriginKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindAny:
		return "any"
	case KindUnion:
		return "union"
	case KindEllipsis:
		return "ellipsis"
	case KindGroup:
		return "group"
	case KindForwardRef:
		return "forward reference"
	case KindTypeVar:
		return "type variable"
	case KindSpecial:
		return "special form"
	default:
		return "invalid"
	}
}

// Origin is the canonical head of a normalised type
type Origin struct {
	Kind OriginKind
	// Class is only set for KindClass
	Class *texpr.Class
	// Name is the expression of a forward reference, or the name of a type variable or special form
	Name string
	// bound is the normal form of a type variable's bound, may be nil
	bound *Type
}

func ClassOrigin(c *texpr.Class) Origin { return Origin{Kind: KindClass, Class: c} }
func ForwardRefOrigin(expr string) Origin {
	return Origin{Kind: KindForwardRef, Name: strings.TrimSpace(expr)}
}
func TypeVarOrigin(name string, bound *Type) Origin {
	return Origin{Kind: KindTypeVar, Name: name, bound: bound}
}
func SpecialOrigin(name string) Origin { return Origin{Kind: KindSpecial, Name: name} }

var (
	AnyOrigin      = Origin{Kind: KindAny}
	UnionOrigin    = Origin{Kind: KindUnion}
	EllipsisOrigin = Origin{Kind: KindEllipsis}
	GroupOrigin    = Origin{Kind: KindGroup}
)

// Bound is the normalised bound of a type variable origin, or nil
func (o Origin) Bound() *Type { return o.bound }

// Equal compares classes by identity, forward references and special forms
// by name, and type variables by name and bound
func (o Origin) Equal(other Origin) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case KindClass:
		return o.Class == other.Class
	case KindTypeVar:
		return o.Name == other.Name && sameBound(o.bound, other.bound)
	case KindForwardRef, KindSpecial:
		return o.Name == other.Name
	default:
		return true
	}
}

func (o Origin) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(o.Kind)})
	switch o.Kind {
	case KindClass:
		_, _ = fmt.Fprintf(h, "%s@%p", o.Class.QualifiedName(), o.Class)
	case KindForwardRef, KindSpecial:
		_, _ = h.Write([]byte(o.Name))
	case KindTypeVar:
		_, _ = h.Write([]byte(o.Name))
		if o.bound != nil {
			_, _ = fmt.Fprintf(h, "<:%d", o.bound.Hash())
		}
	}
	return h.Sum64()
}

func sameBound(b1, b2 *Type) bool {
	if b1 == nil || b2 == nil {
		return b1 == b2
	}
	return b1.Equal(*b2)
}

func (o Origin) String() string {
	switch o.Kind {
	case KindClass:
		return o.Class.String()
	case KindAny:
		return texpr.Any.String()
	case KindUnion:
		return texpr.Union.String()
	case KindEllipsis:
		return texpr.Ellipsis.String()
	case KindGroup:
		return "[]"
	case KindForwardRef:
		return (&texpr.ForwardRef{Expr: o.Name}).String()
	case KindTypeVar:
		return "~" + o.Name
	case KindSpecial:
		return "typing." + o.Name
	default:
		return "<invalid origin>"
	}
}

// Args are the arguments of a normalised type: either Ordered or Unordered
type Args interface {
	Len() int
	Hash() uint64
	String() string
	isArgs()
}

var (
	_ Args = Ordered(nil)
	_ Args = Unordered{}
)

// Ordered arguments are compared positionally. Used for every origin except Union.
type Ordered []Type

func (Ordered) isArgs()       {}
func (a Ordered) Len() int    { return len(a) }
func (a Ordered) Hash() uint64 {
	var hash uint64 = 17
	for _, arg := range a {
		hash = hash*31 + arg.Hash()
	}
	return hash
}
func (a Ordered) String() string { return util.JoinString(a, ", ") }

// Unordered arguments are a deduplicated set. Only Union types have them.
type Unordered struct {
	members *set.HashSet[Type, uint64]
}

func newUnordered(members ...Type) Unordered {
	s := set.NewHashSet[Type, uint64](len(members))
	for _, m := range members {
		s.Insert(m)
	}
	return Unordered{members: s}
}

func (Unordered) isArgs() {}
func (a Unordered) Len() int {
	if a.members == nil {
		return 0
	}
	return a.members.Size()
}

func (a Unordered) Contains(t Type) bool {
	return a.members != nil && a.members.Contains(t)
}

// Members returns a copy of the members, sorted by their rendered form
func (a Unordered) Members() []Type {
	if a.members == nil {
		return nil
	}
	members := a.members.Slice()
	slices.SortFunc(members, func(t1, t2 Type) int {
		return cmp.Or(cmp.Compare(t1.String(), t2.String()), util.ComparingHashable[Type, uint64](t1, t2))
	})
	return members
}

// Hash does not depend on the order members were inserted in
func (a Unordered) Hash() uint64 {
	if a.members == nil {
		return 0
	}
	hashes := make([]uint64, 0, a.members.Size())
	for m := range a.members.Items() {
		hashes = append(hashes, m.Hash())
	}
	slices.Sort(hashes)
	var hash uint64 = 23
	for _, h := range hashes {
		hash = hash*37 + h
	}
	return hash
}

func (a Unordered) Equal(other Unordered) bool {
	if a.Len() == 0 || other.Len() == 0 {
		return a.Len() == other.Len()
	}
	return a.members.Equal(other.members)
}

func (a Unordered) String() string { return util.JoinString(a.Members(), ", ") }

// Type is a normalised type expression. Two type expressions describing the
// same type normalise to Equal values. Type values are never mutated after construction.
type Type struct {
	Origin Origin
	// Args is nil when the type has no arguments, except for KindGroup
	// types which always have Ordered arguments
	Args Args
}

func Bare(origin Origin) Type { return Type{Origin: origin} }

func Generic(origin Origin, args ...Type) Type {
	if len(args) == 0 {
		return Type{Origin: origin}
	}
	return Type{Origin: origin, Args: Ordered(args)}
}

func UnionOf(members ...Type) Type {
	return Type{Origin: UnionOrigin, Args: newUnordered(members...)}
}

func Group(params ...Type) Type {
	if params == nil {
		params = Ordered{}
	}
	return Type{Origin: GroupOrigin, Args: Ordered(params)}
}

func argsLen(a Args) int {
	if a == nil {
		return 0
	}
	return a.Len()
}

// IsBare is true when t has no arguments
func (t Type) IsBare() bool {
	return t.Origin.Kind != KindGroup && argsLen(t.Args) == 0
}

// Is reports whether t is the bare origin o, so that a normalised
// primitive compares equal to the primitive itself
func (t Type) Is(o Origin) bool {
	return t.IsBare() && t.Origin.Equal(o)
}

func (t Type) IsClass(c *texpr.Class) bool {
	return t.Is(ClassOrigin(c))
}

func (t Type) isUnion() bool {
	return t.Origin.Kind == KindUnion && argsLen(t.Args) > 0
}

func (t Type) isEllipsis() bool {
	return t.Origin.Kind == KindEllipsis
}

func (t Type) Equal(other Type) bool {
	if !t.Origin.Equal(other.Origin) {
		return false
	}
	if argsLen(t.Args) == 0 || argsLen(other.Args) == 0 {
		return argsLen(t.Args) == argsLen(other.Args)
	}
	switch args := t.Args.(type) {
	case Ordered:
		otherArgs, ok := other.Args.(Ordered)
		return ok && slices.EqualFunc(args, otherArgs, Type.Equal)
	case Unordered:
		otherArgs, ok := other.Args.(Unordered)
		return ok && args.Equal(otherArgs)
	default:
		return false
	}
}

func (t Type) Hash() uint64 {
	if argsLen(t.Args) == 0 {
		return t.Origin.Hash()
	}
	return t.Origin.Hash()*31 + t.Args.Hash()
}

func (t Type) String() string {
	switch {
	case t.Origin.Kind == KindGroup:
		return "[" + argsString(t.Args) + "]"
	case argsLen(t.Args) == 0:
		return t.Origin.String()
	default:
		return t.Origin.String() + "[" + t.Args.String() + "]"
	}
}

func argsString(a Args) string {
	if a == nil {
		return ""
	}
	return a.String()
}

func (t Type) LogValue() slog.Value {
	return slog.StringValue(t.String())
}
