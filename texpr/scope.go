package texpr

import (
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/bojiang/typing-utils/tperr"
)

// Scope resolves names to expressions. It is persistent: every With* method
// returns a new Scope and leaves the receiver untouched, so a Scope can be
// shared freely between goroutines.
type Scope struct {
	names *immutable.Map[string, Expr]
}

// Universe is the Scope of builtin names every other Scope derives from
var Universe = newScope(universeNames())

func newScope(names map[string]Expr) Scope {
	builder := immutable.NewMapBuilder[string, Expr](immutable.NewHasher(""))
	for name, e := range names {
		builder.Set(name, e)
	}
	return Scope{names: builder.Map()}
}

func (s Scope) underlying() *immutable.Map[string, Expr] {
	if s.names == nil {
		return Universe.names
	}
	return s.names
}

func (s Scope) Lookup(name string) (Expr, bool) {
	return s.underlying().Get(name)
}

func (s Scope) With(name string, e Expr) Scope {
	return Scope{names: s.underlying().Set(name, e)}
}

func (s Scope) Len() int {
	return s.underlying().Len()
}

// Names returns all names bound in s, sorted
func (s Scope) Names() []string {
	names := make([]string, 0, s.Len())
	itr := s.underlying().Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeclareClass creates a new class named name and binds it in the returned Scope.
// Bases are looked up in s. A class without bases derives from Object.
func (s Scope) DeclareClass(name string, bases ...string) (Scope, *Class, error) {
	def := ClassDef{Name: name}
	for _, baseName := range bases {
		found, ok := s.Lookup(baseName)
		if !ok {
			return s, nil, tperr.New(tperr.UnresolvedReference{Name: baseName})
		}
		base, ok := classOf(found)
		if !ok {
			return s, nil, tperr.New(tperr.InvalidClassHierarchy{Class: name, Reason: Describe(found) + " is not a class"})
		}
		def.Bases = append(def.Bases, base)
	}
	if len(def.Bases) == 0 {
		def.Bases = []*Class{Object}
	}
	c, err := def.Build()
	if err != nil {
		return s, nil, err
	}
	return s.With(name, c), c, nil
}

// DeclareTypeVar binds a new type variable. bound may be nil.
func (s Scope) DeclareTypeVar(name string, bound Expr) (Scope, *TypeVar) {
	tv := &TypeVar{Name: name, Bound: bound}
	return s.With(name, tv), tv
}

func classOf(e Expr) (*Class, bool) {
	switch e := e.(type) {
	case *Class:
		return e, true
	case *Alias:
		return e.Target, e.Target != nil
	default:
		return nil, false
	}
}

// Names is anything names can be resolved in, like a Scope
type Names interface {
	Lookup(name string) (Expr, bool)
}

var _ Names = Scope{}

type layeredNames []Names

func (l layeredNames) Lookup(name string) (Expr, bool) {
	for _, names := range l {
		if e, ok := names.Lookup(name); ok {
			return e, true
		}
	}
	return nil, false
}

// Layered resolves a name in the first of names that binds it
func Layered(names ...Names) Names {
	return layeredNames(names)
}
