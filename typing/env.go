package typing

import (
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/bojiang/typing-utils/texpr"
)

// Env binds forward reference names to the expressions they stand for.
// It is read-only: With returns a new Env. The zero Env is empty.
type Env struct {
	refs *immutable.Map[string, texpr.Expr]
}

var _ texpr.Names = Env{}

func NewEnv() Env {
	return Env{refs: immutable.NewMap[string, texpr.Expr](immutable.NewHasher(""))}
}

func EnvFrom(refs map[string]texpr.Expr) Env {
	builder := immutable.NewMapBuilder[string, texpr.Expr](immutable.NewHasher(""))
	for name, e := range refs {
		builder.Set(name, e)
	}
	return Env{refs: builder.Map()}
}

func (e Env) With(name string, expr texpr.Expr) Env {
	if e.refs == nil {
		e = NewEnv()
	}
	return Env{refs: e.refs.Set(name, expr)}
}

func (e Env) Lookup(name string) (texpr.Expr, bool) {
	if e.refs == nil {
		return nil, false
	}
	return e.refs.Get(name)
}

func (e Env) Len() int {
	if e.refs == nil {
		return 0
	}
	return e.refs.Len()
}

// Names returns the bound names, sorted
func (e Env) Names() []string {
	if e.refs == nil {
		return nil
	}
	names := make([]string, 0, e.refs.Len())
	itr := e.refs.Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
