package texpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverseLookup(t *testing.T) {
	tests := map[string]Expr{
		"int":                      Int,
		"builtins.int":             Int,
		"List":                     TypingList,
		"typing.List":              TypingList,
		"list":                     List,
		"builtins.list":            List,
		"Set":                      TypingSet,
		"set":                      Set,
		"collections.abc.Sequence": AbcSequence,
		"Sequence":                 TypingSequence,
		"io.BytesIO":               BytesIO,
		"BinaryIO":                 BinaryIO,
		"typing.TextIO":            TextIO,
		"Any":                      Any,
		"typing.Optional":          Optional,
		"Text":                     Str,
		"None":                     None,
		"types.NoneType":           NoneType,
	}
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			e, ok := Universe.Lookup(name)
			require.True(t, ok)
			assert.Equal(t, expected, e)
		})
	}

	_, ok := Universe.Lookup("BytesIO")
	assert.False(t, ok, "io classes are only reachable through their module")
}

func TestScopeIsPersistent(t *testing.T) {
	size := Universe.Len()
	scope, animal, err := Universe.DeclareClass("Animal")
	require.NoError(t, err)
	scope, dog, err := scope.DeclareClass("Dog", "Animal")
	require.NoError(t, err)
	scope, tv := scope.DeclareTypeVar("T", dog)

	assert.Equal(t, size, Universe.Len())
	assert.Equal(t, size+3, scope.Len())
	assert.True(t, dog.IsSubclassOf(animal))
	assert.Equal(t, []*Class{dog, animal, Object}, dog.MRO())
	assert.Equal(t, Expr(dog), tv.Bound)

	_, ok := Universe.Lookup("Dog")
	assert.False(t, ok)
	assert.Contains(t, scope.Names(), "Dog")

	var zero Scope
	e, ok := zero.Lookup("int")
	assert.True(t, ok, "the zero Scope is the Universe")
	assert.Equal(t, Int, e)
}

func TestDeclareClassErrors(t *testing.T) {
	_, _, err := Universe.DeclareClass("Dog", "Animal")
	assert.ErrorContains(t, err, "name 'Animal' is not defined")

	_, _, err = Universe.DeclareClass("Weird", "Any")
	assert.ErrorContains(t, err, "is not a class")

	scope, _, err := Universe.DeclareClass("MyList", "List")
	require.NoError(t, err)
	myList, _ := scope.Lookup("MyList")
	assert.True(t, myList.(*Class).IsSubclassOf(AbcSequence))
}

func TestLayered(t *testing.T) {
	scope, animal, err := Universe.DeclareClass("Animal")
	require.NoError(t, err)
	override := Universe.With("int", Str)

	names := Layered(override, scope)
	e, ok := names.Lookup("int")
	assert.True(t, ok)
	assert.Equal(t, Str, e)
	e, ok = names.Lookup("Animal")
	assert.True(t, ok)
	assert.Equal(t, Expr(animal), e)
	_, ok = names.Lookup("Missing")
	assert.False(t, ok)
}
