package suite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/typing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animals = `
name: animals
classes:
  - name: Animal
  - name: Dog
    bases: [Animal]
  - name: Cat
    bases: [Animal]
typevars:
  T: {}
  A:
    bound: Animal
refs:
  Pets: "List[Union['Dog', 'Cat']]"
cases:
  - left: Dog
    right: Animal
    want: true
  - left: Animal
    right: Dog
    want: false
  - left: List[Dog]
    right: Sequence[Animal]
    want: true
  - left: Pets
    right: "List[Animal]"
    want: true
  - left: A
    right: T
    want: false
  - left: T
    right: A
    want: false
  - left: A
    right: Animal
    want: true
  - name: aliases
    normalize: ["List[Dog]", "list[Dog]", "typing.List[Dog]"]
`

func loadString(t *testing.T, src string) *Suite {
	t.Helper()
	s, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

func TestLoad(t *testing.T) {
	s := loadString(t, animals)
	assert.Equal(t, "animals", s.Name)
	assert.Len(t, s.Classes, 3)
	assert.Equal(t, []string{"Animal"}, s.Classes[1].Bases)
	assert.Equal(t, "Animal", s.TypeVars["A"].Bound)
	require.Len(t, s.Cases, 8)
	assert.Equal(t, typing.True, s.Cases[0].Want.Result)
	assert.Equal(t, "Dog <: Animal", s.Cases[0].String())
	assert.Equal(t, "aliases", s.Cases[7].String())
}

func TestRun(t *testing.T) {
	results, errs := loadString(t, animals).Run()
	require.False(t, errs.HasError(), "%v", errs.Err())
	for _, r := range results {
		assert.True(t, r.Passed, r.String())
	}
	assert.True(t, Passed(results))
	assert.Len(t, results[7].Normalized, 3)
}

func TestRunReportsFailures(t *testing.T) {
	s := loadString(t, `
cases:
  - left: int
    right: str
    want: true
  - left: int
    right: "'Missing'"
    want: false
  - normalize: [int, str]
`)
	results, errs := s.Run()
	require.Len(t, results, 3)
	assert.False(t, results[0].Passed)
	assert.Equal(t, typing.False, results[0].Got)
	assert.Equal(t, "int <: str: got False, want True", results[0].String())

	assert.False(t, results[1].Passed)
	var unresolved tperr.UnresolvedReference
	assert.True(t, errors.As(results[1].Err, &unresolved))

	assert.False(t, results[2].Passed)
	assert.NoError(t, results[2].Err)

	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, tperr.UnresolvedReferenceCode, errs.Errors()[0].Code())
	assert.False(t, Passed(results))
}

func TestRunUnknown(t *testing.T) {
	results, errs := loadString(t, `
typevars:
  T1: {}
  T2: {}
cases:
  - left: T1
    right: T2
    want: unknown
  - left: T1
    right: T2
    want: false
`).Run()
	assert.False(t, errs.HasError())
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed, "unknown is not false")
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"empty":           ``,
		"no cases":        `classes: [{name: A}]`,
		"unknown field":   "cases: [{left: int, right: int, want: true, extra: 1}]",
		"bad want":        "cases: [{left: int, right: int, want: maybe}]",
		"want yes":        "cases: [{left: int, right: int, want: yes}]",
		"missing want":    "cases: [{left: int, right: int}]",
		"mixed case":      "cases: [{normalize: [int, int], left: int}]",
		"single normal":   "cases: [{normalize: [int]}]",
		"want is a list":  "cases: [{left: int, right: int, want: [true]}]",
		"not a structure": "- 1\n- 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			require.Error(t, err)
			var invalid tperr.InvalidSuite
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestScopeErrors(t *testing.T) {
	tests := map[string]string{
		"unknown base":  "classes: [{name: Dog, bases: [Animal]}]\ncases: [{normalize: [int, int]}]",
		"bad bound":     "typevars: {T: {bound: 'List['}}\ncases: [{normalize: [int, int]}]",
		"bad reference": "refs: {JSON: 'Union[int, Missing]'}\ncases: [{normalize: [int, int]}]",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			results, errs := loadString(t, src).Run()
			assert.Empty(t, results)
			require.True(t, errs.HasError())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(animals, "name: animals\n", "", 1)), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "animals.yaml", s.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvUsesScope(t *testing.T) {
	s := loadString(t, animals)
	scope, err := s.Scope()
	require.NoError(t, err)
	env, err := s.Env(scope)
	require.NoError(t, err)

	pets, ok := env.Lookup("Pets")
	require.True(t, ok)
	assert.Equal(t, texpr.Expr(texpr.TypingList), pets.(*texpr.Subscript).Head)
	assert.Equal(t, 1, env.Len())
}

func TestLoadDeclarations(t *testing.T) {
	d, err := LoadDeclarations(strings.NewReader(`
classes:
  - name: Animal
refs:
  Zoo: List[Animal]
`))
	require.NoError(t, err)
	scope, err := d.Scope()
	require.NoError(t, err)
	env, err := d.Env(scope)
	require.NoError(t, err)
	_, ok := env.Lookup("Zoo")
	assert.True(t, ok)

	_, err = LoadDeclarations(strings.NewReader("cases: []\n"))
	var invalid tperr.InvalidSuite
	assert.True(t, errors.As(err, &invalid), "cases are not declarations: %v", err)

	_, err = LoadDeclarations(strings.NewReader(""))
	assert.True(t, errors.As(err, &invalid))
}
