// Package suite loads and runs declarative subtype suites written in YAML.
//
// A suite declares the nominal classes, type variables and forward
// references its cases need, followed by the cases themselves:
//
//	classes:
//	  - name: Animal
//	  - name: Dog
//	    bases: [Animal]
//	typevars:
//	  T: {}
//	refs:
//	  JSON: "Union[int, str, None, Sequence['JSON'], Mapping[str, 'JSON']]"
//	cases:
//	  - left: Dict[str, str]
//	    right: JSON
//	    want: true
//	  - normalize: ["Union[int, str]", "Union[str, int]"]
package suite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bojiang/typing-utils/internal/log"
	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/typing"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "suite")

type Suite struct {
	Name         string `yaml:"name"`
	Declarations `yaml:",inline"`
	Cases        []Case `yaml:"cases"`
}

// Declarations are the names a suite adds to the Universe and its forward
// reference environment. They can be loaded on their own with LoadDeclarations.
type Declarations struct {
	Classes  []Class            `yaml:"classes"`
	TypeVars map[string]TypeVar `yaml:"typevars"`
	Refs     map[string]string  `yaml:"refs"`
}

type Class struct {
	Name  string   `yaml:"name"`
	Bases []string `yaml:"bases"`
}

type TypeVar struct {
	// Bound is parsed as a type expression, may be empty
	Bound string `yaml:"bound"`
}

// Case is either a subtype case (Left, Right and Want) or a normalisation
// case, where every expression of Normalize must normalise to the same Type
type Case struct {
	Name      string   `yaml:"name"`
	Left      string   `yaml:"left"`
	Right     string   `yaml:"right"`
	Want      *Want    `yaml:"want"`
	Normalize []string `yaml:"normalize"`
}

func (c Case) String() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.isNormalize():
		return fmt.Sprintf("normalize %v", c.Normalize)
	default:
		return c.Left + " <: " + c.Right
	}
}

func (c Case) isNormalize() bool {
	return len(c.Normalize) > 0
}

// Want is the expected result of a subtype case: true, false or unknown
type Want struct {
	Result typing.Ternary
}

func (w *Want) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: want must be true, false or unknown", node.Line)
	}
	res, err := typing.ParseTernary(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	w.Result = res
	return nil
}

func (w Want) MarshalYAML() (any, error) {
	text, err := w.Result.MarshalText()
	return string(text), err
}

func decode(r io.Reader, into any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			return tperr.New(tperr.InvalidSuite{Reason: "empty document"})
		}
		return tperr.New(tperr.InvalidSuite{Reason: err.Error()})
	}
	return nil
}

// Load decodes a suite from r and validates its cases
func Load(r io.Reader) (*Suite, error) {
	s := &Suite{}
	if err := decode(r, s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDeclarations decodes a document with only classes, typevars and refs
func LoadDeclarations(r io.Reader) (*Declarations, error) {
	d := &Declarations{}
	if err := decode(r, d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile loads the suite at path, named after the file unless it has a name
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open suite: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("could not load suite %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

func (s *Suite) validate() error {
	var errs *tperr.Errors
	if len(s.Cases) == 0 {
		errs = errs.With(tperr.New(tperr.InvalidSuite{Reason: "a suite needs at least one case"}))
	}
	for i, c := range s.Cases {
		switch {
		case c.isNormalize() && (c.Left != "" || c.Right != "" || c.Want != nil):
			errs = errs.With(tperr.New(tperr.InvalidSuite{Reason: fmt.Sprintf("case %d mixes normalize with left, right or want", i)}))
		case c.isNormalize() && len(c.Normalize) < 2:
			errs = errs.With(tperr.New(tperr.InvalidSuite{Reason: fmt.Sprintf("case %d needs at least two expressions to normalize", i)}))
		case !c.isNormalize() && (c.Left == "" || c.Right == "" || c.Want == nil):
			errs = errs.With(tperr.New(tperr.InvalidSuite{Reason: fmt.Sprintf("case %d needs left, right and want", i)}))
		}
	}
	return errs.Err()
}

// Scope declares the classes in order, then its type variables
// in name order. Bases and bounds may only refer to names declared before them.
func (d *Declarations) Scope() (texpr.Scope, error) {
	scope := texpr.Universe
	for _, class := range d.Classes {
		var err error
		scope, _, err = scope.DeclareClass(class.Name, class.Bases...)
		if err != nil {
			return scope, fmt.Errorf("could not declare class %s: %w", class.Name, err)
		}
	}
	for _, name := range sortedKeys(d.TypeVars) {
		var bound texpr.Expr
		if src := d.TypeVars[name].Bound; src != "" {
			var err error
			if bound, err = parser.ParseExpr(src, scope); err != nil {
				return scope, fmt.Errorf("could not parse bound of type variable %s: %w", name, err)
			}
		}
		scope, _ = scope.DeclareTypeVar(name, bound)
	}
	return scope, nil
}

// Env parses the forward references in scope
func (d *Declarations) Env(scope texpr.Scope) (typing.Env, error) {
	refs := make(map[string]texpr.Expr, len(d.Refs))
	for _, name := range sortedKeys(d.Refs) {
		e, err := parser.ParseExpr(d.Refs[name], scope)
		if err != nil {
			return typing.Env{}, fmt.Errorf("could not parse forward reference %s: %w", name, err)
		}
		refs[name] = e
	}
	return typing.EnvFrom(refs), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
