package texpr

import (
	"slices"

	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/util"
)

// Class is a nominal type. Classes are compared by identity.
//
// Construct with ClassDef.Build
type Class struct {
	Module string
	Name   string
	bases  []*Class
	// registered are abstract classes this class is a virtual subclass of
	registered []*Class
	mro        []*Class
}

func (*Class) isExpr() {}
func (c *Class) String() string {
	if c.Module == "" || c.Module == "builtins" {
		return c.Name
	}
	return c.QualifiedName()
}

func (c *Class) QualifiedName() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + "." + c.Name
}

func (c *Class) Bases() []*Class { return slices.Clone(c.bases) }

// MRO is the C3 linearisation of c and its bases, starting with c itself
func (c *Class) MRO() []*Class { return slices.Clone(c.mro) }

// IsSubclassOf reports whether other appears in the MRO of c, or whether
// c or one of its ancestors is registered as a virtual subclass of other.
func (c *Class) IsSubclassOf(other *Class) bool {
	if slices.Contains(c.mro, other) {
		return true
	}
	for _, ancestor := range c.mro {
		for _, abstract := range ancestor.registered {
			if abstract.IsSubclassOf(other) {
				return true
			}
		}
	}
	return false
}

type ClassDef struct {
	Module string
	Name   string
	Bases  []*Class
	// Registered makes the class a virtual subclass of these classes without
	// them appearing in its MRO, like abc.ABCMeta.register in the host language
	Registered []*Class
}

func (d ClassDef) Build() (*Class, error) {
	c := &Class{
		Module:     d.Module,
		Name:       d.Name,
		bases:      slices.Clone(d.Bases),
		registered: slices.Clone(d.Registered),
	}
	if d.Name == "" {
		return nil, tperr.New(tperr.InvalidClassHierarchy{Class: "<unnamed>", Reason: "missing class name"})
	}
	for _, base := range d.Bases {
		if base == nil {
			return nil, tperr.New(tperr.InvalidClassHierarchy{Class: c.QualifiedName(), Reason: "nil base class"})
		}
	}
	mro, err := linearise(c)
	if err != nil {
		return nil, err
	}
	c.mro = mro
	return c, nil
}

func mustClass(d ClassDef) *Class {
	c, err := d.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// linearise computes the C3 MRO of c from the (already computed) MROs of its bases
func linearise(c *Class) ([]*Class, error) {
	seqs := make([][]*Class, 0, len(c.bases)+1)
	for _, base := range c.bases {
		seqs = append(seqs, slices.Clone(base.mro))
	}
	seqs = append(seqs, slices.Clone(c.bases))

	result := []*Class{c}
	for {
		seqs = slices.DeleteFunc(seqs, func(s []*Class) bool { return len(s) == 0 })
		if len(seqs) == 0 {
			return result, nil
		}
		var candidate *Class
		for _, seq := range seqs {
			if !inAnyTail(seq[0], seqs) {
				candidate = seq[0]
				break
			}
		}
		if candidate == nil {
			return nil, tperr.New(tperr.InvalidClassHierarchy{
				Class:  c.QualifiedName(),
				Reason: "cannot create a consistent method resolution order for bases " + util.JoinString(c.bases, ", "),
			})
		}
		result = append(result, candidate)
		for i, seq := range seqs {
			if seq[0] == candidate {
				seqs[i] = seq[1:]
			}
		}
	}
}

func inAnyTail(c *Class, seqs [][]*Class) bool {
	for _, seq := range seqs {
		if slices.Contains(seq[1:], c) {
			return true
		}
	}
	return false
}
