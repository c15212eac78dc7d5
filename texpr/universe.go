package texpr

const (
	builtinsModule = "builtins"
	abcModule      = "collections.abc"
	ioModule       = "io"
	typingModule   = "typing"
)

func builtin(name string, bases []*Class, registered ...*Class) *Class {
	return mustClass(ClassDef{Module: builtinsModule, Name: name, Bases: bases, Registered: registered})
}

func abc(name string, bases ...*Class) *Class {
	return mustClass(ClassDef{Module: abcModule, Name: name, Bases: bases})
}

func ioClass(name string, bases ...*Class) *Class {
	return mustClass(ClassDef{Module: ioModule, Name: name, Bases: bases})
}

func typingAlias(name string, target *Class) *Alias {
	return &Alias{Module: typingModule, Name: name, Target: target}
}

// Object is the root of every class hierarchy
var Object = mustClass(ClassDef{Module: builtinsModule, Name: "object"})

// collections.abc
var (
	AbcHashable   = abc("Hashable", Object)
	AbcIterable   = abc("Iterable", Object)
	AbcContainer  = abc("Container", Object)
	AbcSized      = abc("Sized", Object)
	AbcAwaitable  = abc("Awaitable", Object)
	AbcCallable   = abc("Callable", Object)
	AbcIterator   = abc("Iterator", AbcIterable)
	AbcGenerator  = abc("Generator", AbcIterator)
	AbcReversible = abc("Reversible", AbcIterable)
	AbcCollection = abc("Collection", AbcSized, AbcIterable, AbcContainer)

	AbcSequence        = abc("Sequence", AbcReversible, AbcCollection)
	AbcMutableSequence = abc("MutableSequence", AbcSequence)
	AbcByteString      = abc("ByteString", AbcSequence)
	AbcSet             = abc("Set", AbcCollection)
	AbcMutableSet      = abc("MutableSet", AbcSet)
	AbcMapping         = abc("Mapping", AbcCollection)
	AbcMutableMapping  = abc("MutableMapping", AbcMapping)
)

// builtins
var (
	TypeClass = builtin("type", []*Class{Object})
	NoneType  = builtin("NoneType", []*Class{Object}, AbcHashable)
	Int       = builtin("int", []*Class{Object}, AbcHashable)
	Bool      = builtin("bool", []*Class{Int})
	Float     = builtin("float", []*Class{Object}, AbcHashable)
	Complex   = builtin("complex", []*Class{Object}, AbcHashable)
	Str       = builtin("str", []*Class{Object}, AbcSequence, AbcHashable)
	Bytes     = builtin("bytes", []*Class{Object}, AbcByteString, AbcHashable)
	ByteArray = builtin("bytearray", []*Class{Object}, AbcMutableSequence, AbcByteString)
	List      = builtin("list", []*Class{Object}, AbcMutableSequence)
	Tuple     = builtin("tuple", []*Class{Object}, AbcSequence, AbcHashable)
	Dict      = builtin("dict", []*Class{Object}, AbcMutableMapping)
	Set       = builtin("set", []*Class{Object}, AbcMutableSet)
	FrozenSet = builtin("frozenset", []*Class{Object}, AbcSet, AbcHashable)
)

// io
var (
	IOBase         = ioClass("IOBase", Object)
	RawIOBase      = ioClass("RawIOBase", IOBase)
	BufferedIOBase = ioClass("BufferedIOBase", IOBase)
	TextIOBase     = ioClass("TextIOBase", IOBase)
	FileIO         = ioClass("FileIO", RawIOBase)
	BytesIO        = ioClass("BytesIO", BufferedIOBase)
	BufferedReader = ioClass("BufferedReader", BufferedIOBase)
	BufferedWriter = ioClass("BufferedWriter", BufferedIOBase)
	BufferedRandom = ioClass("BufferedRandom", BufferedReader, BufferedWriter)
	TextIOWrapper  = ioClass("TextIOWrapper", TextIOBase)
	StringIO       = ioClass("StringIO", TextIOBase)
)

// typing classes. TextIO and BinaryIO are not in the MRO of any io class.
var (
	TypingIO = mustClass(ClassDef{Module: typingModule, Name: "IO", Bases: []*Class{Object}})
	TextIO   = mustClass(ClassDef{Module: typingModule, Name: "TextIO", Bases: []*Class{TypingIO}})
	BinaryIO = mustClass(ClassDef{Module: typingModule, Name: "BinaryIO", Bases: []*Class{TypingIO}})
)

// typing aliases
var (
	TypingList            = typingAlias("List", List)
	TypingDict            = typingAlias("Dict", Dict)
	TypingSet             = typingAlias("Set", Set)
	TypingFrozenSet       = typingAlias("FrozenSet", FrozenSet)
	TypingTuple           = typingAlias("Tuple", Tuple)
	TypingType            = typingAlias("Type", TypeClass)
	TypingByteString      = typingAlias("ByteString", Bytes)
	TypingHashable        = typingAlias("Hashable", AbcHashable)
	TypingIterable        = typingAlias("Iterable", AbcIterable)
	TypingContainer       = typingAlias("Container", AbcContainer)
	TypingSized           = typingAlias("Sized", AbcSized)
	TypingAwaitable       = typingAlias("Awaitable", AbcAwaitable)
	TypingCallable        = typingAlias("Callable", AbcCallable)
	TypingIterator        = typingAlias("Iterator", AbcIterator)
	TypingGenerator       = typingAlias("Generator", AbcGenerator)
	TypingReversible      = typingAlias("Reversible", AbcReversible)
	TypingCollection      = typingAlias("Collection", AbcCollection)
	TypingSequence        = typingAlias("Sequence", AbcSequence)
	TypingMutableSequence = typingAlias("MutableSequence", AbcMutableSequence)
	TypingAbstractSet     = typingAlias("AbstractSet", AbcSet)
	TypingMutableSet      = typingAlias("MutableSet", AbcMutableSet)
	TypingMapping         = typingAlias("Mapping", AbcMapping)
	TypingMutableMapping  = typingAlias("MutableMapping", AbcMutableMapping)
)

var builtinClasses = []*Class{
	Object, TypeClass, NoneType, Int, Bool, Float, Complex, Str, Bytes, ByteArray,
	List, Tuple, Dict, Set, FrozenSet,
}

var abcClasses = []*Class{
	AbcHashable, AbcIterable, AbcContainer, AbcSized, AbcAwaitable, AbcCallable,
	AbcIterator, AbcGenerator, AbcReversible, AbcCollection, AbcSequence,
	AbcMutableSequence, AbcByteString, AbcSet, AbcMutableSet, AbcMapping, AbcMutableMapping,
}

var ioClasses = []*Class{
	IOBase, RawIOBase, BufferedIOBase, TextIOBase, FileIO, BytesIO,
	BufferedReader, BufferedWriter, BufferedRandom, TextIOWrapper, StringIO,
}

// Aliases lists every typing alias known to the Universe
var Aliases = []*Alias{
	TypingList, TypingDict, TypingSet, TypingFrozenSet, TypingTuple, TypingType,
	TypingByteString, TypingHashable, TypingIterable, TypingContainer, TypingSized,
	TypingAwaitable, TypingCallable, TypingIterator, TypingGenerator, TypingReversible,
	TypingCollection, TypingSequence, TypingMutableSequence, TypingAbstractSet,
	TypingMutableSet, TypingMapping, TypingMutableMapping,
}

var specials = []*Special{Any, Union, Optional, Generic}

// universeNames binds every builtin under its qualified name, and under its
// bare name when that does not shadow a name from an earlier module
// (builtins first, then typing, as with `from typing import *`).
func universeNames() map[string]Expr {
	names := make(map[string]Expr)
	bindBare := func(name string, e Expr) {
		if _, exists := names[name]; !exists {
			names[name] = e
		}
	}
	for _, c := range builtinClasses {
		names[c.QualifiedName()] = c
		bindBare(c.Name, c)
	}
	for _, a := range Aliases {
		names[a.QualifiedName()] = a
		bindBare(a.Name, a)
	}
	for _, s := range specials {
		names[s.String()] = s
		bindBare(s.Name, s)
	}
	for _, c := range []*Class{TypingIO, TextIO, BinaryIO} {
		names[c.QualifiedName()] = c
		bindBare(c.Name, c)
	}
	for _, c := range abcClasses {
		names[c.QualifiedName()] = c
	}
	for _, c := range ioClasses {
		names[c.QualifiedName()] = c
	}
	names["typing.Text"] = Str
	bindBare("Text", Str)
	names["None"] = None
	names["types.NoneType"] = NoneType
	names["Ellipsis"] = Ellipsis
	return names
}
