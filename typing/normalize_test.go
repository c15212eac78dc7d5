package typing

import (
	"errors"
	"testing"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, e texpr.Expr) Type {
	t.Helper()
	res, err := Normalize(e)
	require.NoError(t, err)
	return res
}

func normalizeSrc(t *testing.T, src string) Type {
	t.Helper()
	return mustNormalize(t, parser.MustParse(src))
}

func TestNormalizeNone(t *testing.T) {
	none := mustNormalize(t, nil)
	assert.True(t, none.Equal(mustNormalize(t, texpr.NoneType)))
	assert.True(t, none.Equal(mustNormalize(t, texpr.None)))
	assert.True(t, none.IsClass(texpr.NoneType))
}

func TestNormalizeAliases(t *testing.T) {
	assert.True(t, normalizeSrc(t, "list").Equal(normalizeSrc(t, "List")))
	assert.True(t, normalizeSrc(t, "List").IsClass(texpr.List))
	assert.True(t, normalizeSrc(t, "collections.abc.Sequence").Equal(normalizeSrc(t, "typing.Sequence")))
	assert.True(t, normalizeSrc(t, "ByteString").IsClass(texpr.Bytes))
	assert.True(t, normalizeSrc(t, "Text").IsClass(texpr.Str))

	for _, alias := range texpr.Aliases {
		t.Run(alias.String(), func(t *testing.T) {
			assert.True(t, mustNormalize(t, alias).IsClass(alias.Target))
		})
	}
}

func TestNormalizeUnion(t *testing.T) {
	assert.True(t, normalizeSrc(t, "Union").Is(UnionOrigin))

	intOrList := normalizeSrc(t, "Union[list, int]")
	assert.True(t, normalizeSrc(t, "Union[int, List, list]").Equal(intOrList))
	assert.True(t, intOrList.Equal(UnionOf(Bare(ClassOrigin(texpr.List)), Bare(ClassOrigin(texpr.Int)))))
	assert.False(t, normalizeSrc(t, "Union[List, list]").Equal(normalizeSrc(t, "Union[Sequence, int]")))

	assert.True(t, normalizeSrc(t, "Union[List[int], int]").Equal(normalizeSrc(t, "Union[int, List[int], int]")))
	assert.False(t, normalizeSrc(t, "Union[List[int], int]").Equal(normalizeSrc(t, "Union[List, int]")))

	assert.Equal(t, intOrList.Hash(), normalizeSrc(t, "Union[int, list]").Hash())
	assert.Equal(t, 2, intOrList.Args.Len())
}

func TestNormalizeKeepsNestedUnions(t *testing.T) {
	inner := &texpr.Subscript{Head: texpr.Union, Args: []texpr.Expr{texpr.Int, texpr.Str}}
	outer := &texpr.Subscript{Head: texpr.Union, Args: []texpr.Expr{inner, texpr.Bytes}}

	res := mustNormalize(t, outer)
	require.True(t, res.isUnion())
	members := res.Args.(Unordered).Members()
	require.Len(t, members, 2)
	assert.True(t, res.Args.(Unordered).Contains(mustNormalize(t, inner)))
}

func TestNormalizeCallable(t *testing.T) {
	callable := normalizeSrc(t, "Callable[[List, int], None]")
	assert.True(t, callable.Equal(normalizeSrc(t, "Callable[[list, int], None]")))
	expected := Generic(ClassOrigin(texpr.AbcCallable),
		Group(Bare(ClassOrigin(texpr.List)), Bare(ClassOrigin(texpr.Int))),
		Bare(ClassOrigin(texpr.NoneType)),
	)
	assert.True(t, callable.Equal(expected), "%s != %s", callable, expected)
	assert.False(t, callable.Equal(normalizeSrc(t, "Callable[[int, list], None]")))

	noParams := normalizeSrc(t, "Callable[[], int]")
	params := noParams.Args.(Ordered)[0]
	assert.Equal(t, KindGroup, params.Origin.Kind)
	assert.False(t, params.IsBare())
	assert.Equal(t, "[]", params.String())
}

func TestNormalizeLeaves(t *testing.T) {
	ref := mustNormalize(t, &texpr.ForwardRef{Expr: " JSON "})
	assert.True(t, ref.Is(ForwardRefOrigin("JSON")))

	tv := mustNormalize(t, &texpr.TypeVar{Name: "T", Bound: texpr.Str})
	assert.Equal(t, KindTypeVar, tv.Origin.Kind)
	require.NotNil(t, tv.Origin.Bound())
	assert.True(t, tv.Origin.Bound().IsClass(texpr.Str))

	assert.True(t, mustNormalize(t, texpr.Ellipsis).Is(EllipsisOrigin))
	assert.True(t, mustNormalize(t, texpr.Any).Is(AnyOrigin))
}

func TestNormalizeTypeVarBounds(t *testing.T) {
	intT := mustNormalize(t, &texpr.TypeVar{Name: "T", Bound: texpr.Int})
	strT := mustNormalize(t, &texpr.TypeVar{Name: "T", Bound: texpr.Str})
	unboundT := mustNormalize(t, &texpr.TypeVar{Name: "T"})

	assert.False(t, intT.Equal(strT))
	assert.False(t, intT.Equal(unboundT))
	listT := mustNormalize(t, &texpr.TypeVar{Name: "T", Bound: parser.MustParse("List[int]")})
	assert.True(t, listT.Equal(mustNormalize(t, &texpr.TypeVar{Name: "T", Bound: parser.MustParse("typing.List[int]")})))
	assert.NotEqual(t, intT.Hash(), unboundT.Hash())

	union := mustNormalize(t, &texpr.Subscript{Head: texpr.Union, Args: []texpr.Expr{
		&texpr.TypeVar{Name: "T", Bound: texpr.Int},
		&texpr.TypeVar{Name: "T", Bound: texpr.Str},
	}})
	assert.Equal(t, 2, union.Args.Len())

	through := texpr.NewUnion(&texpr.TypeVar{Name: "T", Bound: texpr.Int}, &texpr.TypeVar{Name: "T", Bound: texpr.Str})
	assert.Equal(t, 2, mustNormalize(t, through).Args.Len())

	assert.True(t, mustNormalize(t, Denormalize(intT)).Equal(intT))
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		expr texpr.Expr
		code tperr.ErrCode
	}{
		{"nil head", &texpr.Subscript{Args: []texpr.Expr{texpr.Int}}, tperr.UnhashableTypeArgumentCode},
		{"param list head", &texpr.Subscript{Head: &texpr.ParamList{}, Args: []texpr.Expr{texpr.Int}}, tperr.UnhashableTypeArgumentCode},
		{"type var head", &texpr.Subscript{Head: &texpr.TypeVar{Name: "T"}, Args: []texpr.Expr{texpr.Int}}, tperr.UnhashableTypeArgumentCode},
		{"alias without target", &texpr.Alias{Module: "typing", Name: "Broken"}, tperr.UnsupportedExpressionShapeCode},
		{"nested failure", &texpr.Subscript{Head: texpr.List, Args: []texpr.Expr{&texpr.Subscript{Args: []texpr.Expr{texpr.Int}}}}, tperr.UnhashableTypeArgumentCode},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Normalize(test.expr)
			require.Error(t, err)
			var typingErr tperr.TypingError
			require.True(t, errors.As(err, &typingErr))
			assert.Equal(t, test.code, typingErr.Code())
		})
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	for _, src := range []string{
		"int",
		"List[int]",
		"Dict[str, List[Tuple[int, ...]]]",
		"Union[int, str, None]",
		"Callable[[List[int], int], None]",
		"Callable[..., int]",
		"Optional[Mapping[str, 'JSON']]",
		"Tuple[()]",
		"Any",
		"Union",
	} {
		t.Run(src, func(t *testing.T) {
			normal := normalizeSrc(t, src)
			again := mustNormalize(t, Denormalize(normal))
			assert.True(t, normal.Equal(again), "%s != %s", normal, again)
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "dict[str, list[int]]", normalizeSrc(t, "Dict[str, List[int]]").String())
	assert.Equal(t, "collections.abc.Callable[[int], NoneType]", normalizeSrc(t, "Callable[[int], None]").String())
	assert.Equal(t, "typing.Union[int, str]", normalizeSrc(t, "Union[str, int]").String())
}
