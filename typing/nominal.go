package typing

import (
	"github.com/benbjohnson/immutable"
	"github.com/bojiang/typing-utils/texpr"
)

// staticSubtypes declares io classes as subtypes of the typing stream
// protocols they implement but do not inherit from
var staticSubtypes = buildStaticSubtypes()

func buildStaticSubtypes() *immutable.Map[string, *texpr.Class] {
	builder := immutable.NewMapBuilder[string, *texpr.Class](immutable.NewHasher(""))
	for _, text := range []*texpr.Class{texpr.TextIOWrapper, texpr.TextIOBase, texpr.StringIO} {
		builder.Set(text.QualifiedName(), texpr.TextIO)
	}
	for _, binary := range []*texpr.Class{texpr.BufferedReader, texpr.BufferedWriter, texpr.BufferedRandom, texpr.BytesIO} {
		builder.Set(binary.QualifiedName(), texpr.BinaryIO)
	}
	return builder.Map()
}

// originSubtype is the nominal check on heads alone, ignoring arguments
func originSubtype(left, right Origin) bool {
	if left.Equal(right) || right.Kind == KindAny {
		return true
	}
	if left.Kind != KindClass || right.Kind != KindClass {
		return false
	}
	if static, ok := staticSubtypes.Get(left.Class.QualifiedName()); ok && static == right.Class {
		return true
	}
	return left.Class.IsSubclassOf(right.Class)
}
