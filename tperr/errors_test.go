package tperr

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithCode(t *testing.T) {
	tests := []struct {
		err      TypingError
		expected string
	}{
		{UnresolvedReference{Name: "JSON"}, "(E001) name 'JSON' is not defined"},
		{UnhashableTypeArgument{Head: "[int]"}, "(E002) unhashable type argument: '[int]' cannot be the head of a generic type"},
		{Syntax{Source: "List[", Offset: 5, Message: "expected a type"}, "(E004) syntax error at offset 5: expected a type"},
		{ForwardRefCycle{Chain: []string{"A", "B", "A"}}, "(E005) forward references form a cycle: A -> B -> A"},
		{RecursionLimit{Left: "int", Right: "str", Limit: 3}, "(E006) exceeded max depth limit of 3 while checking int against str"},
		{InvalidSuite{Reason: "empty"}, "(E008) invalid suite: empty"},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatWithCode(New(test.err)))
		})
	}
}

func TestNewCapturesStack(t *testing.T) {
	err := New(UnresolvedReference{Name: "x"})
	assert.NotEmpty(t, err.getStack())
	assert.Empty(t, UnresolvedReference{Name: "x"}.getStack())
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("checking suite: %w", New(UnresolvedReference{Name: "Node"}))

	var unresolved UnresolvedReference
	require.True(t, errors.As(wrapped, &unresolved))
	assert.Equal(t, "Node", unresolved.Name)

	var typingErr TypingError
	require.True(t, errors.As(wrapped, &typingErr))
	assert.Equal(t, UnresolvedReferenceCode, typingErr.Code())
}

func TestSyntaxPointer(t *testing.T) {
	err := Syntax{Source: "List[int", Offset: 8}
	assert.Equal(t, "List[int\n        ^", err.Pointer())
	assert.Equal(t, "ab\n  ^", Syntax{Source: "ab", Offset: 10}.Pointer())
}

func TestErrorsAccumulator(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.NoError(t, errs.Err())

	plain := errors.New("plain")
	errs = errs.WithErr(nil).
		WithErr(New(UnresolvedReference{Name: "A"})).
		WithErr(plain)
	require.Len(t, errs.Errors(), 2)
	assert.Equal(t, UnresolvedReferenceCode, errs.Errors()[0].Code())
	assert.Equal(t, None, errs.Errors()[1].Code())
	assert.ErrorIs(t, errs.Err(), plain)

	merged := (&Errors{}).Merge(errs).Merge(nil)
	assert.Len(t, merged.Errors(), 2)

	value := errs.LogValue()
	assert.Equal(t, slog.KindGroup, value.Kind())
	assert.Len(t, value.Group(), 2)
}
