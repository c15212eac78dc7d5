package tperr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	UnresolvedReferenceCode
	UnhashableTypeArgumentCode
	UnsupportedExpressionShapeCode
	SyntaxCode
	ForwardRefCycleCode
	RecursionLimitCode
	InvalidClassHierarchyCode
	InvalidSuiteCode
)

type TypingError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) TypingError
	getStack() []byte
}

func FormatWithCode(e TypingError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = lines[6]
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// New records the stack of the caller in err
func New[E TypingError](err E) TypingError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From  error
	stack []byte
}

func (e Unclassified) Error() string    { return fmt.Sprintf("unclassified error: %v", e.From) }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

// UnresolvedReference is returned when a forward reference or a name has no
// binding in the environment it is evaluated in
type UnresolvedReference struct {
	Name  string
	stack []byte
}

func (e UnresolvedReference) Error() string {
	return fmt.Sprintf("name '%s' is not defined", e.Name)
}
func (e UnresolvedReference) Code() ErrCode    { return UnresolvedReferenceCode }
func (e UnresolvedReference) getStack() []byte { return e.stack }
func (e UnresolvedReference) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

// UnhashableTypeArgument is returned when the head of a generic expression
// cannot be used as a key of the canonical alias table
type UnhashableTypeArgument struct {
	Head  string
	stack []byte
}

func (e UnhashableTypeArgument) Error() string {
	return fmt.Sprintf("unhashable type argument: '%s' cannot be the head of a generic type", e.Head)
}
func (e UnhashableTypeArgument) Code() ErrCode    { return UnhashableTypeArgumentCode }
func (e UnhashableTypeArgument) getStack() []byte { return e.stack }
func (e UnhashableTypeArgument) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

type UnsupportedExpressionShape struct {
	Shape string
	stack []byte
}

func (e UnsupportedExpressionShape) Error() string {
	return fmt.Sprintf("unsupported type expression shape %s", e.Shape)
}
func (e UnsupportedExpressionShape) Code() ErrCode    { return UnsupportedExpressionShapeCode }
func (e UnsupportedExpressionShape) getStack() []byte { return e.stack }
func (e UnsupportedExpressionShape) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

// Syntax is a parse failure at byte Offset of Source
type Syntax struct {
	Source  string
	Offset  int
	Message string
	stack   []byte
}

func (e Syntax) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}
func (e Syntax) Code() ErrCode    { return SyntaxCode }
func (e Syntax) getStack() []byte { return e.stack }
func (e Syntax) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

// Pointer renders the offending source line with a caret under Offset
func (e Syntax) Pointer() string {
	offset := min(max(e.Offset, 0), len(e.Source))
	return e.Source + "\n" + strings.Repeat(" ", offset) + "^"
}

type ForwardRefCycle struct {
	Chain []string
	stack []byte
}

func (e ForwardRefCycle) Error() string {
	return fmt.Sprintf("forward references form a cycle: %s", strings.Join(e.Chain, " -> "))
}
func (e ForwardRefCycle) Code() ErrCode    { return ForwardRefCycleCode }
func (e ForwardRefCycle) getStack() []byte { return e.stack }
func (e ForwardRefCycle) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

type RecursionLimit struct {
	Left, Right string
	Limit       int
	stack       []byte
}

func (e RecursionLimit) Error() string {
	return fmt.Sprintf("exceeded max depth limit of %d while checking %s against %s", e.Limit, e.Left, e.Right)
}
func (e RecursionLimit) Code() ErrCode    { return RecursionLimitCode }
func (e RecursionLimit) getStack() []byte { return e.stack }
func (e RecursionLimit) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

type InvalidClassHierarchy struct {
	Class  string
	Reason string
	stack  []byte
}

func (e InvalidClassHierarchy) Error() string {
	return fmt.Sprintf("cannot create class %s: %s", e.Class, e.Reason)
}
func (e InvalidClassHierarchy) Code() ErrCode    { return InvalidClassHierarchyCode }
func (e InvalidClassHierarchy) getStack() []byte { return e.stack }
func (e InvalidClassHierarchy) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}

type InvalidSuite struct {
	Reason string
	stack  []byte
}

func (e InvalidSuite) Error() string {
	return fmt.Sprintf("invalid suite: %s", e.Reason)
}
func (e InvalidSuite) Code() ErrCode    { return InvalidSuiteCode }
func (e InvalidSuite) getStack() []byte { return e.stack }
func (e InvalidSuite) withStack(stack []byte) TypingError {
	e.stack = stack
	return e
}
