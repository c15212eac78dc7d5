package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/bojiang/typing-utils/tperr"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokLBrack
	tokRBrack
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokEllipsis
	tokAssign
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokName:
		return "name"
	case tokString:
		return "string"
	case tokLBrack:
		return "'['"
	case tokRBrack:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokDot:
		return "'.'"
	case tokEllipsis:
		return "'...'"
	case tokAssign:
		return "'='"
	default:
		return "invalid"
	}
}

type token struct {
	kind tokenKind
	// text is the name, or the unquoted contents of a string
	text   string
	offset int
}

func (t token) String() string {
	switch t.kind {
	case tokName:
		return fmt.Sprintf("name '%s'", t.text)
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return t.kind.String()
	}
}

type lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination, 0 at the end
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
}

func (l *lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func (l *lexer) syntaxError(offset int, format string, args ...any) error {
	return tperr.New(tperr.Syntax{Source: l.input, Offset: offset, Message: fmt.Sprintf(format, args...)})
}

func (l *lexer) nextToken() (token, error) {
	l.skipWhitespace()
	start := l.position
	single := func(kind tokenKind) (token, error) {
		l.readChar()
		return token{kind: kind, offset: start}, nil
	}

	switch {
	case l.ch == 0 && l.position >= len(l.input):
		return token{kind: tokEOF, offset: start}, nil
	case l.ch == '[':
		return single(tokLBrack)
	case l.ch == ']':
		return single(tokRBrack)
	case l.ch == '(':
		return single(tokLParen)
	case l.ch == ')':
		return single(tokRParen)
	case l.ch == ',':
		return single(tokComma)
	case l.ch == '=':
		return single(tokAssign)
	case l.ch == '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() != '.' {
				return token{}, l.syntaxError(start, "unexpected '..', did you mean '...'?")
			}
			l.readChar()
			return single(tokEllipsis)
		}
		return single(tokDot)
	case l.ch == '\'' || l.ch == '"':
		return l.readString()
	case isNameStart(l.ch):
		for isNamePart(l.ch) {
			l.readChar()
		}
		return token{kind: tokName, text: l.input[start:l.position], offset: start}, nil
	default:
		return token{}, l.syntaxError(start, "unexpected character %q", l.ch)
	}
}

// readString reads a quoted string. The only escape understood is a backslash
// before the quote character or another backslash.
func (l *lexer) readString() (token, error) {
	start := l.position
	quote := l.ch
	l.readChar()
	var contents []rune
	for l.ch != quote {
		if l.ch == 0 && l.position >= len(l.input) {
			return token{}, l.syntaxError(start, "unterminated string")
		}
		if l.ch == '\\' && (l.peekChar() == quote || l.peekChar() == '\\') {
			l.readChar()
		}
		contents = append(contents, l.ch)
		l.readChar()
	}
	l.readChar()
	return token{kind: tokString, text: string(contents), offset: start}, nil
}

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isNamePart(ch rune) bool {
	return isNameStart(ch) || unicode.IsDigit(ch)
}
