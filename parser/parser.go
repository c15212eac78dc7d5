package parser

import (
	"strings"

	"github.com/bojiang/typing-utils/internal/log"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/tperr"
)

var logger = log.DefaultLogger.With("section", "parser")

type parser struct {
	*lexer
	scope   texpr.Names
	current token
}

// Parse parses src resolving names in texpr.Universe
func Parse(src string) (texpr.Expr, error) {
	return ParseExpr(src, texpr.Universe)
}

// MustParse is like Parse but panics on errors. Use for static tables and tests.
func MustParse(src string) texpr.Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseExpr parses a single type annotation like 'Dict[str, List["Node"]]',
// resolving names in scope. Quoted strings become forward references and are
// not evaluated.
func ParseExpr(src string, scope texpr.Names) (texpr.Expr, error) {
	p := &parser{lexer: newLexer(src), scope: scope}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.kind != tokEOF {
		return nil, p.unexpected("end of input")
	}
	logger.Debug("parsed type expression", "source", src, "result", texpr.Slog(e))
	return e, nil
}

func (p *parser) advance() error {
	tok, err := p.nextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *parser) unexpected(expected string) error {
	return p.syntaxError(p.current.offset, "expected %s, found %s", expected, p.current)
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.current
	if tok.kind != kind {
		return tok, p.unexpected(kind.String())
	}
	return tok, p.advance()
}

func (p *parser) parseExpr() (texpr.Expr, error) {
	tok := p.current
	switch tok.kind {
	case tokString:
		return &texpr.ForwardRef{Expr: tok.text}, p.advance()
	case tokEllipsis:
		return texpr.Ellipsis, p.advance()
	case tokLBrack:
		return p.parseParamList()
	case tokLParen:
		return nil, p.syntaxError(tok.offset, "() is only valid as Tuple[()]")
	case tokName:
		if tok.text == "TypeVar" {
			return p.parseTypeVar()
		}
		head, err := p.parseRef()
		if err != nil {
			return nil, err
		}
		if p.current.kind != tokLBrack {
			return head, nil
		}
		return p.parseSubscript(head, tok.offset)
	default:
		return nil, p.unexpected("a type")
	}
}

// parseRef parses a possibly dotted name and resolves it in the scope
func (p *parser) parseRef() (texpr.Expr, error) {
	first, err := p.expect(tokName)
	if err != nil {
		return nil, err
	}
	parts := []string{first.text}
	for p.current.kind == tokDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		part, err := p.expect(tokName)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part.text)
	}
	name := strings.Join(parts, ".")
	if name == "None" {
		return texpr.None, nil
	}
	e, ok := p.scope.Lookup(name)
	if !ok {
		return nil, tperr.New(tperr.UnresolvedReference{Name: name})
	}
	return e, nil
}

func (p *parser) parseParamList() (texpr.Expr, error) {
	if _, err := p.expect(tokLBrack); err != nil {
		return nil, err
	}
	params, err := p.parseList(tokRBrack)
	if err != nil {
		return nil, err
	}
	return &texpr.ParamList{Params: params}, nil
}

// parseList parses comma separated expressions up to and including end.
// A trailing comma is allowed.
func (p *parser) parseList(end tokenKind) ([]texpr.Expr, error) {
	var elems []texpr.Expr
	for p.current.kind != end {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.current.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(end); err != nil {
		return nil, err
	}
	return elems, nil
}

func (p *parser) parseSubscript(head texpr.Expr, offset int) (texpr.Expr, error) {
	if _, err := p.expect(tokLBrack); err != nil {
		return nil, err
	}
	if isTuple(head) && p.current.kind == tokLParen {
		return p.parseEmptyTuple(head)
	}
	args, err := p.parseList(tokRBrack)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, p.syntaxError(offset, "%s[] requires at least one argument", head)
	}

	switch {
	case head == texpr.Union:
		return texpr.NewUnion(args...), nil
	case head == texpr.Optional:
		if len(args) != 1 {
			return nil, p.syntaxError(offset, "Optional[] requires exactly one argument, found %d", len(args))
		}
		return texpr.NewOptional(args[0]), nil
	case head == texpr.Any:
		return nil, p.syntaxError(offset, "typing.Any is not subscriptable")
	case isCallable(head):
		if len(args) != 2 {
			return nil, p.syntaxError(offset, "Callable[] must be used as Callable[[arg, ...], result], found %d arguments", len(args))
		}
		if _, isParams := args[0].(*texpr.ParamList); !isParams && args[0] != texpr.Ellipsis {
			return nil, p.syntaxError(offset, "the first argument of Callable[] must be a list of types or '...', found %s", args[0])
		}
	}
	return &texpr.Subscript{Head: head, Args: args}, nil
}

// parseEmptyTuple parses the remaining '()]' of Tuple[()]
func (p *parser) parseEmptyTuple(head texpr.Expr) (texpr.Expr, error) {
	for _, kind := range []tokenKind{tokLParen, tokRParen, tokRBrack} {
		if _, err := p.expect(kind); err != nil {
			return nil, err
		}
	}
	return &texpr.Subscript{Head: head}, nil
}

// parseTypeVar parses TypeVar('name') and TypeVar('name', bound=expr)
func (p *parser) parseTypeVar() (texpr.Expr, error) {
	if _, err := p.expect(tokName); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	name, err := p.expect(tokString)
	if err != nil {
		return nil, err
	}
	tv := &texpr.TypeVar{Name: name.text}
	if p.current.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		keyword, err := p.expect(tokName)
		if err != nil {
			return nil, err
		}
		if keyword.text != "bound" {
			return nil, p.syntaxError(keyword.offset, "unsupported TypeVar argument '%s'", keyword.text)
		}
		if _, err := p.expect(tokAssign); err != nil {
			return nil, err
		}
		bound, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		tv.Bound = bound
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return tv, nil
}

func isCallable(head texpr.Expr) bool {
	return head == texpr.TypingCallable || head == texpr.AbcCallable
}

func isTuple(head texpr.Expr) bool {
	return head == texpr.TypingTuple || head == texpr.Tuple
}
