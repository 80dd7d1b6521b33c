package tokengrammar

import (
	"regexp"
	"strings"
)

var reTag = regexp.MustCompile(`^[A-Z_]+$`)

// Parser builds a []Token AST from a Lexer's lexeme stream using a
// recursive-descent design: one bracket group is one production,
// parsed greedily left to right with no backtracking.
type Parser struct {
	lex  *Lexer
	toks []lexeme
	pos  int
}

// NewParser constructs a Parser over a compressed token stream.
func NewParser(input string) *Parser {
	lex := NewLexer(input)
	return &Parser{lex: lex, toks: lex.Tokenize()}
}

func (p *Parser) peek() lexeme { return p.toks[p.pos] }

func (p *Parser) advance() lexeme {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// Parse consumes the entire input and returns its bracket-group AST.
// Exactly one space must separate consecutive groups; anything else
// (no separator, multiple spaces, leading/trailing text) is a syntax
// error.
func (p *Parser) Parse() ([]Token, error) {
	var out []Token

	for p.peek().Kind != kindEOF {
		if len(out) > 0 {
			sep := p.advance()
			if sep.Kind != kindSpace {
				return nil, syntaxError(sep.Offset, "expected single space between bracket groups, got %s %q", sep.Kind, sep.Literal)
			}
			if p.peek().Kind == kindSpace {
				return nil, syntaxError(p.peek().Offset, "multiple spaces between bracket groups")
			}
		}

		tok, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}

	return out, nil
}

func (p *Parser) parseGroup() (Token, error) {
	open := p.advance()
	if open.Kind != kindLBrack {
		return Token{}, syntaxError(open.Offset, "expected '[', got %s %q", open.Kind, open.Literal)
	}

	tag := p.advance()
	if tag.Kind != kindIdent || !reTag.MatchString(tag.Literal) {
		return Token{}, syntaxError(tag.Offset, "expected an upper-snake tag, got %q", tag.Literal)
	}

	var segments []string
	for p.peek().Kind == kindColon {
		p.advance()
		segments = append(segments, p.parseSegment())
	}

	close := p.advance()
	if close.Kind != kindRBrack {
		return Token{}, syntaxError(close.Offset, "expected ']', got %s %q", close.Kind, close.Literal)
	}

	tok := Token{Kind: tag.Literal}
	if len(segments) > 0 {
		tok.Arg = segments[0]
		tok.Attrs = segments[1:]
	}
	return tok, nil
}

// parseSegment consumes the run of lexemes making up one
// colon-delimited attribute (e.g. "NAME,EMAIL" or "TONE=formal"),
// stopping at the next ':', ']', space or end of input.
func (p *Parser) parseSegment() string {
	var b strings.Builder
	for {
		switch p.peek().Kind {
		case kindRBrack, kindColon, kindEOF, kindSpace:
			return b.String()
		default:
			b.WriteString(p.advance().Literal)
		}
	}
}
