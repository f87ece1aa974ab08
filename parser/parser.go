// Package parser implements the recursive-descent parser for query text,
// turning it into an ast.Query per the grammar in the engine's specification.
package parser

import (
	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/errs"
	"github.com/shyptr/nodeql/lexer"
)

type parser struct {
	lex    *lexer.Lexer
	tokens []lexer.Token
	pos    int
}

// Parse tokenizes and parses source text into a Query AST. Fragment
// definitions are collected but not inlined (spec.md §4.1): substitution
// happens lazily during execution.
func Parse(source string) (*ast.Query, error) {
	lx := lexer.New(source)
	tokens, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lx, tokens: tokens}
	return p.parseQuery()
}

func (p *parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) syntaxErrorAt(offset int, format string, args ...interface{}) *errs.SyntaxError {
	return p.lex.ErrorAt(offset, format, args...)
}

func (p *parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	t := p.cur()
	if t.Kind != kind {
		return t, p.syntaxErrorAt(t.Offset, "unexpected %s, expecting %s", describe(t), kind)
	}
	return p.advance(), nil
}

func describe(t lexer.Token) string {
	if t.Kind == lexer.Ident || t.Kind == lexer.Int || t.Kind == lexer.String {
		return t.Value
	}
	return t.Kind.String()
}

func (p *parser) isAliasKeyword() bool {
	t := p.cur()
	return t.Kind == lexer.Ident && t.Value == "as"
}

// parseQuery parses the root call list, then zero or more fragment definitions.
func (p *parser) parseQuery() (*ast.Query, error) {
	q := &ast.Query{Fragments: map[string]*ast.Fragment{}}

	for p.cur().Kind == lexer.Ident {
		call, err := p.parseField()
		if err != nil {
			return nil, err
		}
		q.RootCalls = append(q.RootCalls, *call)
		if p.cur().Kind == lexer.Comma {
			p.advance()
		}
	}

	for p.cur().Kind == lexer.Dollar {
		offset := p.cur().Offset
		frag, err := p.parseFragmentDef()
		if err != nil {
			return nil, err
		}
		if _, dup := q.Fragments[frag.Identifier]; dup {
			return nil, p.syntaxErrorAt(offset, "duplicate fragment definition %q", frag.Identifier)
		}
		q.Fragments[frag.Identifier] = frag
	}

	if p.cur().Kind != lexer.EOF {
		t := p.cur()
		return nil, p.syntaxErrorAt(t.Offset, "unexpected trailing %s", describe(t))
	}

	return q, nil
}

// parseFragmentDef parses: "$" ident ":" "{" selection_list "}"
func (p *parser) parseFragmentDef() (*ast.Fragment, error) {
	dollar, err := p.expect(lexer.Dollar)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	fields, err := p.parseSelectionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.Fragment{
		Identifier: "$" + name.Value,
		Fields:     fields,
		Pos:        p.lex.Pos(dollar.Offset),
	}, nil
}

// parseSelectionList parses a comma-separated list of selections, allowing
// a trailing comma. It stops after the first selection not followed by a
// comma, or when the token after a comma cannot start a selection.
func (p *parser) parseSelectionList() ([]ast.Selection, error) {
	var sels []ast.Selection
	for {
		t := p.cur()
		if t.Kind != lexer.Ident && t.Kind != lexer.Dollar {
			break
		}
		sel, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		if p.cur().Kind == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	return sels, nil
}

// parseSelection parses either a fragment reference ("$ident") or a field.
func (p *parser) parseSelection() (ast.Selection, error) {
	t := p.cur()
	if t.Kind == lexer.Dollar {
		p.advance()
		name, err := p.expect(lexer.Ident)
		if err != nil {
			return ast.Selection{}, err
		}
		return ast.Selection{
			Kind:       ast.FragmentRefKind,
			Identifier: "$" + name.Value,
			Pos:        p.lex.Pos(t.Offset),
		}, nil
	}
	field, err := p.parseField()
	if err != nil {
		return ast.Selection{}, err
	}
	return ast.Selection{Kind: ast.FieldSelKind, Field: field, Pos: field.Pos}, nil
}

// parseField parses: call ("as" ident)? ( "{" selection_list "}" )?
func (p *parser) parseField() (*ast.Call, error) {
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if p.isAliasKeyword() {
		p.advance()
		alias, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		call.Alias = alias.Value
	}
	if p.cur().Kind == lexer.LBrace {
		p.advance()
		sels, err := p.parseSelectionList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		call.Selections = sels
	}
	return call, nil
}

// parseCall parses: ident ( "(" arglist? ")" )? ( "." call )?
func (p *parser) parseCall() (*ast.Call, error) {
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	call := &ast.Call{Identifier: name.Value, Pos: p.lex.Pos(name.Offset)}

	if p.cur().Kind == lexer.LParen {
		p.advance()
		if p.cur().Kind != lexer.RParen {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			call.Arguments = args
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
	}

	if p.cur().Kind == lexer.Dot {
		p.advance()
		chained, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		call.Chained = chained
	}

	return call, nil
}

// parseArgList parses: literal ("," literal)*, trailing comma permitted.
func (p *parser) parseArgList() ([]ast.Literal, error) {
	var args []ast.Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		args = append(args, lit)
		if p.cur().Kind == lexer.Comma {
			p.advance()
			if p.cur().Kind == lexer.RParen {
				break
			}
			continue
		}
		break
	}
	return args, nil
}

func (p *parser) parseLiteral() (ast.Literal, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.Int:
		p.advance()
		var n int64
		for i := 0; i < len(t.Value); i++ {
			n = n*10 + int64(t.Value[i]-'0')
		}
		return ast.Literal{Kind: ast.IntLiteral, Int: n}, nil
	case lexer.String:
		p.advance()
		return ast.Literal{Kind: ast.StringLiteral, Str: t.Value}, nil
	default:
		return ast.Literal{}, p.syntaxErrorAt(t.Offset, "unexpected %s, expecting a literal", describe(t))
	}
}
