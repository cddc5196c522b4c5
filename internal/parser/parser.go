package parser

import (
	"fmt"
	"strings"
)

// voidElements close implicitly and never get an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ParseResult carries everything one parse produces: the shared source
// buffer, the canonical ordered token sequence, and the raw tree roots.
type ParseResult struct {
	Source *Source
	Tokens []*Token
	Nodes  []Node
}

type Parser struct {
	src    *Source
	tokens []*Token
	pos    int
}

// Parse lexes and parses one template file.
func Parse(file, content string) (*ParseResult, error) {
	src := NewSource(file, content)
	tokens, err := NewLexer(src).Lex()
	if err != nil {
		return nil, err
	}
	p := &Parser{src: src, tokens: tokens}
	nodes, err := p.parseContent(TokenEOF)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Source: src, Tokens: tokens, Nodes: nodes}, nil
}

func (p *Parser) cur() *Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() *Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType) (*Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return nil, p.errorf("expected %s, found %s", tt, tok)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: offset %d: %s", p.src.File, p.cur().Span().Start, fmt.Sprintf(format, args...))
}

// parseContent parses sibling nodes until the stop token type is current.
// The stop token itself is left for the caller.
func (p *Parser) parseContent(stop TokenType) ([]Node, error) {
	var nodes []Node
	for {
		tok := p.cur()
		if tok.Type == stop {
			return nodes, nil
		}
		switch tok.Type {
		case TokenEOF:
			return nil, p.errorf("unexpected end of input")
		case TokenText:
			p.advance()
			nodes = append(nodes, NewText([]*Token{tok}, tok.Span().Clone(), tok.Text()))
		case TokenInterpolationStart:
			n, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case TokenCommentStart:
			n, err := p.parseComment()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case TokenTagOpenStart:
			n, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case TokenExpansionFormStart:
			n, err := p.parseExpansion()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case TokenTagClose:
			return nil, p.errorf("unexpected close tag %s", tok.Text())
		default:
			return nil, p.errorf("unexpected token %s", tok)
		}
	}
}

func (p *Parser) parseInterpolation() (Node, error) {
	start := p.advance()
	tokens := []*Token{start}
	value := ""
	if p.cur().Type == TokenInterpolationText {
		t := p.advance()
		tokens = append(tokens, t)
		value = t.Text()
	}
	end, err := p.expect(TokenInterpolationEnd)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, end)
	span := NewSpan(p.src, start.Span().Start, end.Span().End)
	return NewText(tokens, span, value), nil
}

func (p *Parser) parseComment() (Node, error) {
	start := p.advance()
	tokens := []*Token{start}
	var value *string
	if p.cur().Type == TokenCommentText {
		t := p.advance()
		tokens = append(tokens, t)
		text := t.Text()
		value = &text
	}
	end, err := p.expect(TokenCommentEnd)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, end)
	span := NewSpan(p.src, start.Span().Start, end.Span().End)
	return NewComment(tokens, span, value), nil
}

func (p *Parser) parseElement() (Node, error) {
	open := p.advance()
	name := open.Text()[1:]
	tokens := []*Token{open}
	var attrs []*Attribute

	var tagEnd *Token
	for tagEnd == nil {
		tok := p.cur()
		switch tok.Type {
		case TokenWhitespace:
			tokens = append(tokens, p.advance())
		case TokenAttrName:
			attr, attrTokens, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, attr)
			tokens = append(tokens, attrTokens...)
		case TokenTagOpenEnd, TokenTagOpenEndVoid:
			tagEnd = p.advance()
			tokens = append(tokens, tagEnd)
		default:
			return nil, p.errorf("unexpected token %s in tag <%s>", tok, name)
		}
	}

	startTagSpan := NewSpan(p.src, open.Span().Start, tagEnd.Span().End)
	if tagEnd.Type == TokenTagOpenEndVoid || voidElements[strings.ToLower(name)] {
		return NewElement(tokens, startTagSpan.Clone(), name, attrs, nil, startTagSpan, nil), nil
	}

	children, err := p.parseContent(TokenTagClose)
	if err != nil {
		return nil, err
	}
	closeTok := p.cur()
	if closeTagName(closeTok.Text()) != name {
		return nil, p.errorf("close tag %s does not match <%s>", closeTok.Text(), name)
	}
	p.advance()
	tokens = append(tokens, closeTok)
	endTagSpan := closeTok.Span().Clone()
	span := NewSpan(p.src, open.Span().Start, closeTok.Span().End)
	return NewElement(tokens, span, name, attrs, children, startTagSpan, endTagSpan), nil
}

func closeTagName(text string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "</"), ">"))
}

func (p *Parser) parseAttribute() (*Attribute, []*Token, error) {
	nameTok := p.advance()
	tokens := []*Token{nameTok}
	value := ""
	var valueSpan *Span

	if p.cur().Type == TokenAttrEq {
		tokens = append(tokens, p.advance())
		if p.cur().Type == TokenAttrQuote {
			tokens = append(tokens, p.advance())
			if p.cur().Type == TokenAttrValue {
				t := p.advance()
				tokens = append(tokens, t)
				value = t.Text()
				valueSpan = t.Span().Clone()
			}
			closeQuote, err := p.expect(TokenAttrQuote)
			if err != nil {
				return nil, nil, err
			}
			tokens = append(tokens, closeQuote)
		} else if p.cur().Type == TokenAttrValue {
			t := p.advance()
			tokens = append(tokens, t)
			value = t.Text()
			valueSpan = t.Span().Clone()
		}
	}

	last := tokens[len(tokens)-1]
	span := NewSpan(p.src, nameTok.Span().Start, last.Span().End)
	return NewAttribute(tokens, span, nameTok.Text(), value, valueSpan), tokens, nil
}

func (p *Parser) parseExpansion() (Node, error) {
	form := p.advance()
	tokens := []*Token{form}

	header, err := p.expect(TokenRawText)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, header)
	parts := strings.SplitN(header.Text(), ",", 3)
	if len(parts) < 3 {
		return nil, p.errorf("malformed expansion header %q", header.Text())
	}
	switchValue := strings.TrimSpace(parts[0])
	formType := strings.TrimSpace(parts[1])
	caseValue := strings.TrimSpace(parts[2])

	var cases []*ExpansionCase
	for {
		tok := p.cur()
		switch tok.Type {
		case TokenExpansionFormEnd:
			p.advance()
			tokens = append(tokens, tok)
			span := NewSpan(p.src, form.Span().Start, tok.Span().End)
			return NewExpansion(tokens, span, switchValue, formType, cases), nil
		case TokenRawText:
			p.advance()
			tokens = append(tokens, tok)
			caseValue = strings.TrimSpace(tok.Text())
		case TokenExpansionCaseStart:
			if caseValue == "" {
				return nil, p.errorf("expansion case without a value")
			}
			c, caseTokens, err := p.parseExpansionCase(caseValue)
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
			tokens = append(tokens, caseTokens...)
			caseValue = ""
		default:
			return nil, p.errorf("unexpected token %s in expansion form", tok)
		}
	}
}

func (p *Parser) parseExpansionCase(value string) (*ExpansionCase, []*Token, error) {
	start := p.advance()
	expression, err := p.parseContent(TokenExpansionCaseEnd)
	if err != nil {
		return nil, nil, err
	}
	end, err := p.expect(TokenExpansionCaseEnd)
	if err != nil {
		return nil, nil, err
	}
	tokens := []*Token{start, end}
	span := NewSpan(p.src, start.Span().Start, end.Span().End)
	return NewExpansionCase(tokens, span, value, expression), tokens, nil
}
