package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenTagOpenStart       // "<div"
	TokenTagOpenEnd         // ">"
	TokenTagOpenEndVoid     // "/>"
	TokenTagClose           // "</div>"
	TokenText               // text between tags, whitespace included
	TokenInterpolationStart // "{{"
	TokenInterpolationText
	TokenInterpolationEnd // "}}"
	TokenAttrName
	TokenAttrEq
	TokenAttrQuote
	TokenAttrValue
	TokenCommentStart // "<!--"
	TokenCommentText
	TokenCommentEnd         // "-->"
	TokenExpansionFormStart // "{"
	TokenExpansionCaseStart // "{"
	TokenExpansionCaseEnd   // "}"
	TokenExpansionFormEnd   // "}"
	TokenRawText            // expansion header / between-case runs
	TokenWhitespace         // whitespace inside a tag
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:                "EOF",
	TokenTagOpenStart:       "TagOpenStart",
	TokenTagOpenEnd:         "TagOpenEnd",
	TokenTagOpenEndVoid:     "TagOpenEndVoid",
	TokenTagClose:           "TagClose",
	TokenText:               "Text",
	TokenInterpolationStart: "InterpolationStart",
	TokenInterpolationText:  "InterpolationText",
	TokenInterpolationEnd:   "InterpolationEnd",
	TokenAttrName:           "AttrName",
	TokenAttrEq:             "AttrEq",
	TokenAttrQuote:          "AttrQuote",
	TokenAttrValue:          "AttrValue",
	TokenCommentStart:       "CommentStart",
	TokenCommentText:        "CommentText",
	TokenCommentEnd:         "CommentEnd",
	TokenExpansionFormStart: "ExpansionFormStart",
	TokenExpansionCaseStart: "ExpansionCaseStart",
	TokenExpansionCaseEnd:   "ExpansionCaseEnd",
	TokenExpansionFormEnd:   "ExpansionFormEnd",
	TokenRawText:            "RawText",
	TokenWhitespace:         "Whitespace",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is the smallest lexical unit. Identity is pointer identity: two
// tokens are never interchangeable even when their text is equal.
type Token struct {
	Type TokenType
	span *Span
}

func (t *Token) Span() *Span {
	return t.span
}

func (t *Token) Name() string {
	return t.Type.String()
}

// Text returns the token's current rendering from the shared buffer.
func (t *Token) Text() string {
	return t.span.Text()
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q %s)", t.Name(), t.Text(), t.span)
}

// Lexer turns template source into a tiling token stream: every byte of the
// source belongs to exactly one token, so concatenating token texts in order
// reproduces the source.
type Lexer struct {
	src    *Source
	input  string
	start  int
	pos    int
	width  int
	tokens []*Token
}

func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src, input: string(src.Content)}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != -1 {
		l.backup()
	}
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+offset:])
	return r
}

func (l *Lexer) hasPrefix(prefix string) bool {
	return strings.HasPrefix(l.input[l.pos:], prefix)
}

func (l *Lexer) emit(tt TokenType) *Token {
	tok := &Token{Type: tt, span: NewSpan(l.src, l.start, l.pos)}
	l.tokens = append(l.tokens, tok)
	l.start = l.pos
	return tok
}

func (l *Lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: offset %d: %s", l.src.File, l.pos, fmt.Sprintf(format, args...))
}

// Lex tokenizes the whole source.
func (l *Lexer) Lex() ([]*Token, error) {
	if err := l.lexContent(0); err != nil {
		return nil, err
	}
	l.emit(TokenEOF)
	return l.tokens, nil
}

// lexContent handles text-level content: text runs, interpolations, tags,
// comments, and expansion forms. expansionDepth > 0 means we are inside an
// expansion case, where an unmatched '}' ends the case.
func (l *Lexer) lexContent(expansionDepth int) error {
	for {
		if l.pos >= len(l.input) {
			l.flushText()
			return nil
		}
		switch {
		case l.hasPrefix("<!--"):
			l.flushText()
			if err := l.lexComment(); err != nil {
				return err
			}
		case l.hasPrefix("</"):
			l.flushText()
			if err := l.lexTagClose(); err != nil {
				return err
			}
		case l.hasPrefix("<") && isTagNameStart(l.peekAt(1)):
			l.flushText()
			if err := l.lexTagOpen(); err != nil {
				return err
			}
		case l.hasPrefix("{{"):
			l.flushText()
			if err := l.lexInterpolation(); err != nil {
				return err
			}
		case l.hasPrefix("{") && l.looksLikeExpansion():
			l.flushText()
			if err := l.lexExpansion(); err != nil {
				return err
			}
		case l.hasPrefix("}") && expansionDepth > 0:
			l.flushText()
			return nil
		default:
			l.next()
		}
	}
}

// flushText emits any pending run of plain characters as a text token.
func (l *Lexer) flushText() {
	if l.pos > l.start {
		l.emit(TokenText)
	}
}

func isTagNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isTagNameChar(r rune) bool {
	return r == '-' || r == '_' || r == ':' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// looksLikeExpansion reports whether the '{' at the cursor opens an ICU
// expansion form ("{ident, word, ..."), as opposed to literal text.
func (l *Lexer) looksLikeExpansion() bool {
	rest := l.input[l.pos+1:]
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	j := i
	for j < len(rest) && (isTagNameChar(rune(rest[j])) || rest[j] == '$') {
		j++
	}
	if j == i {
		return false
	}
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	return j < len(rest) && rest[j] == ','
}

func (l *Lexer) lexTagOpen() error {
	l.next() // '<'
	for isTagNameChar(l.peek()) {
		l.next()
	}
	l.emit(TokenTagOpenStart)

	for {
		r := l.peek()
		switch {
		case r == -1:
			return l.errorf("unterminated open tag")
		case unicode.IsSpace(r):
			for unicode.IsSpace(l.peek()) {
				l.next()
			}
			l.emit(TokenWhitespace)
		case r == '>':
			l.next()
			l.emit(TokenTagOpenEnd)
			return nil
		case l.hasPrefix("/>"):
			l.next()
			l.next()
			l.emit(TokenTagOpenEndVoid)
			return nil
		default:
			if err := l.lexAttribute(); err != nil {
				return err
			}
		}
	}
}

func (l *Lexer) lexAttribute() error {
	for {
		r := l.peek()
		if r == -1 || r == '=' || r == '>' || unicode.IsSpace(r) || l.hasPrefix("/>") {
			break
		}
		l.next()
	}
	if l.pos == l.start {
		return l.errorf("malformed attribute")
	}
	l.emit(TokenAttrName)

	if l.peek() != '=' {
		return nil
	}
	l.next()
	l.emit(TokenAttrEq)

	quote := l.peek()
	if quote == '"' || quote == '\'' {
		l.next()
		l.emit(TokenAttrQuote)
		for {
			r := l.next()
			if r == -1 {
				return l.errorf("unterminated attribute value")
			}
			if r == quote {
				l.backup()
				break
			}
		}
		if l.pos > l.start {
			l.emit(TokenAttrValue)
		}
		l.next()
		l.emit(TokenAttrQuote)
		return nil
	}

	for {
		r := l.peek()
		if r == -1 || r == '>' || unicode.IsSpace(r) || l.hasPrefix("/>") {
			break
		}
		l.next()
	}
	if l.pos > l.start {
		l.emit(TokenAttrValue)
	}
	return nil
}

func (l *Lexer) lexTagClose() error {
	l.next() // '<'
	l.next() // '/'
	for isTagNameChar(l.peek()) {
		l.next()
	}
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	if l.peek() != '>' {
		return l.errorf("unterminated close tag")
	}
	l.next()
	l.emit(TokenTagClose)
	return nil
}

func (l *Lexer) lexInterpolation() error {
	l.next()
	l.next()
	l.emit(TokenInterpolationStart)
	for !l.hasPrefix("}}") {
		if l.next() == -1 {
			return l.errorf("unterminated interpolation")
		}
	}
	if l.pos > l.start {
		l.emit(TokenInterpolationText)
	}
	l.next()
	l.next()
	l.emit(TokenInterpolationEnd)
	return nil
}

func (l *Lexer) lexComment() error {
	l.pos += len("<!--")
	l.emit(TokenCommentStart)
	for !l.hasPrefix("-->") {
		if l.next() == -1 {
			return l.errorf("unterminated comment")
		}
	}
	if l.pos > l.start {
		l.emit(TokenCommentText)
	}
	l.pos += len("-->")
	l.emit(TokenCommentEnd)
	return nil
}

// lexExpansion tokenizes an ICU expansion form. The header and the runs
// between cases become raw text tokens; case bodies are lexed as ordinary
// content.
func (l *Lexer) lexExpansion() error {
	l.next() // '{'
	l.emit(TokenExpansionFormStart)

	for {
		for {
			r := l.peek()
			if r == -1 {
				return l.errorf("unterminated expansion form")
			}
			if r == '{' || r == '}' {
				break
			}
			l.next()
		}
		if l.pos > l.start {
			l.emit(TokenRawText)
		}
		if l.peek() == '}' {
			l.next()
			l.emit(TokenExpansionFormEnd)
			return nil
		}
		l.next() // '{'
		l.emit(TokenExpansionCaseStart)
		if err := l.lexContent(1); err != nil {
			return err
		}
		if l.peek() != '}' {
			return l.errorf("unterminated expansion case")
		}
		l.next()
		l.emit(TokenExpansionCaseEnd)
	}
}
