// Package swift provides a lenient structural parser for Swift source.
//
// The parser recognises declarations, statements, expressions and types well
// enough for lint rules to reason about structure. It never fails: input it
// cannot classify is kept as token leaves of the enclosing node, so every byte
// of the source is still reachable from the tree.
package swift

import (
	"context"
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Parser implements lint.Parser for Swift.
type Parser struct{}

// New creates a Swift parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a syntax tree over text.
func (p *Parser) Parse(ctx context.Context, text *source.Text) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return ParseText(text), nil
}

// ParseText parses text without a context.
func ParseText(text *source.Text) *syntax.Tree {
	tokens := Lex(text.Bytes())
	ps := &parser{
		text: text,
		toks: tokens,
		b:    syntax.NewBuilder(text, tokens),
	}
	ps.parseSourceFile()
	return ps.b.Finish()
}

// ParseString is a convenience for tests and tooling.
func ParseString(content string) *syntax.Tree {
	return ParseText(source.NewString("<memory>", content))
}

type exprCtx struct {
	noTrailingClosure bool
	stopAtEqual       bool
}

type parser struct {
	text *source.Text
	toks []syntax.Token
	pos  int
	b    *syntax.Builder
}

// Token access.

func (p *parser) kindAt(i int) syntax.TokenKind {
	if i >= len(p.toks) {
		return syntax.TokenEOF
	}
	return p.toks[i].Kind
}

func (p *parser) textAt(i int) string {
	if i >= len(p.toks) {
		return ""
	}
	return string(p.text.Slice(p.toks[i].Range))
}

func (p *parser) kind() syntax.TokenKind { return p.kindAt(p.pos) }

func (p *parser) cur() string { return p.textAt(p.pos) }

func (p *parser) at(kind syntax.TokenKind) bool { return p.kind() == kind }

func (p *parser) atText(text string) bool {
	k := p.kind()
	return (k == syntax.TokenKeyword || k == syntax.TokenIdentifier) && p.cur() == text
}

func (p *parser) eof() bool { return p.at(syntax.TokenEOF) }

func (p *parser) startsLine(i int) bool {
	return i < len(p.toks) && p.toks[i].StartsLine()
}

// spaceBefore reports whether trivia separates token i from its predecessor.
func (p *parser) spaceBefore(i int) bool {
	if i >= len(p.toks) {
		return true
	}
	if len(p.toks[i].Leading) > 0 {
		return true
	}
	return i > 0 && len(p.toks[i-1].Trailing) > 0
}

func (p *parser) isName(i int) bool {
	k := p.kindAt(i)
	return k == syntax.TokenIdentifier || k == syntax.TokenKeyword
}

// bump adds the current token as a leaf and advances. EOF is never consumed
// except by parseSourceFile.
func (p *parser) bump() {
	if p.eof() {
		return
	}
	p.b.Token(p.pos)
	p.pos++
}

func (p *parser) bumpIf(kind syntax.TokenKind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

func (p *parser) bumpText(text string) bool {
	if p.atText(text) {
		p.bump()
		return true
	}
	return false
}

// splitAngle splits a multi-character operator that begins with '>' so the
// first '>' can close a generic clause.
func (p *parser) splitAngle() {
	if p.kind() != syntax.TokenOperator && p.kind() != syntax.TokenPostfixOperator &&
		p.kind() != syntax.TokenPrefixOperator {
		return
	}
	text := p.cur()
	if len(text) < 2 || text[0] != '>' {
		return
	}
	orig := p.toks[p.pos]
	first := syntax.Token{
		Kind:    syntax.TokenOperator,
		Range:   source.Range{Start: orig.Range.Start, End: orig.Range.Start + 1},
		Leading: orig.Leading,
	}
	restKind := syntax.TokenOperator
	switch text[1:] {
	case "?":
		restKind = syntax.TokenPostfixQuestion
	case "!":
		restKind = syntax.TokenExclamation
	}
	rest := syntax.Token{
		Kind:     restKind,
		Range:    source.Range{Start: orig.Range.Start + 1, End: orig.Range.End},
		Trailing: orig.Trailing,
	}

	toks := make([]syntax.Token, 0, len(p.toks)+1)
	toks = append(toks, p.toks[:p.pos]...)
	toks = append(toks, first, rest)
	toks = append(toks, p.toks[p.pos+1:]...)
	p.toks = toks
	p.b.ReplaceTokens(toks)
}

func (p *parser) atAngleClose() bool {
	p.splitAngle()
	return p.cur() == ">"
}

// skipBalanced consumes a bracketed group starting at the current opener.
func (p *parser) skipBalanced() {
	depth := 0
	for !p.eof() {
		switch p.kind() {
		case syntax.TokenLeftParen, syntax.TokenLeftSquare, syntax.TokenLeftBrace:
			depth++
		case syntax.TokenRightParen, syntax.TokenRightSquare, syntax.TokenRightBrace:
			depth--
		}
		p.bump()
		if depth <= 0 {
			return
		}
	}
}

// Top level.

func (p *parser) parseSourceFile() {
	p.b.Open(syntax.KindSourceFile)
	for !p.eof() {
		p.parseItem()
	}
	// The EOF token carries comments at the end of the file.
	p.b.Token(p.pos)
	p.b.Close()
}

// parseItems parses statements until a closing brace.
func (p *parser) parseItems() {
	for !p.eof() && !p.at(syntax.TokenRightBrace) {
		p.parseItem()
	}
}

func (p *parser) parseItem() {
	start := p.pos
	switch {
	case p.at(syntax.TokenSemicolon):
		p.bump()
		return
	case p.isDeclStart():
		p.parseDecl()
	case p.isStmtStart():
		p.parseStmt()
	default:
		p.parseExpr(exprCtx{})
	}
	if p.pos == start {
		p.bump()
	}
}

func (p *parser) parseCodeBlock() {
	if !p.at(syntax.TokenLeftBrace) {
		return
	}
	p.b.Open(syntax.KindCodeBlock)
	p.bump()
	p.parseItems()
	p.bumpIf(syntax.TokenRightBrace)
	p.b.Close()
}
