package swift

import "github.com/yaklabco/swiftlint-go/pkg/syntax"

//nolint:gochecknoglobals // Read-only tables.
var (
	declKeywords = map[string]syntax.Kind{
		"import":          syntax.KindImportDecl,
		"func":            syntax.KindFunctionDecl,
		"init":            syntax.KindInitializerDecl,
		"deinit":          syntax.KindDeinitializerDecl,
		"subscript":       syntax.KindSubscriptDecl,
		"class":           syntax.KindClassDecl,
		"struct":          syntax.KindStructDecl,
		"enum":            syntax.KindEnumDecl,
		"actor":           syntax.KindActorDecl,
		"protocol":        syntax.KindProtocolDecl,
		"extension":       syntax.KindExtensionDecl,
		"var":             syntax.KindVariableDecl,
		"let":             syntax.KindVariableDecl,
		"typealias":       syntax.KindTypeAliasDecl,
		"associatedtype":  syntax.KindAssociatedTypeDecl,
		"operator":        syntax.KindUnknown,
		"precedencegroup": syntax.KindUnknown,
	}

	modifierWords = map[string]bool{
		"public": true, "private": true, "fileprivate": true, "internal": true, "open": true,
		"package": true, "static": true, "class": true, "final": true, "override": true,
		"mutating": true, "nonmutating": true, "lazy": true, "weak": true, "unowned": true,
		"convenience": true, "required": true, "optional": true, "dynamic": true,
		"indirect": true, "nonisolated": true, "prefix": true, "postfix": true, "infix": true,
	}

	accessorWords = map[string]bool{
		"get": true, "set": true, "willSet": true, "didSet": true, "_read": true, "_modify": true,
		"init": true,
	}
)

// isDeclStart looks past attributes and modifiers for a declaration keyword.
func (p *parser) isDeclStart() bool {
	i := p.pos
	for i < len(p.toks) {
		text := p.textAt(i)
		switch {
		case p.kindAt(i) == syntax.TokenAt:
			i += 2
			if p.kindAt(i) == syntax.TokenLeftParen && !p.spaceBefore(i) {
				i = p.skipBalancedAt(i)
			}
			continue
		case p.isDeclKeywordAt(i):
			return true
		case modifierWords[text] && p.isName(i):
			i++
			if p.kindAt(i) == syntax.TokenLeftParen {
				if !p.modifierDetailAt(i) {
					return false
				}
				i += 3
			}
			if p.startsLine(i) && p.kindAt(i) != syntax.TokenKeyword {
				return false
			}
			if !p.isName(i) && p.kindAt(i) != syntax.TokenAt {
				return false
			}
			continue
		}
		return false
	}
	return false
}

func (p *parser) isDeclKeywordAt(i int) bool {
	text := p.textAt(i)
	if _, ok := declKeywords[text]; !ok || !p.isName(i) {
		return false
	}
	switch text {
	case "actor":
		// Contextual: only `actor Name`.
		return p.kindAt(i+1) == syntax.TokenIdentifier && !p.startsLine(i+1)
	case "class":
		// `class func` is a modifier; `class Name` is a declaration.
		_, next := declKeywords[p.textAt(i+1)]
		return !next || p.kindAt(i+1) == syntax.TokenIdentifier && p.textAt(i+1) == "actor"
	case "init":
		return p.kindAt(i+1) == syntax.TokenLeftParen || p.kindAt(i+1) == syntax.TokenPostfixQuestion ||
			p.kindAt(i+1) == syntax.TokenExclamation || p.textAt(i+1) == "<"
	case "operator", "precedencegroup":
		return p.kindAt(i) == syntax.TokenKeyword || p.kindAt(i+1) != syntax.TokenLeftParen
	}
	return p.kindAt(i) == syntax.TokenKeyword || text == "actor"
}

// modifierDetailAt reports whether a `(set)`-style detail starts at i.
func (p *parser) modifierDetailAt(i int) bool {
	if p.kindAt(i) != syntax.TokenLeftParen || p.spaceBefore(i) || p.kindAt(i+2) != syntax.TokenRightParen {
		return false
	}
	switch p.textAt(i + 1) {
	case "set", "safe", "unsafe":
		return true
	}
	return false
}

func (p *parser) skipBalancedAt(i int) int {
	depth := 0
	for i < len(p.toks) {
		switch p.kindAt(i) {
		case syntax.TokenLeftParen, syntax.TokenLeftSquare, syntax.TokenLeftBrace:
			depth++
		case syntax.TokenRightParen, syntax.TokenRightSquare, syntax.TokenRightBrace:
			depth--
		case syntax.TokenEOF:
			return i
		}
		i++
		if depth <= 0 {
			return i
		}
	}
	return i
}

func (p *parser) parseAttribute() {
	p.b.Open(syntax.KindAttribute)
	p.bump() // @
	if p.isName(p.pos) {
		p.bump()
	}
	if p.at(syntax.TokenLeftParen) && !p.spaceBefore(p.pos) {
		p.skipBalanced()
	}
	p.b.Close()
}

func (p *parser) parseAttributesAndModifiers() {
	for !p.eof() {
		switch {
		case p.at(syntax.TokenAt):
			p.parseAttribute()
		case modifierWords[p.cur()] && p.isName(p.pos) && !p.isDeclKeywordAt(p.pos):
			p.b.Open(syntax.KindModifier)
			p.bump()
			if p.at(syntax.TokenLeftParen) && p.modifierDetailAt(p.pos) {
				p.skipBalanced()
			}
			p.b.Close()
		default:
			return
		}
	}
}

func (p *parser) parseDecl() {
	cp := p.b.Checkpoint()
	p.parseAttributesAndModifiers()

	kind, ok := declKeywords[p.cur()]
	if !ok {
		return
	}
	p.b.OpenAt(cp, kind)
	defer p.b.Close()

	switch p.cur() {
	case "import":
		p.bump()
		for !p.eof() && !p.startsLine(p.pos) && (p.isName(p.pos) || p.at(syntax.TokenPeriod)) {
			p.bump()
		}
	case "func":
		p.bump()
		p.parseDeclName()
		p.parseFunctionSignature()
		p.parseCodeBlock()
	case "init":
		p.bump()
		if p.at(syntax.TokenPostfixQuestion) || p.at(syntax.TokenExclamation) {
			p.bump()
		}
		p.parseFunctionSignature()
		p.parseCodeBlock()
	case "deinit":
		p.bump()
		p.parseCodeBlock()
	case "subscript":
		p.bump()
		p.parseFunctionSignature()
		p.parseAccessorBlock()
	case "class", "struct", "enum", "actor", "protocol", "extension":
		p.parseTypeDecl(kind)
	case "var", "let":
		p.bump()
		p.parseBindings()
	case "typealias":
		p.bump()
		p.parseDeclName()
		if p.cur() == "<" {
			p.parseGenericParameterClause()
		}
		if p.bumpIf(syntax.TokenEqual) {
			p.parseType()
		}
	case "associatedtype":
		p.bump()
		p.parseDeclName()
		if p.at(syntax.TokenColon) {
			p.parseInheritanceClause()
		}
		if p.bumpIf(syntax.TokenEqual) {
			p.parseType()
		}
		p.parseWhereClause()
	default:
		// operator and precedencegroup declarations are kept as tokens.
		line := p.pos
		for !p.eof() && (p.pos == line || !p.startsLine(p.pos)) {
			if p.at(syntax.TokenLeftBrace) {
				p.skipBalanced()
				return
			}
			p.bump()
		}
	}
}

func (p *parser) parseDeclName() {
	switch p.kind() {
	case syntax.TokenIdentifier, syntax.TokenKeyword, syntax.TokenOperator,
		syntax.TokenPrefixOperator, syntax.TokenPostfixOperator:
		p.bump()
	}
}

// parseFunctionSignature parses generics, parameters, effects, return clause and where clause.
func (p *parser) parseFunctionSignature() {
	if p.cur() == "<" {
		p.parseGenericParameterClause()
	}
	if p.at(syntax.TokenLeftParen) {
		p.parseParameterClause()
	}
	p.parseEffects()
	if p.at(syntax.TokenArrow) {
		p.b.Open(syntax.KindReturnClause)
		p.bump()
		p.parseType()
		p.b.Close()
	}
	p.parseWhereClause()
}

func (p *parser) parseEffects() {
	for p.atText("async") || p.atText("throws") || p.atText("rethrows") || p.atText("reasync") {
		p.bump()
		if p.at(syntax.TokenLeftParen) && !p.spaceBefore(p.pos) {
			p.skipBalanced()
		}
	}
}

func (p *parser) parseGenericParameterClause() {
	p.b.Open(syntax.KindGenericParameterClause)
	p.bump() // <
	depth := 1
	for !p.eof() && depth > 0 {
		p.splitAngle()
		switch p.cur() {
		case "<":
			depth++
		case ">":
			depth--
		}
		if p.at(syntax.TokenLeftBrace) {
			break
		}
		p.bump()
	}
	p.b.Close()
}

func (p *parser) parseParameterClause() {
	p.b.Open(syntax.KindParameterClause)
	p.bump() // (
	for !p.eof() && !p.at(syntax.TokenRightParen) {
		start := p.pos
		p.b.Open(syntax.KindParameter)
		for p.at(syntax.TokenAt) {
			p.parseAttribute()
		}
		for names := 0; names < 2 && p.isName(p.pos) && !p.at(syntax.TokenColon); names++ {
			p.bump()
		}
		if p.bumpIf(syntax.TokenColon) {
			p.parseType()
			if p.cur() == "..." {
				p.bump()
			}
		}
		if p.at(syntax.TokenEqual) {
			p.parseInitializerClause(exprCtx{})
		}
		p.bumpIf(syntax.TokenComma)
		p.b.Close()
		if p.pos == start {
			p.bump()
		}
	}
	p.bumpIf(syntax.TokenRightParen)
	p.b.Close()
}

func (p *parser) parseInitializerClause(ctx exprCtx) {
	p.b.Open(syntax.KindInitializerClause)
	p.bump() // =
	p.parseExpr(ctx)
	p.b.Close()
}

func (p *parser) parseInheritanceClause() {
	p.b.Open(syntax.KindInheritanceClause)
	p.bump() // :
	for !p.eof() {
		if !p.bumpText("class") {
			p.parseType()
		}
		if !p.bumpIf(syntax.TokenComma) {
			break
		}
	}
	p.b.Close()
}

func (p *parser) parseWhereClause() {
	if !p.atText("where") {
		return
	}
	p.b.Open(syntax.KindWhereClause)
	p.bump()
	for !p.eof() {
		start := p.pos
		p.parseType()
		if p.at(syntax.TokenColon) || p.cur() == "==" {
			p.bump()
			p.parseType()
		}
		if p.pos == start || !p.bumpIf(syntax.TokenComma) {
			break
		}
	}
	p.b.Close()
}

func (p *parser) parseTypeDecl(kind syntax.Kind) {
	p.bump() // keyword
	if kind == syntax.KindExtensionDecl {
		p.parseType()
	} else {
		p.parseDeclName()
	}
	if p.cur() == "<" {
		p.parseGenericParameterClause()
	}
	if p.at(syntax.TokenColon) {
		p.parseInheritanceClause()
	}
	p.parseWhereClause()
	if !p.at(syntax.TokenLeftBrace) {
		return
	}

	p.b.Open(syntax.KindMemberBlock)
	p.bump()
	for !p.eof() && !p.at(syntax.TokenRightBrace) {
		if kind == syntax.KindEnumDecl && p.isEnumCaseStart() {
			p.parseEnumCase()
			continue
		}
		p.parseItem()
	}
	p.bumpIf(syntax.TokenRightBrace)
	p.b.Close()
}

func (p *parser) isEnumCaseStart() bool {
	i := p.pos
	for p.kindAt(i) == syntax.TokenAt || (modifierWords[p.textAt(i)] && p.textAt(i) != "case") {
		if p.kindAt(i) == syntax.TokenAt {
			i++
		}
		i++
	}
	return p.textAt(i) == "case"
}

func (p *parser) parseEnumCase() {
	cp := p.b.Checkpoint()
	p.parseAttributesAndModifiers()
	p.b.OpenAt(cp, syntax.KindEnumCaseDecl)
	p.bump() // case
	for !p.eof() {
		p.parseDeclName()
		if p.at(syntax.TokenLeftParen) {
			p.parseParameterClause()
		}
		if p.at(syntax.TokenEqual) {
			p.parseInitializerClause(exprCtx{})
		}
		if !p.bumpIf(syntax.TokenComma) {
			break
		}
	}
	p.b.Close()
}

func (p *parser) parseBindings() {
	for !p.eof() {
		p.b.Open(syntax.KindPatternBinding)
		p.parsePattern()
		if p.at(syntax.TokenColon) {
			p.b.Open(syntax.KindTypeAnnotation)
			p.bump()
			p.parseType()
			p.b.Close()
		}
		if p.at(syntax.TokenEqual) {
			p.parseInitializerClause(exprCtx{})
		}
		if p.at(syntax.TokenLeftBrace) && !p.startsLine(p.pos) {
			p.parseAccessorBlock()
		}
		more := p.bumpIf(syntax.TokenComma)
		p.b.Close()
		if !more {
			return
		}
	}
}

func (p *parser) parsePattern() {
	p.b.Open(syntax.KindPattern)
	switch {
	case p.at(syntax.TokenLeftParen):
		p.skipBalanced()
	case p.isName(p.pos):
		p.bump()
	}
	p.b.Close()
}

// parseAccessorBlock parses `{ get set }`, `{ didSet { } }` or an implicit getter body.
func (p *parser) parseAccessorBlock() {
	if !p.at(syntax.TokenLeftBrace) {
		return
	}
	p.b.Open(syntax.KindAccessorBlock)
	p.bump()
	for !p.eof() && !p.at(syntax.TokenRightBrace) {
		if p.isAccessorStart() {
			p.parseAttributesAndModifiers()
			p.bump()
			if p.at(syntax.TokenLeftParen) {
				p.skipBalanced()
			}
			p.parseEffects()
			p.parseCodeBlock()
			continue
		}
		p.parseItem()
	}
	p.bumpIf(syntax.TokenRightBrace)
	p.b.Close()
}

func (p *parser) isAccessorStart() bool {
	i := p.pos
	for modifierWords[p.textAt(i)] || p.textAt(i) == "mutating" || p.kindAt(i) == syntax.TokenAt {
		i++
	}
	if !accessorWords[p.textAt(i)] {
		return false
	}
	switch p.kindAt(i + 1) {
	case syntax.TokenLeftBrace, syntax.TokenLeftParen, syntax.TokenRightBrace:
		return true
	}
	return accessorWords[p.textAt(i+1)] || p.startsLine(i+1) || p.textAt(i+1) == "async" || p.textAt(i+1) == "throws"
}
