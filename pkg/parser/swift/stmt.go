package swift

import "github.com/yaklabco/swiftlint-go/pkg/syntax"

func (p *parser) isStmtStart() bool {
	if p.kind() == syntax.TokenIdentifier && p.kindAt(p.pos+1) == syntax.TokenColon {
		// Labeled statement, e.g. `outer: for x in xs`.
		switch p.textAt(p.pos + 2) {
		case "for", "while", "repeat", "if", "switch", "do":
			return true
		}
		return false
	}
	if p.kind() != syntax.TokenKeyword {
		return false
	}
	switch p.cur() {
	case "guard", "while", "repeat", "for", "return", "throw", "defer", "do",
		"break", "continue", "fallthrough":
		return true
	case "if", "switch":
		return true
	}
	return false
}

func (p *parser) parseStmt() {
	if p.kind() == syntax.TokenIdentifier {
		// Label and colon belong to the statement that follows.
		cp := p.b.Checkpoint()
		p.bump()
		p.bump()
		p.parseLabeledStmt(cp)
		return
	}
	p.parseLabeledStmt(p.b.Checkpoint())
}

func (p *parser) parseLabeledStmt(cp int) {
	switch p.cur() {
	case "if":
		p.parseIf(cp)
	case "guard":
		p.b.OpenAt(cp, syntax.KindGuardStmt)
		p.bump()
		p.parseConditionList()
		p.bumpText("else")
		p.parseCodeBlock()
		p.b.Close()
	case "while":
		p.b.OpenAt(cp, syntax.KindWhileStmt)
		p.bump()
		p.parseConditionList()
		p.parseCodeBlock()
		p.b.Close()
	case "repeat":
		p.b.OpenAt(cp, syntax.KindRepeatStmt)
		p.bump()
		p.parseCodeBlock()
		if p.bumpText("while") {
			p.parseExpr(exprCtx{noTrailingClosure: true})
		}
		p.b.Close()
	case "for":
		p.parseFor(cp)
	case "switch":
		p.parseSwitch(cp)
	case "return", "throw":
		kind := syntax.KindReturnStmt
		if p.cur() == "throw" {
			kind = syntax.KindThrowStmt
		}
		p.b.OpenAt(cp, kind)
		p.bump()
		if !p.eof() && !p.at(syntax.TokenRightBrace) && !p.at(syntax.TokenSemicolon) && !p.startsLine(p.pos) {
			p.parseExpr(exprCtx{})
		}
		p.b.Close()
	case "defer":
		p.b.OpenAt(cp, syntax.KindDeferStmt)
		p.bump()
		p.parseCodeBlock()
		p.b.Close()
	case "do":
		p.parseDo(cp)
	case "break", "continue", "fallthrough":
		p.b.OpenAt(cp, syntax.KindControlTransferStmt)
		p.bump()
		if p.kind() == syntax.TokenIdentifier && !p.startsLine(p.pos) {
			p.bump()
		}
		p.b.Close()
	}
}

func (p *parser) parseIf(cp int) {
	p.b.OpenAt(cp, syntax.KindIfStmt)
	p.bump()
	p.parseConditionList()
	p.parseCodeBlock()
	if p.bumpText("else") {
		if p.atText("if") {
			p.parseIf(p.b.Checkpoint())
		} else {
			p.parseCodeBlock()
		}
	}
	p.b.Close()
}

func (p *parser) parseConditionList() {
	p.b.Open(syntax.KindConditionList)
	ctx := exprCtx{noTrailingClosure: true}
	for !p.eof() && !p.at(syntax.TokenLeftBrace) {
		start := p.pos
		p.b.Open(syntax.KindCondition)
		switch {
		case p.atText("let") || p.atText("var"):
			p.bump()
			p.parsePattern()
			if p.at(syntax.TokenColon) {
				p.b.Open(syntax.KindTypeAnnotation)
				p.bump()
				p.parseType()
				p.b.Close()
			}
			if p.at(syntax.TokenEqual) {
				p.parseInitializerClause(ctx)
			}
		case p.atText("case"):
			p.bump()
			p.parsePatternExpr(ctx, false)
			if p.at(syntax.TokenEqual) {
				p.parseInitializerClause(ctx)
			}
		default:
			p.parseExpr(ctx)
		}
		more := p.bumpIf(syntax.TokenComma)
		p.b.Close()
		if !more || p.pos == start || p.atText("else") {
			break
		}
	}
	p.b.Close()
}

// parsePatternExpr parses a case pattern, which may mix `let` bindings into expressions.
// Commas continue the pattern list only in switch cases and catch clauses.
func (p *parser) parsePatternExpr(ctx exprCtx, multi bool) {
	ctx.stopAtEqual = true
	p.b.Open(syntax.KindPattern)
	for !p.eof() {
		start := p.pos
		if p.atText("let") || p.atText("var") || p.atText("is") {
			p.bump()
			continue
		}
		p.parseExpr(ctx)
		if p.pos == start {
			break
		}
		if !multi || !p.at(syntax.TokenComma) {
			break
		}
		p.bump()
	}
	p.b.Close()
}

func (p *parser) parseFor(cp int) {
	p.b.OpenAt(cp, syntax.KindForStmt)
	p.bump()
	p.bumpText("try")
	p.bumpText("await")
	p.bumpText("case")

	p.b.Open(syntax.KindPattern)
	for !p.eof() && !p.atText("in") && !p.at(syntax.TokenLeftBrace) {
		if p.at(syntax.TokenLeftParen) {
			p.skipBalanced()
			continue
		}
		p.bump()
	}
	p.b.Close()

	if p.bumpText("in") {
		p.parseExpr(exprCtx{noTrailingClosure: true})
	}
	if p.atText("where") {
		p.b.Open(syntax.KindWhereClause)
		p.bump()
		p.parseExpr(exprCtx{noTrailingClosure: true})
		p.b.Close()
	}
	p.parseCodeBlock()
	p.b.Close()
}

func (p *parser) parseSwitch(cp int) {
	p.b.OpenAt(cp, syntax.KindSwitchStmt)
	p.bump()
	p.parseExpr(exprCtx{noTrailingClosure: true})
	if !p.bumpIf(syntax.TokenLeftBrace) {
		p.b.Close()
		return
	}
	for !p.eof() && !p.at(syntax.TokenRightBrace) {
		if !p.isSwitchCaseStart() {
			p.parseItem()
			continue
		}
		p.b.Open(syntax.KindSwitchCase)
		for p.at(syntax.TokenAt) {
			p.parseAttribute()
		}
		if p.bumpText("case") {
			p.parsePatternExpr(exprCtx{noTrailingClosure: true}, true)
			if p.atText("where") {
				p.b.Open(syntax.KindWhereClause)
				p.bump()
				p.parseExpr(exprCtx{noTrailingClosure: true})
				p.b.Close()
			}
		} else {
			p.bumpText("default")
		}
		p.bumpIf(syntax.TokenColon)
		for !p.eof() && !p.at(syntax.TokenRightBrace) && !p.isSwitchCaseStart() {
			p.parseItem()
		}
		p.b.Close()
	}
	p.bumpIf(syntax.TokenRightBrace)
	p.b.Close()
}

func (p *parser) isSwitchCaseStart() bool {
	i := p.pos
	if p.kindAt(i) == syntax.TokenAt {
		i += 2
	}
	return p.kindAt(i) == syntax.TokenKeyword && (p.textAt(i) == "case" || p.textAt(i) == "default")
}

func (p *parser) parseDo(cp int) {
	p.b.OpenAt(cp, syntax.KindDoStmt)
	p.bump()
	p.parseEffects()
	p.parseCodeBlock()
	for p.atText("catch") {
		p.b.Open(syntax.KindCatchClause)
		p.bump()
		if !p.at(syntax.TokenLeftBrace) {
			p.parsePatternExpr(exprCtx{noTrailingClosure: true}, true)
			if p.atText("where") {
				p.bump()
				p.parseExpr(exprCtx{noTrailingClosure: true})
			}
		}
		p.parseCodeBlock()
		p.b.Close()
	}
	p.b.Close()
}
