package swift

import "github.com/yaklabco/swiftlint-go/pkg/syntax"

// parseExpr parses an unfolded operator sequence. Operator precedence is not
// resolved: a binary expression becomes a SequenceExpr of operands and operators.
func (p *parser) parseExpr(ctx exprCtx) {
	cp := p.b.Checkpoint()
	operand := p.b.Checkpoint()
	if !p.parseUnary(ctx) {
		return
	}
	elements := 1

	for !p.eof() {
		switch {
		case p.atText("as"):
			p.b.OpenAt(operand, syntax.KindAsExpr)
			p.bump()
			if p.at(syntax.TokenExclamation) || p.at(syntax.TokenPostfixQuestion) {
				p.bump()
			}
			p.parseType()
			p.b.Close()
		case p.atText("is"):
			p.b.OpenAt(operand, syntax.KindIsExpr)
			p.bump()
			p.parseType()
			p.b.Close()
		case p.at(syntax.TokenOperator) && p.cur() == "?":
			p.b.OpenAt(cp, syntax.KindTernaryExpr)
			p.bump()
			p.parseExpr(exprCtx{noTrailingClosure: ctx.noTrailingClosure})
			if p.bumpIf(syntax.TokenColon) {
				p.parseExpr(ctx)
			}
			p.b.Close()
			return
		case p.at(syntax.TokenOperator) || (p.at(syntax.TokenEqual) && !ctx.stopAtEqual):
			p.bump()
			operand = p.b.Checkpoint()
			p.parseUnary(ctx)
			elements++
		default:
			if elements > 1 {
				p.b.OpenAt(cp, syntax.KindSequenceExpr)
				p.b.Close()
			}
			return
		}
	}
	if elements > 1 {
		p.b.OpenAt(cp, syntax.KindSequenceExpr)
		p.b.Close()
	}
}

// parseUnary parses prefix operators, try/await, a primary and its postfix chain.
// It reports whether anything was consumed.
func (p *parser) parseUnary(ctx exprCtx) bool {
	start := p.pos
	switch {
	case p.at(syntax.TokenPrefixOperator) || (p.at(syntax.TokenOperator) && p.cur() != "?"):
		p.b.Open(syntax.KindPrefixOperatorExpr)
		p.bump()
		p.parseUnary(ctx)
		p.b.Close()
		return true
	case p.atText("try"):
		p.b.Open(syntax.KindTryExpr)
		p.bump()
		if p.at(syntax.TokenExclamation) || p.at(syntax.TokenPostfixQuestion) {
			p.bump()
		}
		p.parseUnary(ctx)
		p.b.Close()
		return true
	case p.atText("await"):
		p.b.Open(syntax.KindAwaitExpr)
		p.bump()
		p.parseUnary(ctx)
		p.b.Close()
		return true
	}

	cp := p.b.Checkpoint()
	p.parsePrimary()
	if p.pos == start {
		return false
	}
	p.parsePostfix(cp, ctx)
	return true
}

func (p *parser) leaf(kind syntax.Kind) {
	p.b.Open(kind)
	p.bump()
	p.b.Close()
}

func (p *parser) parsePrimary() {
	switch p.kind() {
	case syntax.TokenIntegerLiteral:
		p.leaf(syntax.KindIntegerLiteralExpr)
	case syntax.TokenFloatLiteral:
		p.leaf(syntax.KindFloatLiteralExpr)
	case syntax.TokenStringLiteral:
		p.leaf(syntax.KindStringLiteralExpr)
	case syntax.TokenKeyword:
		switch p.cur() {
		case "true", "false":
			p.leaf(syntax.KindBooleanLiteralExpr)
		case "nil":
			p.leaf(syntax.KindNilLiteralExpr)
		case "self", "Self", "super", "Any", "init":
			p.parseDeclReference()
		case "if":
			p.parseIf(p.b.Checkpoint())
		case "switch":
			p.parseSwitch(p.b.Checkpoint())
		}
	case syntax.TokenIdentifier:
		if p.cur() == "_" {
			p.leaf(syntax.KindDiscardAssignmentExpr)
			return
		}
		p.parseDeclReference()
	case syntax.TokenPeriod:
		// Implicit member, e.g. `.red`.
		p.b.Open(syntax.KindMemberAccessExpr)
		p.bump()
		if p.isName(p.pos) || p.at(syntax.TokenIntegerLiteral) {
			p.bump()
		}
		p.b.Close()
	case syntax.TokenLeftParen:
		p.b.Open(syntax.KindTupleExpr)
		p.bump()
		p.parseLabeledList(syntax.TokenRightParen)
		p.bumpIf(syntax.TokenRightParen)
		p.b.Close()
	case syntax.TokenLeftSquare:
		p.parseCollection()
	case syntax.TokenLeftBrace:
		p.parseClosure()
	case syntax.TokenPound:
		p.b.Open(syntax.KindMacroExpansionExpr)
		p.bump()
		if p.isName(p.pos) {
			p.bump()
		}
		if p.at(syntax.TokenLeftParen) && !p.startsLine(p.pos) {
			p.bump()
			p.parseLabeledList(syntax.TokenRightParen)
			p.bumpIf(syntax.TokenRightParen)
		}
		p.b.Close()
	case syntax.TokenBackslash:
		p.parseKeyPath()
	case syntax.TokenAt:
		// Attributed closure, e.g. `{ @MainActor in }` written before the brace.
		p.parseAttribute()
		if p.at(syntax.TokenLeftBrace) {
			p.parseClosure()
		}
	}
}

func (p *parser) parseDeclReference() {
	cp := p.b.Checkpoint()
	p.leaf(syntax.KindDeclReferenceExpr)
	if p.cur() == "<" && !p.spaceBefore(p.pos) && p.looksLikeGenericArgs(p.pos) {
		p.b.OpenAt(cp, syntax.KindGenericSpecializationExpr)
		p.parseGenericArgumentClause()
		p.b.Close()
	}
}

func (p *parser) parsePostfix(cp int, ctx exprCtx) {
	for !p.eof() {
		switch {
		case p.at(syntax.TokenPeriod) && (p.isName(p.pos+1) || p.kindAt(p.pos+1) == syntax.TokenIntegerLiteral):
			p.b.OpenAt(cp, syntax.KindMemberAccessExpr)
			p.bump()
			p.bump()
			p.b.Close()
			if p.cur() == "<" && !p.spaceBefore(p.pos) && p.looksLikeGenericArgs(p.pos) {
				p.b.OpenAt(cp, syntax.KindGenericSpecializationExpr)
				p.parseGenericArgumentClause()
				p.b.Close()
			}
		case p.at(syntax.TokenLeftParen) && !p.startsLine(p.pos):
			p.b.OpenAt(cp, syntax.KindFunctionCallExpr)
			p.bump()
			p.parseLabeledList(syntax.TokenRightParen)
			p.bumpIf(syntax.TokenRightParen)
			if p.canTrailingClosure(ctx) {
				p.parseTrailingClosures()
			}
			p.b.Close()
		case p.at(syntax.TokenLeftSquare) && !p.spaceBefore(p.pos):
			p.b.OpenAt(cp, syntax.KindSubscriptCallExpr)
			p.bump()
			p.parseLabeledList(syntax.TokenRightSquare)
			p.bumpIf(syntax.TokenRightSquare)
			p.b.Close()
		case p.canTrailingClosure(ctx):
			p.b.OpenAt(cp, syntax.KindFunctionCallExpr)
			p.parseTrailingClosures()
			p.b.Close()
		case p.at(syntax.TokenPostfixQuestion):
			p.b.OpenAt(cp, syntax.KindOptionalChainingExpr)
			p.bump()
			p.b.Close()
		case p.at(syntax.TokenExclamation):
			p.b.OpenAt(cp, syntax.KindForceUnwrapExpr)
			p.bump()
			p.b.Close()
		case p.at(syntax.TokenPostfixOperator):
			p.b.OpenAt(cp, syntax.KindPostfixOperatorExpr)
			p.bump()
			p.b.Close()
		default:
			return
		}
	}
}

// canTrailingClosure reports whether a `{` on the same line starts a trailing closure.
func (p *parser) canTrailingClosure(ctx exprCtx) bool {
	if ctx.noTrailingClosure || !p.at(syntax.TokenLeftBrace) || p.startsLine(p.pos) {
		return false
	}
	// `var x = 0 { didSet { } }` is an accessor block, not a closure.
	next := p.textAt(p.pos + 1)
	return next != "willSet" && next != "didSet"
}

func (p *parser) parseTrailingClosures() {
	p.parseClosure()
	// Additional labeled trailing closures: `} label: { ... }`.
	for p.isName(p.pos) && p.kindAt(p.pos+1) == syntax.TokenColon && p.kindAt(p.pos+2) == syntax.TokenLeftBrace {
		p.b.Open(syntax.KindLabeledExpr)
		p.bump()
		p.bump()
		p.parseClosure()
		p.b.Close()
	}
}

// parseLabeledList parses `label: expr, expr, ...` up to (not including) the closer.
func (p *parser) parseLabeledList(closer syntax.TokenKind) {
	for !p.eof() && !p.at(closer) {
		start := p.pos
		p.b.Open(syntax.KindLabeledExpr)
		if p.isName(p.pos) && p.kindAt(p.pos+1) == syntax.TokenColon {
			p.bump()
			p.bump()
		}
		p.parseExpr(exprCtx{})
		p.bumpIf(syntax.TokenComma)
		p.b.Close()
		if p.pos == start {
			if p.at(syntax.TokenRightBrace) {
				return
			}
			p.bump()
		}
	}
}

func (p *parser) parseCollection() {
	cp := p.b.Checkpoint()
	p.bump() // [
	kind := syntax.KindArrayExpr

	if p.at(syntax.TokenColon) && p.kindAt(p.pos+1) == syntax.TokenRightSquare {
		p.bump()
		kind = syntax.KindDictionaryExpr
	}
	for !p.eof() && !p.at(syntax.TokenRightSquare) {
		start := p.pos
		elem := p.b.Checkpoint()
		p.parseExpr(exprCtx{})
		if p.at(syntax.TokenColon) {
			kind = syntax.KindDictionaryExpr
			p.b.OpenAt(elem, syntax.KindDictionaryElement)
			p.bump()
			p.parseExpr(exprCtx{})
			p.bumpIf(syntax.TokenComma)
			p.b.Close()
		} else {
			p.bumpIf(syntax.TokenComma)
		}
		if p.pos == start {
			if p.at(syntax.TokenRightBrace) {
				break
			}
			p.bump()
		}
	}
	p.bumpIf(syntax.TokenRightSquare)
	p.b.OpenAt(cp, kind)
	p.b.Close()
}

func (p *parser) parseClosure() {
	p.b.Open(syntax.KindClosureExpr)
	p.bump() // {
	if end, ok := p.closureSignatureEnd(); ok {
		p.b.Open(syntax.KindClosureSignature)
		for p.pos <= end {
			p.bump()
		}
		p.b.Close()
	}
	p.parseItems()
	p.bumpIf(syntax.TokenRightBrace)
	p.b.Close()
}

// closureSignatureEnd finds the `in` ending a closure signature such as
// `{ [weak self] (a: Int) -> Int in`.
func (p *parser) closureSignatureEnd() (int, bool) {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.kindAt(i) {
		case syntax.TokenLeftParen, syntax.TokenLeftSquare:
			depth++
		case syntax.TokenRightParen, syntax.TokenRightSquare:
			depth--
			if depth < 0 {
				return 0, false
			}
		case syntax.TokenKeyword:
			switch p.textAt(i) {
			case "in":
				if depth == 0 {
					return i, true
				}
			case "self", "Self", "Any", "throws", "inout", "rethrows":
			default:
				return 0, false
			}
		case syntax.TokenIdentifier, syntax.TokenComma, syntax.TokenColon, syntax.TokenArrow,
			syntax.TokenPeriod, syntax.TokenPostfixQuestion, syntax.TokenExclamation, syntax.TokenAt:
		case syntax.TokenEqual:
			if depth == 0 {
				return 0, false
			}
		case syntax.TokenOperator:
			// Generic arguments in parameter types.
			if text := p.textAt(i); text != "<" && text != ">" {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	return 0, false
}

func (p *parser) parseKeyPath() {
	p.b.Open(syntax.KindKeyPathExpr)
	p.bump() // \
	if p.kind() == syntax.TokenIdentifier && !p.spaceBefore(p.pos) {
		p.bump()
	}
	for !p.eof() && !p.spaceBefore(p.pos) {
		switch {
		case p.at(syntax.TokenPeriod) && (p.isName(p.pos+1) || p.kindAt(p.pos+1) == syntax.TokenIntegerLiteral):
			p.bump()
			p.bump()
		case p.at(syntax.TokenPostfixQuestion) || p.at(syntax.TokenExclamation):
			p.bump()
		case p.at(syntax.TokenLeftSquare):
			p.skipBalanced()
		default:
			p.b.Close()
			return
		}
	}
	p.b.Close()
}
