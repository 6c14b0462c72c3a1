package swift

import "github.com/yaklabco/swiftlint-go/pkg/syntax"

// parseType parses a type and its postfix forms (`?`, `!`, `.Member`).
func (p *parser) parseType() {
	cp := p.b.Checkpoint()

	switch {
	case p.at(syntax.TokenAt) || p.atText("inout") || p.atText("borrowing") || p.atText("consuming") ||
		p.atText("sending"):
		p.b.Open(syntax.KindAttributedType)
		for p.at(syntax.TokenAt) || p.atText("inout") || p.atText("borrowing") ||
			p.atText("consuming") || p.atText("sending") {
			if p.at(syntax.TokenAt) {
				p.parseAttribute()
			} else {
				p.bump()
			}
		}
		p.parseType()
		p.b.Close()
		return
	case (p.atText("some") || p.atText("any")) && p.isName(p.pos+1) && !p.startsLine(p.pos+1):
		p.b.Open(syntax.KindSomeOrAnyType)
		p.bump()
		p.parseType()
		p.b.Close()
		return
	case p.at(syntax.TokenLeftSquare):
		p.bump()
		p.parseType()
		kind := syntax.KindArrayType
		if p.bumpIf(syntax.TokenColon) {
			kind = syntax.KindDictionaryType
			p.parseType()
		}
		p.bumpIf(syntax.TokenRightSquare)
		p.b.OpenAt(cp, kind)
		p.b.Close()
	case p.at(syntax.TokenLeftParen):
		p.parseTupleType()
		p.parseEffects()
		if p.at(syntax.TokenArrow) {
			p.bump()
			p.parseType()
			p.b.OpenAt(cp, syntax.KindFunctionType)
			p.b.Close()
		}
	case p.isName(p.pos):
		p.b.Open(syntax.KindIdentifierType)
		p.bump()
		if p.cur() == "<" && !p.spaceBefore(p.pos) {
			p.parseGenericArgumentClause()
		}
		p.b.Close()
	default:
		return
	}

	for !p.eof() {
		switch {
		case p.at(syntax.TokenPeriod) && p.isName(p.pos+1):
			p.b.OpenAt(cp, syntax.KindMemberType)
			p.bump()
			p.bump()
			if p.cur() == "<" && !p.spaceBefore(p.pos) {
				p.parseGenericArgumentClause()
			}
			p.b.Close()
		case p.at(syntax.TokenPostfixQuestion):
			p.b.OpenAt(cp, syntax.KindOptionalType)
			p.bump()
			p.b.Close()
		case p.at(syntax.TokenExclamation):
			p.b.OpenAt(cp, syntax.KindImplicitlyUnwrappedOptionalType)
			p.bump()
			p.b.Close()
		case p.cur() == "&" && p.isName(p.pos+1):
			// Protocol composition keeps both sides as siblings.
			p.bump()
			p.parseType()
		default:
			return
		}
	}
}

func (p *parser) parseTupleType() {
	p.b.Open(syntax.KindTupleType)
	p.bump() // (
	for !p.eof() && !p.at(syntax.TokenRightParen) {
		start := p.pos
		if p.isName(p.pos) && p.kindAt(p.pos+1) == syntax.TokenColon {
			p.bump()
			p.bump()
		} else if p.isName(p.pos) && p.isName(p.pos+1) && p.kindAt(p.pos+2) == syntax.TokenColon {
			p.bump()
			p.bump()
			p.bump()
		}
		p.parseType()
		if p.cur() == "..." {
			p.bump()
		}
		p.bumpIf(syntax.TokenComma)
		if p.pos == start {
			if p.at(syntax.TokenLeftBrace) || p.at(syntax.TokenRightBrace) {
				break
			}
			p.bump()
		}
	}
	p.bumpIf(syntax.TokenRightParen)
	p.b.Close()
}

func (p *parser) parseGenericArgumentClause() {
	p.b.Open(syntax.KindGenericArgumentClause)
	p.bump() // <
	for !p.eof() && !p.atAngleClose() {
		start := p.pos
		p.b.Open(syntax.KindGenericArgument)
		p.parseType()
		p.bumpIf(syntax.TokenComma)
		p.b.Close()
		if p.pos == start {
			break
		}
	}
	if p.atAngleClose() {
		p.bump()
	}
	p.b.Close()
}

// looksLikeGenericArgs reports whether the `<` at i opens a generic argument
// list in expression position, e.g. `Array<Int>()`, rather than a comparison.
func (p *parser) looksLikeGenericArgs(i int) bool {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.kindAt(i) {
		case syntax.TokenIdentifier, syntax.TokenComma, syntax.TokenColon, syntax.TokenPeriod,
			syntax.TokenLeftSquare, syntax.TokenRightSquare, syntax.TokenPostfixQuestion,
			syntax.TokenExclamation, syntax.TokenArrow, syntax.TokenLeftParen, syntax.TokenRightParen:
			continue
		case syntax.TokenKeyword:
			switch p.textAt(i) {
			case "Any", "Self", "inout":
				continue
			}
			return false
		case syntax.TokenOperator, syntax.TokenPostfixOperator, syntax.TokenPrefixOperator:
			for _, ch := range p.textAt(i) {
				switch ch {
				case '<':
					depth++
				case '>':
					depth--
				case '?', '!', '&':
				default:
					return false
				}
			}
			if depth == 0 {
				return p.genericFollower(i + 1)
			}
			if depth < 0 {
				return false
			}
		default:
			return false
		}
	}
	return false
}

func (p *parser) genericFollower(i int) bool {
	if p.startsLine(i) {
		return true
	}
	switch p.kindAt(i) {
	case syntax.TokenLeftParen, syntax.TokenRightParen, syntax.TokenRightSquare, syntax.TokenRightBrace,
		syntax.TokenComma, syntax.TokenSemicolon, syntax.TokenColon, syntax.TokenPeriod,
		syntax.TokenPostfixQuestion, syntax.TokenExclamation, syntax.TokenEOF, syntax.TokenLeftBrace:
		return true
	}
	return false
}
