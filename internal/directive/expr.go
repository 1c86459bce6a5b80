package directive

import "strings"

// evalExpr evaluates the small boolean expression language accepted by
// {$IF}/{$ELSEIF}:
//
//	expr       := disjunction
//	disjunction:= conjunction ( 'OR' conjunction )*
//	conjunction:= unary ( 'AND' unary )*
//	unary      := 'NOT' unary | primary
//	primary    := 'DEFINED(' name ')' | 'TRUE' | 'FALSE' | int relop int | symbol_name
//
// Unparseable expressions evaluate to false rather than raising an error,
// matching the spec's stated fallback.
func (e *Evaluator) evalExpr(src string) bool {
	toks := tokenizeIfExpr(src)
	p := &ifParser{toks: toks, eval: e}
	v, ok := p.disjunction()
	if !ok || p.pos != len(p.toks) {
		return false
	}
	return v
}

type ifTokKind int

const (
	ifEOF ifTokKind = iota
	ifIdent
	ifInt
	ifOr
	ifAnd
	ifNot
	ifDefined
	ifTrue
	ifFalse
	ifLParen
	ifRParen
	ifRelop
)

type ifTok struct {
	kind  ifTokKind
	text  string
	ival  int
	relop string
}

func tokenizeIfExpr(src string) []ifTok {
	var toks []ifTok
	i, n := 0, len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, ifTok{kind: ifLParen})
			i++
		case c == ')':
			toks = append(toks, ifTok{kind: ifRParen})
			i++
		case c == '>' || c == '<' || c == '=' || c == '!':
			start := i
			i++
			if i < n && (src[i] == '=' || (c == '<' && src[i] == '>')) {
				i++
			}
			toks = append(toks, ifTok{kind: ifRelop, relop: src[start:i]})
		case c >= '0' && c <= '9':
			start := i
			for i < n && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			v := 0
			for _, d := range src[start:i] {
				v = v*10 + int(d-'0')
			}
			toks = append(toks, ifTok{kind: ifInt, text: src[start:i], ival: v})
		case isIfIdentStart(c):
			start := i
			for i < n && isIfIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			toks = append(toks, classifyIfWord(word))
		default:
			i++ // skip unrecognised byte; caller falls back to "unparseable -> false"
		}
	}
	return toks
}

func isIfIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIfIdentPart(c byte) bool {
	return isIfIdentStart(c) || (c >= '0' && c <= '9')
}

func classifyIfWord(word string) ifTok {
	switch strings.ToUpper(word) {
	case "OR":
		return ifTok{kind: ifOr, text: word}
	case "AND":
		return ifTok{kind: ifAnd, text: word}
	case "NOT":
		return ifTok{kind: ifNot, text: word}
	case "DEFINED":
		return ifTok{kind: ifDefined, text: word}
	case "TRUE":
		return ifTok{kind: ifTrue, text: word}
	case "FALSE":
		return ifTok{kind: ifFalse, text: word}
	default:
		return ifTok{kind: ifIdent, text: word}
	}
}

type ifParser struct {
	toks []ifTok
	pos  int
	eval *Evaluator
}

func (p *ifParser) cur() (ifTok, bool) {
	if p.pos >= len(p.toks) {
		return ifTok{kind: ifEOF}, false
	}
	return p.toks[p.pos], true
}

func (p *ifParser) advance() { p.pos++ }

func (p *ifParser) disjunction() (bool, bool) {
	v, ok := p.conjunction()
	if !ok {
		return false, false
	}
	for {
		t, has := p.cur()
		if !has || t.kind != ifOr {
			break
		}
		p.advance()
		rhs, ok := p.conjunction()
		if !ok {
			return false, false
		}
		v = v || rhs
	}
	return v, true
}

func (p *ifParser) conjunction() (bool, bool) {
	v, ok := p.unary()
	if !ok {
		return false, false
	}
	for {
		t, has := p.cur()
		if !has || t.kind != ifAnd {
			break
		}
		p.advance()
		rhs, ok := p.unary()
		if !ok {
			return false, false
		}
		v = v && rhs
	}
	return v, true
}

func (p *ifParser) unary() (bool, bool) {
	t, has := p.cur()
	if has && t.kind == ifNot {
		p.advance()
		v, ok := p.unary()
		if !ok {
			return false, false
		}
		return !v, true
	}
	return p.primary()
}

func (p *ifParser) primary() (bool, bool) {
	t, has := p.cur()
	if !has {
		return false, false
	}
	switch t.kind {
	case ifDefined:
		p.advance()
		if tk, ok := p.cur(); !ok || tk.kind != ifLParen {
			return false, false
		}
		p.advance()
		nameTok, ok := p.cur()
		if !ok || nameTok.kind != ifIdent {
			return false, false
		}
		p.advance()
		if tk, ok := p.cur(); !ok || tk.kind != ifRParen {
			return false, false
		}
		p.advance()
		return p.eval.IsDefined(nameTok.text), true
	case ifTrue:
		p.advance()
		return true, true
	case ifFalse:
		p.advance()
		return false, true
	case ifInt:
		left := t.ival
		p.advance()
		relTok, ok := p.cur()
		if !ok || relTok.kind != ifRelop {
			return false, false
		}
		p.advance()
		rightTok, ok := p.cur()
		if !ok || rightTok.kind != ifInt {
			return false, false
		}
		p.advance()
		return compareInts(left, relTok.relop, rightTok.ival), true
	case ifIdent:
		p.advance()
		return p.eval.IsDefined(t.text), true
	case ifLParen:
		p.advance()
		v, ok := p.disjunction()
		if !ok {
			return false, false
		}
		if tk, ok := p.cur(); !ok || tk.kind != ifRParen {
			return false, false
		}
		p.advance()
		return v, true
	default:
		return false, false
	}
}

func compareInts(a int, op string, b int) bool {
	switch op {
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case "<>", "!=":
		return a != b
	case "==", "=":
		return a == b
	case ">":
		return a > b
	case "<":
		return a < b
	default:
		return false
	}
}
