// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathexpr

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// TOKENS
// ============================================================================

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind  tokenKind
	value float64 // set for tokNumber
	text  string
	pos   int // rune offset in the input
}

// ============================================================================
// LEXER
// ============================================================================

// lex tokenizes the expression. Any rune outside the restricted grammar
// aborts with a SecurityError; identifiers are consumed whole so the error
// names the full offending word, not just its first character.
func lex(input string) ([]token, error) {
	runes := []rune(input)
	tokens := make([]token, 0, len(runes))

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			tok, next, err := lexNumber(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case r == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++
		case r == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++
		case r == '*':
			tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
			i++
		case r == '/':
			tokens = append(tokens, token{kind: tokSlash, text: "/", pos: i})
			i++
		case r == '%':
			tokens = append(tokens, token{kind: tokPercent, text: "%", pos: i})
			i++
		case r == '^':
			tokens = append(tokens, token{kind: tokCaret, text: "^", pos: i})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, &SecurityError{Token: offendingToken(runes, i), Pos: i}
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}

// lexNumber scans an integer, decimal, or scientific-notation literal
// starting at position i.
func lexNumber(runes []rune, i int) (token, int, error) {
	start := i
	for i < len(runes) && (isDigit(runes[i]) || runes[i] == '.') {
		i++
	}
	// Optional exponent: e or E, optional sign, then digits. The exponent
	// marker is only consumed when digits actually follow, so "2e" lexes
	// as the number 2 followed by a disallowed identifier.
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		if j < len(runes) && isDigit(runes[j]) {
			for j < len(runes) && isDigit(runes[j]) {
				j++
			}
			i = j
		}
	}

	text := string(runes[start:i])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, 0, &EvalError{Pos: start, Msg: "malformed number " + strconv.Quote(text)}
	}
	return token{kind: tokNumber, value: value, text: text, pos: start}, i, nil
}

// offendingToken extracts the full word or symbol at position i for error
// reporting. Letters and underscores are grouped so "__import__" is
// reported whole.
func offendingToken(runes []rune, i int) string {
	r := runes[i]
	if !unicode.IsLetter(r) && r != '_' {
		return string(r)
	}
	j := i
	for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
		j++
	}
	return string(runes[i:j])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ============================================================================
// PARSER / EVALUATOR
// ============================================================================

// parser is a recursive-descent parser that evaluates as it goes. The
// grammar, lowest precedence first:
//
//	expr    := term (('+' | '-') term)*
//	term    := power (('*' | '/' | '%') power)*
//	power   := unary ('^' power)?          right-associative
//	unary   := '-' unary | primary
//	primary := NUMBER | '(' expr ')'
type parser struct {
	tokens []token
	pos    int
}

// Eval parses and evaluates an arithmetic expression.
//
// It returns ErrEmpty for blank input, a SecurityError for any token
// outside the grammar, an EvalError for malformed syntax, and a
// DomainError for division by zero or a non-finite result. Evaluation is
// pure: no state survives the call.
func Eval(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}

	tokens, err := lex(expr)
	if err != nil {
		return 0, err
	}
	if tokens[0].kind == tokEOF {
		return 0, ErrEmpty
	}

	p := &parser{tokens: tokens}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return 0, &EvalError{Pos: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text)}
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, &DomainError{Msg: "result is not a finite number"}
	}
	return value, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokSlash:
			p.next()
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, &DomainError{Op: "/", Msg: "division by zero"}
			}
			left /= right
		case tokPercent:
			p.next()
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, &DomainError{Op: "%", Msg: "modulo by zero"}
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	// Right-associative: 2^3^2 = 2^(3^2) = 512.
	exp, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	result := math.Pow(base, exp)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, &DomainError{Op: "^", Msg: "result is not a finite number"}
	}
	return result, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek().kind == tokMinus {
		p.next()
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return tok.value, nil
	case tokLParen:
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return 0, &EvalError{Pos: closing.pos, Msg: "expected closing parenthesis"}
		}
		return value, nil
	case tokEOF:
		return 0, &EvalError{Pos: tok.pos, Msg: "unexpected end of expression"}
	default:
		return 0, &EvalError{Pos: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text)}
	}
}

// ============================================================================
// RESULT FORMATTING
// ============================================================================

// FormatResult renders a computed value with up to 6 significant digits,
// trailing zeros trimmed. Integral results print without a decimal point:
// 1280 -> "1280", 1.5 -> "1.5", 2/3 -> "0.666667".
func FormatResult(v float64) string {
	if v == 0 {
		// Avoid "-0" from negative-zero results.
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
