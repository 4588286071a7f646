// Package formula parses textual chemical-formula notation into a nested
// tree and aggregates per-element atom counts from it.
//
// # Usage
//
//	g, err := formula.Parse("K4[ON(SO3)2]2")
//	if err != nil {
//	    // handle error
//	}
//	counts := g.AtomCounts()
//
// # Grammar Overview
//
// The parser implements a recursive descent parser over a single
// left-to-right cursor with no backtracking:
//
//	formula     → coefficient? term*
//	term        → symbol coefficient?
//	            | open formula close coefficient?
//	symbol      → UPPER lower*
//	coefficient → digit+            (defaults to 1 when absent)
//
// Bracket pairs are (), [] and {}. Nested brackets of the same type are
// tracked so the matching close is found correctly.
package formula

import "fmt"

// parser is a single scanning cursor over the formula text.
type parser struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// Parse converts a formula string into a Group tree. It fails with a
// *MalformedFormulaError when the input is empty, contains an empty or
// unterminated bracket pair, or contains a character the grammar does not
// recognize.
func Parse(text string) (*Group, error) {
	p := &parser{input: text}
	p.readChar()
	p.skipSpace()
	if p.ch == 0 {
		return nil, &MalformedFormulaError{Offset: 0, Message: errEmptyInput}
	}
	return p.parseFormula(0)
}

// readChar advances to the next character.
func (p *parser) readChar() {
	if p.readPos >= len(p.input) {
		p.ch = 0 // ASCII NUL = end of input
	} else {
		p.ch = p.input[p.readPos]
	}
	p.pos = p.readPos
	p.readPos++
}

func (p *parser) skipSpace() {
	for p.ch == ' ' || p.ch == '\t' {
		p.readChar()
	}
}

// parseFormula parses coefficient? term* until end of input (close == 0)
// or until the given closing bracket, which is left for the caller to
// consume.
func (p *parser) parseFormula(close byte) (*Group, error) {
	coefficient := p.readCoefficient()

	var children []Node
	for {
		p.skipSpace()
		if p.ch == 0 {
			if close != 0 {
				return nil, p.errorf(errUnterminatedBracket, close)
			}
			break
		}
		if close != 0 && p.ch == close {
			break
		}

		switch {
		case isUpper(p.ch):
			symbol := p.readSymbol()
			mult := p.readCoefficient()
			children = append(children, &Element{Symbol: symbol, Multiplicity: mult})

		case isDigit(p.ch):
			// A digit run with no preceding symbol is consumed as a
			// coefficient and otherwise ignored.
			p.readCoefficient()

		case closingBracket(p.ch) != 0:
			open := p.ch
			p.readChar()
			sub, err := p.parseFormula(closingBracket(open))
			if err != nil {
				return nil, err
			}
			p.readChar() // consume the matching close
			sub.Coefficient = p.readCoefficient()
			sub.Bracketed = true
			children = append(children, sub)

		case isCloseBracket(p.ch):
			return nil, p.errorf(errUnexpectedClose, p.ch)

		default:
			return nil, p.errorf(errUnexpectedChar, p.ch)
		}
	}

	if len(children) == 0 {
		msg := errEmptyInput
		if close != 0 {
			msg = errEmptyBrackets
		}
		return nil, &MalformedFormulaError{Offset: p.pos, Message: msg}
	}
	return &Group{Coefficient: coefficient, Children: children}, nil
}

// readSymbol reads an element symbol: one uppercase letter plus any
// following lowercase letters.
func (p *parser) readSymbol() string {
	start := p.pos
	p.readChar()
	for isLower(p.ch) {
		p.readChar()
	}
	return p.input[start:p.pos]
}

// readCoefficient reads an optional run of digits, defaulting to 1.
func (p *parser) readCoefficient() int {
	if !isDigit(p.ch) {
		return 1
	}
	n := 0
	for isDigit(p.ch) {
		n = n*10 + int(p.ch-'0')
		p.readChar()
	}
	return n
}

func (p *parser) errorf(format string, ch byte) *MalformedFormulaError {
	return &MalformedFormulaError{Offset: p.pos, Message: fmt.Sprintf(format, ch)}
}

// closingBracket returns the matching close for an open bracket, or 0.
func closingBracket(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

func isCloseBracket(ch byte) bool {
	return ch == ')' || ch == ']' || ch == '}'
}

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }
func isLower(ch byte) bool { return ch >= 'a' && ch <= 'z' }
func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
