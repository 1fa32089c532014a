// SPDX-License-Identifier: MIT

package ltlf

import (
	"fmt"
	"strings"
	"unicode"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokOperand
	tokUnary
	tokBinary
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

// binary operator table: precedence (higher binds tighter) and associativity.
var binaryOps = map[string]struct {
	prec  int
	right bool
	build func(l, r Formula) Formula
}{
	"<->": {1, true, func(l, r Formula) Formula { return Iff{l, r} }},
	"<=>": {1, true, func(l, r Formula) Formula { return Iff{l, r} }},
	"->":  {2, true, func(l, r Formula) Formula { return Implies{l, r} }},
	"=>":  {2, true, func(l, r Formula) Formula { return Implies{l, r} }},
	"|":   {3, false, func(l, r Formula) Formula { return Or{l, r} }},
	"||":  {3, false, func(l, r Formula) Formula { return Or{l, r} }},
	"&":   {4, false, func(l, r Formula) Formula { return And{l, r} }},
	"&&":  {4, false, func(l, r Formula) Formula { return And{l, r} }},
	"U":   {5, true, func(l, r Formula) Formula { return Until{l, r} }},
	"R":   {5, true, func(l, r Formula) Formula { return Release{l, r} }},
}

const unaryPrec = 6

var unaryOps = map[string]func(Formula) Formula{
	"!":  func(f Formula) Formula { return Not{f} },
	"~":  func(f Formula) Formula { return Not{f} },
	"X":  func(f Formula) Formula { return Next{f} },
	"WX": func(f Formula) Formula { return WeakNext{f} },
	"N":  func(f Formula) Formula { return WeakNext{f} },
	"F":  func(f Formula) Formula { return Eventually{f} },
	"G":  func(f Formula) Formula { return Always{f} },
}

// symbolic operators, longest first so "<->" wins over "<" prefixes.
var symbols = []string{"<->", "<=>", "->", "=>", "||", "&&", "|", "&", "!", "~", "(", ")"}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		if unicode.IsSpace(c) {
			i++
			continue
		}
		if c == '_' || unicode.IsLetter(c) {
			j := i
			for j < len(src) && (src[j] == '_' || unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j]))) {
				j++
			}
			word := src[i:j]
			switch {
			case word == "U" || word == "R":
				toks = append(toks, token{tokBinary, word, i})
			case unaryOps[word] != nil:
				toks = append(toks, token{tokUnary, word, i})
			default:
				toks = append(toks, token{tokOperand, word, i})
			}
			i = j
			continue
		}
		matched := false
		for _, sym := range symbols {
			if strings.HasPrefix(src[i:], sym) {
				kind := tokBinary
				switch sym {
				case "(":
					kind = tokLParen
				case ")":
					kind = tokRParen
				case "!", "~":
					kind = tokUnary
				}
				toks = append(toks, token{kind, sym, i})
				i += len(sym)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, i)
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

func operand(word string) Formula {
	switch word {
	case "true":
		return True{}
	case "false":
		return False{}
	case "last":
		return Last{}
	}
	return Atom{Name: word}
}

// Parse reads a formula in the surface syntax:
//
//	atoms      a, req_1, ...        constants  true, false, last
//	unary      ! ~ X WX N F G       binary     U R & && | || -> => <-> <=>
//
// Binary precedence from loosest to tightest: <->, ->, |, &, then U and R.
// <->, -> , U and R associate to the right. Unary operators bind tightest.
// Parsing uses explicit operand and operator stacks, so nesting depth does
// not grow the call stack.
func Parse(src string) (Formula, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	var (
		out []Formula
		ops []token
	)
	apply := func(op token) error {
		if op.kind == tokUnary {
			if len(out) < 1 {
				return fmt.Errorf("%w: %q lacks an operand at offset %d", ErrSyntax, op.text, op.pos)
			}
			out[len(out)-1] = unaryOps[op.text](out[len(out)-1])
			return nil
		}
		if len(out) < 2 {
			return fmt.Errorf("%w: %q lacks an operand at offset %d", ErrSyntax, op.text, op.pos)
		}
		l, r := out[len(out)-2], out[len(out)-1]
		out = out[:len(out)-2]
		out = append(out, binaryOps[op.text].build(l, r))
		return nil
	}
	prec := func(op token) int {
		if op.kind == tokUnary {
			return unaryPrec
		}
		return binaryOps[op.text].prec
	}

	expectOperand := true
	for _, tk := range toks {
		if expectOperand {
			switch tk.kind {
			case tokOperand:
				out = append(out, operand(tk.text))
				expectOperand = false
			case tokUnary, tokLParen:
				ops = append(ops, tk)
			case tokEOF:
				return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
			default:
				return nil, fmt.Errorf("%w: expected operand, got %q at offset %d", ErrSyntax, tk.text, tk.pos)
			}
			continue
		}

		switch tk.kind {
		case tokBinary:
			info := binaryOps[tk.text]
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind == tokLParen {
					break
				}
				if p := prec(top); p > info.prec || (p == info.prec && !info.right) {
					if err := apply(top); err != nil {
						return nil, err
					}
					ops = ops[:len(ops)-1]
					continue
				}
				break
			}
			ops = append(ops, tk)
			expectOperand = true
		case tokRParen:
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokLParen {
					found = true
					break
				}
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: unbalanced ')' at offset %d", ErrSyntax, tk.pos)
			}
		case tokEOF:
		default:
			return nil, fmt.Errorf("%w: expected operator, got %q at offset %d", ErrSyntax, tk.text, tk.pos)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == tokLParen {
			return nil, fmt.Errorf("%w: unbalanced '(' at offset %d", ErrSyntax, top.pos)
		}
		if err := apply(top); err != nil {
			return nil, err
		}
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: dangling operands", ErrSyntax)
	}
	return out[0], nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(src string) Formula {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}
