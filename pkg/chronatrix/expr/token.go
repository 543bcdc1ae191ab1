package expr

import (
	"fmt"
	"strings"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokString
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
	tokEQ // ==
	tokNE // !=
	tokLT
	tokLE
	tokGT
	tokGE
	tokAnd
	tokOr
	tokNot
	tokIs
	tokNull
	tokTrue
	tokFalse
)

type token struct {
	typ tokenType
	lit string
	pos int
}

// keywords are the reserved identifiers of the language, lowercase only.
var keywords = map[string]tokenType{
	"and":   tokAnd,
	"or":    tokOr,
	"not":   tokNot,
	"is":    tokIs,
	"null":  tokNull,
	"true":  tokTrue,
	"false": tokFalse,
}

// tokenize splits text into tokens. Any character outside the allowed
// lexicon (assignment '=', '.', '[', etc.) is a rejection.
func tokenize(text string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '+':
			toks = append(toks, token{tokPlus, "+", i})
			i++
		case c == '-':
			toks = append(toks, token{tokMinus, "-", i})
			i++
		case c == '*':
			toks = append(toks, token{tokStar, "*", i})
			i++
		case c == '/':
			toks = append(toks, token{tokSlash, "/", i})
			i++
		case c == '=':
			if i+1 < len(text) && text[i+1] == '=' {
				toks = append(toks, token{tokEQ, "==", i})
				i += 2
			} else {
				// Bare '=' is assignment, which the language does not have.
				return nil, fmt.Errorf("assignment at offset %d", i)
			}
		case c == '!':
			if i+1 < len(text) && text[i+1] == '=' {
				toks = append(toks, token{tokNE, "!=", i})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '!' at offset %d", i)
			}
		case c == '<':
			if i+1 < len(text) && text[i+1] == '=' {
				toks = append(toks, token{tokLE, "<=", i})
				i += 2
			} else {
				toks = append(toks, token{tokLT, "<", i})
				i++
			}
		case c == '>':
			if i+1 < len(text) && text[i+1] == '=' {
				toks = append(toks, token{tokGE, ">=", i})
				i += 2
			} else {
				toks = append(toks, token{tokGT, ">", i})
				i++
			}
		case c == '\'' || c == '"':
			end := strings.IndexByte(text[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			toks = append(toks, token{tokString, text[i+1 : i+1+end], i})
			i += end + 2
		case c >= '0' && c <= '9':
			j := i
			for j < len(text) && text[j] >= '0' && text[j] <= '9' {
				j++
			}
			if j < len(text) && text[j] == '.' {
				j++
				if j >= len(text) || text[j] < '0' || text[j] > '9' {
					return nil, fmt.Errorf("malformed number at offset %d", i)
				}
				for j < len(text) && text[j] >= '0' && text[j] <= '9' {
					j++
				}
			}
			toks = append(toks, token{tokNumber, text[i:j], i})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			word := text[i:j]
			if kw, ok := keywords[word]; ok {
				toks = append(toks, token{kw, word, i})
			} else {
				toks = append(toks, token{tokIdent, word, i})
			}
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	toks = append(toks, token{tokEOF, "", len(text)})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
