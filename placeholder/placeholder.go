// Package placeholder parses the interpolation and pluralization markup
// used in translation strings.
//
// The grammar is the ICU-flavored subset Lokalise produces:
//
//	Hello, {name}!                          simple placeholder (string)
//	{count:number} items                    placeholder with a type hint
//	{count, plural, one {# item} other {# items}}
//
// A placeholder opens with '{' and names a variable, optionally followed
// by ':string' or ':number'. A plural block names its controlling variable,
// the 'plural' keyword, and one '{...}' branch per plural category. Inside
// a plural branch '#' stands for the controlling number; anywhere else it
// is literal text. Plural blocks do not nest and at most one may appear
// per string; every plural block must carry an 'other' branch. Backslash
// escapes '{', '}', '#' and itself.
package placeholder

import (
	"fmt"
	"strings"
)

// Kind identifies the kind of a parsed token.
type Kind int

const (
	// KindLiteral is plain text.
	KindLiteral Kind = iota
	// KindVariable is a named interpolation placeholder.
	KindVariable
	// KindPlural is a plural-selection block.
	KindPlural
	// KindHash is a '#' reference to the controlling number of the
	// enclosing plural block. It only occurs inside plural branches.
	KindHash
)

// ValueKind is the expected kind of a placeholder's runtime value.
type ValueKind int

const (
	String ValueKind = iota
	Number
)

// String returns the type-hint spelling of the value kind.
func (k ValueKind) String() string {
	if k == Number {
		return "number"
	}
	return "string"
}

// Categories lists the recognized plural category keywords in their
// canonical CLDR order.
var Categories = []string{"zero", "one", "two", "few", "many", "other"}

// Token is one parsed unit of a translation string.
type Token struct {
	Kind Kind

	// Text holds the literal text for KindLiteral.
	Text string

	// Name is the variable name for KindVariable and the controlling
	// variable for KindPlural.
	Name string

	// Hint is the value kind for KindVariable.
	Hint ValueKind

	// Branches maps plural category keywords to their token sequences
	// for KindPlural. Only categories present in the source appear.
	Branches map[string][]Token
}

// ParseError reports a malformed placeholder, naming the byte offset of
// the construct that failed.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Parse tokenizes one raw translation string. The returned sequence
// alternates literals and placeholders in source order; it is empty for
// an empty input. The error, if any, is a *ParseError.
func Parse(s string) ([]Token, error) {
	p := &parser{src: s, hinted: make(map[string]ValueKind)}
	tokens, err := p.sequence(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		// An unbalanced '}' at top level.
		return nil, &ParseError{Offset: p.pos, Msg: "unexpected '}'"}
	}
	p.resolveHints(tokens)
	return tokens, nil
}

type parser struct {
	src string
	pos int

	// hinted records value kinds fixed by explicit hints or by use as a
	// plural controlling variable, for conflict detection.
	hinted map[string]ValueKind

	// pluralSeen guards the one-plural-block-per-string policy.
	pluralSeen bool
}

// sequence parses tokens until end of input, or until an unescaped '}'
// when inBranch is set (the brace is left for the caller to consume).
func (p *parser) sequence(inBranch bool) ([]Token, error) {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: KindLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return nil, &ParseError{Offset: p.pos, Msg: "dangling escape at end of string"}
			}
			lit.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case '{':
			flush()
			tok, err := p.placeholder(inBranch)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case '}':
			if inBranch {
				flush()
				return tokens, nil
			}
			return nil, &ParseError{Offset: p.pos, Msg: "unexpected '}'"}
		case '#':
			if inBranch {
				flush()
				tokens = append(tokens, Token{Kind: KindHash})
				p.pos++
			} else {
				lit.WriteByte(c)
				p.pos++
			}
		default:
			lit.WriteByte(c)
			p.pos++
		}
	}

	if inBranch {
		return nil, &ParseError{Offset: len(p.src), Msg: "plural branch is never closed"}
	}
	flush()
	return tokens, nil
}

// placeholder parses one '{...}' construct, with p.pos on the '{'.
func (p *parser) placeholder(inBranch bool) (Token, error) {
	start := p.pos
	p.pos++ // consume '{'
	p.skipSpaces()

	name := p.ident()
	if name == "" {
		return Token{}, &ParseError{Offset: start, Msg: "placeholder has no variable name"}
	}
	p.skipSpaces()

	if p.pos >= len(p.src) {
		return Token{}, &ParseError{Offset: start, Msg: "placeholder is never closed"}
	}

	switch p.src[p.pos] {
	case '}':
		p.pos++
		return Token{Kind: KindVariable, Name: name}, nil

	case ':':
		p.pos++
		hint := p.ident()
		var kind ValueKind
		switch hint {
		case "string":
			kind = String
		case "number":
			kind = Number
		default:
			return Token{}, &ParseError{Offset: start, Msg: fmt.Sprintf("unknown type hint %q (want string or number)", hint)}
		}
		p.skipSpaces()
		if p.pos >= len(p.src) || p.src[p.pos] != '}' {
			return Token{}, &ParseError{Offset: start, Msg: "placeholder is never closed"}
		}
		p.pos++
		if err := p.fixHint(name, kind, start); err != nil {
			return Token{}, err
		}
		return Token{Kind: KindVariable, Name: name, Hint: kind}, nil

	case ',':
		return p.plural(name, start, inBranch)

	default:
		return Token{}, &ParseError{Offset: p.pos, Msg: fmt.Sprintf("unexpected %q in placeholder (want '}', ':' or ',')", p.src[p.pos])}
	}
}

// plural parses the remainder of a plural block, with p.pos on the ','
// after the controlling variable name.
func (p *parser) plural(ctrl string, start int, inBranch bool) (Token, error) {
	if inBranch {
		return Token{}, &ParseError{Offset: start, Msg: "plural blocks do not nest"}
	}
	if p.pluralSeen {
		return Token{}, &ParseError{Offset: start, Msg: "more than one plural block in a single string"}
	}

	p.pos++ // consume ','
	p.skipSpaces()
	if kw := p.ident(); kw != "plural" {
		return Token{}, &ParseError{Offset: start, Msg: fmt.Sprintf("unknown placeholder form %q (want plural)", kw)}
	}
	p.skipSpaces()
	if p.pos >= len(p.src) || p.src[p.pos] != ',' {
		return Token{}, &ParseError{Offset: start, Msg: "plural block has no category branches"}
	}
	p.pos++

	branches := make(map[string][]Token)
	for {
		p.skipSpaces()
		if p.pos >= len(p.src) {
			return Token{}, &ParseError{Offset: start, Msg: "plural block is never closed"}
		}
		if p.src[p.pos] == '}' {
			p.pos++
			break
		}

		catStart := p.pos
		cat := p.ident()
		if cat == "" {
			return Token{}, &ParseError{Offset: catStart, Msg: "expected a plural category keyword"}
		}
		if !isCategory(cat) {
			return Token{}, &ParseError{Offset: catStart, Msg: fmt.Sprintf("unrecognized plural category %q", cat)}
		}
		if _, dup := branches[cat]; dup {
			return Token{}, &ParseError{Offset: catStart, Msg: fmt.Sprintf("plural category %q appears twice", cat)}
		}

		p.skipSpaces()
		if p.pos >= len(p.src) || p.src[p.pos] != '{' {
			return Token{}, &ParseError{Offset: catStart, Msg: fmt.Sprintf("plural category %q has no '{' branch", cat)}
		}
		p.pos++
		seq, err := p.sequence(true)
		if err != nil {
			return Token{}, err
		}
		// sequence(true) stops on the closing brace without consuming it.
		if p.pos >= len(p.src) || p.src[p.pos] != '}' {
			return Token{}, &ParseError{Offset: catStart, Msg: fmt.Sprintf("plural category %q is never closed", cat)}
		}
		p.pos++
		branches[cat] = seq
	}

	if _, ok := branches["other"]; !ok {
		return Token{}, &ParseError{Offset: start, Msg: "plural block has no 'other' branch"}
	}
	if err := p.fixHint(ctrl, Number, start); err != nil {
		return Token{}, err
	}

	p.pluralSeen = true
	return Token{Kind: KindPlural, Name: ctrl, Branches: branches}, nil
}

// fixHint pins the value kind of a variable name and reports a conflict
// with a previously pinned kind.
func (p *parser) fixHint(name string, kind ValueKind, offset int) error {
	if prev, ok := p.hinted[name]; ok && prev != kind {
		return &ParseError{Offset: offset, Msg: fmt.Sprintf("conflicting type hints for %q (%s vs %s)", name, prev, kind)}
	}
	p.hinted[name] = kind
	return nil
}

// resolveHints back-fills the kind of unhinted variable occurrences once
// the whole string is parsed, so {count} after {count, plural, ...} ends
// up a number rather than the string default.
func (p *parser) resolveHints(tokens []Token) {
	for i := range tokens {
		switch tokens[i].Kind {
		case KindVariable:
			if k, ok := p.hinted[tokens[i].Name]; ok {
				tokens[i].Hint = k
			}
		case KindPlural:
			for _, cat := range Categories {
				if seq, ok := tokens[i].Branches[cat]; ok {
					p.resolveHints(seq)
				}
			}
		}
	}
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// ident consumes a [A-Za-z_][A-Za-z0-9_]* run and returns it.
func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(p.pos > start && c >= '0' && c <= '9')
		if !ok {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func isCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
