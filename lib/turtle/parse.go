// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package turtle

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/podgraph-foundation/podgraph/lib/rdf"
	"github.com/podgraph-foundation/podgraph/lib/vocab"
)

// ParseError reports a syntax defect in a Turtle document, with the
// 1-based line on which it was detected.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("turtle: parse error at line %d: %s", e.Line, e.Reason)
}

// Parse decodes a Turtle document into quads (all in the default
// graph). Relative IRIs are resolved against base; blank node labels
// are scoped to this one parse.
func Parse(text string, base rdf.IRI) ([]rdf.Quad, error) {
	baseURL, err := url.Parse(string(base))
	if err != nil || baseURL.Scheme == "" {
		return nil, &rdf.InvalidIRIError{Value: string(base), Reason: "parse base must be an absolute IRI"}
	}

	p := &parser{
		tokens:   tokenize(text),
		base:     baseURL,
		prefixes: map[string]string{},
	}
	return p.document()
}

type parser struct {
	tokens   []token
	pos      int
	base     *url.URL
	prefixes map[string]string
}

type tokenKind int

const (
	tokIRI        tokenKind = iota // <...> with brackets stripped
	tokPrefixed                    // prefix:local or bare "a" / directive keywords
	tokBlank                       // _:label with prefix stripped
	tokLiteral                     // quoted string, unescaped
	tokLangTag                     // @tag with @ stripped
	tokCaretCaret                  // ^^
	tokPunct                       // . ; ,
)

type token struct {
	kind  tokenKind
	value string
	line  int
}

// tokenize splits the document into tokens. Malformed constructs are
// passed through as best-effort tokens and rejected by the parser with
// position information.
func tokenize(text string) []token {
	var tokens []token
	line := 1
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '<':
			end := strings.IndexByte(text[i:], '>')
			if end < 0 {
				tokens = append(tokens, token{tokIRI, text[i+1:], line})
				i = len(text)
				break
			}
			tokens = append(tokens, token{tokIRI, text[i+1 : i+end], line})
			i += end + 1
		case c == '"':
			value, consumed := scanString(text[i:])
			tokens = append(tokens, token{tokLiteral, value, line})
			line += strings.Count(text[i:i+consumed], "\n")
			i += consumed
		case c == '@':
			start := i + 1
			i = start
			for i < len(text) && (isNameByte(text[i]) || text[i] == '-') {
				i++
			}
			word := text[start:i]
			if word == "prefix" || word == "base" {
				// Directive keyword, not a language tag.
				tokens = append(tokens, token{tokPrefixed, "@" + word, line})
				break
			}
			tokens = append(tokens, token{tokLangTag, word, line})
		case c == '^' && i+1 < len(text) && text[i+1] == '^':
			tokens = append(tokens, token{tokCaretCaret, "^^", line})
			i += 2
		case c == '.' || c == ';' || c == ',':
			tokens = append(tokens, token{tokPunct, string(c), line})
			i++
		case strings.HasPrefix(text[i:], "_:"):
			start := i + 2
			i = start
			for i < len(text) && isNameByte(text[i]) {
				i++
			}
			tokens = append(tokens, token{tokBlank, text[start:i], line})
		default:
			start := i
			for i < len(text) && !isDelimiterByte(text[i]) {
				i++
			}
			if i == start {
				// Unrecognized byte: emit it so the parser can report it.
				i++
			}
			tokens = append(tokens, token{tokPrefixed, text[start:i], line})
		}
	}
	return tokens
}

// scanString consumes a quoted string starting at text[0] == '"',
// handling \" \\ \n \t \r escapes and the long form """...""".
// Returns the unescaped value and the number of bytes consumed.
func scanString(text string) (string, int) {
	long := strings.HasPrefix(text, `"""`)
	quote := `"`
	start := 1
	if long {
		quote = `"""`
		start = 3
	}

	var value strings.Builder
	i := start
	for i < len(text) {
		if text[i] == '\\' && i+1 < len(text) {
			switch text[i+1] {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '"', '\\':
				value.WriteByte(text[i+1])
			default:
				value.WriteByte(text[i])
				value.WriteByte(text[i+1])
			}
			i += 2
			continue
		}
		if strings.HasPrefix(text[i:], quote) {
			return value.String(), i + len(quote)
		}
		value.WriteByte(text[i])
		i++
	}
	return value.String(), len(text)
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c >= 0x80 ||
		unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func isDelimiterByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '<', '"', ';', ',', '^', '#':
		return true
	case '.':
		return true
	}
	return false
}

func (p *parser) document() ([]rdf.Quad, error) {
	var quads []rdf.Quad
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.kind == tokPrefixed && (t.value == "@prefix" || strings.EqualFold(t.value, "PREFIX")) {
			if err := p.prefixDirective(t.value == "@prefix"); err != nil {
				return nil, err
			}
			continue
		}
		if t.kind == tokPrefixed && (t.value == "@base" || strings.EqualFold(t.value, "BASE")) {
			if err := p.baseDirective(t.value == "@base"); err != nil {
				return nil, err
			}
			continue
		}
		statementQuads, err := p.statement()
		if err != nil {
			return nil, err
		}
		quads = append(quads, statementQuads...)
	}
	return quads, nil
}

func (p *parser) prefixDirective(dotted bool) error {
	line := p.tokens[p.pos].line
	p.pos++ // directive keyword

	nameTok, ok := p.next()
	if !ok || nameTok.kind != tokPrefixed || !strings.HasSuffix(nameTok.value, ":") {
		return &ParseError{Line: line, Reason: "expected prefix name after @prefix"}
	}
	iriTok, ok := p.next()
	if !ok || iriTok.kind != tokIRI {
		return &ParseError{Line: line, Reason: "expected IRI after prefix name"}
	}
	resolved, err := p.resolve(iriTok.value, iriTok.line)
	if err != nil {
		return err
	}
	p.prefixes[strings.TrimSuffix(nameTok.value, ":")] = string(resolved)

	if dotted {
		if dot, ok := p.next(); !ok || dot.kind != tokPunct || dot.value != "." {
			return &ParseError{Line: line, Reason: "expected '.' after @prefix directive"}
		}
	}
	return nil
}

func (p *parser) baseDirective(dotted bool) error {
	line := p.tokens[p.pos].line
	p.pos++

	iriTok, ok := p.next()
	if !ok || iriTok.kind != tokIRI {
		return &ParseError{Line: line, Reason: "expected IRI after @base"}
	}
	parsed, err := url.Parse(iriTok.value)
	if err != nil {
		return &ParseError{Line: iriTok.line, Reason: "malformed base IRI"}
	}
	p.base = p.base.ResolveReference(parsed)

	if dotted {
		if dot, ok := p.next(); !ok || dot.kind != tokPunct || dot.value != "." {
			return &ParseError{Line: line, Reason: "expected '.' after @base directive"}
		}
	}
	return nil
}

// statement parses one subject with its predicate-object list, through
// the terminating ".".
func (p *parser) statement() ([]rdf.Quad, error) {
	subjectTok, ok := p.next()
	if !ok {
		return nil, nil
	}
	subject, err := p.subjectTerm(subjectTok)
	if err != nil {
		return nil, err
	}

	var quads []rdf.Quad
	for {
		predicateTok, ok := p.next()
		if !ok {
			return nil, &ParseError{Line: subjectTok.line, Reason: "unterminated statement"}
		}
		predicate, err := p.predicateTerm(predicateTok)
		if err != nil {
			return nil, err
		}

		for {
			object, err := p.objectTerm()
			if err != nil {
				return nil, err
			}
			quads = append(quads, rdf.Quad{Subject: subject, Predicate: predicate, Object: object})

			sep, ok := p.next()
			if !ok {
				return nil, &ParseError{Line: predicateTok.line, Reason: "unterminated statement"}
			}
			if sep.kind != tokPunct {
				return nil, &ParseError{Line: sep.line, Reason: fmt.Sprintf("expected '.', ';' or ',' but found %q", sep.value)}
			}
			if sep.value == "," {
				continue
			}
			if sep.value == ";" {
				// A ";" directly before "." is tolerated.
				if peek, ok := p.peek(); ok && peek.kind == tokPunct && peek.value == "." {
					p.pos++
					return quads, nil
				}
				break
			}
			return quads, nil // "."
		}
	}
}

func (p *parser) subjectTerm(t token) (rdf.SubjectTerm, error) {
	switch t.kind {
	case tokIRI:
		iri, err := p.resolve(t.value, t.line)
		if err != nil {
			return nil, err
		}
		return iri, nil
	case tokPrefixed:
		iri, err := p.expandPrefixed(t)
		if err != nil {
			return nil, err
		}
		return iri, nil
	case tokBlank:
		return rdf.BlankNode{ID: t.value}, nil
	default:
		return nil, &ParseError{Line: t.line, Reason: fmt.Sprintf("invalid subject %q", t.value)}
	}
}

func (p *parser) predicateTerm(t token) (rdf.IRI, error) {
	switch t.kind {
	case tokIRI:
		return p.resolve(t.value, t.line)
	case tokPrefixed:
		if t.value == "a" {
			return vocab.RDFType, nil
		}
		return p.expandPrefixed(t)
	default:
		return "", &ParseError{Line: t.line, Reason: fmt.Sprintf("invalid predicate %q", t.value)}
	}
}

func (p *parser) objectTerm() (rdf.Term, error) {
	t, ok := p.next()
	if !ok {
		return nil, &ParseError{Line: 0, Reason: "missing object"}
	}
	switch t.kind {
	case tokIRI:
		return p.resolve(t.value, t.line)
	case tokPrefixed:
		if t.value == "true" || t.value == "false" {
			return rdf.Literal{Value: t.value, Datatype: vocab.XSDBoolean}, nil
		}
		if isNumeric(t.value) {
			return rdf.Literal{Value: t.value, Datatype: vocab.XSDInteger}, nil
		}
		return p.expandPrefixed(t)
	case tokBlank:
		return rdf.BlankNode{ID: t.value}, nil
	case tokLiteral:
		return p.literalTail(t)
	default:
		return nil, &ParseError{Line: t.line, Reason: fmt.Sprintf("invalid object %q", t.value)}
	}
}

// literalTail attaches a language tag or datatype to a just-scanned
// string literal, if one follows.
func (p *parser) literalTail(t token) (rdf.Term, error) {
	peek, ok := p.peek()
	if ok && peek.kind == tokLangTag {
		p.pos++
		return rdf.Literal{Value: t.value, Datatype: vocab.RDFLangString, Language: peek.value}, nil
	}
	if ok && peek.kind == tokCaretCaret {
		p.pos++
		dtTok, ok := p.next()
		if !ok {
			return nil, &ParseError{Line: t.line, Reason: "missing datatype after ^^"}
		}
		var datatype rdf.IRI
		var err error
		switch dtTok.kind {
		case tokIRI:
			datatype, err = p.resolve(dtTok.value, dtTok.line)
		case tokPrefixed:
			datatype, err = p.expandPrefixed(dtTok)
		default:
			err = &ParseError{Line: dtTok.line, Reason: "datatype must be an IRI"}
		}
		if err != nil {
			return nil, err
		}
		return rdf.Literal{Value: t.value, Datatype: datatype}, nil
	}
	return rdf.Literal{Value: t.value, Datatype: vocab.XSDString}, nil
}

func (p *parser) expandPrefixed(t token) (rdf.IRI, error) {
	idx := strings.IndexByte(t.value, ':')
	if idx < 0 {
		return "", &ParseError{Line: t.line, Reason: fmt.Sprintf("expected IRI or prefixed name, found %q", t.value)}
	}
	prefix, local := t.value[:idx], t.value[idx+1:]
	ns, ok := p.prefixes[prefix]
	if !ok {
		return "", &ParseError{Line: t.line, Reason: fmt.Sprintf("undeclared prefix %q", prefix)}
	}
	return rdf.IRI(ns + local), nil
}

func (p *parser) resolve(value string, line int) (rdf.IRI, error) {
	parsed, err := url.Parse(value)
	if err != nil {
		return "", &ParseError{Line: line, Reason: fmt.Sprintf("malformed IRI %q", value)}
	}
	if parsed.IsAbs() {
		return rdf.IRI(value), nil
	}
	return rdf.IRI(p.base.ResolveReference(parsed).String()), nil
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	start := 0
	if value[0] == '+' || value[0] == '-' {
		start = 1
	}
	if start == len(value) {
		return false
	}
	for i := start; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

func (p *parser) next() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	t := p.tokens[p.pos]
	p.pos++
	return t, true
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}
