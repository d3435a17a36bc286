package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// ParseTurtle parses a Turtle document into a graph. The supported
// subset covers what the graph builders emit: @prefix and @base
// directives, predicate lists (";"), object lists (","), the "a"
// shorthand, IRI refs, prefixed names, and literals with an optional
// language tag or ^^ datatype. Blank nodes and collections are not
// accepted.
func ParseTurtle(data []byte) (*Graph, error) {
	p := &ttlParser{input: []rune(string(data)), line: 1, prefixes: make(map[string]string)}
	g := NewGraph()
	for {
		p.skipWhitespace()
		if p.eof() {
			return g, nil
		}
		if p.peek() == '@' {
			if err := p.parseDirective(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.parseStatement(g); err != nil {
			return nil, err
		}
	}
}

type ttlParser struct {
	input    []rune
	pos      int
	line     int
	base     string
	prefixes map[string]string
}

func (p *ttlParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("turtle: line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *ttlParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *ttlParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *ttlParser) next() rune {
	r := p.input[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *ttlParser) skipWhitespace() {
	for !p.eof() {
		r := p.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			p.next()
		case r == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

func (p *ttlParser) expect(r rune) error {
	p.skipWhitespace()
	if p.eof() || p.peek() != r {
		return p.errorf("expected %q", string(r))
	}
	p.next()
	return nil
}

// parseDirective handles @prefix and @base
func (p *ttlParser) parseDirective() error {
	p.next() // '@'
	word := p.readWord()
	switch word {
	case "prefix":
		p.skipWhitespace()
		name := p.readUntil(':')
		if err := p.expect(':'); err != nil {
			return err
		}
		p.skipWhitespace()
		iri, err := p.parseIRIRef()
		if err != nil {
			return err
		}
		p.prefixes[name] = iri
		return p.expect('.')
	case "base":
		p.skipWhitespace()
		iri, err := p.parseIRIRef()
		if err != nil {
			return err
		}
		p.base = iri
		return p.expect('.')
	default:
		return p.errorf("unsupported directive @%s", word)
	}
}

func (p *ttlParser) readWord() string {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			p.next()
		} else {
			break
		}
	}
	return string(p.input[start:p.pos])
}

func (p *ttlParser) readUntil(stop rune) string {
	start := p.pos
	for !p.eof() && p.peek() != stop && !isWhitespace(p.peek()) {
		p.next()
	}
	return string(p.input[start:p.pos])
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// parseStatement parses one subject with its predicate and object lists
func (p *ttlParser) parseStatement(g *Graph) error {
	subject, err := p.parseTerm()
	if err != nil {
		return err
	}
	if !subject.IsIRI() {
		return p.errorf("subject must be an IRI")
	}
	for {
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}
		for {
			object, err := p.parseTerm()
			if err != nil {
				return err
			}
			g.Add(model.Triple{Subject: subject, Predicate: predicate, Object: object})
			p.skipWhitespace()
			if p.peek() == ',' {
				p.next()
				continue
			}
			break
		}
		p.skipWhitespace()
		switch p.peek() {
		case ';':
			p.next()
			p.skipWhitespace()
			// trailing ';' before the closing dot is legal
			if p.peek() == '.' {
				p.next()
				return nil
			}
			continue
		case '.':
			p.next()
			return nil
		default:
			return p.errorf("expected ';' or '.' after object")
		}
	}
}

func (p *ttlParser) parsePredicate() (model.Term, error) {
	p.skipWhitespace()
	if p.peek() == 'a' && p.pos+1 < len(p.input) && isWhitespace(p.input[p.pos+1]) {
		p.next()
		return model.IRI(RDFType), nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return model.Term{}, err
	}
	if !t.IsIRI() {
		return model.Term{}, p.errorf("predicate must be an IRI")
	}
	return t, nil
}

// parseTerm parses an IRI ref, prefixed name, literal, number or boolean
func (p *ttlParser) parseTerm() (model.Term, error) {
	p.skipWhitespace()
	if p.eof() {
		return model.Term{}, p.errorf("unexpected end of input")
	}
	switch r := p.peek(); {
	case r == '<':
		iri, err := p.parseIRIRef()
		if err != nil {
			return model.Term{}, err
		}
		return model.IRI(iri), nil
	case r == '"':
		return p.parseLiteral()
	case r == '+' || r == '-' || (r >= '0' && r <= '9'):
		return p.parseNumber()
	default:
		return p.parsePrefixedName()
	}
}

func (p *ttlParser) parseIRIRef() (string, error) {
	if p.peek() != '<' {
		return "", p.errorf("expected IRI")
	}
	p.next()
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated IRI")
		}
		r := p.next()
		if r == '>' {
			break
		}
		if r == '\n' {
			return "", p.errorf("newline in IRI")
		}
		sb.WriteRune(r)
	}
	iri := sb.String()
	if p.base != "" && !strings.Contains(iri, "://") {
		iri = p.base + iri
	}
	return iri, nil
}

func (p *ttlParser) parseLiteral() (model.Term, error) {
	long := false
	if p.pos+2 < len(p.input) && p.input[p.pos] == '"' && p.input[p.pos+1] == '"' && p.input[p.pos+2] == '"' {
		long = true
		p.next()
		p.next()
		p.next()
	} else {
		p.next()
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return model.Term{}, p.errorf("unterminated string literal")
		}
		r := p.next()
		if r == '\\' {
			esc, err := p.parseEscape()
			if err != nil {
				return model.Term{}, err
			}
			sb.WriteRune(esc)
			continue
		}
		if long {
			if r == '"' && p.pos+1 < len(p.input) && p.input[p.pos] == '"' && p.input[p.pos+1] == '"' {
				p.next()
				p.next()
				break
			}
			sb.WriteRune(r)
			continue
		}
		if r == '"' {
			break
		}
		if r == '\n' {
			return model.Term{}, p.errorf("newline in string literal")
		}
		sb.WriteRune(r)
	}
	value := sb.String()
	datatype := model.XSDString
	switch p.peek() {
	case '@':
		// language tag carries no typing information we use
		p.next()
		p.readWord()
		if p.peek() == '-' {
			p.next()
			p.readWord()
		}
	case '^':
		p.next()
		if p.peek() != '^' {
			return model.Term{}, p.errorf("expected '^^' before datatype")
		}
		p.next()
		dt, err := p.parseTerm()
		if err != nil {
			return model.Term{}, err
		}
		if !dt.IsIRI() {
			return model.Term{}, p.errorf("datatype must be an IRI")
		}
		datatype = dt.Value
	}
	return model.Literal(value, datatype), nil
}

func (p *ttlParser) parseEscape() (rune, error) {
	if p.eof() {
		return 0, p.errorf("unterminated escape")
	}
	switch r := p.next(); r {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case '\\':
		return '\\', nil
	case 'u', 'U':
		width := 4
		if r == 'U' {
			width = 8
		}
		if p.pos+width > len(p.input) {
			return 0, p.errorf("truncated unicode escape")
		}
		hex := string(p.input[p.pos : p.pos+width])
		p.pos += width
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, p.errorf("bad unicode escape %q", hex)
		}
		return rune(code), nil
	default:
		return 0, p.errorf("unknown escape \\%s", string(r))
	}
}

func (p *ttlParser) parseNumber() (model.Term, error) {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E' {
			p.next()
		} else {
			break
		}
	}
	text := string(p.input[start:p.pos])
	// a trailing dot is the statement terminator, not part of the number
	if strings.HasSuffix(text, ".") {
		text = strings.TrimSuffix(text, ".")
		p.pos--
	}
	if text == "" {
		return model.Term{}, p.errorf("malformed number")
	}
	if strings.ContainsAny(text, ".eE") {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return model.Term{}, p.errorf("malformed number %q", text)
		}
		return model.Literal(text, model.XSDDouble), nil
	}
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		return model.Term{}, p.errorf("malformed number %q", text)
	}
	return model.Literal(text, model.XSDInteger), nil
}

func (p *ttlParser) parsePrefixedName() (model.Term, error) {
	if word := p.peekWord(); word == "true" || word == "false" {
		after := p.pos + len(word)
		if after >= len(p.input) || (p.input[after] != ':' && !isNameRune(p.input[after])) {
			p.pos = after
			return model.Literal(word, model.XSDBoolean), nil
		}
	}
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if isWhitespace(r) || r == ';' || r == ',' || r == '"' || r == '<' || r == '#' {
			break
		}
		if r == '.' {
			// a dot ends the name unless followed by a name character
			if p.pos+1 >= len(p.input) || !isNameRune(p.input[p.pos+1]) {
				break
			}
		}
		p.next()
	}
	name := string(p.input[start:p.pos])
	if name == "" {
		return model.Term{}, p.errorf("expected term")
	}
	colon := strings.Index(name, ":")
	if colon < 0 {
		return model.Term{}, p.errorf("unknown term %q", name)
	}
	ns, ok := p.prefixes[name[:colon]]
	if !ok {
		return model.Term{}, p.errorf("undeclared prefix %q", name[:colon])
	}
	return model.IRI(ns + name[colon+1:]), nil
}

func (p *ttlParser) peekWord() string {
	end := p.pos
	for end < len(p.input) {
		r := p.input[end]
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			end++
		} else {
			break
		}
	}
	return string(p.input[p.pos:end])
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_' || r == '-'
}
