// Package pbrt parses a declarative scene-description language: transform
// directives, graphics-state scoping, named materials, area lights and
// triangle meshes. The parser is a builder value rather than file-scope
// mutable state: no parser state survives past the Parse call that
// produced it, so two Parsers never interfere with each other.
package pbrt

import (
	"fmt"
	"strconv"
	"strings"
)

// Statement is one parsed directive: its type ("Shape", "Material", ...),
// an optional subtype ("trianglemesh", "matte", ...), and its named
// parameters.
type Statement struct {
	Type       string
	Subtype    string
	Parameters map[string]Param
}

// Param is one parameter's declared type and raw string values, left
// unconverted until a consumer asks for floats/ints/strings.
type Param struct {
	Type   string
	Values []string
}

func (p Param) Floats() ([]float64, error) {
	out := make([]float64, len(p.Values))
	for i, v := range p.Values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("pbrt: parameter value %q is not a float: %w", v, err)
		}
		out[i] = f
	}
	return out, nil
}

func (p Param) Ints() ([]int, error) {
	out := make([]int, len(p.Values))
	for i, v := range p.Values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("pbrt: parameter value %q is not an int: %w", v, err)
		}
		out[i] = n
	}
	return out, nil
}

func (p Param) String() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// isStatementStart reports whether line opens a new directive (begins
// with an identifier) as opposed to continuing a wrapped parameter list
// from the previous line -- statements may span multiple physical lines
// inside their bracketed value lists.
func isStatementStart(line string) bool {
	if line == "" {
		return false
	}
	r := rune(line[0])
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// parseStatement tokenizes a full (possibly joined multi-line) directive
// string: `Type "subtype" "paramtype name" [ values... ] ...`.
// positionalDirectives take a flat list of bare numbers with neither a
// subtype nor named parameters: `Translate x y z`, `Rotate angle x y z`.
var positionalDirectives = map[string]bool{
	"LookAt": true, "Translate": true, "Rotate": true, "Scale": true, "Transform": true,
}

func parseStatement(s string) (*Statement, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("pbrt: empty statement")
	}

	stmt := &Statement{Type: tokens[0], Parameters: map[string]Param{}}
	i := 1

	if positionalDirectives[stmt.Type] {
		var values []string
		for ; i < len(tokens); i++ {
			values = append(values, strings.Fields(tokens[i])...)
		}
		stmt.Parameters["_"] = Param{Type: "float", Values: values}
		return stmt, nil
	}

	if i < len(tokens) && !strings.Contains(tokens[i], " ") && isQuotedBare(tokens[i]) {
		stmt.Subtype = tokens[i]
		i++
	}

	for i < len(tokens) {
		decl := tokens[i]
		i++
		parts := strings.Fields(decl)
		if len(parts) != 2 {
			return nil, fmt.Errorf("pbrt: malformed parameter declaration %q", decl)
		}
		ptype, pname := parts[0], parts[1]
		if i >= len(tokens) {
			return nil, fmt.Errorf("pbrt: parameter %q has no value list", pname)
		}
		values := strings.Fields(tokens[i])
		i++
		stmt.Parameters[pname] = Param{Type: ptype, Values: values}
	}
	return stmt, nil
}

func isQuotedBare(s string) bool { return !strings.Contains(s, " ") }

// tokenize splits a directive into its leading bare word and a sequence
// of quoted ("...") and bracketed ([...]) tokens, matching the
// `Keyword "quoted" [ bracketed values ]` grammar.
func tokenize(s string) ([]string, error) {
	var tokens []string
	i := 0
	n := len(s)

	// Leading bare keyword.
	for i < n && s[i] == ' ' {
		i++
	}
	start := i
	for i < n && s[i] != ' ' {
		i++
	}
	if start == i {
		return nil, fmt.Errorf("pbrt: missing directive keyword")
	}
	tokens = append(tokens, s[start:i])

	for i < n {
		for i < n && s[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}
		switch s[i] {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("pbrt: unterminated quoted string in %q", s)
			}
			tokens = append(tokens, s[i+1:i+1+end])
			i = i + 1 + end + 1
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("pbrt: unterminated bracketed list in %q", s)
			}
			tokens = append(tokens, strings.TrimSpace(s[i+1:i+end]))
			i = i + end + 1
		default:
			end := strings.IndexByte(s[i:], ' ')
			if end < 0 {
				tokens = append(tokens, s[i:])
				i = n
			} else {
				tokens = append(tokens, s[i:i+end])
				i += end
			}
		}
	}
	return tokens, nil
}
