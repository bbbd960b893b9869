package pbrt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/rendererr"
)

// graphicsState is the part of the PBRT state machine that pushes and
// pops across AttributeBegin/AttributeEnd: the current transform, the
// current material name, and any active area-light emission.
type graphicsState struct {
	ctm          geom.Transform
	materialName string
	areaLightL   *geom.Vec3
}

// Parser accumulates directives into a Document. It holds no state
// beyond one parse: construct one with New, feed it lines or a whole
// reader, and call Finalize. Two Parsers never share state.
type Parser struct {
	state        graphicsState
	stack        []graphicsState
	pendingLines []string

	doc *Document
}

// New returns a Parser ready to accept PBRT directives.
func New() *Parser {
	return &Parser{
		state: graphicsState{ctm: geom.Identity()},
		doc:   newDocument(),
	}
}

// Parse is a convenience wrapper: it streams r through ProcessLine and
// returns the finalized Document.
func Parse(r io.Reader) (*Document, error) {
	p := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := p.ProcessLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rendererr.NewConfigError("pbrt.Parse", err)
	}
	return p.Finalize()
}

// ProcessLine feeds one line of input to the parser. PBRT directives may
// span several physical lines (bracketed value lists wrap); ProcessLine
// buffers continuation lines until a new directive keyword starts.
func (p *Parser) ProcessLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	switch line {
	case "WorldBegin", "WorldEnd":
		return p.flush()
	case "AttributeBegin":
		if err := p.flush(); err != nil {
			return err
		}
		p.stack = append(p.stack, p.state)
		return nil
	case "AttributeEnd":
		if err := p.flush(); err != nil {
			return err
		}
		if len(p.stack) == 0 {
			return rendererr.NewConfigError("pbrt.AttributeEnd", fmt.Errorf("unmatched AttributeEnd"))
		}
		p.state = p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		return nil
	}

	if isStatementStart(line) {
		if err := p.flush(); err != nil {
			return err
		}
		p.pendingLines = []string{line}
		return nil
	}
	if len(p.pendingLines) == 0 {
		return rendererr.NewConfigError("pbrt.ProcessLine", fmt.Errorf("unexpected continuation line: %q", line))
	}
	p.pendingLines = append(p.pendingLines, line)
	return nil
}

func (p *Parser) flush() error {
	if len(p.pendingLines) == 0 {
		return nil
	}
	full := strings.Join(p.pendingLines, " ")
	p.pendingLines = nil

	stmt, err := parseStatement(full)
	if err != nil {
		return rendererr.NewConfigError("pbrt.parseStatement", err)
	}
	return p.route(stmt)
}

// Finalize flushes any trailing accumulated directive and returns the
// completed Document.
func (p *Parser) Finalize() (*Document, error) {
	if err := p.flush(); err != nil {
		return nil, err
	}
	if len(p.stack) != 0 {
		return nil, rendererr.NewConfigError("pbrt.Finalize", fmt.Errorf("%d unclosed AttributeBegin block(s)", len(p.stack)))
	}
	return p.doc, nil
}
