package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/iceberg/errs"
)

var (
	qasmRegDecl = regexp.MustCompile(`^(qreg|creg)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*(\d+)\s*\]$`)
	qasmMeasure = regexp.MustCompile(`^measure\s+(.+?)\s*->\s*(.+)$`)
	qasmGate    = regexp.MustCompile(`^([a-z_][a-z0-9_]*)\s*(?:\((.*)\))?\s*(.*)$`)
	qasmOperand = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[\s*(\d+)\s*\])?$`)
)

const qasmDefaultQr = "q"

// ToQASM renders c as an OpenQASM 2.0 program with a single quantum register "q".
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg %s[%d];\n", qasmDefaultQr, c.numQubits)
	for _, r := range c.registers {
		fmt.Fprintf(&sb, "creg %s[%d];\n", r.Name, r.Size)
	}

	for _, g := range c.gates {
		sb.WriteString(g.Op.String())
		if len(g.Params) > 0 {
			sb.WriteByte('(')
			for i, p := range g.Params {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
			}
			sb.WriteByte(')')
		}
		for i, q := range g.Qubits {
			if i == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s[%d]", qasmDefaultQr, q)
		}
		if g.Op == OpMeasure {
			r, idx := c.locateClbit(g.Clbit)
			fmt.Fprintf(&sb, " -> %s[%d]", r.Name, idx)
		}
		sb.WriteString(";\n")
	}

	return sb.String()
}

func (c *Circuit) locateClbit(bit int) (Register, int) {
	for _, r := range c.registers {
		if bit >= r.Offset && bit < r.Offset+r.Size {
			return r, bit - r.Offset
		}
	}

	return Register{}, -1
}

type qasmParser struct {
	circ  *Circuit
	qregs map[string]Register
	cregs []Register
	line  int
}

// ParseQASM parses an OpenQASM 2.0 program restricted to the gates known to Op.
//
// Multiple qreg declarations are laid out consecutively. Syntax errors are
// errs.ErrMalformedInput; gates outside the supported set are errs.ErrUnsupportedGate.
func ParseQASM(src string) (*Circuit, error) {
	p := &qasmParser{qregs: make(map[string]Register)}

	type pendingCreg struct {
		name string
		size int
	}
	var stmts []string
	var lines []int
	var cregs []pendingCreg
	numQubits := 0

	// Declarations come first in practice but may interleave; collect them in one pass.
	for lineNo, raw := range strings.Split(src, "\n") {
		if i := strings.Index(raw, "//"); i >= 0 {
			raw = raw[:i]
		}
		for stmt := range strings.SplitSeq(raw, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if m := qasmRegDecl.FindStringSubmatch(stmt); m != nil {
				size, _ := strconv.Atoi(m[3])
				if m[1] == "qreg" {
					if _, dup := p.qregs[m[2]]; dup {
						return nil, errs.MalformedInput("line %d: qreg %q redeclared", lineNo+1, m[2])
					}
					p.qregs[m[2]] = Register{Name: m[2], Offset: numQubits, Size: size}
					numQubits += size
				} else {
					cregs = append(cregs, pendingCreg{m[2], size})
				}

				continue
			}
			stmts = append(stmts, stmt)
			lines = append(lines, lineNo+1)
		}
	}

	p.circ = MustNew(numQubits)
	for _, cr := range cregs {
		r, err := p.circ.AddRegister(cr.name, cr.size)
		if err != nil {
			return nil, errs.MalformedInput("creg %q: %v", cr.name, err)
		}
		p.cregs = append(p.cregs, r)
	}

	for i, stmt := range stmts {
		p.line = lines[i]
		if err := p.statement(stmt); err != nil {
			return nil, err
		}
	}

	return p.circ, nil
}

func (p *qasmParser) statement(stmt string) error {
	switch {
	case strings.HasPrefix(stmt, "OPENQASM"), strings.HasPrefix(stmt, "include"):
		return nil
	case strings.HasPrefix(stmt, "measure"):
		return p.measure(stmt)
	}

	m := qasmGate.FindStringSubmatch(stmt)
	if m == nil {
		return errs.MalformedInput("line %d: cannot parse %q", p.line, stmt)
	}
	op, ok := ParseOp(m[1])
	if !ok || op == OpMeasure {
		return errs.UnsupportedGate("line %d: unsupported gate %q", p.line, m[1])
	}

	var params []float64
	if strings.TrimSpace(m[2]) != "" {
		for expr := range strings.SplitSeq(m[2], ",") {
			v, err := evalAngle(expr)
			if err != nil {
				return errs.MalformedInput("line %d: parameter %q: %v", p.line, expr, err)
			}
			params = append(params, v)
		}
	}

	var qubits []int
	for operand := range strings.SplitSeq(m[3], ",") {
		operand = strings.TrimSpace(operand)
		if operand == "" {
			continue
		}
		qs, err := p.qubits(operand)
		if err != nil {
			return err
		}
		qubits = append(qubits, qs...)
	}

	if err := p.circ.Append(Gate{Op: op, Qubits: qubits, Params: params, Clbit: NoClbit}); err != nil {
		return errs.MalformedInput("line %d: %v", p.line, err)
	}

	return nil
}

func (p *qasmParser) measure(stmt string) error {
	m := qasmMeasure.FindStringSubmatch(stmt)
	if m == nil {
		return errs.MalformedInput("line %d: cannot parse %q", p.line, stmt)
	}
	qs, err := p.qubits(m[1])
	if err != nil {
		return err
	}
	cs, err := p.clbits(m[2])
	if err != nil {
		return err
	}
	if len(qs) != len(cs) {
		return errs.MalformedInput("line %d: measure width mismatch %d -> %d", p.line, len(qs), len(cs))
	}
	for i := range qs {
		if err := p.circ.Append(Measure(qs[i], cs[i])); err != nil {
			return errs.MalformedInput("line %d: %v", p.line, err)
		}
	}

	return nil
}

func (p *qasmParser) qubits(operand string) ([]int, error) {
	m := qasmOperand.FindStringSubmatch(strings.TrimSpace(operand))
	if m == nil {
		return nil, errs.MalformedInput("line %d: bad operand %q", p.line, operand)
	}
	r, ok := p.qregs[m[1]]
	if !ok {
		return nil, errs.MalformedInput("line %d: unknown qreg %q", p.line, m[1])
	}

	return expandOperand(r, m[2], p.line)
}

func (p *qasmParser) clbits(operand string) ([]int, error) {
	m := qasmOperand.FindStringSubmatch(strings.TrimSpace(operand))
	if m == nil {
		return nil, errs.MalformedInput("line %d: bad operand %q", p.line, operand)
	}
	for _, r := range p.cregs {
		if r.Name == m[1] {
			return expandOperand(r, m[2], p.line)
		}
	}

	return nil, errs.MalformedInput("line %d: unknown creg %q", p.line, m[1])
}

func expandOperand(r Register, index string, line int) ([]int, error) {
	if index == "" {
		out := make([]int, r.Size)
		for i := range out {
			out[i] = r.Offset + i
		}

		return out, nil
	}

	idx, _ := strconv.Atoi(index)
	if idx >= r.Size {
		return nil, errs.MalformedInput("line %d: index %d out of range for %s[%d]", line, idx, r.Name, r.Size)
	}

	return []int{r.Offset + idx}, nil
}

// evalAngle evaluates a parameter expression built from numbers, pi, parentheses and
// the operators + - * /.
func evalAngle(expr string) (float64, error) {
	e := &angleExpr{src: strings.TrimSpace(expr)}
	v, err := e.sum()
	if err != nil {
		return 0, err
	}
	e.skipSpace()
	if e.pos != len(e.src) {
		return 0, fmt.Errorf("unexpected %q at offset %d", e.src[e.pos:], e.pos)
	}

	return v, nil
}

type angleExpr struct {
	src string
	pos int
}

func (e *angleExpr) skipSpace() {
	for e.pos < len(e.src) && e.src[e.pos] == ' ' {
		e.pos++
	}
}

func (e *angleExpr) peek() byte {
	e.skipSpace()
	if e.pos < len(e.src) {
		return e.src[e.pos]
	}

	return 0
}

func (e *angleExpr) sum() (float64, error) {
	v, err := e.product()
	if err != nil {
		return 0, err
	}
	for {
		switch e.peek() {
		case '+':
			e.pos++
			r, err := e.product()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			e.pos++
			r, err := e.product()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (e *angleExpr) product() (float64, error) {
	v, err := e.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch e.peek() {
		case '*':
			e.pos++
			r, err := e.unary()
			if err != nil {
				return 0, err
			}
			v *= r
		case '/':
			e.pos++
			r, err := e.unary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= r
		default:
			return v, nil
		}
	}
}

func (e *angleExpr) unary() (float64, error) {
	if e.peek() == '-' {
		e.pos++
		v, err := e.unary()

		return -v, err
	}

	return e.primary()
}

func (e *angleExpr) primary() (float64, error) {
	switch c := e.peek(); {
	case c == '(':
		e.pos++
		v, err := e.sum()
		if err != nil {
			return 0, err
		}
		if e.peek() != ')' {
			return 0, fmt.Errorf("missing ')'")
		}
		e.pos++

		return v, nil
	case strings.HasPrefix(e.src[e.pos:], "pi"):
		e.pos += 2
		return math.Pi, nil
	case c == '.' || unicode.IsDigit(rune(c)):
		start := e.pos
		for e.pos < len(e.src) && isNumberByte(e.src, e.pos) {
			e.pos++
		}

		return strconv.ParseFloat(e.src[start:e.pos], 64)
	default:
		return 0, fmt.Errorf("unexpected token at offset %d", e.pos)
	}
}

func isNumberByte(s string, i int) bool {
	c := s[i]
	switch {
	case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
		return true
	case (c == '+' || c == '-') && i > 0 && (s[i-1] == 'e' || s[i-1] == 'E'):
		return true
	default:
		return false
	}
}
