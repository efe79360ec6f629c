package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"qbloch/quantum"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*([^()]+?)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	initialRegex         = regexp.MustCompile(`^//\s*initial\s+(\d+)$`)
)

// qasmNames maps gate types to their qelib1.inc mnemonics.
var qasmNames = map[quantum.GateType]string{
	quantum.GateX:     "x",
	quantum.GateY:     "y",
	quantum.GateZ:     "z",
	quantum.GateH:     "h",
	quantum.GateS:     "s",
	quantum.GateSdg:   "sdg",
	quantum.GateT:     "t",
	quantum.GateTdg:   "tdg",
	quantum.GateRx:    "rx",
	quantum.GateRy:    "ry",
	quantum.GateRz:    "rz",
	quantum.GatePhase: "p",
	quantum.GateCNOT:  "cx",
	quantum.GateCZ:    "cz",
	quantum.GateSWAP:  "swap",
	quantum.GateCCNOT: "ccx",
}

// ToQASM generates QASM 2.0 output from the circuit. The initial basis state
// has no QASM equivalent and is written as an "// initial N" comment.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "// initial %d\n\n", c.InitialState)
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", c.NumQubits)

	for _, g := range c.Gates {
		sb.WriteString(qasmNames[g.Type])
		if g.Angle != nil {
			fmt.Fprintf(&sb, "(%s)", FormatParam(*g.Angle))
		}
		for i, q := range g.Qubits {
			if i == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", q)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}

// ParseQASM parses QASM text into a circuit. Declarations, comments,
// barriers and measurements are skipped. Without a qreg declaration the
// register is sized to the highest qubit referenced.
func ParseQASM(qasm string) (*Circuit, error) {
	numQubits := 0
	initial := 0
	maxQubit := -1
	var gates []quantum.Gate

	for n, line := range strings.Split(qasm, "\n") {
		lineNo := n + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matches := initialRegex.FindStringSubmatch(line); matches != nil {
			initial, _ = strconv.Atoi(matches[1])
			continue
		}
		if strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") ||
			strings.HasPrefix(line, "measure") {
			continue
		}
		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			numQubits, _ = strconv.Atoi(matches[2])
			continue
		}

		g, err := parseGateLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		for _, q := range g.Qubits {
			maxQubit = max(maxQubit, q)
		}
		gates = append(gates, g)
	}

	if numQubits == 0 {
		numQubits = max(maxQubit+1, 1)
	}
	c, err := New(numQubits, initial)
	if err != nil {
		return nil, err
	}
	for i, g := range gates {
		if _, err := c.Add(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return c, nil
}

func parseGateLine(line string) (quantum.Gate, error) {
	if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
		t, err := quantum.ParseGateType(matches[1])
		if err != nil {
			return quantum.Gate{}, err
		}
		angle, ok := ParseParamExpr(matches[2])
		if !ok {
			return quantum.Gate{}, errors.Wrapf(quantum.ErrInvalidGateSpec, "bad parameter %q", matches[2])
		}
		target, _ := strconv.Atoi(matches[3])
		return quantum.NewRotation(t, angle, target), nil
	}

	var names, qubits []string
	switch {
	case singleGateRegex.MatchString(line):
		m := singleGateRegex.FindStringSubmatch(line)
		names, qubits = m[1:2], m[2:]
	case twoQubitRegex.MatchString(line):
		m := twoQubitRegex.FindStringSubmatch(line)
		names, qubits = m[1:2], m[2:]
	case threeQubitRegex.MatchString(line):
		m := threeQubitRegex.FindStringSubmatch(line)
		names, qubits = m[1:2], m[2:]
	default:
		return quantum.Gate{}, errors.Wrapf(quantum.ErrInvalidGateSpec, "unrecognised statement %q", line)
	}

	t, err := quantum.ParseGateType(names[0])
	if err != nil {
		return quantum.Gate{}, err
	}
	g := quantum.Gate{Type: t, Qubits: make([]int, len(qubits))}
	for i, s := range qubits {
		g.Qubits[i], _ = strconv.Atoi(s)
	}
	return g, nil
}
