package quantum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Gate describes one gate application. Qubits holds 1, 2 or 3 indices:
// the target for single-qubit gates, control then target for CNOT and CZ,
// both operands for SWAP, and two controls then target for CCNOT. Angle is
// set iff the gate type is parameterized.
type Gate struct {
	ID     string   `json:"id,omitempty" toml:"-"`
	Type   GateType `json:"type"`
	Qubits []int    `json:"qubits"`
	Angle  *float64 `json:"angle,omitempty"`
}

// NewGate builds a descriptor for a non-parameterized gate.
func NewGate(t GateType, qubits ...int) Gate {
	return Gate{Type: t, Qubits: qubits}
}

// NewRotation builds a descriptor for a parameterized single-qubit gate.
func NewRotation(t GateType, angle float64, qubit int) Gate {
	return Gate{Type: t, Qubits: []int{qubit}, Angle: &angle}
}

// Validate checks the descriptor against a register of numQubits qubits.
func (g Gate) Validate(numQubits int) error {
	if !g.Type.Valid() {
		return invalidGate("unknown gate type %d", int(g.Type))
	}
	def := g.Type.Definition()
	if len(g.Qubits) != def.Category.Arity() {
		return invalidGate("%s takes %d qubit(s), got %d", def.Symbol, def.Category.Arity(), len(g.Qubits))
	}
	for i, q := range g.Qubits {
		if q < 0 || q >= numQubits {
			return invalidGate("%s: qubit %d out of range [0,%d)", def.Symbol, q, numQubits)
		}
		for _, p := range g.Qubits[:i] {
			if p == q {
				return invalidGate("%s: qubit %d used twice", def.Symbol, q)
			}
		}
	}
	switch {
	case def.Parameterized && g.Angle == nil:
		return invalidGate("%s requires an angle", def.Symbol)
	case !def.Parameterized && g.Angle != nil:
		return invalidGate("%s does not take an angle", def.Symbol)
	case g.Angle != nil && (math.IsNaN(*g.Angle) || math.IsInf(*g.Angle, 0)):
		return invalidGate("%s: angle must be finite", def.Symbol)
	}
	return nil
}

// AngleOr returns the angle, or def when none is set.
func (g Gate) AngleOr(def float64) float64 {
	if g.Angle == nil {
		return def
	}
	return *g.Angle
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Type.String())
	if g.Angle != nil {
		fmt.Fprintf(&sb, "(%s)", strconv.FormatFloat(*g.Angle, 'g', 6, 64))
	}
	for i, q := range g.Qubits {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}
