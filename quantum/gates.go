package quantum

import (
	"math"
	"strings"
)

// GateType enumerates the supported gates.
type GateType int

const (
	GateX GateType = iota
	GateY
	GateZ
	GateH
	GateS
	GateSdg
	GateT
	GateTdg
	GateRx
	GateRy
	GateRz
	GatePhase
	GateCNOT
	GateCZ
	GateSWAP
	GateCCNOT

	numGateTypes
)

// Category groups gates by the number of qubits they act on.
type Category int

const (
	Single Category = iota + 1
	Two
	Three
)

// Arity returns the number of qubit indices a gate of this category takes.
func (c Category) Arity() int {
	return int(c)
}

func (c Category) String() string {
	switch c {
	case Single:
		return "single"
	case Two:
		return "two"
	case Three:
		return "three"
	default:
		return "unknown"
	}
}

// GateDefinition is the static metadata for a gate type.
type GateDefinition struct {
	Type          GateType
	Symbol        string
	Name          string
	Category      Category
	Parameterized bool
	Description   string
}

var gateDefinitions = [numGateTypes]GateDefinition{
	GateX:     {GateX, "X", "Pauli-X", Single, false, "Bit flip gate"},
	GateY:     {GateY, "Y", "Pauli-Y", Single, false, "Bit and phase flip gate"},
	GateZ:     {GateZ, "Z", "Pauli-Z", Single, false, "Phase flip gate"},
	GateH:     {GateH, "H", "Hadamard", Single, false, "Creates superposition"},
	GateS:     {GateS, "S", "S Gate", Single, false, "Phase gate (π/2)"},
	GateSdg:   {GateSdg, "Sdg", "S† Gate", Single, false, "S gate dagger"},
	GateT:     {GateT, "T", "T Gate", Single, false, "Phase gate (π/4)"},
	GateTdg:   {GateTdg, "Tdg", "T† Gate", Single, false, "T gate dagger"},
	GateRx:    {GateRx, "Rx", "Rx(θ)", Single, true, "Rotation around X-axis"},
	GateRy:    {GateRy, "Ry", "Ry(θ)", Single, true, "Rotation around Y-axis"},
	GateRz:    {GateRz, "Rz", "Rz(θ)", Single, true, "Rotation around Z-axis"},
	GatePhase: {GatePhase, "Phase", "Phase(φ)", Single, true, "Phase rotation"},
	GateCNOT:  {GateCNOT, "CNOT", "CNOT", Two, false, "Controlled NOT gate"},
	GateCZ:    {GateCZ, "CZ", "CZ", Two, false, "Controlled Z gate"},
	GateSWAP:  {GateSWAP, "SWAP", "SWAP", Two, false, "Swap two qubits"},
	GateCCNOT: {GateCCNOT, "CCNOT", "Toffoli", Three, false, "Controlled-controlled NOT"},
}

// Definitions returns the catalog in declaration order.
func Definitions() []GateDefinition {
	defs := make([]GateDefinition, len(gateDefinitions))
	copy(defs, gateDefinitions[:])
	return defs
}

// Valid reports whether t is one of the catalog gates.
func (t GateType) Valid() bool {
	return t >= 0 && t < numGateTypes
}

// Definition returns the metadata for t. It panics on an unknown type.
func (t GateType) Definition() GateDefinition {
	if !t.Valid() {
		panic("quantum: unknown gate type")
	}
	return gateDefinitions[t]
}

func (t GateType) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return gateDefinitions[t].Symbol
}

// gateAliases maps lower-cased names, including QASM spellings, to types.
var gateAliases = map[string]GateType{
	"x": GateX, "y": GateY, "z": GateZ, "h": GateH,
	"s": GateS, "sdg": GateSdg, "t": GateT, "tdg": GateTdg,
	"rx": GateRx, "ry": GateRy, "rz": GateRz,
	"phase": GatePhase, "p": GatePhase, "u1": GatePhase,
	"cnot": GateCNOT, "cx": GateCNOT,
	"cz":    GateCZ,
	"swap":  GateSWAP,
	"ccnot": GateCCNOT, "ccx": GateCCNOT, "toffoli": GateCCNOT,
}

// ParseGateType resolves a gate name case-insensitively.
func ParseGateType(s string) (GateType, error) {
	t, ok := gateAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, invalidGate("unknown gate %q", s)
	}
	return t, nil
}

// Matrix2 is a single-qubit operator; rows index the output basis state and
// columns the input basis state.
type Matrix2 [2][2]Complex

// Identity2 is the 2×2 identity.
var Identity2 = Matrix2{{1, 0}, {0, 1}}

// Mul returns m·n.
func (m Matrix2) Mul(n Matrix2) Matrix2 {
	var r Matrix2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose.
func (m Matrix2) Dagger() Matrix2 {
	return Matrix2{
		{conj(m[0][0]), conj(m[1][0])},
		{conj(m[0][1]), conj(m[1][1])},
	}
}

// Trace returns m[0][0]+m[1][1].
func (m Matrix2) Trace() Complex {
	return m[0][0] + m[1][1]
}

// ApproxEqual compares entries within tol.
func (m Matrix2) ApproxEqual(n Matrix2, tol float64) bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !approxEqual(m[i][j], n[i][j], tol) {
				return false
			}
		}
	}
	return true
}

// IsUnitary reports whether m†m is the identity within tol.
func (m Matrix2) IsUnitary(tol float64) bool {
	return m.Dagger().Mul(m).ApproxEqual(Identity2, tol)
}

// IsHermitian reports whether m equals its conjugate transpose within tol.
func (m Matrix2) IsHermitian(tol float64) bool {
	return m.ApproxEqual(m.Dagger(), tol)
}

var fixedMatrices = map[GateType]Matrix2{
	GateX:   {{0, 1}, {1, 0}},
	GateY:   {{0, -1i}, {1i, 0}},
	GateZ:   {{1, 0}, {0, -1}},
	GateH:   {{math.Sqrt2 / 2, math.Sqrt2 / 2}, {math.Sqrt2 / 2, -math.Sqrt2 / 2}},
	GateS:   {{1, 0}, {0, 1i}},
	GateSdg: {{1, 0}, {0, -1i}},
	GateT:   {{1, 0}, {0, expi(math.Pi / 4)}},
	GateTdg: {{1, 0}, {0, expi(-math.Pi / 4)}},
}

// Fixed returns the matrix of a non-parameterized single-qubit gate.
func Fixed(t GateType) (Matrix2, bool) {
	m, ok := fixedMatrices[t]
	return m, ok
}

// RxMatrix is a rotation of theta radians about the X axis.
func RxMatrix(theta float64) Matrix2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix2{
		{complex(c, 0), complex(0, -s)},
		{complex(0, -s), complex(c, 0)},
	}
}

// RyMatrix is a rotation of theta radians about the Y axis.
func RyMatrix(theta float64) Matrix2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix2{
		{complex(c, 0), complex(-s, 0)},
		{complex(s, 0), complex(c, 0)},
	}
}

// RzMatrix is a rotation of theta radians about the Z axis.
func RzMatrix(theta float64) Matrix2 {
	return Matrix2{
		{expi(-theta / 2), 0},
		{0, expi(theta / 2)},
	}
}

// PhaseMatrix multiplies |1⟩ by e^{iφ}.
func PhaseMatrix(phi float64) Matrix2 {
	return Matrix2{
		{1, 0},
		{0, expi(phi)},
	}
}

// Matrix returns the operator of a single-qubit gate. angle is ignored for
// fixed gates. ok is false for multi-qubit gates.
func (t GateType) Matrix(angle float64) (m Matrix2, ok bool) {
	switch t {
	case GateX, GateY, GateZ, GateH, GateS, GateSdg, GateT, GateTdg:
		return Fixed(t)
	case GateRx:
		return RxMatrix(angle), true
	case GateRy:
		return RyMatrix(angle), true
	case GateRz:
		return RzMatrix(angle), true
	case GatePhase:
		return PhaseMatrix(angle), true
	case GateCNOT, GateCZ, GateSWAP, GateCCNOT:
		return Matrix2{}, false
	}
	return Matrix2{}, false
}

// MarshalText encodes the gate symbol.
func (t GateType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, invalidGate("unknown gate type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts any name ParseGateType accepts.
func (t *GateType) UnmarshalText(text []byte) error {
	parsed, err := ParseGateType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
