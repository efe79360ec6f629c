package quantum

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config selects the register size and the computational basis state the
// register starts in.
type Config struct {
	NumQubits    int `json:"num_qubits" toml:"num_qubits"`
	InitialState int `json:"initial_state" toml:"initial_state"`
}

// Validate checks NumQubits ∈ [1, MaxQubits] and InitialState ∈ [0, 2^n).
func (c Config) Validate() error {
	if c.NumQubits < 1 || c.NumQubits > MaxQubits {
		return invalidConfig("qubit count %d outside [1,%d]", c.NumQubits, MaxQubits)
	}
	if c.InitialState < 0 || c.InitialState >= 1<<c.NumQubits {
		return invalidConfig("initial state %d outside [0,%d)", c.InitialState, 1<<c.NumQubits)
	}
	return nil
}

// Simulator applies gates to a register it owns exclusively. It is not safe
// for concurrent use; independent runs should use independent simulators.
type Simulator struct {
	state *StateVector
}

// NewSimulator returns a simulator in the basis state |initialState⟩.
func NewSimulator(numQubits, initialState int) (*Simulator, error) {
	cfg := Config{NumQubits: numQubits, InitialState: initialState}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{state: NewStateVector(numQubits, initialState)}, nil
}

// NumQubits returns the register size.
func (s *Simulator) NumQubits() int {
	return s.state.NumQubits
}

// ApplyGate validates g and applies it. On error the state is unchanged.
func (s *Simulator) ApplyGate(g Gate) error {
	if err := g.Validate(s.state.NumQubits); err != nil {
		return err
	}
	q := g.Qubits
	switch g.Type {
	case GateX, GateY, GateZ, GateH, GateS, GateSdg, GateT, GateTdg,
		GateRx, GateRy, GateRz, GatePhase:
		u, _ := g.Type.Matrix(g.AngleOr(0))
		s.state.ApplySingleQubit(q[0], u)
	case GateCNOT:
		s.state.ApplyCNOT(q[0], q[1])
	case GateCZ:
		s.state.ApplyCZ(q[0], q[1])
	case GateSWAP:
		s.state.ApplySWAP(q[0], q[1])
	case GateCCNOT:
		s.state.ApplyCCNOT(q[0], q[1], q[2])
	}
	return nil
}

// Snapshot derives the full result from the current amplitudes. The result
// shares no memory with the simulator.
func (s *Simulator) Snapshot() QuantumState {
	n := s.state.NumQubits
	qs := QuantumState{
		NumQubits:     n,
		Amplitudes:    s.state.Clone().Amplitudes,
		DensityMatrix: s.state.DensityMatrix(),
		ReducedStates: make([]Matrix2, n),
		BlochVectors:  make([]BlochVector, n),
	}
	for q := 0; q < n; q++ {
		qs.ReducedStates[q] = PartialTrace(qs.DensityMatrix, n, q)
		qs.BlochVectors[q] = BlochFromReduced(qs.ReducedStates[q])
	}
	return qs
}

// ValidateGates checks every gate and reports all failures together.
func ValidateGates(numQubits int, gates []Gate) error {
	var errs error
	for i, g := range gates {
		if err := g.Validate(numQubits); err != nil {
			errs = multierr.Append(errs, invalidGateAt(i, err))
		}
	}
	return errs
}

func invalidGateAt(i int, err error) error {
	return &GateError{Index: i, Err: err}
}

// GateError ties a validation failure to a position in a gate sequence.
type GateError struct {
	Index int
	Err   error
}

func (e *GateError) Error() string {
	return "gate " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// Run simulates gates on a fresh register and returns the final state. The
// whole sequence is validated before any gate is applied, and ctx is only
// consulted before the run starts.
func Run(ctx context.Context, cfg Config, gates []Gate) (QuantumState, error) {
	if err := ctx.Err(); err != nil {
		return QuantumState{}, err
	}
	sim, err := NewSimulator(cfg.NumQubits, cfg.InitialState)
	if err != nil {
		return QuantumState{}, err
	}
	if err := ValidateGates(cfg.NumQubits, gates); err != nil {
		zap.L().Debug("rejected gate sequence", zap.Int("gates", len(gates)), zap.Error(err))
		return QuantumState{}, err
	}
	for _, g := range gates {
		if err := sim.ApplyGate(g); err != nil {
			return QuantumState{}, err
		}
	}
	zap.L().Debug("simulation finished",
		zap.Int("qubits", cfg.NumQubits),
		zap.Int("initial", cfg.InitialState),
		zap.Int("gates", len(gates)))
	return sim.Snapshot(), nil
}

// BasisLabel formats a basis index as a ket, qubit 0 first: BasisLabel(1, 2)
// is "|01⟩".
func BasisLabel(index, numQubits int) string {
	bits := strconv.FormatInt(int64(index), 2)
	if pad := numQubits - len(bits); pad > 0 {
		bits = strings.Repeat("0", pad) + bits
	}
	return "|" + bits + "⟩"
}
