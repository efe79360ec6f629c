package quantum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// MaxQubits bounds the register size. The simulation is dense, so memory
// and time grow as 2^n (4^n for the density matrix).
const MaxQubits = 5

// StateVector holds the 2^n amplitudes of a pure n-qubit state. Basis index
// bits are read most-significant first: qubit 0 is the highest-order bit,
// matching the left-to-right labels |q0 q1 … q(n-1)⟩.
//
// Every Apply method builds a new amplitude slice and replaces the old one,
// so a slice obtained before a call is never modified by it.
type StateVector struct {
	NumQubits  int
	Amplitudes []Complex
}

// NewStateVector returns the computational basis state |basis⟩.
func NewStateVector(numQubits, basis int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[basis] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Dim returns 2^n.
func (s *StateVector) Dim() int {
	return len(s.Amplitudes)
}

// mask returns the basis-index bit that encodes qubit q.
func (s *StateVector) mask(q int) int {
	if q < 0 || q >= s.NumQubits {
		panic(fmt.Sprintf("quantum: qubit %d out of range for %d-qubit register", q, s.NumQubits))
	}
	return 1 << (s.NumQubits - 1 - q)
}

func distinct(qubits ...int) {
	for i := range qubits {
		for j := i + 1; j < len(qubits); j++ {
			if qubits[i] == qubits[j] {
				panic(fmt.Sprintf("quantum: qubit %d used twice", qubits[i]))
			}
		}
	}
}

// ApplySingleQubit applies u to target, i.e. I⊗…⊗u⊗…⊗I, without building
// the full operator.
func (s *StateVector) ApplySingleQubit(target int, u Matrix2) {
	bit := s.mask(target)
	n := len(s.Amplitudes)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		newAmps[i] = u[0][0]*a0 + u[0][1]*a1
		newAmps[j] = u[1][0]*a0 + u[1][1]*a1
	}
	s.Amplitudes = newAmps
}

// ApplyCNOT flips target on every basis state where control is 1.
func (s *StateVector) ApplyCNOT(control, target int) {
	distinct(control, target)
	cBit, tBit := s.mask(control), s.mask(target)
	s.permute(func(i int) int {
		if i&cBit != 0 {
			return i ^ tBit
		}
		return i
	})
}

// ApplyCZ negates the amplitude of every basis state where both qubits are 1.
func (s *StateVector) ApplyCZ(control, target int) {
	distinct(control, target)
	both := s.mask(control) | s.mask(target)
	n := len(s.Amplitudes)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&both == both {
			newAmps[i] = -s.Amplitudes[i]
		} else {
			newAmps[i] = s.Amplitudes[i]
		}
	}
	s.Amplitudes = newAmps
}

// ApplySWAP exchanges qubits a and b. Swapping a qubit with itself is a no-op.
func (s *StateVector) ApplySWAP(a, b int) {
	aBit, bBit := s.mask(a), s.mask(b)
	if a == b {
		return
	}
	s.permute(func(i int) int {
		if (i&aBit == 0) != (i&bBit == 0) {
			return i ^ aBit ^ bBit
		}
		return i
	})
}

// ApplyCCNOT flips target on every basis state where both controls are 1.
func (s *StateVector) ApplyCCNOT(c1, c2, target int) {
	distinct(c1, c2, target)
	controls := s.mask(c1) | s.mask(c2)
	tBit := s.mask(target)
	s.permute(func(i int) int {
		if i&controls == controls {
			return i ^ tBit
		}
		return i
	})
}

// permute routes amplitude i to dest(i). dest must be a bijection.
func (s *StateVector) permute(dest func(int) int) {
	n := len(s.Amplitudes)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		newAmps[dest(i)] += s.Amplitudes[i]
	}
	s.Amplitudes = newAmps
}

// Probabilities returns |amplitude_i|² for every basis index.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = absSq(a)
	}
	return probs
}

// Norm returns Σ|amplitude_i|², which is 1 for a valid state.
func (s *StateVector) Norm() float64 {
	return floats.Sum(s.Probabilities())
}

// IsNormalized reports whether Norm is within tol of 1.
func (s *StateVector) IsNormalized(tol float64) bool {
	return scalar.EqualWithinAbs(s.Norm(), 1, tol)
}
