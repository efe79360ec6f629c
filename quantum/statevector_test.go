package quantum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertAmplitudes(t *testing.T, want, got []Complex) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, approxEqual(want[i], got[i], tol), "amplitude %d: want %v, got %v", i, want[i], got[i])
	}
}

// randomState prepares a generic entangled state by applying a fixed-seed
// sequence of gates to |0…0⟩.
func randomState(n int, seed int64) *StateVector {
	r := rand.New(rand.NewSource(seed))
	s := NewStateVector(n, 0)
	for k := 0; k < 6*n; k++ {
		q := r.Intn(n)
		s.ApplySingleQubit(q, RyMatrix(r.Float64()*2*math.Pi))
		s.ApplySingleQubit(q, RzMatrix(r.Float64()*2*math.Pi))
		if n > 1 {
			p := (q + 1 + r.Intn(n-1)) % n
			s.ApplyCNOT(q, p)
		}
	}
	return s
}

func TestNewStateVectorBasis(t *testing.T) {
	for n := 1; n <= MaxQubits; n++ {
		for basis := 0; basis < 1<<n; basis++ {
			s := NewStateVector(n, basis)
			require.Len(t, s.Amplitudes, 1<<n)
			for i, a := range s.Amplitudes {
				if i == basis {
					assert.Equal(t, Complex(1), a)
				} else {
					assert.Equal(t, Complex(0), a)
				}
			}
		}
	}
}

func TestQubitZeroIsMostSignificantBit(t *testing.T) {
	s := NewStateVector(3, 0)
	s.ApplySingleQubit(0, fixedMatrices[GateX])
	assertAmplitudes(t, []Complex{0, 0, 0, 0, 1, 0, 0, 0}, s.Amplitudes)

	s = NewStateVector(3, 0)
	s.ApplySingleQubit(2, fixedMatrices[GateX])
	assertAmplitudes(t, []Complex{0, 1, 0, 0, 0, 0, 0, 0}, s.Amplitudes)
}

func TestApplyReplacesAmplitudeSlice(t *testing.T) {
	s := NewStateVector(2, 0)
	before := s.Amplitudes
	s.ApplySingleQubit(0, fixedMatrices[GateH])
	assert.Equal(t, Complex(1), before[0])
	assert.Equal(t, Complex(0), before[2])
}

func TestNormalizationAfterEveryGate(t *testing.T) {
	for n := 1; n <= MaxQubits; n++ {
		r := rand.New(rand.NewSource(int64(n)))
		s := NewStateVector(n, r.Intn(1<<n))
		for k := 0; k < 50; k++ {
			q := r.Intn(n)
			switch r.Intn(5) {
			case 0:
				typ := GateType(r.Intn(int(GatePhase) + 1))
				u, ok := typ.Matrix(r.NormFloat64() * math.Pi)
				require.True(t, ok)
				s.ApplySingleQubit(q, u)
			case 1:
				if n > 1 {
					s.ApplyCNOT(q, (q+1)%n)
				}
			case 2:
				if n > 1 {
					s.ApplyCZ(q, (q+1)%n)
				}
			case 3:
				s.ApplySWAP(q, r.Intn(n))
			case 4:
				if n > 2 {
					s.ApplyCCNOT(q, (q+1)%n, (q+2)%n)
				}
			}
			require.InDelta(t, 1.0, s.Norm(), tol, "n=%d step=%d", n, k)
			require.True(t, s.IsNormalized(tol))
		}
	}
}

func TestUnitarityRoundTrip(t *testing.T) {
	theta := 1.234
	singles := []struct {
		name    string
		forward Matrix2
		inverse Matrix2
	}{
		{"X·X", fixedMatrices[GateX], fixedMatrices[GateX]},
		{"H·H", fixedMatrices[GateH], fixedMatrices[GateH]},
		{"S·Sdg", fixedMatrices[GateS], fixedMatrices[GateSdg]},
		{"T·Tdg", fixedMatrices[GateT], fixedMatrices[GateTdg]},
		{"Rx·Rx⁻¹", RxMatrix(theta), RxMatrix(-theta)},
		{"Ry·Ry⁻¹", RyMatrix(theta), RyMatrix(-theta)},
		{"Rz·Rz⁻¹", RzMatrix(theta), RzMatrix(-theta)},
		{"P·P⁻¹", PhaseMatrix(theta), PhaseMatrix(-theta)},
	}
	for n := 1; n <= MaxQubits; n++ {
		orig := randomState(n, 42)
		for _, tt := range singles {
			for q := 0; q < n; q++ {
				s := orig.Clone()
				s.ApplySingleQubit(q, tt.forward)
				s.ApplySingleQubit(q, tt.inverse)
				assertAmplitudes(t, orig.Amplitudes, s.Amplitudes)
			}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				s := orig.Clone()
				s.ApplyCNOT(a, b)
				s.ApplyCNOT(a, b)
				assertAmplitudes(t, orig.Amplitudes, s.Amplitudes)

				s.ApplySWAP(a, b)
				s.ApplySWAP(a, b)
				assertAmplitudes(t, orig.Amplitudes, s.Amplitudes)

				s.ApplyCZ(a, b)
				s.ApplyCZ(a, b)
				assertAmplitudes(t, orig.Amplitudes, s.Amplitudes)
			}
		}
	}
}

func TestApplyCNOT(t *testing.T) {
	// |10⟩ → |11⟩, |00⟩ unchanged
	s := NewStateVector(2, 2)
	s.ApplyCNOT(0, 1)
	assertAmplitudes(t, []Complex{0, 0, 0, 1}, s.Amplitudes)

	s = NewStateVector(2, 0)
	s.ApplyCNOT(0, 1)
	assertAmplitudes(t, []Complex{1, 0, 0, 0}, s.Amplitudes)

	// control on the low-order qubit: |01⟩ → |11⟩
	s = NewStateVector(2, 1)
	s.ApplyCNOT(1, 0)
	assertAmplitudes(t, []Complex{0, 0, 0, 1}, s.Amplitudes)
}

func TestApplyCZ(t *testing.T) {
	s := NewStateVector(2, 0)
	s.ApplyCZ(0, 1)
	assertAmplitudes(t, []Complex{1, 0, 0, 0}, s.Amplitudes)

	s = NewStateVector(2, 3)
	s.ApplyCZ(0, 1)
	assertAmplitudes(t, []Complex{0, 0, 0, -1}, s.Amplitudes)
}

func TestApplySWAP(t *testing.T) {
	s := NewStateVector(2, 1)
	s.ApplySWAP(0, 1)
	assertAmplitudes(t, NewStateVector(2, 2).Amplitudes, s.Amplitudes)

	s = NewStateVector(3, 0b110)
	s.ApplySWAP(0, 2)
	assertAmplitudes(t, NewStateVector(3, 0b011).Amplitudes, s.Amplitudes)

	s = NewStateVector(3, 0b100)
	s.ApplySWAP(1, 1)
	assertAmplitudes(t, NewStateVector(3, 0b100).Amplitudes, s.Amplitudes)
}

func TestApplyCCNOT(t *testing.T) {
	for basis := 0; basis < 8; basis++ {
		s := NewStateVector(3, basis)
		s.ApplyCCNOT(0, 1, 2)
		want := basis
		if basis&0b110 == 0b110 {
			want = basis ^ 0b001
		}
		assertAmplitudes(t, NewStateVector(3, want).Amplitudes, s.Amplitudes)
	}
}

func TestApplyPanicsOnBadQubit(t *testing.T) {
	s := NewStateVector(2, 0)
	assert.Panics(t, func() { s.ApplySingleQubit(2, Identity2) })
	assert.Panics(t, func() { s.ApplySingleQubit(-1, Identity2) })
	assert.Panics(t, func() { s.ApplyCNOT(1, 1) })
	assert.Panics(t, func() { s.ApplyCCNOT(0, 0, 1) })
}

func TestYGateMapsZeroToI(t *testing.T) {
	s := NewStateVector(1, 0)
	s.ApplySingleQubit(0, fixedMatrices[GateY])
	assertAmplitudes(t, []Complex{0, 1i}, s.Amplitudes)
}
