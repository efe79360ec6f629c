package quantum

import "math"

// DensityMatrix is a dense 2^n × 2^n operator, indexed [row][column].
type DensityMatrix [][]Complex

// Dim returns the number of rows.
func (d DensityMatrix) Dim() int {
	return len(d)
}

// Trace returns Σ ρ[i][i].
func (d DensityMatrix) Trace() Complex {
	var tr Complex
	for i := range d {
		tr += d[i][i]
	}
	return tr
}

// IsHermitian reports whether ρ[i][j] = conj(ρ[j][i]) within tol.
func (d DensityMatrix) IsHermitian(tol float64) bool {
	for i := range d {
		for j := i; j < len(d); j++ {
			if !approxEqual(d[i][j], conj(d[j][i]), tol) {
				return false
			}
		}
	}
	return true
}

// DensityMatrix returns the outer product |ψ⟩⟨ψ|.
func (s *StateVector) DensityMatrix() DensityMatrix {
	n := len(s.Amplitudes)
	rho := make(DensityMatrix, n)
	for i := 0; i < n; i++ {
		rho[i] = make([]Complex, n)
		for j := 0; j < n; j++ {
			rho[i][j] = s.Amplitudes[i] * conj(s.Amplitudes[j])
		}
	}
	return rho
}

// PartialTrace reduces the density matrix of a numQubits register to the
// 2×2 state of target by tracing out every other qubit.
func PartialTrace(rho DensityMatrix, numQubits, target int) Matrix2 {
	if target < 0 || target >= numQubits {
		panic("quantum: partial trace target out of range")
	}
	bit := 1 << (numQubits - 1 - target)
	var reduced Matrix2
	for i := range rho {
		for j := range rho[i] {
			// Indices must agree on every qubit except target.
			if (i^j)&^bit != 0 {
				continue
			}
			a, b := 0, 0
			if i&bit != 0 {
				a = 1
			}
			if j&bit != 0 {
				b = 1
			}
			reduced[a][b] += rho[i][j]
		}
	}
	return reduced
}

// ReducedDensityMatrix returns the single-qubit state of target.
func (s *StateVector) ReducedDensityMatrix(target int) Matrix2 {
	return PartialTrace(s.DensityMatrix(), s.NumQubits, target)
}

// BlochVector is the (x, y, z) representation of a single-qubit state.
// Its length is 1 for a pure state and less than 1 for a mixed one.
type BlochVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BlochFromReduced converts a 2×2 reduced density matrix to a Bloch vector.
func BlochFromReduced(r Matrix2) BlochVector {
	return BlochVector{
		X: 2 * real(r[0][1]),
		Y: -2 * imag(r[0][1]),
		Z: real(r[0][0]) - real(r[1][1]),
	}
}

// Length returns |b|.
func (b BlochVector) Length() float64 {
	return math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
}

// Entropy returns the von Neumann entropy in bits of the single-qubit state
// with Bloch vector b: 0 when pure, 1 when maximally mixed. Lengths slightly
// above 1 from rounding are clamped.
func Entropy(b BlochVector) float64 {
	r := math.Min(b.Length(), 1)
	l1 := (1 + r) / 2
	l2 := (1 - r) / 2
	return -(xlog2x(l1) + xlog2x(l2))
}

// xlog2x returns x·log2(x), taking 0·log2(0) as 0.
func xlog2x(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * math.Log2(x)
}

// Purity returns Tr(ρ²) = (1 + |b|²)/2, in [0.5, 1].
func Purity(b BlochVector) float64 {
	return (1 + b.X*b.X + b.Y*b.Y + b.Z*b.Z) / 2
}

// QubitProbability holds the chance of measuring a qubit as 0 or 1.
type QubitProbability struct {
	Prob0 float64 `json:"p0"`
	Prob1 float64 `json:"p1"`
}

// ProbabilityFromReduced reads the measurement probabilities off the
// diagonal of a reduced density matrix.
func ProbabilityFromReduced(r Matrix2) QubitProbability {
	return QubitProbability{Prob0: real(r[0][0]), Prob1: real(r[1][1])}
}
