package quantum

import (
	jsoniter "github.com/json-iterator/go"
)

// QuantumState is the result of a simulation run. It is not modified after
// Snapshot returns it.
type QuantumState struct {
	NumQubits     int
	Amplitudes    []Complex
	DensityMatrix DensityMatrix
	ReducedStates []Matrix2
	BlochVectors  []BlochVector
}

// Probabilities returns the measurement distribution over basis states.
func (qs QuantumState) Probabilities() []float64 {
	probs := make([]float64, len(qs.Amplitudes))
	for i, a := range qs.Amplitudes {
		probs[i] = absSq(a)
	}
	return probs
}

// QubitProbabilities returns P(0) and P(1) for each qubit.
func (qs QuantumState) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, len(qs.ReducedStates))
	for q, r := range qs.ReducedStates {
		probs[q] = ProbabilityFromReduced(r)
	}
	return probs
}

func (qs QuantumState) Entropies() []float64 {
	out := make([]float64, len(qs.BlochVectors))
	for q, b := range qs.BlochVectors {
		out[q] = Entropy(b)
	}
	return out
}

func (qs QuantumState) Purities() []float64 {
	out := make([]float64, len(qs.BlochVectors))
	for q, b := range qs.BlochVectors {
		out[q] = Purity(b)
	}
	return out
}

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonComplex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type jsonQubit struct {
	Reduced [2][2]jsonComplex `json:"reduced"`
	Bloch   BlochVector       `json:"bloch"`
	Prob    QubitProbability  `json:"probability"`
	Entropy float64           `json:"entropy"`
	Purity  float64           `json:"purity"`
}

type jsonAmplitude struct {
	Basis       string      `json:"basis"`
	Amplitude   jsonComplex `json:"amplitude"`
	Probability float64     `json:"probability"`
}

type jsonState struct {
	NumQubits     int             `json:"num_qubits"`
	Amplitudes    []jsonAmplitude `json:"amplitudes"`
	DensityMatrix [][]jsonComplex `json:"density_matrix"`
	Qubits        []jsonQubit     `json:"qubits"`
}

func toJSONComplex(c Complex) jsonComplex {
	return jsonComplex{Re: real(c), Im: imag(c)}
}

// MarshalJSON writes complex entries as {"re","im"} objects.
func (qs QuantumState) MarshalJSON() ([]byte, error) {
	out := jsonState{
		NumQubits:     qs.NumQubits,
		Amplitudes:    make([]jsonAmplitude, len(qs.Amplitudes)),
		DensityMatrix: make([][]jsonComplex, len(qs.DensityMatrix)),
		Qubits:        make([]jsonQubit, len(qs.ReducedStates)),
	}
	for i, a := range qs.Amplitudes {
		out.Amplitudes[i] = jsonAmplitude{
			Basis:       BasisLabel(i, qs.NumQubits),
			Amplitude:   toJSONComplex(a),
			Probability: absSq(a),
		}
	}
	for i, row := range qs.DensityMatrix {
		out.DensityMatrix[i] = make([]jsonComplex, len(row))
		for j, v := range row {
			out.DensityMatrix[i][j] = toJSONComplex(v)
		}
	}
	for q, r := range qs.ReducedStates {
		jq := jsonQubit{Prob: ProbabilityFromReduced(r)}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				jq.Reduced[i][j] = toJSONComplex(r[i][j])
			}
		}
		if q < len(qs.BlochVectors) {
			jq.Bloch = qs.BlochVectors[q]
			jq.Entropy = Entropy(jq.Bloch)
			jq.Purity = Purity(jq.Bloch)
		}
		out.Qubits[q] = jq
	}
	return jsonIter.Marshal(out)
}
