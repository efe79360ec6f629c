package conf

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"qbloch/quantum"
)

func TestParseSetting(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantQubits int
		wantGates  int
		wantAngles []float64 // radians, NaN for gates without an angle
	}{
		{
			name:       "empty",
			in:         "",
			wantQubits: 1,
		},
		{
			name: "bell",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 2

				[[circuit.gates]]
				type = "H"
				qubits = [0]

				[[circuit.gates]]
				type = "cx"
				qubits = [0, 1]
			`),
			wantQubits: 2,
			wantGates:  2,
			wantAngles: []float64{math.NaN(), math.NaN()},
		},
		{
			name: "degrees",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 1
				angle_unit = "degrees"

				[[circuit.gates]]
				type = "rx"
				qubits = [0]
				angle = 90

				[[circuit.gates]]
				type = "ry"
				qubits = [0]
				angle = 45.0

				[[circuit.gates]]
				type = "rz"
				qubits = [0]
				angle = "pi/2"
			`),
			wantQubits: 1,
			wantGates:  3,
			wantAngles: []float64{math.Pi / 2, math.Pi / 4, math.Pi / 2},
		},
		{
			name: "radians",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 3
				initial_state = 7

				[[circuit.gates]]
				type = "phase"
				qubits = [2]
				angle = "0.5"
			`),
			wantQubits: 3,
			wantGates:  1,
			wantAngles: []float64{0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSetting(tt.in)
			require.NoError(t, err)
			c, err := s.BuildCircuit()
			require.NoError(t, err)
			assert.Equal(t, tt.wantQubits, c.NumQubits)
			require.Len(t, c.Gates, tt.wantGates)
			for i, want := range tt.wantAngles {
				if math.IsNaN(want) {
					assert.Nil(t, c.Gates[i].Angle)
					continue
				}
				require.NotNil(t, c.Gates[i].Angle)
				assert.InDelta(t, want, *c.Gates[i].Angle, 1e-12)
			}
		})
	}
}

func TestSettingCircuitErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{
			name:    "too many qubits",
			in:      "[circuit]\nnum_qubits = 6\n",
			wantErr: quantum.ErrInvalidConfiguration,
		},
		{
			name:    "bad unit",
			in:      "[circuit]\nnum_qubits = 1\nangle_unit = \"turns\"\n",
			wantErr: quantum.ErrInvalidConfiguration,
		},
		{
			name: "unknown gate",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 1
				[[circuit.gates]]
				type = "sqrtx"
				qubits = [0]
			`),
			wantErr: quantum.ErrInvalidGateSpec,
		},
		{
			name: "bad angle",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 1
				[[circuit.gates]]
				type = "rx"
				qubits = [0]
				angle = "half"
			`),
			wantErr: quantum.ErrInvalidGateSpec,
		},
		{
			name: "missing angle",
			in: heredoc.Doc(`
				[circuit]
				num_qubits = 1
				[[circuit.gates]]
				type = "rx"
				qubits = [0]
			`),
			wantErr: quantum.ErrInvalidGateSpec,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSetting(tt.in)
			require.NoError(t, err)
			_, err = s.BuildCircuit()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSettingSyntaxError(t *testing.T) {
	_, err := ParseSetting("[circuit\n")
	assert.Error(t, err)
}

func TestSaveAndLoadSetting(t *testing.T) {
	s, err := ParseSetting(heredoc.Doc(`
		[circuit]
		num_qubits = 2
		initial_state = 1
		angle_unit = "degrees"

		[[circuit.gates]]
		type = "ry"
		qubits = [1]
		angle = 60

		[[circuit.gates]]
		type = "swap"
		qubits = [0, 1]
	`))
	require.NoError(t, err)
	c, err := s.BuildCircuit()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "qbloch.toml")
	require.NoError(t, SaveSetting(path, FromCircuit(c)))

	loaded, err := LoadSetting(path)
	require.NoError(t, err)
	assert.Equal(t, AngleUnitRadians, loaded.Circuit.AngleUnit)
	got, err := loaded.BuildCircuit()
	require.NoError(t, err)
	assert.Equal(t, c.NumQubits, got.NumQubits)
	assert.Equal(t, c.InitialState, got.InitialState)
	require.Len(t, got.Gates, 2)
	assert.Equal(t, quantum.GateRy, got.Gates[0].Type)
	require.NotNil(t, got.Gates[0].Angle)
	assert.InDelta(t, math.Pi/3, *got.Gates[0].Angle, 1e-12)
	assert.Equal(t, quantum.GateSWAP, got.Gates[1].Type)
	assert.Equal(t, []int{0, 1}, got.Gates[1].Qubits)
	assert.Nil(t, got.Gates[1].Angle)
}

func TestLoadSettingMissingFile(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	_, err := LoadSetting(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}

func TestLoadSettingUnreadable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	// A directory exists but cannot be read as a file.
	_, err := LoadSetting(t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
