package conf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"qbloch/circuit"
	"qbloch/quantum"
)

const (
	AngleUnitRadians = "radians"
	AngleUnitDegrees = "degrees"
)

// Setting is the content of the TOML setting file.
type Setting struct {
	Circuit CircuitSetting `toml:"circuit"`
}

type CircuitSetting struct {
	NumQubits    int           `toml:"num_qubits"`
	InitialState int           `toml:"initial_state"`
	AngleUnit    string        `toml:"angle_unit,omitempty"`
	Gates        []GateSetting `toml:"gates"`
}

// GateSetting is one [[circuit.gates]] entry. Angle is either a number in
// AngleUnit or a string expression such as "pi/2" or "90deg".
type GateSetting struct {
	Type   string `toml:"type"`
	Qubits []int  `toml:"qubits"`
	Angle  any    `toml:"angle,omitempty"`
}

// NewSetting returns the setting used when no file is present: a single
// qubit with no gates.
func NewSetting() Setting {
	return Setting{
		Circuit: CircuitSetting{
			NumQubits: 1,
			AngleUnit: AngleUnitRadians,
		},
	}
}

// LoadSetting reads and parses the setting file at path.
func LoadSetting(path string) (Setting, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		zap.L().Debug("setting file not found", zap.String("path", path))
		return Setting{}, errors.Wrap(err, "read setting")
	}
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read setting file/reason:%s", err))
		return Setting{}, errors.Wrap(err, "read setting")
	}
	return ParseSetting(string(b))
}

// ParseSetting decodes a TOML setting document.
func ParseSetting(tomlString string) (Setting, error) {
	s := NewSetting()
	md, err := toml.Decode(tomlString, &s)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse setting/reason:%s", err))
		return Setting{}, errors.Wrap(err, "decode setting")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		zap.L().Warn("unknown setting keys", zap.Stringers("keys", undecoded))
	}
	zap.L().Debug("Successfully decoded setting", zap.Any("setting", s))
	return s, nil
}

// BuildCircuit builds the circuit described by the setting, converting
// angles to radians.
func (s Setting) BuildCircuit() (*circuit.Circuit, error) {
	cs := s.Circuit
	switch cs.AngleUnit {
	case "", AngleUnitRadians, AngleUnitDegrees:
	default:
		return nil, errors.Wrapf(quantum.ErrInvalidConfiguration, "unknown angle unit %q", cs.AngleUnit)
	}
	c, err := circuit.New(cs.NumQubits, cs.InitialState)
	if err != nil {
		return nil, err
	}
	for i, gs := range cs.Gates {
		g, err := gs.gate(cs.AngleUnit == AngleUnitDegrees)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		if _, err := c.Add(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return c, nil
}

func (gs GateSetting) gate(degrees bool) (quantum.Gate, error) {
	t, err := quantum.ParseGateType(gs.Type)
	if err != nil {
		return quantum.Gate{}, err
	}
	g := quantum.Gate{Type: t, Qubits: gs.Qubits}
	if gs.Angle == nil {
		return g, nil
	}
	var angle float64
	switch v := gs.Angle.(type) {
	case int64:
		angle = float64(v)
	case float64:
		angle = v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			angle = f
			break
		}
		parsed, ok := circuit.ParseParamExpr(v)
		if !ok {
			return quantum.Gate{}, errors.Wrapf(quantum.ErrInvalidGateSpec, "bad angle %q", v)
		}
		// Expressions carry their own unit.
		g.Angle = &parsed
		return g, nil
	default:
		return quantum.Gate{}, errors.Wrapf(quantum.ErrInvalidGateSpec, "angle has type %T", v)
	}
	if degrees {
		angle = circuit.DegreesToRadians(angle)
	}
	g.Angle = &angle
	return g, nil
}

// FromCircuit describes c as a setting with angles in radians.
func FromCircuit(c *circuit.Circuit) Setting {
	s := Setting{
		Circuit: CircuitSetting{
			NumQubits:    c.NumQubits,
			InitialState: c.InitialState,
			AngleUnit:    AngleUnitRadians,
			Gates:        make([]GateSetting, 0, len(c.Gates)),
		},
	}
	for _, g := range c.Gates {
		gs := GateSetting{Type: g.Type.String(), Qubits: g.Qubits}
		if g.Angle != nil {
			gs.Angle = *g.Angle
		}
		s.Circuit.Gates = append(s.Circuit.Gates, gs)
	}
	return s
}

// Encode renders the setting as TOML.
func (s Setting) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return "", errors.Wrap(err, "encode setting")
	}
	return buf.String(), nil
}

// SaveSetting writes the setting to path.
func SaveSetting(path string, s Setting) error {
	out, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return errors.Wrap(err, "write setting")
	}
	zap.L().Info("Saved setting", zap.String("path", path), zap.Int("gates", len(s.Circuit.Gates)))
	return nil
}
