// Package circuit manages an editable gate sequence over a small register
// and converts it to and from OpenQASM 2.0.
package circuit

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"qbloch/quantum"
)

// Direction moves a gate earlier or later in the sequence.
type Direction int

const (
	Up Direction = iota
	Down
)

// Circuit is an ordered gate sequence applied to NumQubits qubits that start
// in the basis state InitialState.
type Circuit struct {
	NumQubits    int
	InitialState int
	Gates        []quantum.Gate
}

// New returns an empty circuit.
func New(numQubits, initialState int) (*Circuit, error) {
	c := &Circuit{NumQubits: numQubits, InitialState: initialState}
	if err := c.Config().Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the register configuration for a simulation run.
func (c *Circuit) Config() quantum.Config {
	return quantum.Config{NumQubits: c.NumQubits, InitialState: c.InitialState}
}

// Add validates g, assigns it a fresh ID and appends it. It returns the ID.
func (c *Circuit) Add(g quantum.Gate) (string, error) {
	if err := g.Validate(c.NumQubits); err != nil {
		return "", err
	}
	g.ID = uuid.NewString()
	g.Qubits = slices.Clone(g.Qubits)
	if g.Angle != nil {
		angle := *g.Angle
		g.Angle = &angle
	}
	c.Gates = append(c.Gates, g)
	zap.L().Debug("added gate", zap.String("id", g.ID), zap.Stringer("gate", g))
	return g.ID, nil
}

func (c *Circuit) indexOf(id string) int {
	return slices.IndexFunc(c.Gates, func(g quantum.Gate) bool {
		return g.ID == id
	})
}

// Remove deletes the gate with the given ID and reports whether it existed.
func (c *Circuit) Remove(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.Gates = slices.Delete(c.Gates, i, i+1)
	return true
}

// Move swaps the gate with its neighbour in the given direction. It reports
// false when the gate is missing or already at that end.
func (c *Circuit) Move(id string, dir Direction) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(c.Gates) {
		return false
	}
	c.Gates[i], c.Gates[j] = c.Gates[j], c.Gates[i]
	return true
}

// Clear removes every gate.
func (c *Circuit) Clear() {
	c.Gates = nil
}

// SetNumQubits resizes the register. Gates that touch a removed qubit are
// dropped and the initial state is reset to 0 if it no longer fits.
func (c *Circuit) SetNumQubits(n int) error {
	cfg := quantum.Config{NumQubits: n}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.NumQubits = n
	if c.InitialState >= 1<<n {
		c.InitialState = 0
	}
	c.Gates = slices.DeleteFunc(c.Gates, func(g quantum.Gate) bool {
		return g.Validate(n) != nil
	})
	return nil
}

// SetInitialState selects the starting basis state.
func (c *Circuit) SetInitialState(basis int) error {
	cfg := quantum.Config{NumQubits: c.NumQubits, InitialState: basis}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.InitialState = basis
	return nil
}

// Validate checks the configuration and every gate, reporting all problems.
func (c *Circuit) Validate() error {
	if err := c.Config().Validate(); err != nil {
		return err
	}
	return quantum.ValidateGates(c.NumQubits, c.Gates)
}

// Simulate runs the circuit on a fresh register.
func (c *Circuit) Simulate(ctx context.Context) (quantum.QuantumState, error) {
	qs, err := quantum.Run(ctx, c.Config(), c.Gates)
	if err != nil {
		return quantum.QuantumState{}, errors.Wrap(err, "simulate")
	}
	return qs, nil
}

// Clone returns a deep copy that shares no slices with c.
func (c *Circuit) Clone() *Circuit {
	return deepcopy.Copy(c).(*Circuit)
}
