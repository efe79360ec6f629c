package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-faster/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"qbloch/quantum"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type runCmd struct {
	QASM   string `long:"qasm" description:"QASM file to simulate instead of the setting file"`
	Format string `long:"format" description:"output format" default:"text" choice:"text" choice:"json"`
}

func (c *runCmd) Execute(args []string) error {
	logger := setLogger(app.Conf)
	defer logger.Sync()

	circ, err := loadCircuit(c.QASM, app.Conf.SettingPath, false)
	if err != nil {
		zap.L().Error("failed to load circuit", zap.Error(err))
		return err
	}
	zap.L().Debug("Loaded circuit",
		zap.Int("num_qubits", circ.NumQubits),
		zap.Int("initial_state", circ.InitialState),
		zap.Int("gates", len(circ.Gates)))

	qs, err := circ.Simulate(context.Background())
	if err != nil {
		zap.L().Error("simulation failed", zap.Error(err))
		return err
	}

	switch c.Format {
	case "json":
		return writeJSON(os.Stdout, qs)
	default:
		_, err := io.WriteString(os.Stdout, formatText(qs))
		return err
	}
}

func writeJSON(w io.Writer, qs quantum.QuantumState) error {
	b, err := json.Marshal(qs)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}
	_, err = w.Write(pretty.Pretty(b))
	return err
}

// formatText renders the amplitudes and the per-qubit observables as two
// tables.
func formatText(qs quantum.QuantumState) string {
	probs := qs.Probabilities()
	amps := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("basis", "amplitude", "probability")
	for i, a := range qs.Amplitudes {
		amps.Row(
			quantum.BasisLabel(i, qs.NumQubits),
			fmt.Sprintf("%+.6f%+.6fi", real(a), imag(a)),
			fmt.Sprintf("%.6f", probs[i]),
		)
	}

	qp := qs.QubitProbabilities()
	entropies := qs.Entropies()
	purities := qs.Purities()
	qubits := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("qubit", "x", "y", "z", "p0", "p1", "entropy", "purity")
	for q, b := range qs.BlochVectors {
		qubits.Row(
			fmt.Sprintf("q[%d]", q),
			fmt.Sprintf("%.6f", b.X),
			fmt.Sprintf("%.6f", b.Y),
			fmt.Sprintf("%.6f", b.Z),
			fmt.Sprintf("%.6f", qp[q].Prob0),
			fmt.Sprintf("%.6f", qp[q].Prob1),
			fmt.Sprintf("%.6f", entropies[q]),
			fmt.Sprintf("%.6f", purities[q]),
		)
	}

	var sb strings.Builder
	sb.WriteString(amps.Render())
	sb.WriteString("\n")
	sb.WriteString(qubits.Render())
	sb.WriteString("\n")
	return sb.String()
}
