package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbloch/quantum"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCircuitFromQASM(t *testing.T) {
	path := writeFile(t, "bell.qasm", heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		h q[0];
		cx q[0], q[1];
	`))
	c, err := loadCircuit(path, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits)
	assert.Len(t, c.Gates, 2)
}

func TestLoadCircuitFromSetting(t *testing.T) {
	path := writeFile(t, "qbloch.toml", heredoc.Doc(`
		[circuit]
		num_qubits = 3
		[[circuit.gates]]
		type = "ccx"
		qubits = [0, 1, 2]
	`))
	c, err := loadCircuit("", path, false)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits)
	require.Len(t, c.Gates, 1)
	assert.Equal(t, quantum.GateCCNOT, c.Gates[0].Type)
}

func TestLoadCircuitMissingSetting(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	_, err := loadCircuit("", missing, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	c, err := loadCircuit("", missing, true)
	require.NoError(t, err)
	assert.Equal(t, 1, c.NumQubits)
	assert.Empty(t, c.Gates)
}

func TestLoadCircuitBadQASM(t *testing.T) {
	path := writeFile(t, "bad.qasm", "qreg q[1];\nfrobnicate q[0];\n")
	_, err := loadCircuit(path, "", false)
	assert.ErrorIs(t, err, quantum.ErrInvalidGateSpec)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOutputs(t *testing.T) {
	qs, err := quantum.Run(context.Background(), quantum.Config{NumQubits: 1}, []quantum.Gate{
		quantum.NewGate(quantum.GateX, 0),
	})
	require.NoError(t, err)

	text := formatText(qs)
	assert.Contains(t, text, "|1⟩")
	assert.Contains(t, text, "entropy")
	assert.Contains(t, text, "-1.000000")

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, qs))
	assert.Contains(t, buf.String(), `"num_qubits": 1`)
	assert.Contains(t, buf.String(), "\n")
}
