package circuit

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDAGParallelGates(t *testing.T) {
	c, err := ParseQASM(heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[4];
		creg c[4];

		h q[0];
		h q[1];
		cx q[0], q[1];
		x q[2];
		cz q[0], q[2];
		y q[3];
	`))
	require.NoError(t, err)

	dag := c.DAG()
	require.Len(t, dag.Nodes, 6)

	steps := make([]int, len(dag.Nodes))
	for i, n := range dag.Nodes {
		steps[i] = n.Step
	}
	// h,h share step 0; cx follows; x q[2] fits in step 0; cz spans q0..q2
	// so it waits for cx; y q[3] is free.
	assert.Equal(t, []int{0, 0, 1, 0, 2, 0}, steps)
	assert.Equal(t, 3, dag.NumSteps())

	cx := dag.Nodes[2]
	assert.ElementsMatch(t, []string{c.Gates[0].ID, c.Gates[1].ID}, cx.Dependencies)
	cz := dag.Nodes[4]
	assert.ElementsMatch(t, []string{c.Gates[2].ID, c.Gates[3].ID}, cz.Dependencies)

	assert.Len(t, dag.NodesAtStep(0), 4)
	assert.Same(t, cz, dag.NodeAt(2, 1))
	assert.Nil(t, dag.NodeAt(2, 3))
	assert.Same(t, cx, dag.NodeForGate(2))
	assert.Nil(t, dag.NodeForGate(9))
}

func TestDAGEmpty(t *testing.T) {
	c, err := New(3, 0)
	require.NoError(t, err)
	dag := c.DAG()
	assert.Empty(t, dag.Nodes)
	assert.Equal(t, 0, dag.NumSteps())
}
