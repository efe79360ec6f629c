package circuit

import (
	"slices"

	"qbloch/quantum"
)

// DAGNode is a gate placed on the circuit grid. Dependencies are the IDs of
// the gates that last touched one of its qubits; the node cannot move to a
// step at or before any of them.
type DAGNode struct {
	Gate         quantum.Gate
	Index        int // position in Circuit.Gates
	Step         int // column in the grid
	Dependencies []string
}

// Span returns the lowest and highest qubit the node's wire covers. Multi-qubit
// gates occupy every qubit in between so vertical connectors never cross
// another gate.
func (n *DAGNode) Span() (lo, hi int) {
	lo, hi = slices.Min(n.Gate.Qubits), slices.Max(n.Gate.Qubits)
	return lo, hi
}

// Covers reports whether the node occupies qubit on the grid.
func (n *DAGNode) Covers(qubit int) bool {
	lo, hi := n.Span()
	return qubit >= lo && qubit <= hi
}

// CircuitDAG lays the gate sequence out in parallel steps: each gate goes in
// the first column after every earlier gate that overlaps its span.
type CircuitDAG struct {
	NumQubits int
	Nodes     []*DAGNode
}

// DAG builds the layout for the current gate sequence.
func (c *Circuit) DAG() *CircuitDAG {
	dag := &CircuitDAG{NumQubits: c.NumQubits, Nodes: make([]*DAGNode, 0, len(c.Gates))}
	lastStep := make([]int, c.NumQubits)
	for i := range lastStep {
		lastStep[i] = -1
	}
	lastGate := make([]string, c.NumQubits)

	for i, g := range c.Gates {
		node := &DAGNode{Gate: g, Index: i}
		if len(g.Qubits) == 0 {
			continue
		}
		lo, hi := node.Span()
		if lo < 0 || hi >= c.NumQubits {
			continue
		}
		step := 0
		for q := lo; q <= hi; q++ {
			step = max(step, lastStep[q]+1)
		}
		node.Step = step
		for _, q := range g.Qubits {
			if dep := lastGate[q]; dep != "" && !slices.Contains(node.Dependencies, dep) {
				node.Dependencies = append(node.Dependencies, dep)
			}
			lastGate[q] = g.ID
		}
		for q := lo; q <= hi; q++ {
			lastStep[q] = step
		}
		dag.Nodes = append(dag.Nodes, node)
	}
	return dag
}

// NumSteps returns the number of grid columns.
func (dag *CircuitDAG) NumSteps() int {
	steps := 0
	for _, node := range dag.Nodes {
		steps = max(steps, node.Step+1)
	}
	return steps
}

// NodesAtStep returns all nodes in a column.
func (dag *CircuitDAG) NodesAtStep(step int) []*DAGNode {
	var result []*DAGNode
	for _, node := range dag.Nodes {
		if node.Step == step {
			result = append(result, node)
		}
	}
	return result
}

// NodeAt returns the node covering qubit at step, or nil.
func (dag *CircuitDAG) NodeAt(step, qubit int) *DAGNode {
	for _, node := range dag.Nodes {
		if node.Step == step && node.Covers(qubit) {
			return node
		}
	}
	return nil
}

// NodeForGate returns the node for the gate at index i of the sequence.
func (dag *CircuitDAG) NodeForGate(i int) *DAGNode {
	for _, node := range dag.Nodes {
		if node.Index == i {
			return node
		}
	}
	return nil
}
