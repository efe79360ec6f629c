package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"qbloch/circuit"
	"qbloch/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// wireSymbol returns the symbol drawn on qubit for a multi-qubit gate.
func wireSymbol(g quantum.Gate, qubit int) string {
	last := g.Qubits[len(g.Qubits)-1]
	switch g.Type {
	case quantum.GateSWAP:
		return "×"
	case quantum.GateCZ:
		return "●"
	default:
		if qubit == last {
			return "⊕"
		}
		return "●"
	}
}

// gateLabel is the text inside a single-qubit gate box.
func gateLabel(g quantum.Gate) string {
	return menuSymbol(g.Type)
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for one grid cell, each cellW
// visual characters wide.
func renderCell(node *circuit.DAGNode, qubit int, selected bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	style := gateStyle
	if selected {
		style = cursorBoxStyle
	}

	if node == nil {
		return emptyRow, strings.Repeat("─", cellW), emptyRow
	}

	g := node.Gate
	if len(g.Qubits) == 1 {
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateLabel(g), gateNameW)
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + style.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		return
	}

	lo, hi := node.Span()
	top, bot = emptyRow, emptyRow
	if qubit > lo {
		top = vertRow
	}
	if qubit < hi {
		bot = vertRow
	}
	if slices.Contains(g.Qubits, qubit) {
		mid = strings.Repeat("─", dashL) + style.Render(wireSymbol(g, qubit)) + strings.Repeat("─", dashR)
	} else {
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit diagram and the gate list.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	fmt.Fprintf(&sb, "  %s\n\n", dimStyle.Render(fmt.Sprintf("initial %s", quantum.BasisLabel(m.circuit.InitialState, m.circuit.NumQubits))))

	dag := m.circuit.DAG()
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	selectedStep := -1
	if node := dag.NodeForGate(m.cursor); node != nil {
		selectedStep = node.Step
	}
	startStep := 0
	if selectedStep >= maxSteps {
		startStep = selectedStep - maxSteps + 1
	}
	displaySteps := max(min(maxSteps, dag.NumSteps()-startStep), 1)

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < m.circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		labelStyle := qubitLabelStyle
		if m.focus == focusSelectQubits && qubit == m.qubitCursor {
			labelStyle = targetSelectStyle
		} else if m.focus == focusSelectQubits && slices.Contains(m.pendingQubits, qubit) {
			labelStyle = activeGateStyle
		}
		midLine := labelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			node := dag.NodeAt(step, qubit)
			top, mid, bot := renderCell(node, qubit, node != nil && node.Index == m.cursor)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderGateList())

	// Status line
	switch {
	case m.focus == focusSelectQubits:
		def := m.pendingGate.Definition()
		fmt.Fprintf(&sb, "\n  %s", activeGateStyle.Render(def.Name))
		fmt.Fprintf(&sb, "  Select qubit %d of %d: ", len(m.pendingQubits)+1, def.Category.Arity())
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.qubitCursor)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	case m.statusMsg != "":
		fmt.Fprintf(&sb, "\n  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderGateList renders the ordered gate sequence with the cursor.
func (m Model) renderGateList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Gates"))
	sb.WriteString("\n")
	if len(m.circuit.Gates) == 0 {
		sb.WriteString(dimStyle.Render("  (empty, press a to add a gate)"))
		sb.WriteString("\n")
		return sb.String()
	}
	for i, g := range m.circuit.Gates {
		line := fmt.Sprintf("%2d  %s", i+1, g)
		if i == m.cursor && m.focus == focusCircuit {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString("  " + menuNormalStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.qasmErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.qasmErr.Error()))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders amplitudes and per-qubit observables.
func (m Model) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	title := "State"
	if m.stateOf != m.seq {
		title += dimStyle.Render(" (updating…)")
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	switch {
	case m.simErr != nil:
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
	case m.state == nil:
		sb.WriteString(dimStyle.Render("simulating…"))
	default:
		sb.WriteString(renderState(*m.state))
	}

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// renderState formats amplitudes with non-negligible probability followed
// by the Bloch vector, probabilities, entropy and purity of each qubit.
func renderState(qs quantum.QuantumState) string {
	var sb strings.Builder
	probs := qs.Probabilities()
	hidden := 0
	for i, a := range qs.Amplitudes {
		if probs[i] < 1e-9 {
			hidden++
			continue
		}
		filled := int(math.Round(probs[i] * probBarW))
		fmt.Fprintf(&sb, "%s %s %s %5.1f%%\n",
			qubitLabelStyle.Render(quantum.BasisLabel(i, qs.NumQubits)),
			formatAmplitude(a),
			probBarStyle.Render(strings.Repeat("█", filled))+dimStyle.Render(strings.Repeat("░", probBarW-filled)),
			probs[i]*100)
	}
	if hidden > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%d basis states with zero amplitude", hidden)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("      x      y      z     P0    P1    S     purity"))
	sb.WriteString("\n")
	qp := qs.QubitProbabilities()
	entropies := qs.Entropies()
	purities := qs.Purities()
	for q, b := range qs.BlochVectors {
		fmt.Fprintf(&sb, "%s %6.3f %6.3f %6.3f  %4.2f  %4.2f  %4.2f  %4.2f\n",
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
			b.X, b.Y, b.Z, qp[q].Prob0, qp[q].Prob1, entropies[q], purities[q])
	}
	return sb.String()
}

func formatAmplitude(a quantum.Complex) string {
	return fmt.Sprintf("%+.3f%+.3fi", real(a), imag(a))
}

// renderParamInput renders the angle input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Angle"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s on %v\n", m.pendingGate.Definition().Name, m.pendingQubits)
	fmt.Fprintf(&sb, "Value: %s_", m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57, 90deg"))
	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.statusMsg))
	}
	return menuBorderStyle.Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Select gate  ⇧↑⇧↓/KJ Move gate  +/- Qubits  i Initial state")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  d/Bksp Delete  ^R Clear  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

func isEscEnd(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	col := 0
	i := 0

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				i++
				if isEscEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if isEscEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	return prefix.String() + overlay + string(runes[i:])
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscEnd(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
