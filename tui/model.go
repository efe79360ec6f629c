// Package tui is the interactive terminal front end: a gate list, a QASM
// editor kept in sync with it, and the simulated state of the register.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"qbloch/circuit"
	"qbloch/conf"
	"qbloch/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectQubits
	focusInputParam
)

// simulatedMsg carries the result of a background run. seq identifies the
// circuit revision it was computed for.
type simulatedMsg struct {
	seq   int
	state quantum.QuantumState
	err   error
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	circuit    *circuit.Circuit
	savePath   string
	cursor     int // index of the selected gate
	width      int
	height     int
	qasmEditor textarea.Model
	focus      focus
	lastQASM   string
	qasmErr    error
	statusMsg  string // transient status message (e.g. save confirmation)

	// Simulation results
	seq     int
	state   *quantum.QuantumState
	stateOf int // seq the state was computed for
	simErr  error

	// Menu state
	menuCat  int
	menuItem int

	// Gate placement state
	pendingGate   quantum.GateType
	pendingQubits []int
	qubitCursor   int
	paramInput    string
}

// New returns a model editing c. When savePath is set, ctrl+s writes the
// circuit there as a setting file.
func New(ctx context.Context, c *circuit.Circuit, savePath string) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		ctx:        ctx,
		circuit:    c,
		savePath:   savePath,
		qasmEditor: ta,
		focus:      focusCircuit,
		cursor:     len(c.Gates) - 1,
	}
	m.syncQASM()
	return m
}

func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.qasmErr = nil
}

// changed records a circuit edit and schedules a fresh simulation.
func (m *Model) changed() tea.Cmd {
	m.cursor = min(max(m.cursor, 0), len(m.circuit.Gates)-1)
	m.seq++
	return simulate(m.ctx, m.seq, m.circuit.Clone())
}

// simulate runs c off the UI goroutine. c must not be shared with the model.
func simulate(ctx context.Context, seq int, c *circuit.Circuit) tea.Cmd {
	return func() tea.Msg {
		qs, err := c.Simulate(ctx)
		if err != nil {
			zap.L().Debug("simulation failed", zap.Int("seq", seq), zap.Error(err))
		}
		return simulatedMsg{seq: seq, state: qs, err: err}
	}
}

func (m *Model) parseQASMInput() tea.Cmd {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return nil
	}
	m.lastQASM = qasm
	c, err := circuit.ParseQASM(qasm)
	if err != nil {
		m.qasmErr = err
		return nil
	}
	m.qasmErr = nil
	m.circuit = c
	m.cursor = len(c.Gates) - 1
	return m.changed()
}

func (m *Model) resetPending() {
	m.pendingQubits = nil
	m.paramInput = ""
}

// placeGate adds the pending gate to the end of the circuit.
func (m *Model) placeGate(angle *float64) tea.Cmd {
	g := quantum.Gate{Type: m.pendingGate, Qubits: m.pendingQubits, Angle: angle}
	m.resetPending()
	m.focus = focusCircuit
	if _, err := m.circuit.Add(g); err != nil {
		m.statusMsg = fmt.Sprintf("Cannot place: %v", err)
		return nil
	}
	m.cursor = len(m.circuit.Gates) - 1
	m.syncQASM()
	return m.changed()
}

func (m *Model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.circuit.Gates) {
		return "", false
	}
	return m.circuit.Gates[m.cursor].ID, true
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return simulate(m.ctx, m.seq, m.circuit.Clone())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		m.qasmEditor.SetHeight(max(msg.Height/2-6, 4))

	case simulatedMsg:
		if msg.seq != m.seq {
			break // stale
		}
		m.stateOf = msg.seq
		m.simErr = msg.err
		if msg.err == nil {
			state := msg.state
			m.state = &state
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			cmds = append(cmds, m.updateCircuit(key))
			if key == "q" {
				return m, tea.Quit
			}

		case focusMenu:
			m.updateMenu(key)

		case focusSelectQubits:
			cmds = append(cmds, m.updateSelectQubits(key))

		case focusInputParam:
			cmds = append(cmds, m.updateInputParam(msg))

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd, m.parseQASMInput())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateCircuit(key string) tea.Cmd {
	switch key {
	case "tab":
		m.focus = focusQASM
		return m.qasmEditor.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.circuit.Gates)-1 {
			m.cursor++
		}
	case "shift+up", "K":
		if id, ok := m.selectedID(); ok && m.circuit.Move(id, circuit.Up) {
			m.cursor--
			m.syncQASM()
			return m.changed()
		}
	case "shift+down", "J":
		if id, ok := m.selectedID(); ok && m.circuit.Move(id, circuit.Down) {
			m.cursor++
			m.syncQASM()
			return m.changed()
		}
	case "backspace", "delete", "d":
		if id, ok := m.selectedID(); ok && m.circuit.Remove(id) {
			m.syncQASM()
			return m.changed()
		}
	case "ctrl+r":
		m.circuit.Clear()
		m.syncQASM()
		return m.changed()
	case "+", "=", "-":
		n := m.circuit.NumQubits + 1
		if key == "-" {
			n = m.circuit.NumQubits - 1
		}
		before := len(m.circuit.Gates)
		if err := m.circuit.SetNumQubits(n); err != nil {
			m.statusMsg = fmt.Sprintf("Qubits must be between 1 and %d", quantum.MaxQubits)
			return nil
		}
		if dropped := before - len(m.circuit.Gates); dropped > 0 {
			m.statusMsg = fmt.Sprintf("Removed %d gate(s) on q[%d]", dropped, n)
		}
		m.syncQASM()
		return m.changed()
	case "i":
		next := (m.circuit.InitialState + 1) % (1 << m.circuit.NumQubits)
		if err := m.circuit.SetInitialState(next); err != nil {
			m.statusMsg = err.Error()
			return nil
		}
		m.syncQASM()
		return m.changed()
	case "a":
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case "ctrl+s":
		if m.savePath == "" {
			m.statusMsg = "No setting path configured"
			return nil
		}
		if err := conf.SaveSetting(m.savePath, conf.FromCircuit(m.circuit)); err != nil {
			m.statusMsg = fmt.Sprintf("Save error: %v", err)
		} else {
			m.statusMsg = "Saved " + m.savePath
		}
	}
	return nil
}

func (m *Model) updateMenu(key string) {
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		item := m.selectedMenuItem()
		if item.def.Category.Arity() > m.circuit.NumQubits {
			m.statusMsg = fmt.Sprintf("%s needs %d qubits", item.def.Name, item.def.Category.Arity())
			m.focus = focusCircuit
			return
		}
		m.pendingGate = item.def.Type
		m.resetPending()
		m.qubitCursor = 0
		m.focus = focusSelectQubits
	}
}

func (m *Model) updateSelectQubits(key string) tea.Cmd {
	switch key {
	case "esc":
		m.resetPending()
		m.focus = focusCircuit
	case "up", "k":
		for next := m.qubitCursor - 1; next >= 0; next-- {
			if !slices.Contains(m.pendingQubits, next) {
				m.qubitCursor = next
				break
			}
		}
	case "down", "j":
		for next := m.qubitCursor + 1; next < m.circuit.NumQubits; next++ {
			if !slices.Contains(m.pendingQubits, next) {
				m.qubitCursor = next
				break
			}
		}
	case "enter":
		if slices.Contains(m.pendingQubits, m.qubitCursor) {
			return nil
		}
		m.pendingQubits = append(m.pendingQubits, m.qubitCursor)
		if len(m.pendingQubits) < m.pendingGate.Definition().Category.Arity() {
			for q := 0; q < m.circuit.NumQubits; q++ {
				if !slices.Contains(m.pendingQubits, q) {
					m.qubitCursor = q
					break
				}
			}
			return nil
		}
		if m.pendingGate.Definition().Parameterized {
			m.paramInput = ""
			m.focus = focusInputParam
			return nil
		}
		return m.placeGate(nil)
	}
	return nil
}

func (m *Model) updateInputParam(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.resetPending()
		m.focus = focusCircuit
	case tea.KeyBackspace:
		if r := []rune(m.paramInput); len(r) > 0 {
			m.paramInput = string(r[:len(r)-1])
		}
	case tea.KeyEnter:
		angle, ok := circuit.ParseParamExpr(m.paramInput)
		if !ok {
			m.statusMsg = "Invalid angle: use numbers, pi expressions (3*pi/4) or degrees (90deg)"
			return nil
		}
		return m.placeGate(&angle)
	case tea.KeyRunes, tea.KeySpace:
		m.paramInput += string(msg.Runes)
	}
	return nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 5
	topHeight := max(m.height-controlsHeight-2, 8)
	qasmHeight := topHeight / 2

	circuitPanel := m.renderCircuitPanel(circuitWidth, topHeight)
	qasmPanel := m.renderQASMPanel(sideWidth, qasmHeight)
	resultsPanel := m.renderResultsPanel(sideWidth, topHeight-qasmHeight-2)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	side := lipgloss.JoinVertical(lipgloss.Left, qasmPanel, resultsPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, side)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}
	return frame
}
