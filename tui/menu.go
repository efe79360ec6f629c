package tui

import (
	"fmt"
	"strings"

	"qbloch/quantum"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	def     quantum.GateDefinition
	symbol  string
	example string // angle hint for parameterized gates
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu is built from the gate catalog: fixed single-qubit gates,
// rotations, then multi-qubit gates.
var gateMenu = buildGateMenu()

func buildGateMenu() []menuCategory {
	single := menuCategory{name: "Single Qubit"}
	rotation := menuCategory{name: "Rotation"}
	multi := menuCategory{name: "Multi Qubit"}
	for _, def := range quantum.Definitions() {
		item := menuItem{def: def, symbol: menuSymbol(def.Type)}
		switch {
		case def.Parameterized:
			item.example = "pi/2"
			if def.Type == quantum.GatePhase {
				item.example = "pi/4"
			}
			rotation.items = append(rotation.items, item)
		case def.Category == quantum.Single:
			single.items = append(single.items, item)
		default:
			multi.items = append(multi.items, item)
		}
	}
	return []menuCategory{single, rotation, multi}
}

func menuSymbol(t quantum.GateType) string {
	switch t {
	case quantum.GateCNOT:
		return "●─⊕"
	case quantum.GateCZ:
		return "●─●"
	case quantum.GateSWAP:
		return "×─×"
	case quantum.GateCCNOT:
		return "●─●─⊕"
	case quantum.GateSdg:
		return "S†"
	case quantum.GateTdg:
		return "T†"
	default:
		return t.String()
	}
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		disabled := item.def.Category.Arity() > m.circuit.NumQubits
		switch {
		case i == m.menuItem:
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.def.Name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		case disabled:
			sb.WriteString("   ")
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%-18s", item.def.Name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		default:
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.def.Name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.example != "" {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.example)))
		}
		sb.WriteString("\n")
	}
	if item := m.selectedMenuItem(); item.def.Description != "" {
		sb.WriteString(dimStyle.Render(" " + item.def.Description))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

func (m Model) selectedMenuItem() menuItem {
	return gateMenu[m.menuCat].items[m.menuItem]
}
