package main

import tea "github.com/charmbracelet/bubbletea"

// nudgeFraction is how far one key press shifts a family, as a fraction
// of the line spacing.
const nudgeFraction = 0.1

func (m model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	step := m.animator.Spacing() * nudgeFraction * float64(speed)
	switch key {
	case "h", "left", "H", "shift+left", "k", "up", "K", "shift+up":
		m.animator.Nudge(m.selected, -step)
	case "l", "right", "L", "shift+right", "j", "down", "J", "shift+down":
		m.animator.Nudge(m.selected, step)
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

func (m model) getNudgeSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
