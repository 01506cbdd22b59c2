// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func drive(t *testing.T, m *confirmModel, keys ...string) *confirmModel {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(keyMsg(k))
	}
	return model.(*confirmModel)
}

func TestConfirmKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		def           bool
		keys          []string
		wantResult    bool
		wantCancelled bool
	}{
		{"y accepts", false, []string{"y"}, true, false},
		{"n declines", true, []string{"n"}, false, false},
		{"enter takes default yes", true, []string{"enter"}, true, false},
		{"enter takes default no", false, []string{"enter"}, false, false},
		{"left then enter", false, []string{"left", "enter"}, true, false},
		{"right then enter", true, []string{"right", "enter"}, false, false},
		{"tab toggles", true, []string{"tab", "enter"}, false, false},
		{"double tab restores", true, []string{"tab", "tab", "enter"}, true, false},
		{"esc cancels", true, []string{"esc"}, false, true},
		{"ctrl+c cancels", true, []string{"ctrl+c"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newConfirmModel(ConfirmOptions{Title: "Install vim?", Default: tt.def})
			m = drive(t, m, tt.keys...)

			if !m.done {
				t.Fatal("model not done after final key")
			}
			if m.cancelled != tt.wantCancelled {
				t.Errorf("cancelled = %v, want %v", m.cancelled, tt.wantCancelled)
			}
			if !tt.wantCancelled && m.result != tt.wantResult {
				t.Errorf("result = %v, want %v", m.result, tt.wantResult)
			}
		})
	}
}

func TestConfirmDefaults(t *testing.T) {
	t.Parallel()

	m := newConfirmModel(ConfirmOptions{})
	if m.opts.Affirmative != "Yes" || m.opts.Negative != "No" {
		t.Errorf("defaults = %q/%q, want Yes/No", m.opts.Affirmative, m.opts.Negative)
	}
}

func TestConfirmViewEmptyWhenDone(t *testing.T) {
	t.Parallel()

	m := newConfirmModel(ConfirmOptions{Title: "Install vim?"})
	if m.View() == "" {
		t.Error("View() empty before completion")
	}
	m = drive(t, m, "y")
	if m.View() != "" {
		t.Error("View() not empty after completion")
	}
}
