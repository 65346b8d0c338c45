package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AutocompleteModel is a text input that suggests note names while typing,
// used by the capture bar for [[wiki-link]] targets.
type AutocompleteModel struct {
	input          textinput.Model
	names          []string
	suggestions    []string
	showing        bool
	selected       int
	style          lipgloss.Style
	maxSuggestions int
}

// NewAutocomplete builds an input backed by the given note names.
func NewAutocomplete(names []string, placeholder string, maxSuggestions int) AutocompleteModel {
	input := textinput.New()
	input.Placeholder = placeholder

	return AutocompleteModel{
		input:          input,
		names:          names,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (m *AutocompleteModel) SetNames(names []string) { m.names = names }

func (m *AutocompleteModel) Focus() { m.input.Focus() }

func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.showing = false
}

func (m AutocompleteModel) Value() string { return m.input.Value() }

func (m *AutocompleteModel) SetValue(v string) { m.input.SetValue(v) }

func (m *AutocompleteModel) Reset() {
	m.input.Reset()
	m.showing = false
	m.selected = 0
}

// Update forwards the message to the inner input and recomputes suggestions.
func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh recomputes suggestions for the token after the last "[[".
func (m *AutocompleteModel) refresh() {
	m.suggestions = nil
	m.showing = false

	val := m.input.Value()
	open := strings.LastIndex(val, "[[")
	if open < 0 || strings.Contains(val[open:], "]]") {
		return
	}
	prefix := strings.ToLower(val[open+2:])

	for _, name := range m.names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			m.suggestions = append(m.suggestions, name)
		}
	}
	sort.Strings(m.suggestions)
	if len(m.suggestions) > m.maxSuggestions {
		m.suggestions = m.suggestions[:m.maxSuggestions]
	}
	if m.selected >= len(m.suggestions) {
		m.selected = 0
	}
	m.showing = len(m.suggestions) > 0
}

// Accept completes the current [[ token with the selected suggestion.
func (m *AutocompleteModel) Accept() bool {
	if !m.showing || m.selected >= len(m.suggestions) {
		return false
	}
	val := m.input.Value()
	open := strings.LastIndex(val, "[[")
	m.input.SetValue(val[:open+2] + m.suggestions[m.selected] + "]]")
	m.input.CursorEnd()
	m.showing = false
	return true
}

func (m *AutocompleteModel) Next() {
	if m.showing {
		m.selected = (m.selected + 1) % len(m.suggestions)
	}
}

func (m *AutocompleteModel) Showing() bool { return m.showing }

func (m AutocompleteModel) SuggestionView() string {
	if !m.showing {
		return ""
	}
	var b strings.Builder
	for i, s := range m.suggestions {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		b.WriteString(m.style.Render(marker + s))
		if i < len(m.suggestions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m AutocompleteModel) View() string { return m.input.View() }
