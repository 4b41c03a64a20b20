package ui

import (
	"fmt"
	"strings"

	"subgrid/internal/grid"
	"subgrid/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailFormModel edits the detail grid of one master row, one line at a
// time. The whole grid is handed back on save.
type DetailFormModel struct {
	id           grid.RowID
	labels       []string
	lines        [][]string
	line         int
	draft        bool
	focusedField int
	inputs       []textinput.Model
	keys         FormKeyMap
	error        string
}

// NewDetailFormModel creates a form for a row's detail grid.
func NewDetailFormModel(row grid.RowView, labels []string) *DetailFormModel {
	lines := make([][]string, len(row.Detail))
	for i, l := range row.Detail {
		lines[i] = append([]string(nil), l...)
	}

	if len(labels) == 0 {
		width := 1
		if len(lines) > 0 {
			width = len(lines[0])
		}
		labels = make([]string, width)
		for i := range labels {
			labels[i] = fmt.Sprintf("Col %d", i+1)
		}
	}

	m := &DetailFormModel{
		id:     row.ID,
		labels: labels,
		lines:  lines,
		keys:   DefaultFormKeyMap(),
	}
	if len(m.lines) == 0 {
		m.lines = [][]string{make([]string, len(labels))}
		m.draft = true
	}

	m.inputs = make([]textinput.Model, len(labels))
	for i, l := range labels {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = l
		m.inputs[i].CharLimit = 200
	}
	m.inputs[0].Focus()
	m.loadLine()
	return m
}

// SetError shows a validation message on the form.
func (m *DetailFormModel) SetError(msg string) {
	m.error = msg
}

// Update handles input.
func (m DetailFormModel) Update(msg tea.KeyMsg) (DetailFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.NextField):
		m.nextField()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.prevField()
		return m, nil
	case key.Matches(msg, m.keys.NextLine):
		m.gotoLine(m.line + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevLine):
		m.gotoLine(m.line - 1)
		return m, nil
	case key.Matches(msg, m.keys.AddLine):
		m.storeLine()
		at := m.line + 1
		if len(m.lines) == 0 {
			at = 0
		}
		m.lines = append(m.lines[:at], append([][]string{make([]string, len(m.labels))}, m.lines[at:]...)...)
		m.draft = false
		m.line = at
		m.loadLine()
		return m, nil
	case key.Matches(msg, m.keys.DeleteLine):
		if len(m.lines) == 0 {
			return m, nil
		}
		m.lines = append(m.lines[:m.line], m.lines[m.line+1:]...)
		m.draft = false
		if m.line >= len(m.lines) {
			m.line = max(0, len(m.lines)-1)
		}
		m.loadLine()
		return m, nil
	}

	// Update current input
	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	return m, cmd
}

// View renders the form.
func (m *DetailFormModel) View(width, height int) string {
	var fields []string

	title := fmt.Sprintf("Detail of row %d  ·  line %d/%d", m.id, m.line+1, len(m.lines))
	if len(m.lines) == 0 {
		title = fmt.Sprintf("Detail of row %d  ·  no lines (ctrl+a adds one)", m.id)
	}
	fields = append(fields, LabelStyle.Render(title))

	if len(m.lines) > 0 {
		for i, l := range m.labels {
			fields = append(fields, renderFormField(l, m.inputs[i], m.focusedField == i))
		}
	}

	if len(m.lines) > 0 {
		preview := renderDetailTable(m.labels, m.lines, width-8)
		fields = append(fields, preview)
	}

	if m.error != "" {
		fields = append(fields, "")
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	formContent := strings.Join(fields, "\n\n")

	content := PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(formContent)

	return content
}

func (m *DetailFormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *DetailFormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}

func (m *DetailFormModel) gotoLine(line int) {
	if line < 0 || line >= len(m.lines) {
		return
	}
	m.storeLine()
	m.line = line
	m.loadLine()
}

func (m *DetailFormModel) storeLine() {
	if m.line >= len(m.lines) {
		return
	}
	line := make([]string, len(m.inputs))
	for i := range m.inputs {
		line[i] = m.inputs[i].Value()
	}
	m.lines[m.line] = line
}

func (m *DetailFormModel) loadLine() {
	for i := range m.inputs {
		v := ""
		if m.line < len(m.lines) && i < len(m.lines[m.line]) {
			v = m.lines[m.line][i]
		}
		m.inputs[i].SetValue(v)
	}
}

// Lines returns the grid as it would be saved.
func (m *DetailFormModel) Lines() [][]string {
	m.storeLine()
	if m.draft && strings.TrimSpace(strings.Join(m.lines[0], "")) == "" {
		return [][]string{}
	}
	out := make([][]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = append([]string(nil), l...)
	}
	return out
}

func (m *DetailFormModel) save() tea.Cmd {
	msg := model.DetailSavedMsg{ID: m.id, Cells: m.Lines()}
	return func() tea.Msg {
		return msg
	}
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	)

	return style.Render(field)
}
