package ui

import (
	"fmt"
	"strings"

	"subgrid/internal/grid"
	"subgrid/internal/model"
	"subgrid/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const filterMenuWidth = 34

// FilterMenuModel is the pop-up filter of one column. It stays open across
// toggles so several values can be checked in a row.
type FilterMenuModel struct {
	engine  *grid.Engine
	logical int
	label   string
	cursor  int
	offset  int
	keys    FilterKeyMap
}

// NewFilterMenuModel opens the filter menu of a logical column.
func NewFilterMenuModel(engine *grid.Engine, logical int) *FilterMenuModel {
	col, _ := engine.Column(logical)
	return &FilterMenuModel{
		engine:  engine,
		logical: logical,
		label:   col.Label,
		keys:    DefaultFilterKeyMap(),
	}
}

// Update handles input.
func (m FilterMenuModel) Update(msg tea.KeyMsg) (FilterMenuModel, tea.Cmd) {
	opts := m.engine.FilterOptions(m.logical)
	switch {
	case key.Matches(msg, m.keys.Close):
		return m, func() tea.Msg {
			return model.FilterClosedMsg{}
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(opts) {
			if err := m.engine.ApplyFilterOption(m.logical, opts[m.cursor]); err != nil {
				return m, func() tea.Msg {
					return model.ErrorMsg{Err: fmt.Errorf("failed to apply filter: %w", err)}
				}
			}
		}
	}
	return m, nil
}

// View renders the menu.
func (m *FilterMenuModel) View(height int) string {
	opts := m.engine.FilterOptions(m.logical)
	listHeight := max(3, height-6)
	if m.cursor >= len(opts) {
		m.cursor = max(0, len(opts)-1)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}

	lines := []string{LabelStyle.Render(util.TruncateString("Filter "+m.label, filterMenuWidth-4)), ""}
	for i := m.offset; i < len(opts) && i < m.offset+listHeight; i++ {
		lines = append(lines, m.renderOption(opts[i], i == m.cursor))
	}
	if len(opts) > listHeight {
		lines = append(lines, "", HelpDescStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(opts))))
	}
	return MenuStyle.Width(filterMenuWidth).Render(strings.Join(lines, "\n"))
}

func (m *FilterMenuModel) renderOption(opt grid.FilterOption, selected bool) string {
	box := "[ ]"
	if opt.Checked {
		box = CheckedStyle.Render("[x]")
	}
	label := opt.Label
	if opt.Kind != grid.OptionKindValue {
		label = "(" + label + ")"
	}
	label = util.TruncateString(label, filterMenuWidth-10)
	if selected {
		return box + " " + MenuSelectedStyle.Render(label)
	}
	return box + " " + MenuItemStyle.Render(label)
}
