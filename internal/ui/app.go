package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"subgrid/internal/grid"
	"subgrid/internal/model"
	"subgrid/internal/util"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadFunc reads the dataset shown by the grid.
type LoadFunc func() (grid.Dataset, error)

// Model is the root Bubble Tea model.
type Model struct {
	engine *grid.Engine
	load   LoadFunc
	source string
	title  string
	loaded bool

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// Screen models
	grid       *GridModel
	filterMenu *FilterMenuModel
	detailForm *DetailFormModel

	keys KeyMap
	copy func(string) error
}

// New creates a new root model. The dataset is read by load when the program
// starts and again on reload.
func New(engine *grid.Engine, load LoadFunc, source, title string) Model {
	return Model{
		engine: engine,
		load:   load,
		source: source,
		title:  title,
		screen: model.ScreenGrid,
		mode:   model.ModeNav,
		gState: GStateIdle,
		grid:   NewGridModel(engine),
		keys:   DefaultKeyMap(),
		copy:   clipboard.WriteAll,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.load, m.source)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
		if m.screen == model.ScreenFilter {
			return m.handleFilterMode(msg)
		}
		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = true
			return m, nil
		}
		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.setError(msg.Err)
		return m, nil

	case model.DatasetLoadedMsg:
		if err := m.engine.Load(msg.Dataset); err != nil {
			m.setError(fmt.Errorf("failed to load %s: %w", msg.Source, err))
			return m, nil
		}
		m.loaded = true
		m.screen = model.ScreenGrid
		m.mode = model.ModeNav
		m.filterMenu = nil
		m.detailForm = nil
		m.grid.Reload()
		m.error = ""
		m.info = fmt.Sprintf("Loaded %s from %s in %s",
			util.FormatCount(m.engine.RowCount(), "row"), msg.Source, util.FormatElapsed(msg.Elapsed))
		return m, nil

	case model.DetailSavedMsg:
		err := m.engine.EditDetailRow(msg.ID, msg.Cells)
		var verr *grid.ValidationError
		if errors.As(err, &verr) {
			if m.detailForm != nil {
				m.detailForm.SetError(verr.Reason)
			}
			return m, nil
		}
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.mode = model.ModeNav
		m.screen = model.ScreenGrid
		m.detailForm = nil
		m.error = ""
		m.info = fmt.Sprintf("Detail of row %d saved (%s)", msg.ID, util.FormatCount(len(msg.Cells), "line"))
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.screen = model.ScreenGrid
		m.detailForm = nil
		return m, nil

	case model.FilterClosedMsg:
		m.screen = model.ScreenGrid
		m.filterMenu = nil
		visible, total := m.grid.Counts()
		m.info = fmt.Sprintf("Showing %d of %s", visible, util.FormatCount(total, "row"))
		return m, nil

	case model.CopiedMsg:
		m.info = fmt.Sprintf("Copied %q", util.TruncateString(msg.Value, 40))
		return m, nil
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	// Header and footer each take 2 lines with their borders
	contentHeight := max(3, m.height-4-len(banners))

	breadcrumbParts := []string{m.title}
	var content string
	switch {
	case !m.loaded:
		content = EmptyStateStyle.Render("Loading " + m.source + "...")
	case m.screen == model.ScreenFilter && m.filterMenu != nil:
		breadcrumbParts = append(breadcrumbParts, "Filter")
		menu := m.filterMenu.View(contentHeight)
		gridView := m.grid.View(max(20, m.width-lipgloss.Width(menu)), contentHeight)
		content = lipgloss.JoinHorizontal(lipgloss.Top, gridView, menu)
	case m.screen == model.ScreenDetailForm && m.detailForm != nil:
		breadcrumbParts = append(breadcrumbParts, fmt.Sprintf("Row %d", m.detailForm.id))
		content = m.detailForm.View(m.width, contentHeight)
	default:
		content = m.grid.View(m.width, contentHeight)
	}
	header := renderHeader(breadcrumbParts, m.source, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight)
	content = contentStyle.Render(content)

	parts := append([]string{header}, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// setError shows err in the error banner and logs it.
func (m *Model) setError(err error) {
	log.Printf("error: %v", err)
	m.error = err.Error()
}

func renderHeader(breadcrumbParts []string, source string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("subgrid")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(source) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		m.grid.JumpToTop()
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloading " + m.source
		return m, loadDatasetCmd(m.load, m.source)
	}

	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.grid.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.grid.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.grid.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.grid.HalfPageUp()
	case key.Matches(msg, m.keys.NextColumn):
		m.grid.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		m.grid.PrevColumn()

	case key.Matches(msg, m.keys.SortAsc):
		return m.sortActiveColumn(grid.Ascending)
	case key.Matches(msg, m.keys.SortDesc):
		return m.sortActiveColumn(grid.Descending)
	case key.Matches(msg, m.keys.ToggleSort):
		logical, col, ok := m.grid.ActiveColumn()
		if !ok {
			return m, nil
		}
		if err := m.engine.ToggleSort(logical); err != nil {
			m.setError(err)
			return m, nil
		}
		m.info = fmt.Sprintf("Sorted by %s %s", col.Label, m.engine.SortState().Direction)

	case key.Matches(msg, m.keys.ToggleDetail):
		row, ok := m.grid.Selected()
		if !ok {
			return m, nil
		}
		if err := m.engine.ToggleDetailRow(row.ID); err != nil {
			m.setError(err)
		}

	case key.Matches(msg, m.keys.Filter):
		logical, _, ok := m.grid.ActiveColumn()
		if !ok {
			return m, nil
		}
		m.filterMenu = NewFilterMenuModel(m.engine, logical)
		m.screen = model.ScreenFilter
		m.info = ""
	case key.Matches(msg, m.keys.ResetFilters):
		if err := m.engine.ResetFilters(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.info = "Filters reset"

	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveActiveColumn(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m.moveActiveColumn(1)

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.grid.Selected()
		if !ok {
			m.info = "No row selected"
			return m, nil
		}
		m.detailForm = NewDetailFormModel(row, m.engine.DetailColumns())
		m.mode = model.ModeInsert
		m.screen = model.ScreenDetailForm
		m.info = ""

	case key.Matches(msg, m.keys.Check):
		return m.toggleCheckbox()

	case key.Matches(msg, m.keys.Copy):
		value, ok := m.grid.ActiveCell()
		if !ok {
			return m, nil
		}
		return m, copyCellCmd(m.copy, value)
	}

	return m, nil
}

func (m Model) sortActiveColumn(dir grid.Direction) (tea.Model, tea.Cmd) {
	logical, col, ok := m.grid.ActiveColumn()
	if !ok {
		return m, nil
	}
	if err := m.engine.SortByColumn(logical, dir); err != nil {
		m.setError(err)
		return m, nil
	}
	m.info = fmt.Sprintf("Sorted by %s %s", col.Label, dir)
	return m, nil
}

func (m Model) moveActiveColumn(delta int) (tea.Model, tea.Cmd) {
	_, col, _ := m.grid.ActiveColumn()
	moved, err := m.grid.MoveActiveColumn(delta)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if !moved {
		m.info = "Column is already at the edge"
		return m, nil
	}
	m.info = fmt.Sprintf("Moved %s", col.Label)
	return m, nil
}

func (m Model) toggleCheckbox() (tea.Model, tea.Cmd) {
	row, ok := m.grid.Selected()
	if !ok {
		return m, nil
	}
	logical, col, ok := m.grid.ActiveColumn()
	if !ok {
		return m, nil
	}
	if !col.Checkbox {
		m.info = fmt.Sprintf("%s is not a checkbox column", col.Label)
		return m, nil
	}
	if err := m.engine.SetCheckboxCell(row.ID, logical, !row.Cell(logical).Checked); err != nil {
		m.setError(err)
	}
	return m, nil
}

// handleFilterMode routes keys to the open filter menu.
func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterMenu == nil {
		m.screen = model.ScreenGrid
		return m, nil
	}
	newMenu, cmd := m.filterMenu.Update(msg)
	m.filterMenu = &newMenu
	return m, cmd
}

// handleInsertMode handles insert/edit mode input.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detailForm == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	newForm, cmd := m.detailForm.Update(msg)
	m.detailForm = &newForm
	return m, cmd
}

func loadDatasetCmd(load LoadFunc, source string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ds, err := load()
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load %s: %w", source, err)}
		}
		return model.DatasetLoadedMsg{Dataset: ds, Source: source, Elapsed: time.Since(start)}
	}
}

func copyCellCmd(write func(string) error, value string) tea.Cmd {
	return func() tea.Msg {
		if err := write(value); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to copy cell: %w", err)}
		}
		return model.CopiedMsg{Value: value}
	}
}
