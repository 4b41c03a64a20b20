package ui

import (
	"fmt"
	"strings"

	"subgrid/internal/grid"
	"subgrid/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 28
)

// GridModel renders the engine's visible rows and tracks the cursor. It never
// changes filter, sort or pairing state itself; the root model issues engine
// commands and the grid follows the events they emit.
type GridModel struct {
	engine *grid.Engine
	rows   []grid.RowView
	stale  bool

	cursor int
	offset int

	viewportHeight int

	// activeColumn is a visual position. It is resolved through the engine's
	// column mapper on every use.
	activeColumn int
}

// NewGridModel creates a grid view bound to an engine.
func NewGridModel(engine *grid.Engine) *GridModel {
	m := &GridModel{engine: engine, stale: true}
	engine.Subscribe(m.onEvent)
	return m
}

func (m *GridModel) onEvent(ev grid.Event) {
	if mv, ok := ev.(grid.ColumnMoved); ok && mv.From == m.activeColumn {
		m.activeColumn = mv.To
	}
	m.stale = true
}

// Reload resets the cursor after a new dataset was loaded.
func (m *GridModel) Reload() {
	m.cursor = 0
	m.offset = 0
	m.activeColumn = 0
	m.stale = true
	m.sync()
}

// sync re-reads the visible rows after engine events, keeping the cursor on
// the same row while it stays visible.
func (m *GridModel) sync() {
	if !m.stale {
		return
	}
	var selected grid.RowID
	hadSelection := m.cursor < len(m.rows)
	if hadSelection {
		selected = m.rows[m.cursor].ID
	}

	m.rows = m.engine.VisibleRows()
	m.stale = false

	if hadSelection {
		for i, r := range m.rows {
			if r.ID == selected {
				m.cursor = i
				break
			}
		}
	}
	if n := m.engine.ColumnCount(); m.activeColumn >= n {
		m.activeColumn = max(0, n-1)
	}
	m.clampCursor()
}

func (m *GridModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// Selected returns the row under the cursor.
func (m *GridModel) Selected() (grid.RowView, bool) {
	m.sync()
	if m.cursor >= len(m.rows) {
		return grid.RowView{}, false
	}
	return m.rows[m.cursor], true
}

// ActiveColumn returns the logical index and description of the active column.
func (m *GridModel) ActiveColumn() (int, grid.Column, bool) {
	m.sync()
	logical := m.engine.LogicalOf(m.activeColumn)
	col, ok := m.engine.Column(logical)
	return logical, col, ok
}

// ActiveCell returns the value of the selected row at the active column.
func (m *GridModel) ActiveCell() (string, bool) {
	row, ok := m.Selected()
	if !ok {
		return "", false
	}
	logical, _, ok := m.ActiveColumn()
	if !ok {
		return "", false
	}
	return row.Cell(logical).Value(), true
}

// NextColumn moves the active column right, wrapping around.
func (m *GridModel) NextColumn() {
	if n := m.engine.ColumnCount(); n > 0 {
		m.activeColumn = (m.activeColumn + 1) % n
	}
}

// PrevColumn moves the active column left, wrapping around.
func (m *GridModel) PrevColumn() {
	if n := m.engine.ColumnCount(); n > 0 {
		m.activeColumn = (m.activeColumn - 1 + n) % n
	}
}

// MoveActiveColumn shifts the active column by delta visual positions. The
// active column follows it through the ColumnMoved event.
func (m *GridModel) MoveActiveColumn(delta int) (bool, error) {
	to := m.activeColumn + delta
	if to < 0 || to >= m.engine.ColumnCount() {
		return false, nil
	}
	if err := m.engine.MoveColumn(m.activeColumn, to); err != nil {
		return false, err
	}
	return true, nil
}

// Counts returns the number of visible rows and of all rows.
func (m *GridModel) Counts() (visible, total int) {
	m.sync()
	return len(m.rows), m.engine.RowCount()
}

// TableMeta describes the active column, sort and filters for the status bar.
func (m *GridModel) TableMeta() string {
	_, col, ok := m.ActiveColumn()
	if !ok {
		return ""
	}
	parts := []string{fmt.Sprintf("col %s", strings.ToUpper(col.Label))}
	if st := m.engine.SortState(); st.Active {
		if c, ok := m.engine.Column(st.Column); ok {
			parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(c.Label), st.Direction))
		}
	}
	var filtered []string
	for _, c := range m.engine.Columns() {
		if m.engine.IsFiltered(c.Logical) {
			filtered = append(filtered, c.Label)
		}
	}
	if len(filtered) > 0 {
		parts = append(parts, "filter "+strings.Join(filtered, ", "))
	}
	return strings.Join(parts, "  ·  ")
}

// View renders the grid.
func (m *GridModel) View(width, height int) string {
	m.sync()

	columns := m.engine.Columns()
	if len(columns) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No columns.")
	}

	widths := m.columnWidths(columns, width)
	header := m.renderHeader(columns, widths)

	visible, total := len(m.rows), m.engine.RowCount()
	status := StatusBarStyle.Render(m.statusLine(visible, total))

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(status)
	m.viewportHeight = max(1, bodyHeight)

	var body string
	switch {
	case total == 0:
		body = EmptyStateStyle.Render("No rows.")
	case visible == 0:
		body = EmptyStateStyle.Render("Every row is filtered out.\nPress  F  to reset filters.")
	default:
		body = m.renderBody(columns, widths, width)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

func (m *GridModel) statusLine(visible, total int) string {
	rowPos := ""
	if visible > 0 {
		rowPos = fmt.Sprintf("  ·  row %d/%d", m.cursor+1, visible)
	}
	filterInfo := ""
	if visible != total {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", visible, total)
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	return util.FormatCount(total, "row") + rowPos + filterInfo + meta
}

// columnWidths sizes each visual column from its label and catalog values and
// gives the remaining width to the last column.
func (m *GridModel) columnWidths(columns []grid.Column, width int) []int {
	widths := make([]int, len(columns))
	total := lipgloss.Width(IndicatorStyle.Render(""))
	for i, c := range columns {
		w := runewidth.StringWidth(c.Label) + 2
		for _, v := range m.engine.Catalog(c.Logical).Values {
			w = max(w, runewidth.StringWidth(v))
		}
		w = min(max(w, minColumnWidth), maxColumnWidth) + 2
		widths[i] = w
		total += w
	}
	if extra := width - total; extra > 0 {
		widths[len(widths)-1] += extra
	}
	return widths
}

func (m *GridModel) renderHeader(columns []grid.Column, widths []int) string {
	sort := m.engine.SortState()
	cells := make([]string, len(columns))
	styles := make([]lipgloss.Style, len(columns))
	for i, c := range columns {
		label := c.Label
		if sort.Active && sort.Column == c.Logical {
			if sort.Direction == grid.Descending {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		style := TableHeaderStyle
		if m.engine.IsFiltered(c.Logical) {
			label += " ▾"
			style = FilteredHeaderStyle
		}
		if i == m.activeColumn {
			style = ActiveHeaderStyle
		}
		cells[i] = util.TruncateString(label, widths[i]-2)
		styles[i] = style
	}
	parts := []string{IndicatorStyle.Background(ColorSurface).Render("")}
	for i, cell := range cells {
		parts = append(parts, styles[i].Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// renderBody renders master rows from the offset, each followed by its detail
// sub-table when shown, and scrolls so the cursor row fits.
func (m *GridModel) renderBody(columns []grid.Column, widths []int, width int) string {
	detailLabels := m.engine.DetailColumns()
	detailWidth := max(20, width-lipgloss.Width(IndicatorStyle.Render("")))

	blocks := make(map[int]string)
	block := func(i int) string {
		if b, ok := blocks[i]; ok {
			return b
		}
		b := m.renderMaster(m.rows[i], i == m.cursor, columns, widths)
		if m.rows[i].DetailShown() {
			b = lipgloss.JoinVertical(lipgloss.Left, b, m.renderDetail(m.rows[i], detailLabels, detailWidth))
		}
		blocks[i] = b
		return b
	}

	// Scroll so the cursor row and its detail fit.
	used, start := 0, m.cursor
	for i := m.cursor; i >= m.offset; i-- {
		h := lipgloss.Height(block(i))
		if used+h > m.viewportHeight && i != m.cursor {
			break
		}
		used += h
		start = i
	}
	if start > m.offset {
		m.offset = start
	}

	var lines []string
	used = 0
	for i := m.offset; i < len(m.rows); i++ {
		b := block(i)
		h := lipgloss.Height(b)
		if used+h > m.viewportHeight && used > 0 {
			break
		}
		lines = append(lines, b)
		used += h
	}
	return strings.Join(lines, "\n")
}

func (m *GridModel) renderMaster(row grid.RowView, selected bool, columns []grid.Column, widths []int) string {
	indicator := "+"
	if row.Expanded {
		indicator = "-"
	}
	style := NormalRowStyle
	if selected {
		style = SelectedRowStyle
	}

	cells := make([]string, len(columns))
	for i, c := range columns {
		cell := row.Cell(c.Logical)
		var text string
		if cell.Kind == grid.CellBool {
			text = util.FormatCheckbox(cell.Checked)
		} else {
			text = util.TruncateString(util.FormatCell(cell.Text), widths[i]-2)
		}
		cells[i] = text
	}

	parts := []string{IndicatorStyle.Render(indicator)}
	for i, cell := range cells {
		s := style
		if selected && i == m.activeColumn {
			s = ActiveCellStyle
		}
		parts = append(parts, s.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// renderDetail draws the nested sub-table of a row, indented under the first
// visual column.
func (m *GridModel) renderDetail(row grid.RowView, labels []string, width int) string {
	indent := strings.Repeat(" ", lipgloss.Width(IndicatorStyle.Render("")))
	if len(row.Detail) == 0 {
		return indent + EmptyStateStyle.Padding(0, 1).Render("no detail lines, press e to add one")
	}
	t := renderDetailTable(labels, row.Detail, width)
	return lipgloss.NewStyle().PaddingLeft(len(indent)).Render(t)
}

// renderDetailTable renders a detail grid with lipgloss/table.
func renderDetailTable(labels []string, lines [][]string, width int) string {
	if len(labels) == 0 && len(lines) > 0 {
		labels = make([]string, len(lines[0]))
		for i := range labels {
			labels[i] = fmt.Sprintf("Col %d", i+1)
		}
	}
	cellWidth := max(8, (width-len(labels)-1)/max(1, len(labels)))
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = make([]string, len(line))
		for j, v := range line {
			rows[i][j] = util.TruncateString(v, cellWidth-2)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DetailBorderStyle).
		Headers(labels...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return DetailHeaderStyle
			}
			return DetailCellStyle
		})
	return t.Render()
}

// MoveDown moves the cursor down.
func (m *GridModel) MoveDown() {
	m.sync()
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up.
func (m *GridModel) MoveUp() {
	m.sync()
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
	}
}

// JumpToTop jumps to the first row.
func (m *GridModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *GridModel) JumpToBottom() {
	m.sync()
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
}

// HalfPageDown moves down half a page.
func (m *GridModel) HalfPageDown() {
	m.sync()
	m.cursor += m.pageSize() / 2
	m.clampCursor()
}

// HalfPageUp moves up half a page.
func (m *GridModel) HalfPageUp() {
	m.sync()
	m.cursor -= m.pageSize() / 2
	m.clampCursor()
}

func (m *GridModel) pageSize() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}
