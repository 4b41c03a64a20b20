package ui

import (
	"errors"
	"strings"
	"testing"

	"subgrid/internal/grid"
	"subgrid/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func testDataset() grid.Dataset {
	return grid.Dataset{
		Columns: []grid.ColumnSpec{
			{Label: "Part"},
			{Label: "Status"},
			{Label: "Done", Checkbox: true},
		},
		DetailColumns: []string{"NCR No.", "Disposition"},
		Rows: []grid.RowData{
			{
				Cells:  []grid.Cell{grid.TextCell("Bracket"), grid.TextCell("Open"), grid.BoolCell(false)},
				Detail: [][]string{{"NCR-1", "Scrap"}},
			},
			{
				Cells:  []grid.Cell{grid.TextCell("Shaft"), grid.TextCell(""), grid.BoolCell(true)},
				Detail: [][]string{{"NCR-2", "Rework"}, {"NCR-3", "Scrap"}},
			},
			{
				Cells:  []grid.Cell{grid.TextCell("Cover"), grid.TextCell("Closed"), grid.BoolCell(false)},
				Detail: [][]string{},
			},
		},
	}
}

// keyPress builds the key message bubbletea would send for a key name.
func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// press sends keys without running the commands they return.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyPress(k))
	}
	return m
}

// pressAndRun sends one key, runs its command and feeds the resulting
// message back. It returns that message.
func pressAndRun(t *testing.T, m Model, k string) (Model, tea.Msg) {
	t.Helper()
	m, cmd := update(t, m, keyPress(k))
	if cmd == nil {
		t.Fatalf("key %q returned no command", k)
	}
	msg := cmd()
	m, _ = update(t, m, msg)
	return m, msg
}

func newTestModel(t *testing.T) (Model, *grid.Engine) {
	t.Helper()
	engine := grid.New(grid.Options{})
	m := New(engine, func() (grid.Dataset, error) { return testDataset(), nil }, "test.db", "Test")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.Init()())
	return m, engine
}

func visibleParts(e *grid.Engine) []string {
	var parts []string
	for _, r := range e.VisibleRows() {
		parts = append(parts, r.Cell(0).Text)
	}
	return parts
}

func TestInitLoadsDataset(t *testing.T) {
	m, engine := newTestModel(t)
	if !m.loaded {
		t.Fatalf("dataset not loaded, error %q", m.error)
	}
	if engine.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", engine.RowCount())
	}
	if !strings.Contains(m.info, "Loaded 3 rows from test.db") {
		t.Fatalf("unexpected info %q", m.info)
	}
	view := m.View()
	for _, want := range []string{"subgrid", "Test", "Part", "Status", "Bracket", "Cover"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestLoadError(t *testing.T) {
	engine := grid.New(grid.Options{})
	m := New(engine, func() (grid.Dataset, error) { return grid.Dataset{}, errors.New("disk on fire") }, "broken.db", "Test")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m, _ = update(t, m, m.Init()())

	if m.loaded {
		t.Fatal("model should not be loaded")
	}
	view := m.View()
	if !strings.Contains(view, "disk on fire") || !strings.Contains(view, "Loading broken.db") {
		t.Fatalf("view should show the error and the loading state:\n%s", view)
	}
}

func TestReloadReadsSourceAgain(t *testing.T) {
	calls := 0
	engine := grid.New(grid.Options{})
	m := New(engine, func() (grid.Dataset, error) {
		calls++
		return testDataset(), nil
	}, "test.db", "Test")
	m, _ = update(t, m, m.Init()())
	m = press(t, m, "enter")

	_, msg := pressAndRun(t, m, "r")
	if _, ok := msg.(model.DatasetLoadedMsg); !ok {
		t.Fatalf("expected DatasetLoadedMsg, got %T", msg)
	}
	if calls != 2 {
		t.Fatalf("expected 2 loads, got %d", calls)
	}
	for _, r := range engine.Rows() {
		if r.Expanded {
			t.Fatalf("row %d still expanded after reload", r.ID)
		}
	}
}

func TestToggleDetailFromKeyboard(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "j", "enter")
	shaft := engine.VisibleRows()[1]
	if !shaft.DetailShown() {
		t.Fatal("expected the second row to be expanded")
	}
	if view := m.View(); !strings.Contains(view, "NCR-3") {
		t.Fatalf("expanded detail is not rendered:\n%s", view)
	}

	m = press(t, m, " ")
	if engine.VisibleRows()[1].DetailShown() {
		t.Fatal("space should collapse the row again")
	}
	if strings.Contains(m.View(), "NCR-3") {
		t.Fatal("collapsed detail is still rendered")
	}
}

func TestSortKeys(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "S")
	if got := strings.Join(visibleParts(engine), ","); got != "Shaft,Cover,Bracket" {
		t.Fatalf("descending sort gave %s", got)
	}
	if st := engine.SortState(); !st.Active || st.Column != 0 || st.Direction != grid.Descending {
		t.Fatalf("unexpected sort state %+v", st)
	}
	if !strings.Contains(m.info, "Sorted by Part desc") {
		t.Fatalf("unexpected info %q", m.info)
	}

	m = press(t, m, "o")
	if got := strings.Join(visibleParts(engine), ","); got != "Bracket,Cover,Shaft" {
		t.Fatalf("toggled sort gave %s", got)
	}

	// The sort collapses every row
	press(t, m, "enter", "s")
	for _, r := range engine.Rows() {
		if r.Expanded {
			t.Fatalf("row %d still expanded after sort", r.ID)
		}
	}
}

func TestFilterMenuFlow(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "l", "f")
	if m.screen != model.ScreenFilter || m.filterMenu == nil {
		t.Fatal("filter menu did not open")
	}
	if !strings.Contains(m.View(), "Filter Status") {
		t.Fatal("filter menu is not rendered")
	}

	// All, Clear, Show Blanks, Hide Blanks, Closed, Open
	m = press(t, m, "j", "j", "j", "j", "j", " ")
	if got := strings.Join(visibleParts(engine), ","); got != "Shaft,Cover" {
		t.Fatalf("unchecking Open left %s visible", got)
	}
	if !engine.IsFiltered(1) {
		t.Fatal("Status should be filtered")
	}

	m, msg := pressAndRun(t, m, "esc")
	if _, ok := msg.(model.FilterClosedMsg); !ok {
		t.Fatalf("expected FilterClosedMsg, got %T", msg)
	}
	if m.screen != model.ScreenGrid || m.filterMenu != nil {
		t.Fatal("filter menu did not close")
	}
	if m.info != "Showing 2 of 3 rows" {
		t.Fatalf("unexpected info %q", m.info)
	}

	press(t, m, "F")
	if len(engine.VisibleRows()) != 3 || engine.IsFiltered(1) {
		t.Fatal("F should reset every filter")
	}
}

func TestCheckboxToggle(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "x")
	if !strings.Contains(m.info, "not a checkbox column") {
		t.Fatalf("unexpected info %q", m.info)
	}

	m = press(t, m, "l", "l", "x")
	if !engine.VisibleRows()[0].Cell(2).Checked {
		t.Fatal("x should check the Done box of the first row")
	}
	press(t, m, "x")
	if engine.VisibleRows()[0].Cell(2).Checked {
		t.Fatal("x should uncheck the box again")
	}
}

func TestMoveColumnKeys(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "<")
	if !strings.Contains(m.info, "already at the edge") {
		t.Fatalf("unexpected info %q", m.info)
	}

	m = press(t, m, ">")
	if got := engine.VisualOrder(); got[0] != 1 || got[1] != 0 {
		t.Fatalf("visual order = %v", got)
	}
	logical, col, _ := m.grid.ActiveColumn()
	if logical != 0 || col.Label != "Part" {
		t.Fatalf("active column should follow the moved column, got %d %q", logical, col.Label)
	}

	// Sorting by the active column still sorts by Part after the move
	press(t, m, "S")
	if st := engine.SortState(); st.Column != 0 {
		t.Fatalf("sorted by logical column %d", st.Column)
	}
}

func TestEditDetailFlow(t *testing.T) {
	m, engine := newTestModel(t)

	m = press(t, m, "e")
	if m.mode != model.ModeInsert || m.detailForm == nil {
		t.Fatal("edit form did not open")
	}
	m = press(t, m, "ctrl+a", "N", "9")

	m, msg := pressAndRun(t, m, "ctrl+s")
	if _, ok := msg.(model.DetailSavedMsg); !ok {
		t.Fatalf("expected DetailSavedMsg, got %T", msg)
	}
	if m.mode != model.ModeNav || m.detailForm != nil {
		t.Fatal("form should close after saving")
	}
	got := engine.VisibleRows()[0].Detail
	if len(got) != 2 || got[0][0] != "NCR-1" || got[1][0] != "N9" || got[1][1] != "" {
		t.Fatalf("unexpected detail %v", got)
	}
	if !strings.Contains(m.info, "saved (2 lines)") {
		t.Fatalf("unexpected info %q", m.info)
	}
}

func TestEditDetailRejected(t *testing.T) {
	m, engine := newTestModel(t)
	m = press(t, m, "e")
	id := m.detailForm.id

	m, _ = update(t, m, model.DetailSavedMsg{ID: id, Cells: [][]string{{"only one cell"}}})
	if m.mode != model.ModeInsert || m.detailForm == nil {
		t.Fatal("form should stay open after a rejected edit")
	}
	if m.detailForm.error == "" {
		t.Fatal("form should show the validation error")
	}
	if got := engine.VisibleRows()[0].Detail; len(got) != 1 || got[0][0] != "NCR-1" {
		t.Fatalf("detail changed after a rejected edit: %v", got)
	}
}

func TestEditDetailCancel(t *testing.T) {
	m, engine := newTestModel(t)
	m = press(t, m, "e", "ctrl+x")

	m, msg := pressAndRun(t, m, "esc")
	if _, ok := msg.(model.FormCancelledMsg); !ok {
		t.Fatalf("expected FormCancelledMsg, got %T", msg)
	}
	if m.mode != model.ModeNav || m.screen != model.ScreenGrid {
		t.Fatal("cancel should return to the grid")
	}
	if got := engine.VisibleRows()[0].Detail; len(got) != 1 {
		t.Fatalf("cancelled edit changed the detail: %v", got)
	}
}

func TestCopyCell(t *testing.T) {
	m, _ := newTestModel(t)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m = press(t, m, "j")
	m, msg := pressAndRun(t, m, "y")
	if _, ok := msg.(model.CopiedMsg); !ok {
		t.Fatalf("expected CopiedMsg, got %T", msg)
	}
	if copied != "Shaft" {
		t.Fatalf("copied %q", copied)
	}
	if m.info != `Copied "Shaft"` {
		t.Fatalf("unexpected info %q", m.info)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m, _ = pressAndRun(t, m, "y")
	if !strings.Contains(m.error, "no clipboard") {
		t.Fatalf("unexpected error %q", m.error)
	}
}

func TestHelpScreen(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	if !m.showingHelp {
		t.Fatal("? should open help")
	}
	view := m.View()
	for _, want := range []string{"Help", "Filter menu", "Detail form", "checkbox"} {
		if !strings.Contains(view, want) {
			t.Errorf("help is missing %q", want)
		}
	}

	m = press(t, m, "j")
	if !m.showingHelp {
		t.Fatal("other keys should not close help")
	}
	m = press(t, m, "esc")
	if m.showingHelp {
		t.Fatal("esc should close help")
	}
}

func TestJumpKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "G")
	if row, _ := m.grid.Selected(); row.Cell(0).Text != "Cover" {
		t.Fatalf("G selected %q", row.Cell(0).Text)
	}
	m = press(t, m, "g")
	if row, _ := m.grid.Selected(); row.Cell(0).Text != "Cover" {
		t.Fatal("a single g should not move")
	}
	m = press(t, m, "g")
	if row, _ := m.grid.Selected(); row.Cell(0).Text != "Bracket" {
		t.Fatalf("gg selected %q", row.Cell(0).Text)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, keyPress("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}
