package grid

// Event is a notification emitted to the rendering layer.
type Event interface {
	event()
}

// Listener receives engine events synchronously, on the caller's goroutine.
type Listener func(Event)

// RowVisibilityChanged reports that a master row was shown or hidden by the
// filters.
type RowVisibilityChanged struct {
	ID      RowID
	Visible bool
}

// DetailVisibilityChanged reports that a detail row became shown or hidden.
type DetailVisibilityChanged struct {
	ID      RowID
	Visible bool
}

// RowOrderChanged carries the new slot order of every master row.
type RowOrderChanged struct {
	Order []RowID
}

// FilterCatalogChanged carries the menu labels of a rebuilt column catalog.
type FilterCatalogChanged struct {
	Column  int
	Options []string
}

// DataChanged reports a single cell mutation. Column is -1 when the detail
// grid of the row changed.
type DataChanged struct {
	ID     RowID
	Column int
}

// DetailResized reports that a detail grid changed its line count, so the
// rendered height of the row must be recomputed.
type DetailResized struct {
	ID    RowID
	Lines int
}

// ColumnMoved reports a column reorder in visual indices.
type ColumnMoved struct {
	From int
	To   int
}

// BulkChanged is the single notification emitted when a batch commits.
type BulkChanged struct {
	// Visibility holds the net visibility of every master row whose
	// visibility differs from before the batch.
	Visibility map[RowID]bool
	// Cells counts the coalesced DataChanged notifications.
	Cells int
	// Resized lists rows whose detail grid changed size.
	Resized []RowID
}

func (RowVisibilityChanged) event()    {}
func (DetailVisibilityChanged) event() {}
func (RowOrderChanged) event()         {}
func (FilterCatalogChanged) event()    {}
func (DataChanged) event()             {}
func (DetailResized) event()           {}
func (ColumnMoved) event()             {}
func (BulkChanged) event()             {}
