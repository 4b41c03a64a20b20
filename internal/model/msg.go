package model

import (
	"time"

	"subgrid/internal/grid"
)

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when a data source has been read.
type DatasetLoadedMsg struct {
	Dataset grid.Dataset
	Source  string
	Elapsed time.Duration
}

// DetailSavedMsg is sent when the detail form applies a new detail grid.
type DetailSavedMsg struct {
	ID    grid.RowID
	Cells [][]string
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// FilterClosedMsg is sent when the filter menu is dismissed.
type FilterClosedMsg struct{}

// CopiedMsg is sent after a cell value was copied to the clipboard.
type CopiedMsg struct {
	Value string
}

// Screen represents different app screens.
type Screen int

const (
	ScreenGrid Screen = iota
	ScreenFilter
	ScreenDetailForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
