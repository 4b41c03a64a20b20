package grid

import "fmt"

// ConfigurationError reports a caller bug: an invalid row id, column index or
// count. It is never user-recoverable.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("grid: %s: %s", e.Op, e.Reason)
}

// ValidationError reports a malformed detail-row edit. The edit was rejected
// and the previous detail content is unchanged.
type ValidationError struct {
	ID     RowID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grid: invalid detail edit for row %d: %s", e.ID, e.Reason)
}

// ConsistencyError is the panic value raised when a master row has lost its
// detail row.
type ConsistencyError struct {
	ID RowID
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("grid: row %d has no detail row", e.ID)
}

func configErr(op, format string, args ...any) error {
	return &ConfigurationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
