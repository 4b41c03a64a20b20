package grid

import (
	"errors"
	"slices"
	"testing"
)

func TestColumnMapperIdentity(t *testing.T) {
	m := NewColumnMapper(4)
	for i := 0; i < 4; i++ {
		if m.VisualOf(i) != i || m.LogicalOf(i) != i {
			t.Fatalf("column %d: visual %d logical %d, want identity", i, m.VisualOf(i), m.LogicalOf(i))
		}
	}
	if m.VisualOf(4) != -1 || m.LogicalOf(-1) != -1 {
		t.Error("out of range lookups should return -1")
	}
}

func TestColumnMapperMoveIsRotationNotSwap(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"forward", 0, 2, []int{1, 2, 0, 3, 4}},
		{"backward", 3, 1, []int{0, 3, 1, 2, 4}},
		{"to end", 0, 4, []int{1, 2, 3, 4, 0}},
		{"to front", 4, 0, []int{4, 0, 1, 2, 3}},
		{"noop", 2, 2, []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewColumnMapper(5)
			if err := m.MoveColumn(tt.from, tt.to); err != nil {
				t.Fatalf("MoveColumn: %v", err)
			}
			if got := m.Order(); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnMapperStaysBijective(t *testing.T) {
	m := NewColumnMapper(6)
	moves := [][2]int{{0, 5}, {3, 1}, {5, 0}, {2, 4}, {1, 1}, {4, 2}, {0, 3}}
	for _, mv := range moves {
		if err := m.MoveColumn(mv[0], mv[1]); err != nil {
			t.Fatalf("MoveColumn(%d, %d): %v", mv[0], mv[1], err)
		}
		for x := 0; x < m.Len(); x++ {
			if got := m.LogicalOf(m.VisualOf(x)); got != x {
				t.Fatalf("after move %v: LogicalOf(VisualOf(%d)) = %d", mv, x, got)
			}
			if got := m.VisualOf(m.LogicalOf(x)); got != x {
				t.Fatalf("after move %v: VisualOf(LogicalOf(%d)) = %d", mv, x, got)
			}
		}
	}
}

func TestColumnMapperMoveOutOfRange(t *testing.T) {
	m := NewColumnMapper(3)
	for _, mv := range [][2]int{{-1, 0}, {0, 3}, {3, 0}} {
		err := m.MoveColumn(mv[0], mv[1])
		var cfg *ConfigurationError
		if !errors.As(err, &cfg) {
			t.Errorf("MoveColumn(%d, %d) error = %v, want *ConfigurationError", mv[0], mv[1], err)
		}
	}
	if got := m.Order(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("failed moves changed order to %v", got)
	}
}

func TestColumnMapperReset(t *testing.T) {
	m := NewColumnMapper(3)
	_ = m.MoveColumn(0, 2)
	m.Reset(4)
	if got := m.Order(); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("order after reset = %v", got)
	}
}
