package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		limit, offset  int
		expectedLimit  int
		expectedOffset int
	}{
		{"Absent values get defaults", 0, 0, DefaultLimit, 0},
		{"Explicit values kept", 10, 20, 10, 20},
		{"Limit clamped to max", 500, 0, MaxLimit, 0},
		{"Limit at max kept", MaxLimit, 0, MaxLimit, 0},
		{"Negative limit gets default", -5, 0, DefaultLimit, 0},
		{"Negative offset reset to zero", 10, -1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Normalize(tt.limit, tt.offset)
			if page.Limit != tt.expectedLimit {
				t.Errorf("Expected limit %d, got %d", tt.expectedLimit, page.Limit)
			}
			if page.Offset != tt.expectedOffset {
				t.Errorf("Expected offset %d, got %d", tt.expectedOffset, page.Offset)
			}
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name            string
		limit, offset   int
		total           int
		hasNext, hasPrev bool
	}{
		{"Window inside set", 10, 0, 25, true, false},
		{"Middle window", 10, 10, 25, true, true},
		{"Last window covers remainder", 10, 20, 25, false, true},
		{"Offset zero on non-empty set has no prev", 20, 0, 5, false, false},
		{"Empty set", 20, 0, 0, false, false},
		{"Window exactly covers set", 25, 0, 25, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(Page{Limit: tt.limit, Offset: tt.offset}, tt.total)
			if meta.HasNext != tt.hasNext {
				t.Errorf("Expected hasNext=%v, got %v", tt.hasNext, meta.HasNext)
			}
			if meta.HasPrev != tt.hasPrev {
				t.Errorf("Expected hasPrev=%v, got %v", tt.hasPrev, meta.HasPrev)
			}
			if meta.Total != tt.total {
				t.Errorf("Expected total=%d, got %d", tt.total, meta.Total)
			}
		})
	}
}
