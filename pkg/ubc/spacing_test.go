package ubc

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandSpacingsPlain(t *testing.T) {
	got, err := ExpandSpacings(strings.Fields("1.0 2.5 0.5"), 3, 0)
	if err != nil {
		t.Fatalf("ExpandSpacings failed: %v", err)
	}
	want := []float64{1.0, 2.5, 0.5}
	if !floatsClose(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandSpacingsRun(t *testing.T) {
	got, err := ExpandSpacings(strings.Fields("5*10.0"), 5, 2)
	if err != nil {
		t.Fatalf("ExpandSpacings failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 widths, got %d", len(got))
	}
	for i, w := range got {
		if w != 10.0 {
			t.Errorf("width %d: expected 10.0, got %g", i, w)
		}
	}
}

func TestExpandSpacingsMixed(t *testing.T) {
	got, err := ExpandSpacings(strings.Fields("3*2.0 4.0"), 4, 1)
	if err != nil {
		t.Fatalf("ExpandSpacings failed: %v", err)
	}
	want := []float64{2.0, 2.0, 2.0, 4.0}
	if !floatsClose(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandSpacingsCountMismatch(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"too few", "1.0 1.0", 3},
		{"too many", "4*1.0", 3},
		{"run overshoot", "2*1.0 2*1.0 1.0", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandSpacings(strings.Fields(tt.line), tt.want, 0)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestExpandSpacingsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bare star", "*"},
		{"missing count", "*2.0"},
		{"missing width", "2*"},
		{"double star", "1*2*3"},
		{"count not integer", "x*2.0"},
		{"count fractional", "2.5*2.0"},
		{"width not number", "2*x"},
		{"zero count", "0*5.0"},
		{"negative count", "-3*1.0"},
		{"plain width not number", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandSpacings(strings.Fields(tt.line), 2, 1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestExpandSpacingsNegativeWidths(t *testing.T) {
	// Sign handling belongs to the mesh parser; the decoder passes
	// negative widths through.
	got, err := ExpandSpacings(strings.Fields("2*-5.0"), 2, 2)
	if err != nil {
		t.Fatalf("ExpandSpacings failed: %v", err)
	}
	if !floatsClose(got, []float64{-5.0, -5.0}) {
		t.Errorf("expected [-5 -5], got %v", got)
	}
}
