package ubc

import (
	"fmt"
	"strings"
)

// ExpandSpacings decodes one axis spacing line of a tensor mesh. Each
// field is either a plain cell width or a run-length token "N*w" standing
// for N copies of width w. want is the cell count the mesh header declared
// for the axis; axis (0-based) names the axis in errors. The expansion
// must produce exactly want widths.
func ExpandSpacings(fields []string, want, axis int) ([]float64, error) {
	out := make([]float64, 0, want)
	for _, f := range fields {
		if !strings.ContainsRune(f, '*') {
			w, err := parseFloatField(f, "cell width")
			if err != nil {
				return nil, fmt.Errorf("axis %d: %w", axis, err)
			}
			out = append(out, w)
			continue
		}
		parts := strings.Split(f, "*")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: axis %d: malformed run token %q", ErrFormat, axis, f)
		}
		count, err := parseIntField(parts[0], "run count")
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		if count < 1 {
			return nil, fmt.Errorf("%w: axis %d: run count %d in %q is not positive", ErrFormat, axis, count, f)
		}
		w, err := parseFloatField(parts[1], "cell width")
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		for i := 0; i < count; i++ {
			out = append(out, w)
		}
	}
	if len(out) != want {
		return nil, fmt.Errorf("%w: axis %d: spacing line expands to %d cells, mesh header declares %d", ErrFormat, axis, len(out), want)
	}
	return out, nil
}
