// Package ubc parses the UBC-GIF text formats used by the GIF inversion
// codes: 3D tensor meshes, 2D meshes, OcTree mesh headers, and the model
// files that carry one value per mesh cell.
//
// Parsers accept whole files as bytes (ParseMesh3D) or read from disk
// (ParseMesh3DFile). A "!" starts a comment that runs to the end of the
// line; blank lines carry no meaning. Every parse failure wraps ErrFormat
// or ErrUnsupportedGeometry so callers can classify it without matching
// message text.
package ubc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFormat reports file contents that do not match the declared
	// structure of a UBC format.
	ErrFormat = errors.New("invalid UBC format")

	// ErrUnsupportedGeometry reports a well-formed file describing a mesh
	// geometry the pipeline cannot represent.
	ErrUnsupportedGeometry = errors.New("unsupported mesh geometry")
)

// Kind identifies which UBC mesh format a file appears to use.
type Kind int

const (
	KindUnknown Kind = iota
	KindMesh2D
	KindMesh3D
	KindOcTree
)

func (k Kind) String() string {
	switch k {
	case KindMesh2D:
		return "2D mesh"
	case KindMesh3D:
		return "3D tensor mesh"
	case KindOcTree:
		return "OcTree mesh"
	default:
		return "unknown"
	}
}

// DetectKind guesses the mesh format from the field count of the first
// content line: a lone integer opens a 2D mesh, three (plus up to five
// trailing padding values) a tensor mesh, and nine an OcTree header. A
// tensor mesh padded out to nine fields is indistinguishable from an
// OcTree header, so callers that know the format should parse directly.
func DetectKind(data []byte) (Kind, error) {
	ls := contentLines(data)
	if len(ls) == 0 {
		return KindUnknown, fmt.Errorf("%w: no content lines", ErrFormat)
	}
	switch n := len(strings.Fields(ls[0].text)); {
	case n == 1:
		return KindMesh2D, nil
	case n == 9:
		return KindOcTree, nil
	case n >= 3 && n < 9:
		return KindMesh3D, nil
	default:
		return KindUnknown, fmt.Errorf("%w: cannot classify a mesh header with %d fields", ErrFormat, n)
	}
}

// DetectKindFile is DetectKind reading only the header of the file at path.
func DetectKindFile(path string) (Kind, error) {
	ln, err := readHeaderLine(path)
	if err != nil {
		return KindUnknown, err
	}
	return DetectKind([]byte(ln.text))
}

// line is one content-bearing input line with its position in the source
// file for error reporting.
type line struct {
	num  int
	text string
}

// stripComment drops a trailing "!" comment and surrounding whitespace.
func stripComment(s string) string {
	if i := strings.IndexByte(s, '!'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// contentLines splits data into lines, strips comments, and drops lines
// left empty. Line numbers count from 1 in the original file.
func contentLines(data []byte) []line {
	raw := strings.Split(string(data), "\n")
	out := make([]line, 0, len(raw))
	for i, s := range raw {
		if t := stripComment(strings.TrimSuffix(s, "\r")); t != "" {
			out = append(out, line{num: i + 1, text: t})
		}
	}
	return out
}

// parseIntField converts one whitespace-delimited token to an int. what
// names the field in errors.
func parseIntField(tok, what string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrFormat, what, tok)
	}
	return v, nil
}

// parseFloatField converts one whitespace-delimited token to a float64.
func parseFloatField(tok, what string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrFormat, what, tok)
	}
	return v, nil
}

// parseIntLine converts every field of a line to ints.
func parseIntLine(ln line, what string) ([]int, error) {
	fields := strings.Fields(ln.text)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := parseIntField(f, what)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln.num, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseFloatLine converts every field of a line to float64s.
func parseFloatLine(ln line, what string) ([]float64, error) {
	fields := strings.Fields(ln.text)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloatField(f, what)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln.num, err)
		}
		out[i] = v
	}
	return out, nil
}
