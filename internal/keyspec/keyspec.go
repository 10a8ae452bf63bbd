// Package keyspec parses and represents the --key/-k column selection used
// to derive a deduplication fingerprint from a subset of an input line's
// fields rather than the whole line.
package keyspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec is an ordered list of 1-based column indices plus the field
// separator used to split a line into columns. An empty/degenerate Spec
// (no positive index) means "use the whole line".
type Spec struct {
	Columns   []int
	Separator string
}

// Default returns the spec that hashes the whole line, matching the
// external interface's default of "-1" for --key.
func Default(separator string) Spec {
	return Spec{Columns: []int{-1}, Separator: separator}
}

// Parse parses a comma-separated list of 1-based column indices, e.g.
// "1,3". A malformed entry (non-integer) is fatal to argument parsing.
func Parse(raw, separator string) (Spec, error) {
	parts := strings.Split(raw, ",")
	columns := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Spec{}, fmt.Errorf("malformed --key column %q: %w", p, err)
		}
		columns = append(columns, n)
	}
	return Spec{Columns: columns, Separator: separator}, nil
}

// bounds returns the minimum and maximum column index requested.
func (s Spec) bounds() (min, max int) {
	min = int(^uint(0) >> 1) // math.MaxInt, inlined to avoid importing math for one constant
	max = 0
	for _, c := range s.Columns {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max
}

// UsesWholeLine reports whether this spec degenerates to hashing the
// entire line: no positive column is requested (the maximum is not
// positive) or the minimum requested column is non-positive, treated as
// "unset".
func (s Spec) UsesWholeLine() bool {
	min, max := s.bounds()
	return max <= 0 || min <= 0
}

// Select splits line on the separator and returns the concatenation, in
// Columns order, of the requested fields. ok is false when the column
// policy falls back to the whole line: either the spec is degenerate, or
// the line does not have enough fields.
//
// The fallback test is "number of fields < max requested column" (1-based),
// so a line with exactly max fields is sufficient — column max indexes its
// last field. See DESIGN.md for the boundary this pins down.
func (s Spec) Select(line []byte) (key []byte, ok bool) {
	if s.UsesWholeLine() {
		return nil, false
	}
	_, max := s.bounds()

	fields := strings.Split(string(line), s.Separator)
	if len(fields) < max {
		return nil, false
	}

	var sb strings.Builder
	for _, c := range s.Columns {
		sb.WriteString(fields[c-1])
	}
	return []byte(sb.String()), true
}
