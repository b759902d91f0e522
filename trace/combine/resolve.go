package combine

import (
	"fmt"

	"github.com/cwbudde/algo-trace/trace/core"
	"github.com/cwbudde/algo-trace/trace/record"
)

// Resolve checks two records attribute by attribute against the configured
// policies and returns payloads ready for elementwise combination, plus the
// row and column counts the result will have.
//
// Truncate and pad reactions resize the returned payloads; all other
// reactions leave them untouched. When shapes still differ after resolution
// (warn/ignore on npts or ncmp), the returned counts cover the overlapping
// region only. Returned payloads may alias the inputs and must be treated as
// read-only.
//
// If either record is dataless, Resolve short-circuits with empty payloads
// and zero counts, skipping every attribute check.
func Resolve(a, b record.Record, cfg Config, warn func(Warning)) (pa, pb [][]float64, npts, ncmp int, err error) {
	if a.Dataless() || b.Dataless() {
		return nil, nil, 0, 0, nil
	}

	pa, pb = a.Data, b.Data

	if rows(pa) != rows(pb) {
		pa, pb, err = resolveRows(pa, pb, cfg.Npts, warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	if cols(pa) != cols(pb) {
		pa, pb, err = resolveCols(pa, pb, cfg.Ncmp, warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	npts = min(rows(pa), rows(pb))
	ncmp = min(cols(pa), cols(pb))

	if !core.SameInterval(a.Delta, b.Delta, cfg.DeltaTol) {
		err = react(cfg.Delta, AttrDelta, fmt.Sprintf("%g != %g", a.Delta, b.Delta), warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	if a.Begin != b.Begin {
		err = react(cfg.Begin, AttrBegin, fmt.Sprintf("%g != %g", a.Begin, b.Begin), warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	if !a.RefTime.Equal(b.RefTime) {
		err = react(cfg.Ref, AttrRef, fmt.Sprintf("%s != %s", a.RefTime, b.RefTime), warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	if a.Even != b.Even {
		err = react(cfg.Leven, AttrLeven, fmt.Sprintf("%t != %t", a.Even, b.Even), warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	if a.Kind != b.Kind {
		err = react(cfg.Kind, AttrKind, fmt.Sprintf("%s != %s", a.Kind, b.Kind), warn)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	}

	return pa, pb, npts, ncmp, nil
}

// resolveRows applies the npts reaction to payloads with differing row
// counts.
func resolveRows(pa, pb [][]float64, r Reaction, warn func(Warning)) ([][]float64, [][]float64, error) {
	na, nb := rows(pa), rows(pb)

	switch r {
	case ReactTruncate:
		n := min(na, nb)
		return pa[:n], pb[:n], nil
	case ReactPad:
		n := max(na, nb)
		return padRows(pa, n), padRows(pb, n), nil
	default:
		err := react(r, AttrNpts, fmt.Sprintf("%d != %d", na, nb), warn)
		return pa, pb, err
	}
}

// resolveCols applies the ncmp reaction to payloads with differing column
// counts.
func resolveCols(pa, pb [][]float64, r Reaction, warn func(Warning)) ([][]float64, [][]float64, error) {
	ca, cb := cols(pa), cols(pb)

	switch r {
	case ReactTruncate:
		c := min(ca, cb)
		return truncCols(pa, c), truncCols(pb, c), nil
	case ReactPad:
		c := max(ca, cb)
		return padCols(pa, c), padCols(pb, c), nil
	default:
		err := react(r, AttrNcmp, fmt.Sprintf("%d != %d", ca, cb), warn)
		return pa, pb, err
	}
}

// react maps an advisory reaction to its observable effect.
func react(r Reaction, attr Attribute, detail string, warn func(Warning)) error {
	switch r {
	case ReactError:
		return &MismatchError{Attribute: attr, Detail: detail}
	case ReactWarn:
		if warn != nil {
			warn(Warning{Attribute: attr, Message: detail})
		}

		return nil
	case ReactIgnore:
		return nil
	default:
		return fmt.Errorf("%w: %s for %s", ErrUnsupportedPolicy, r, attr)
	}
}

// rows returns the payload row count.
func rows(data [][]float64) int {
	return len(data)
}

// cols returns the payload column count.
func cols(data [][]float64) int {
	if len(data) == 0 {
		return 0
	}

	return len(data[0])
}

// padRows extends data to n rows by appending zero rows of the current
// column width. The existing rows are aliased, not copied.
func padRows(data [][]float64, n int) [][]float64 {
	if len(data) >= n {
		return data
	}

	width := cols(data)
	out := make([][]float64, n)
	copy(out, data)

	for i := len(data); i < n; i++ {
		out[i] = make([]float64, width)
	}

	return out
}

// truncCols narrows every row to c columns by reslicing.
func truncCols(data [][]float64, c int) [][]float64 {
	if cols(data) <= c {
		return data
	}

	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = row[:c]
	}

	return out
}

// padCols widens every row to c columns, appending zeros. Rows are copied.
func padCols(data [][]float64, c int) [][]float64 {
	if cols(data) >= c {
		return data
	}

	out := make([][]float64, len(data))
	for i, row := range data {
		wide := make([]float64, c)
		copy(wide, row)
		out[i] = wide
	}

	return out
}
