package combine

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-trace/trace/record"
)

// Op selects the elementwise operator applied by the engine.
type Op int

const (
	// OpAdd adds payloads elementwise.
	OpAdd Op = iota

	// OpSub subtracts payloads elementwise, left to right.
	OpSub

	// OpMul multiplies payloads elementwise.
	OpMul

	// OpDiv divides payloads elementwise, left to right. Division by zero
	// is not guarded; IEEE infinities and NaNs propagate into the result
	// and its derived statistics.
	OpDiv
)

// String returns the operator's short name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// rowFunc combines one row pair: dst[i] = a[i] op b[i]. All slices have
// equal length.
type rowFunc func(dst, a, b []float64)

// rowFuncs dispatches operators without per-element branching in the hot
// loop. Add and mul use SIMD kernels; vecmath exposes no sub/div kernels,
// so those stay scalar.
var rowFuncs = [...]rowFunc{
	OpAdd: addRow,
	OpSub: subRow,
	OpMul: mulRow,
	OpDiv: divRow,
}

func addRow(dst, a, b []float64) {
	copy(dst, a)
	vecmath.AddBlockInPlace(dst, b)
}

func subRow(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulRow(dst, a, b []float64) {
	copy(dst, a)
	vecmath.MulBlockInPlace(dst, b)
}

func divRow(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

// Combine applies op across the supplied datasets according to the
// configured policies and returns the result dataset plus any warnings.
//
// With two or more datasets, sizes are broadcast: every dataset must have
// length 1 or the common maximum, and length-1 datasets contribute their
// single record at every position. Position i of the result is the
// left-to-right fold ((d0 op d1) op d2) ... over the records paired at i.
//
// With exactly one dataset, the fold runs across the records within it,
// producing a single-record dataset. A lone record is already reduced and is
// returned unchanged.
//
// On error no result is produced; warnings emitted before the failure are
// still returned.
func Combine(op Op, datasets []record.Dataset, opts ...Option) (record.Dataset, []Warning, error) {
	if op < OpAdd || op > OpDiv {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownOp, int(op))
	}

	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if len(datasets) == 0 {
		return nil, nil, ErrNoInput
	}

	var warnings []Warning

	warn := func(w Warning) {
		warnings = append(warnings, w)
		if cfg.WarningHandler != nil {
			cfg.WarningHandler(w)
		}
	}

	if len(datasets) == 1 {
		out, err := foldDataset(op, datasets[0], cfg, warn)
		if err != nil {
			return nil, warnings, err
		}

		return out, warnings, nil
	}

	maxSize := 0
	for _, d := range datasets {
		if len(d) > maxSize {
			maxSize = len(d)
		}
	}

	for _, d := range datasets {
		if len(d) != 1 && len(d) != maxSize {
			return nil, warnings, fmt.Errorf("%w: length %d is neither 1 nor %d",
				ErrDatasetSize, len(d), maxSize)
		}
	}

	out := make(record.Dataset, 0, maxSize)
	operands := make([]record.Record, len(datasets))

	for i := 0; i < maxSize; i++ {
		for j, d := range datasets {
			k := i
			if len(d) == 1 {
				k = 0
			}

			operands[j] = d[k]
		}

		rec, err := foldRecords(op, operands, cfg, warn)
		if err != nil {
			return nil, warnings, err
		}

		out = append(out, rec)
	}

	return out, warnings, nil
}

// foldDataset reduces the records of a single dataset into one output
// record.
func foldDataset(op Op, ds record.Dataset, cfg Config, warn func(Warning)) (record.Dataset, error) {
	switch len(ds) {
	case 0:
		return record.Dataset{}, nil
	case 1:
		// A lone record is already reduced.
		return record.Dataset{ds[0].Clone()}, nil
	}

	rec, err := foldRecords(op, ds, cfg, warn)
	if err != nil {
		return nil, err
	}

	return record.Dataset{rec}, nil
}

// foldRecords folds op across operands left to right and assembles the
// result record from the designated parent header.
func foldRecords(op Op, operands []record.Record, cfg Config, warn func(Warning)) (record.Record, error) {
	acc := accumulator{
		hdr:  operands[0].Header,
		data: operands[0].Data,
	}
	apply := rowFuncs[op]

	for _, next := range operands[1:] {
		if err := acc.step(apply, next, cfg, warn); err != nil {
			return record.Record{}, err
		}
	}

	parent := operands[0]
	if cfg.NewHeader {
		parent = operands[len(operands)-1]
	}

	return buildResult(parent, acc.data), nil
}

// accumulator carries the in-flight payload and its working header through
// a fold chain. The header starts as the first operand's and only its shape
// fields change as normalization resizes the payload.
type accumulator struct {
	hdr  record.Header
	data [][]float64
}

// step combines the accumulator with the next operand.
func (acc *accumulator) step(apply rowFunc, next record.Record, cfg Config, warn func(Warning)) error {
	cur := record.Record{Header: acc.hdr, Data: acc.data}

	pa, pb, npts, ncmp, err := Resolve(cur, next, cfg, warn)
	if err != nil {
		return err
	}

	if npts == 0 {
		// Dataless propagates through the rest of the chain.
		acc.data = nil
		acc.hdr.Npts, acc.hdr.Ncmp = 0, 0

		return nil
	}

	out := make([][]float64, npts)
	for i := range out {
		row := make([]float64, ncmp)
		apply(row, pa[i][:ncmp], pb[i][:ncmp])
		out[i] = row
	}

	acc.data = out
	acc.hdr.Npts, acc.hdr.Ncmp = npts, ncmp

	return nil
}

// buildResult assembles the output record: header copied wholesale from the
// parent, with npts, ncmp, e, and the dep statistics overwritten from the
// actual payload.
func buildResult(parent record.Record, data [][]float64) record.Record {
	out := record.Record{Header: parent.Header, Data: data}
	out.Npts = rows(data)
	out.Ncmp = cols(data)

	if !parent.Even && len(parent.SampleX) == out.Npts && out.Npts > 0 {
		out.SampleX = append([]float64(nil), parent.SampleX...)
		out.End = out.SampleX[out.Npts-1]
	} else {
		out.SampleX = nil
		out.RecomputeEnd()
	}

	out.RecomputeDep()

	return out
}
