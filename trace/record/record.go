package record

import (
	"errors"
	"time"
)

// Errors returned by record constructors.
var (
	ErrRaggedPayload = errors.New("record: payload rows have differing lengths")
	ErrSampleXLength = errors.New("record: independent variable length does not match row count")
)

// Kind enumerates record types (the iftype header field).
type Kind int

const (
	// KindTime is an evenly or unevenly sampled time series.
	KindTime Kind = iota

	// KindSpectralRealImag is a spectrum stored as real/imaginary pairs.
	KindSpectralRealImag

	// KindSpectralAmplPhase is a spectrum stored as amplitude/phase pairs.
	KindSpectralAmplPhase

	// KindGeneralXY is a general x-y record.
	KindGeneralXY

	// KindGeneralXYZ is a general x-y-z record.
	KindGeneralXYZ
)

// String returns the conventional short name of the record kind.
func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindSpectralRealImag:
		return "rlim"
	case KindSpectralAmplPhase:
		return "amph"
	case KindGeneralXY:
		return "xy"
	case KindGeneralXYZ:
		return "xyz"
	default:
		return "unknown"
	}
}

// Header holds the fixed per-record metadata.
type Header struct {
	Npts    int       // number of rows in the payload
	Ncmp    int       // number of components (payload columns)
	Delta   float64   // sample interval
	Begin   float64   // time of the first sample, relative to RefTime
	End     float64   // time of the last sample, relative to RefTime
	RefTime time.Time // absolute reference epoch
	Even    bool      // evenly sampled (the leven flag)
	Kind    Kind      // record kind (the iftype field)

	// Derived payload statistics, refreshed by RecomputeDep.
	DepMin float64
	DepMax float64
	DepMen float64
}

// Record is one trace: a header plus a dependent-variable sample matrix of
// shape Npts x Ncmp. For unevenly sampled records SampleX holds the actual
// sample locations (length Npts); for even records it is nil.
type Record struct {
	Header
	Data    [][]float64
	SampleX []float64
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// New builds an evenly sampled record from a payload matrix, deriving Npts,
// Ncmp, End, and the dep statistics from the data. The payload is used
// directly, not copied.
func New(kind Kind, delta, begin float64, data [][]float64) (Record, error) {
	ncmp := 0
	if len(data) > 0 {
		ncmp = len(data[0])
		for _, row := range data[1:] {
			if len(row) != ncmp {
				return Record{}, ErrRaggedPayload
			}
		}
	}

	r := Record{
		Header: Header{
			Npts:  len(data),
			Ncmp:  ncmp,
			Delta: delta,
			Begin: begin,
			Even:  true,
			Kind:  kind,
		},
		Data: data,
	}
	r.End = endTime(begin, delta, r.Npts)
	r.RecomputeDep()

	return r, nil
}

// NewUneven builds an unevenly sampled record. sampleX must have one entry
// per payload row.
func NewUneven(kind Kind, data [][]float64, sampleX []float64) (Record, error) {
	r, err := New(kind, 0, 0, data)
	if err != nil {
		return Record{}, err
	}

	if len(sampleX) != r.Npts {
		return Record{}, ErrSampleXLength
	}

	r.Even = false
	r.SampleX = sampleX
	if r.Npts > 0 {
		r.Begin = sampleX[0]
		r.End = sampleX[r.Npts-1]
	}
	r.RecomputeDep()

	return r, nil
}

// Dataless reports whether the record carries no payload samples.
func (r Record) Dataless() bool {
	return len(r.Data) == 0
}

// Rows returns the payload row count. For non-dataless records this equals
// the Npts header field.
func (r Record) Rows() int {
	return len(r.Data)
}

// Cols returns the payload column count. For non-dataless records this
// equals the Ncmp header field.
func (r Record) Cols() int {
	if len(r.Data) == 0 {
		return 0
	}

	return len(r.Data[0])
}

// Clone returns a deep copy of the record. Header fields are copied by
// value; the payload matrix and the independent variable vector are copied
// element by element.
func (r Record) Clone() Record {
	out := r
	out.Data = CloneData(r.Data)

	if r.SampleX != nil {
		out.SampleX = make([]float64, len(r.SampleX))
		copy(out.SampleX, r.SampleX)
	}

	return out
}

// CloneData deep-copies a payload matrix. Returns nil for an empty matrix.
func CloneData(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return nil
	}

	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}

	return out
}

// RecomputeEnd refreshes End from Begin, Delta, and Npts.
func (h *Header) RecomputeEnd() {
	h.End = endTime(h.Begin, h.Delta, h.Npts)
}

// endTime computes the time of the last sample for an even record.
func endTime(begin, delta float64, npts int) float64 {
	if npts == 0 {
		return begin
	}

	return begin + delta*float64(npts-1)
}
