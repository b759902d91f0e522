package correlate

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-trace/trace/combine"
	"github.com/cwbudde/algo-trace/trace/record"
)

// Correlate cross-correlates records paired positionally across a and b.
// Dataset sizes are broadcast: each must have length 1 or the common
// maximum. The result at each position has nptsA + nptsB - 1 rows per
// component, ordered from lag -(nptsB-1) to lag nptsA-1; its Begin is the
// lag-axis origin beginA - beginB - delta*(nptsB-1).
//
// Header inheritance, attribute policies, and warnings follow the combine
// package, except that the npts policy is not consulted: correlation
// handles unequal sample counts natively.
func Correlate(a, b record.Dataset, opts ...combine.Option) (record.Dataset, []combine.Warning, error) {
	cfg := combine.ApplyOptions(opts...)
	cfg.Npts = combine.ReactIgnore

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	maxSize := max(len(a), len(b))
	for _, d := range []record.Dataset{a, b} {
		if len(d) != 1 && len(d) != maxSize {
			return nil, nil, fmt.Errorf("%w: length %d is neither 1 nor %d",
				combine.ErrDatasetSize, len(d), maxSize)
		}
	}

	var warnings []combine.Warning

	warn := func(w combine.Warning) {
		warnings = append(warnings, w)
		if cfg.WarningHandler != nil {
			cfg.WarningHandler(w)
		}
	}

	out := make(record.Dataset, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		ia, ib := i, i
		if len(a) == 1 {
			ia = 0
		}

		if len(b) == 1 {
			ib = 0
		}

		rec, err := correlatePair(a[ia], b[ib], cfg, warn)
		if err != nil {
			return nil, warnings, err
		}

		out = append(out, rec)
	}

	return out, warnings, nil
}

// correlatePair resolves one record pair and computes its per-component
// cross-correlation.
func correlatePair(ra, rb record.Record, cfg combine.Config, warn func(combine.Warning)) (record.Record, error) {
	parent := ra
	if cfg.NewHeader {
		parent = rb
	}

	pa, pb, npts, ncmp, err := combine.Resolve(ra, rb, cfg, warn)
	if err != nil {
		return record.Record{}, err
	}

	if npts == 0 {
		return dataless(parent), nil
	}

	n, m := len(pa), len(pb)
	outLen := n + m - 1
	fftSize := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return record.Record{}, fmt.Errorf("correlate: failed to create FFT plan: %w", err)
	}

	freqA := make([]complex128, fftSize)
	freqB := make([]complex128, fftSize)

	data := make([][]float64, outLen)
	for i := range data {
		data[i] = make([]float64, ncmp)
	}

	for j := 0; j < ncmp; j++ {
		for i := range freqA {
			freqA[i] = 0
			freqB[i] = 0
		}

		for i := 0; i < n; i++ {
			freqA[i] = complex(pa[i][j], 0)
		}

		for i := 0; i < m; i++ {
			freqB[i] = complex(pb[i][j], 0)
		}

		if err := plan.Forward(freqA, freqA); err != nil {
			return record.Record{}, fmt.Errorf("correlate: forward FFT failed: %w", err)
		}

		if err := plan.Forward(freqB, freqB); err != nil {
			return record.Record{}, fmt.Errorf("correlate: forward FFT failed: %w", err)
		}

		// A * conj(B) in the frequency domain is circular correlation.
		for i := range freqA {
			bConj := complex(real(freqB[i]), -imag(freqB[i]))
			freqA[i] *= bConj
		}

		if err := plan.Inverse(freqA, freqA); err != nil {
			return record.Record{}, fmt.Errorf("correlate: inverse FFT failed: %w", err)
		}

		// Rearrange circular output to linear lag order: negative lags
		// -(m-1)..-1 sit at the tail of the FFT buffer, positive lags
		// 0..n-1 at the head.
		for i := 0; i < n; i++ {
			data[m-1+i][j] = real(freqA[i])
		}

		for i := 0; i < m-1; i++ {
			data[i][j] = real(freqA[fftSize-m+1+i])
		}
	}

	out := record.Record{Header: parent.Header, Data: data}
	out.Npts = outLen
	out.Ncmp = ncmp
	out.Begin = ra.Begin - rb.Begin - ra.Delta*float64(m-1)
	out.Even = true
	out.SampleX = nil
	out.RecomputeEnd()
	out.RecomputeDep()

	return out, nil
}

// dataless builds a metadata-only result from the parent header.
func dataless(parent record.Record) record.Record {
	out := record.Record{Header: parent.Header}
	out.Npts = 0
	out.Ncmp = 0
	out.SampleX = nil
	out.RecomputeEnd()
	out.RecomputeDep()

	return out
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
