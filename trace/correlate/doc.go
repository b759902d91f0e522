// Package correlate computes cross-correlation between paired trace
// records.
//
// Records are paired positionally across two datasets with the same length-1
// broadcasting rule as the combine package, and each pair is reconciled by
// the same compatibility resolver: sample intervals must agree (per the
// delta policy), component counts can be truncated or padded, and the
// remaining attributes react per policy. Sample counts may differ freely —
// correlation handles unequal lengths natively, so the npts policy is not
// consulted.
//
// The correlation itself is FFT-based: IFFT(FFT(a) * conj(FFT(b))),
// zero-padded to the next power of two. The result record has
// nptsA + nptsB - 1 rows per component, ordered from lag -(nptsB-1) to
// lag nptsA-1.
package correlate
