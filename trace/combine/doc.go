// Package combine merges collections of trace records with elementwise
// arithmetic, reconciling structural mismatches between records according to
// explicit per-attribute policies.
//
// The package offers one façade per arithmetic operator (Add, Sub, Mul, Div),
// all delegating to a single combination engine. The engine broadcasts
// dataset sizes, pairs records positionally, and folds the operator
// left-to-right across each tuple: result = ((d0 op d1) op d2) ... op dn.
// Before every fold step a compatibility resolver checks the configured
// attributes (sample count, component count, sample interval, start time,
// reference epoch, even-sampling flag, record kind) and either fails with a
// typed error, emits a warning, or normalizes the payloads by truncation or
// zero-padding.
//
// # Usage
//
// Subtract one dataset from another, padding shorter records with zeros:
//
//	out, warnings, err := combine.Sub(
//	    []record.Dataset{minuend, subtrahend},
//	    combine.WithNpts(combine.ReactPad),
//	)
//
// A single dataset folds its own records into one:
//
//	sum, _, err := combine.Add([]record.Dataset{stack})
//
// All configuration is per call; the package holds no process-wide state.
// Input records are never mutated, and every output record is newly
// constructed. On any error the call produces no output at all.
package combine
