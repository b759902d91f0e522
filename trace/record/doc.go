// Package record defines the in-memory trace record and dataset model.
//
// A Record couples a fixed header (sample count, component count, sample
// interval, time window, record kind) with a dependent-variable payload of
// shape npts x ncmp. Unevenly sampled records carry a parallel independent
// variable vector with the actual sample locations. A record with an empty
// payload ("dataless") is valid everywhere: it carries metadata only and
// short-circuits numeric processing.
//
// A Dataset is an ordered sequence of records. Order is meaningful — it
// pairs positions with other datasets during multi-dataset operations — and
// is preserved by every function in this module.
package record
