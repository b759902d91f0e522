package combine

import "github.com/cwbudde/algo-trace/trace/record"

// Add sums matching records across datasets elementwise.
func Add(datasets []record.Dataset, opts ...Option) (record.Dataset, []Warning, error) {
	return Combine(OpAdd, datasets, opts...)
}

// Sub subtracts matching records left to right: ((d0 - d1) - d2) ...
func Sub(datasets []record.Dataset, opts ...Option) (record.Dataset, []Warning, error) {
	return Combine(OpSub, datasets, opts...)
}

// Mul multiplies matching records across datasets elementwise.
func Mul(datasets []record.Dataset, opts ...Option) (record.Dataset, []Warning, error) {
	return Combine(OpMul, datasets, opts...)
}

// Div divides matching records left to right: ((d0 / d1) / d2) ...
// Division by zero follows IEEE semantics; no guard is applied.
func Div(datasets []record.Dataset, opts ...Option) (record.Dataset, []Warning, error) {
	return Combine(OpDiv, datasets, opts...)
}
