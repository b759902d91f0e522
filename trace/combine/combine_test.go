package combine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-trace/trace/record"
)

func TestAddTwoDatasets(t *testing.T) {
	a := makeRec(t, 0.5, 1, column(1, 2, 3))
	b := makeRec(t, 0.5, 1, column(10, 20, 30))

	out, warnings, err := Add([]record.Dataset{{a}, {b}})
	if err != nil {
		t.Fatal(err)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if len(out) != 1 {
		t.Fatalf("result length = %d, want 1", len(out))
	}

	r := out[0]
	want := []float64{11, 22, 33}

	for i, w := range want {
		if r.Data[i][0] != w {
			t.Errorf("Data[%d][0] = %g, want %g", i, r.Data[i][0], w)
		}
	}

	if r.Npts != 3 || r.Ncmp != 1 {
		t.Errorf("shape = %dx%d, want 3x1", r.Npts, r.Ncmp)
	}

	if r.End != 2 { // 1 + 0.5*(3-1)
		t.Errorf("End = %g, want 2", r.End)
	}

	if r.DepMin != 11 || r.DepMax != 33 || r.DepMen != 22 {
		t.Errorf("dep stats = %g/%g/%g, want 11/33/22", r.DepMin, r.DepMax, r.DepMen)
	}
}

func TestSubIsLeftAssociative(t *testing.T) {
	a := makeRec(t, 1, 0, column(10))
	b := makeRec(t, 1, 0, column(3))
	c := makeRec(t, 1, 0, column(2))

	out, _, err := Sub([]record.Dataset{{a}, {b}, {c}})
	if err != nil {
		t.Fatal(err)
	}

	// ((10 - 3) - 2) = 5, not 10 - (3 - 2) = 9.
	if got := out[0].Data[0][0]; got != 5 {
		t.Errorf("result = %g, want 5", got)
	}
}

func TestDivPropagatesIEEE(t *testing.T) {
	a := makeRec(t, 1, 0, column(1, -1, 0))
	b := makeRec(t, 1, 0, column(0, 0, 0))

	out, _, err := Div([]record.Dataset{{a}, {b}})
	if err != nil {
		t.Fatal(err)
	}

	r := out[0]

	if !math.IsInf(r.Data[0][0], 1) || !math.IsInf(r.Data[1][0], -1) {
		t.Errorf("division by zero = %g/%g, want +Inf/-Inf", r.Data[0][0], r.Data[1][0])
	}

	if !math.IsNaN(r.Data[2][0]) {
		t.Errorf("0/0 = %g, want NaN", r.Data[2][0])
	}

	// Statistics inherit the IEEE values.
	if !math.IsInf(r.DepMax, 1) {
		t.Errorf("DepMax = %g, want +Inf", r.DepMax)
	}
}

func TestMul(t *testing.T) {
	a := makeRec(t, 1, 0, [][]float64{{2, 3}, {4, 5}})
	b := makeRec(t, 1, 0, [][]float64{{10, 10}, {10, 10}})

	out, _, err := Mul([]record.Dataset{{a}, {b}})
	if err != nil {
		t.Fatal(err)
	}

	want := [][]float64{{20, 30}, {40, 50}}
	for i, row := range want {
		for j, w := range row {
			if out[0].Data[i][j] != w {
				t.Errorf("Data[%d][%d] = %g, want %g", i, j, out[0].Data[i][j], w)
			}
		}
	}
}

func TestBroadcastLengthOne(t *testing.T) {
	single := record.Dataset{makeRec(t, 1, 0, column(100))}

	many := record.Dataset{
		makeRec(t, 1, 0, column(1)),
		makeRec(t, 1, 0, column(2)),
		makeRec(t, 1, 0, column(3)),
		makeRec(t, 1, 0, column(4)),
		makeRec(t, 1, 0, column(5)),
	}

	out, _, err := Add([]record.Dataset{single, many})
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 5 {
		t.Fatalf("result length = %d, want 5", len(out))
	}

	for i, want := range []float64{101, 102, 103, 104, 105} {
		if out[i].Data[0][0] != want {
			t.Errorf("position %d = %g, want %g", i, out[i].Data[0][0], want)
		}
	}
}

func TestDatasetSizeMismatch(t *testing.T) {
	two := record.Dataset{makeRec(t, 1, 0, column(1)), makeRec(t, 1, 0, column(2))}
	three := record.Dataset{makeRec(t, 1, 0, column(1)), makeRec(t, 1, 0, column(2)), makeRec(t, 1, 0, column(3))}

	_, _, err := Add([]record.Dataset{two, three})
	if !errors.Is(err, ErrDatasetSize) {
		t.Errorf("err = %v, want ErrDatasetSize", err)
	}
}

func TestNoInput(t *testing.T) {
	_, _, err := Add(nil)
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}

func TestUnknownOp(t *testing.T) {
	_, _, err := Combine(Op(99), []record.Dataset{{makeRec(t, 1, 0, column(1))}})
	if !errors.Is(err, ErrUnknownOp) {
		t.Errorf("err = %v, want ErrUnknownOp", err)
	}
}

func TestUnsupportedPolicy(t *testing.T) {
	a := record.Dataset{makeRec(t, 1, 0, column(1))}

	// Pad is a sizing reaction; delta is advisory only.
	_, _, err := Add([]record.Dataset{a, a}, WithDelta(ReactPad))
	if !errors.Is(err, ErrUnsupportedPolicy) {
		t.Errorf("err = %v, want ErrUnsupportedPolicy", err)
	}
}

func TestSingleDatasetFold(t *testing.T) {
	ds := record.Dataset{
		makeRec(t, 1, 0, column(1, 1)),
		makeRec(t, 1, 0, column(2, 2)),
		makeRec(t, 1, 0, column(3, 3)),
	}

	out, _, err := Add([]record.Dataset{ds})
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 1 {
		t.Fatalf("result length = %d, want 1", len(out))
	}

	if out[0].Data[0][0] != 6 || out[0].Data[1][0] != 6 {
		t.Errorf("fold sum = %g/%g, want 6/6", out[0].Data[0][0], out[0].Data[1][0])
	}
}

func TestSingleRecordUnchanged(t *testing.T) {
	r := makeRec(t, 0.25, 3, column(7, 8, 9))

	out, _, err := Sub([]record.Dataset{{r}})
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 1 {
		t.Fatalf("result length = %d, want 1", len(out))
	}

	got := out[0]
	if got.Npts != 3 || got.Begin != 3 || got.End != 3.5 || got.Delta != 0.25 {
		t.Errorf("header changed: %+v", got.Header)
	}

	for i := range r.Data {
		if got.Data[i][0] != r.Data[i][0] {
			t.Errorf("payload changed at %d: %g != %g", i, got.Data[i][0], r.Data[i][0])
		}
	}

	// The returned record is a fresh copy, not an alias.
	got.Data[0][0] = 99

	if r.Data[0][0] != 7 {
		t.Error("result aliases the input payload")
	}
}

func TestSingleEmptyDataset(t *testing.T) {
	out, _, err := Add([]record.Dataset{{}})
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 0 {
		t.Errorf("result length = %d, want 0", len(out))
	}
}

func TestPadNptsCountsZeros(t *testing.T) {
	a := makeRec(t, 1, 0, column(5, 5, 5))
	b := makeRec(t, 1, 0, column(1, 1, 1, 1, 1))

	out, _, err := Sub([]record.Dataset{{a}, {b}}, WithNpts(ReactPad))
	if err != nil {
		t.Fatal(err)
	}

	r := out[0]
	if r.Npts != 5 {
		t.Fatalf("Npts = %d, want 5", r.Npts)
	}

	want := []float64{4, 4, 4, -1, -1}
	for i, w := range want {
		if r.Data[i][0] != w {
			t.Errorf("Data[%d][0] = %g, want %g", i, r.Data[i][0], w)
		}
	}

	// Padded zeros count toward derived statistics.
	if r.DepMin != -1 || r.DepMax != 4 {
		t.Errorf("dep min/max = %g/%g, want -1/4", r.DepMin, r.DepMax)
	}

	if r.End != 4 { // 0 + 1*(5-1)
		t.Errorf("End = %g, want 4", r.End)
	}
}

func TestTruncateNcmpDropsComponent(t *testing.T) {
	a := makeRec(t, 1, 0, [][]float64{{1, 2, 1e9}, {3, 4, 1e9}})
	b := makeRec(t, 1, 0, [][]float64{{10, 10}, {10, 10}})

	out, _, err := Add([]record.Dataset{{a}, {b}}, WithNcmp(ReactTruncate))
	if err != nil {
		t.Fatal(err)
	}

	r := out[0]
	if r.Ncmp != 2 {
		t.Fatalf("Ncmp = %d, want 2", r.Ncmp)
	}

	// The discarded third component must not influence statistics.
	if r.DepMax != 14 {
		t.Errorf("DepMax = %g, want 14", r.DepMax)
	}
}

func TestErrorFailsBeforeAnyOutput(t *testing.T) {
	good := makeRec(t, 0.01, 0, column(1))
	bad := makeRec(t, 0.02, 0, column(1))

	a := record.Dataset{good, good, good}
	b := record.Dataset{good, bad, good} // mismatch only at position 1

	out, _, err := Add([]record.Dataset{a, b})

	var me *MismatchError
	if !errors.As(err, &me) || me.Attribute != AttrDelta {
		t.Fatalf("err = %v, want MismatchError on delta", err)
	}

	if out != nil {
		t.Errorf("partial output produced on failure: %v", out)
	}
}

func TestNewHeaderSelectsParent(t *testing.T) {
	refA := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	refB := time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC)

	a := makeRec(t, 1, 10, column(1, 2, 3))
	a.RefTime = refA

	b := makeRec(t, 1, 20, column(10, 20, 30))
	b.RefTime = refB

	opts := []Option{WithBegin(ReactIgnore), WithRef(ReactIgnore)}

	first, _, err := Add([]record.Dataset{{a}, {b}}, opts...)
	if err != nil {
		t.Fatal(err)
	}

	if first[0].Begin != 10 || !first[0].RefTime.Equal(refA) {
		t.Errorf("newhdr=false: begin/ref = %g/%s, want 10/%s", first[0].Begin, first[0].RefTime, refA)
	}

	last, _, err := Add([]record.Dataset{{a}, {b}}, append(opts, WithNewHeader(true))...)
	if err != nil {
		t.Fatal(err)
	}

	if last[0].Begin != 20 || !last[0].RefTime.Equal(refB) {
		t.Errorf("newhdr=true: begin/ref = %g/%s, want 20/%s", last[0].Begin, last[0].RefTime, refB)
	}

	// Shape and statistics reflect the actual payload either way.
	for _, r := range []record.Record{first[0], last[0]} {
		if r.Npts != 3 || r.Ncmp != 1 || r.DepMin != 11 || r.DepMax != 33 {
			t.Errorf("payload-derived fields wrong: %+v", r.Header)
		}
	}

	// End always derives from the inherited begin.
	if first[0].End != 12 || last[0].End != 22 {
		t.Errorf("End = %g/%g, want 12/22", first[0].End, last[0].End)
	}
}

func TestDatalessCombinesWithoutError(t *testing.T) {
	a := makeRec(t, 0.01, 0, column(1, 2, 3))

	// Dataless operand with conflicting attributes everywhere.
	empty := makeRec(t, 0.02, 9, nil)
	empty.Kind = record.KindSpectralAmplPhase

	out, warnings, err := Add([]record.Dataset{{a}, {empty}})
	if err != nil {
		t.Fatalf("dataless operand raised error: %v", err)
	}

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	r := out[0]
	if !r.Dataless() || r.Npts != 0 || r.Ncmp != 0 {
		t.Errorf("result not dataless: %+v", r.Header)
	}

	if !math.IsNaN(r.DepMin) || !math.IsNaN(r.DepMax) || !math.IsNaN(r.DepMen) {
		t.Errorf("dep stats = %g/%g/%g, want NaN", r.DepMin, r.DepMax, r.DepMen)
	}
}

func TestWarningsCollectedAndStreamed(t *testing.T) {
	a := makeRec(t, 1, 0, column(1))
	b := makeRec(t, 1, 5, column(1))

	var streamed []Warning

	out, warnings, err := Add(
		[]record.Dataset{{a}, {b}},
		WithWarningHandler(func(w Warning) { streamed = append(streamed, w) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 1 {
		t.Fatalf("result length = %d, want 1", len(out))
	}

	if len(warnings) != 1 || warnings[0].Attribute != AttrBegin {
		t.Fatalf("warnings = %v, want one begin warning", warnings)
	}

	if len(streamed) != 1 || streamed[0] != warnings[0] {
		t.Errorf("handler saw %v, want %v", streamed, warnings)
	}
}

func TestInputsNeverMutated(t *testing.T) {
	a := makeRec(t, 1, 0, column(1, 2, 3))
	b := makeRec(t, 1, 0, column(10, 20, 30, 40))

	_, _, err := Add([]record.Dataset{{a}, {b}}, WithNpts(ReactPad))
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Data) != 3 || len(b.Data) != 4 {
		t.Error("combine resized a caller payload")
	}

	if a.Data[0][0] != 1 || b.Data[3][0] != 40 {
		t.Error("combine rewrote caller samples")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpAdd, "add"},
		{OpSub, "sub"},
		{OpMul, "mul"},
		{OpDiv, "div"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
