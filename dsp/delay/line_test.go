package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	for _, size := range []int{-1, 0, 2, 3, 12, 1000, MaxCapacity * 2} {
		if _, err := New(size); err == nil {
			t.Fatalf("expected error for size=%d", size)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Head() != 0 {
		t.Fatalf("Head: got %d want 0", d.Head())
	}

	if d.Span() != fixed.PhaseFromInt(16) {
		t.Fatalf("Span: got %v want 16", d.Span())
	}

	for i := 0; i < d.Len(); i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("new line Read(%d): got %d want 0", i, got)
		}
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(fixed.Sample(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(fixed.Sample(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	// Read(1) = most recent = 9
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}

	if d.Head() != 2 {
		t.Fatalf("Head: got %d want 2", d.Head())
	}

	if got := d.Newest(); got != fixed.PhaseFromInt(1) {
		t.Fatalf("Newest: got %v want 1", got)
	}
	// Oldest retained sample sits at the head.
	if got := d.Read(4); got != 6 {
		t.Fatalf("Read(4): got %v want 6", got)
	}
}

func TestHoldsMostRecentCapacitySamples(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		d.Write(fixed.Sample(i))
	}

	for k := 1; k <= d.Len(); k++ {
		if got, want := d.Read(k), fixed.Sample(1000-k); got != want {
			t.Fatalf("Read(%d): got %d want %d", k, got, want)
		}
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 0; i < 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}

	if d.Head() != 0 {
		t.Fatalf("after reset Head: got %d want 0", d.Head())
	}
}

// --- fractional reads ---

// fillRamp fills a delay line with a ramp [0, step, 2*step, ...].
func fillRamp(d *Line, step int) {
	for i := 0; i < d.Len(); i++ {
		d.Write(fixed.Sample(i * step))
	}
}

func TestReadAtIntegerPositionsExact(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d, 10)

	for i := 0; i < d.Len(); i++ {
		if got, want := d.ReadAt(fixed.PhaseFromInt(i)), fixed.Sample(i*10); got != want {
			t.Fatalf("ReadAt(%d): got %d want %d", i, got, want)
		}
	}
}

func TestReadAtLinearRamp(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d, 100)
	// With a linear ramp, linear interpolation is exact.
	got := d.ReadAt(fixed.PhaseFromInt(5) + fixed.One/4)
	if got != 525 {
		t.Fatalf("got %v want 525", got)
	}
}

func TestReadAtWrapsBetweenLastAndFirst(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d, 8)
	// index 7 holds 56, index 0 holds 0.
	got := d.ReadAt(fixed.PhaseFromInt(7) + fixed.One/2)
	if got != 28 {
		t.Fatalf("got %v want 28", got)
	}
	// Positions beyond the capacity wrap.
	if got := d.ReadAt(fixed.PhaseFromInt(8 + 3)); got != 24 {
		t.Fatalf("wrapped position: got %v want 24", got)
	}
}

func TestReadFractionalMatchesRead(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		d.Write(fixed.Sample(i * 3))
	}

	for k := 1; k <= d.Len(); k++ {
		if got, want := d.ReadFractional(fixed.PhaseFromInt(k)), d.Read(k); got != want {
			t.Fatalf("ReadFractional(%d): got %d want %d", k, got, want)
		}
	}

	// Halfway between the two newest samples (147 and 144).
	if got := d.ReadFractional(fixed.One + fixed.One/2); got != 146 {
		t.Fatalf("ReadFractional(1.5): got %d want 146", got)
	}
}

func TestWrap(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	if got := d.Wrap(fixed.PhaseFromInt(9) + 5); got != fixed.PhaseFromInt(1)+5 {
		t.Fatalf("Wrap: got %v", got)
	}

	// One sample before position zero, as a read pointer stepping back from
	// the start of the buffer computes it.
	var zero fixed.Phase
	if got := d.Wrap(zero - fixed.One); got != fixed.PhaseFromInt(7) {
		t.Fatalf("Wrap(-1): got %v want 7", got)
	}

	if got := d.Wrap(d.Span() - fixed.One/2); got != fixed.PhaseFromInt(7)+fixed.One/2 {
		t.Fatalf("Wrap(span-0.5): got %v want 7.5", got)
	}
}

func TestDCPreservation(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}
	// Fill with constant value.
	for i := 0; i < d.Len(); i++ {
		d.Write(-4242)
	}

	for frac := fixed.Phase(0); frac < fixed.One; frac += 777 {
		if got := d.ReadAt(fixed.PhaseFromInt(5) + frac); got != -4242 {
			t.Fatalf("DC at frac %d: got %v want -4242", frac, got)
		}
	}
}

// --- sine wave quality test ---

func TestSineQuality(t *testing.T) {
	// Write a low-frequency sine into the line and verify that fractional
	// reads stay within the linear interpolation error bound.
	const (
		freq      = 0.01
		size      = 256
		amplitude = 10000.0
	)

	d, err := New(size)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < size; i++ {
		d.Write(fixed.Sample(math.Round(amplitude * math.Sin(2*math.Pi*freq*float64(i)))))
	}

	// Second derivative bound: A*(2*pi*f)^2/8 plus one LSB of rounding.
	tol := amplitude*math.Pow(2*math.Pi*freq, 2)/8 + 1.5

	for _, pos := range []float64{3.25, 20.37, 100.5, 200.99} {
		want := amplitude * math.Sin(2*math.Pi*freq*pos)
		got := float64(d.ReadAt(fixed.PhaseFromFloat(pos)))

		if math.Abs(got-want) > tol {
			t.Fatalf("pos %.2f: got %v want %v (tol %v)", pos, got, want, tol)
		}
	}
}

// --- benchmarks ---

func BenchmarkReadAt(b *testing.B) {
	d, _ := New(1024)
	fillRamp(d, 1)
	pos := fixed.PhaseFromFloat(100.37)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadAt(pos)
	}
}

func BenchmarkWrite(b *testing.B) {
	d, _ := New(1024)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Write(fixed.Sample(i))
	}
}
