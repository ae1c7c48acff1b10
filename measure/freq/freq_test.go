package freq

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-transpose/internal/testutil"
)

func TestSpectralPeakSine(t *testing.T) {
	tests := []struct {
		name   string
		freqHz float64
	}{
		{name: "440 Hz", freqHz: 440},
		{name: "1 kHz", freqHz: 1000},
		{name: "3.3 kHz", freqHz: 3300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := testutil.DeterministicSine(tt.freqHz, 48000, 0.5, 8192)

			got, err := SpectralPeak(x, 48000)
			if err != nil {
				t.Fatalf("SpectralPeak() error = %v", err)
			}
			if math.Abs(got-tt.freqHz) > 1 {
				t.Fatalf("SpectralPeak() = %.3f Hz, want %.1f Hz", got, tt.freqHz)
			}
		})
	}
}

func TestSpectralPeakCyclesPerSample(t *testing.T) {
	x := testutil.DeterministicSine(1, 16, 1000, 4096)

	got, err := SpectralPeak(x, 1)
	if err != nil {
		t.Fatalf("SpectralPeak() error = %v", err)
	}
	if math.Abs(got-1.0/16) > 1e-5 {
		t.Fatalf("SpectralPeak() = %v, want 0.0625", got)
	}
}

func TestSpectralPeakIgnoresDC(t *testing.T) {
	x := testutil.DeterministicSine(500, 48000, 0.1, 4096)
	for i := range x {
		x[i] += 3
	}

	got, err := SpectralPeak(x, 48000)
	if err != nil {
		t.Fatalf("SpectralPeak() error = %v", err)
	}
	if math.Abs(got-500) > 2 {
		t.Fatalf("SpectralPeak() = %.3f Hz, want 500 Hz", got)
	}
}

func TestZeroCrossingSine(t *testing.T) {
	x := testutil.DeterministicSine(440, 48000, 0.8, 16384)

	got, err := ZeroCrossing(x, 48000)
	if err != nil {
		t.Fatalf("ZeroCrossing() error = %v", err)
	}
	if math.Abs(got-440) > 0.5 {
		t.Fatalf("ZeroCrossing() = %.3f Hz, want 440 Hz", got)
	}
}

func TestEstimatorsAgree(t *testing.T) {
	x := testutil.Floats(testutil.QuantizedSine(1000, 1.0/100, 8192))
	want := 1 / (200 * math.Pi)

	zc, err := ZeroCrossing(x, 1)
	if err != nil {
		t.Fatalf("ZeroCrossing() error = %v", err)
	}
	sp, err := SpectralPeak(x, 1)
	if err != nil {
		t.Fatalf("SpectralPeak() error = %v", err)
	}

	if math.Abs(zc-want)/want > 0.005 {
		t.Fatalf("ZeroCrossing() = %v, want %v", zc, want)
	}
	if math.Abs(sp-want)/want > 0.02 {
		t.Fatalf("SpectralPeak() = %v, want %v", sp, want)
	}
}

func TestErrors(t *testing.T) {
	if _, err := SpectralPeak(make([]float64, 8), 1); !errors.Is(err, ErrTooShort) {
		t.Fatalf("SpectralPeak(short) error = %v, want ErrTooShort", err)
	}
	if _, err := SpectralPeak(make([]float64, 1024), 1); !errors.Is(err, ErrSilent) {
		t.Fatalf("SpectralPeak(silent) error = %v, want ErrSilent", err)
	}
	if _, err := ZeroCrossing(make([]float64, 1024), 1); !errors.Is(err, ErrSilent) {
		t.Fatalf("ZeroCrossing(silent) error = %v, want ErrSilent", err)
	}

	few := testutil.DeterministicSine(1, 100, 1, 150)
	if _, err := ZeroCrossing(few, 1); !errors.Is(err, ErrTooShort) {
		t.Fatalf("ZeroCrossing(few crossings) error = %v, want ErrTooShort", err)
	}

	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := SpectralPeak(testutil.DeterministicSine(1, 16, 1, 64), sr); err == nil {
			t.Fatalf("SpectralPeak(sampleRate=%v) should fail", sr)
		}
		if _, err := ZeroCrossing(testutil.DeterministicSine(1, 16, 1, 64), sr); err == nil {
			t.Fatalf("ZeroCrossing(sampleRate=%v) should fail", sr)
		}
	}
}

func TestRMS(t *testing.T) {
	x := testutil.DeterministicSine(1, 16, 2, 1600)
	if got := RMS(x); math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS() = %v, want %v", got, math.Sqrt2)
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}
}
