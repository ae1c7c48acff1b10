package glitch

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-transpose/dsp/fixed"
)

// DefaultThreshold is the largest accepted step between consecutive 16-bit
// samples.
const DefaultThreshold = 50

// ErrUncontrolled is returned by Verify when the reference input steps by
// more than the threshold, so output steps cannot be attributed to the
// processor.
var ErrUncontrolled = errors.New("reference input exceeds the discontinuity threshold")

// Config holds detection parameters.
type Config struct {
	// Threshold is the largest accepted |x[t] - x[t-1]|. Zero selects
	// DefaultThreshold.
	Threshold int64
	// Skip is the number of leading samples ignored, e.g. a warm-up period.
	Skip int
}

// Event is one detected discontinuity.
type Event struct {
	// Index is the position of the later sample of the pair.
	Index int
	Delta int64
}

// Result holds detection results.
type Result struct {
	Events   []Event
	MaxDelta int64
	MaxIndex int
	Compared int
}

// Clean reports whether no discontinuity was found.
func (r Result) Clean() bool { return len(r.Events) == 0 }

// First returns the earliest discontinuity.
func (r Result) First() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[0], true
}

func (r Result) String() string {
	if r.Clean() {
		return fmt.Sprintf("clean: %d steps compared, max |delta| %d at %d", r.Compared, r.MaxDelta, r.MaxIndex)
	}
	first := r.Events[0]
	return fmt.Sprintf("%d discontinuities, first at %d (delta %d), max |delta| %d at %d",
		len(r.Events), first.Index, first.Delta, r.MaxDelta, r.MaxIndex)
}

func normalizeConfig(cfg Config) Config {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Skip < 0 {
		cfg.Skip = 0
	}
	return cfg
}

// Detector is the streaming form of Analyze.
type Detector struct {
	cfg    Config
	n      int
	last   fixed.Sample
	result Result
}

// NewDetector creates a detector.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: normalizeConfig(cfg)}
}

// Push feeds one sample and reports whether it completes a discontinuity.
func (d *Detector) Push(s fixed.Sample) bool {
	idx := d.n
	prev := d.last
	d.n++
	d.last = s

	if idx <= d.cfg.Skip {
		return false
	}

	delta := int64(s) - int64(prev)
	mag := delta
	if mag < 0 {
		mag = -mag
	}

	d.result.Compared++
	if mag > d.result.MaxDelta {
		d.result.MaxDelta = mag
		d.result.MaxIndex = idx
	}
	if mag > d.cfg.Threshold {
		d.result.Events = append(d.result.Events, Event{Index: idx, Delta: delta})
		return true
	}
	return false
}

// Result returns the results so far.
func (d *Detector) Result() Result { return d.result }

// Reset clears detector state.
func (d *Detector) Reset() {
	d.n = 0
	d.last = 0
	d.result = Result{}
}

// Analyze scans x for discontinuities.
func Analyze(x []fixed.Sample, cfg Config) Result {
	d := NewDetector(cfg)
	for _, s := range x {
		d.Push(s)
	}
	return d.Result()
}

// MaxSlew returns the largest |x[t] - x[t-1]|.
func MaxSlew(x []fixed.Sample) int64 {
	var maxSlew int64
	for i := 1; i < len(x); i++ {
		d := int64(x[i]) - int64(x[i-1])
		if d < 0 {
			d = -d
		}
		if d > maxSlew {
			maxSlew = d
		}
	}
	return maxSlew
}

// Verify analyzes out after checking that the reference input in stays
// within the threshold over the same range. It returns ErrUncontrolled when
// it does not.
func Verify(in, out []fixed.Sample, cfg Config) (Result, error) {
	cfg = normalizeConfig(cfg)
	if cfg.Skip < len(in) {
		if slew := MaxSlew(in[cfg.Skip:]); slew > cfg.Threshold {
			return Result{}, fmt.Errorf("%w: input slew %d > %d", ErrUncontrolled, slew, cfg.Threshold)
		}
	}
	return Analyze(out, cfg), nil
}
