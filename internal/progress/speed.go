package progress

import "time"

// maxSamples bounds the moving-rate window
const maxSamples = 10

type sample struct {
	at    time.Time
	bytes int64
}

// SpeedTracker computes throughput and ETA during a transfer
// The reported rate is a moving rate over the most recent samples,
// falling back to the lifetime average until enough samples exist
type SpeedTracker struct {
	startTime time.Time
	total     int64
	samples   []sample // oldest first
	now       func() time.Time
}

// NewSpeedTracker creates a tracker anchored at the current time
func NewSpeedTracker() *SpeedTracker {
	return newSpeedTracker(time.Now)
}

func newSpeedTracker(now func() time.Time) *SpeedTracker {
	return &SpeedTracker{
		startTime: now(),
		samples:   make([]sample, 0, maxSamples),
		now:       now,
	}
}

// Update records a transferred chunk
func (t *SpeedTracker) Update(bytes int64) {
	t.total += bytes
	t.samples = append(t.samples, sample{at: t.now(), bytes: bytes})
	if len(t.samples) > maxSamples {
		t.samples = t.samples[1:]
	}
}

// TotalBytes returns the cumulative transferred byte count
func (t *SpeedTracker) TotalBytes() int64 {
	return t.total
}

// BytesPerSec returns the current transfer rate
// With two or more samples in the window, the rate covers the window
// span only; otherwise it is the lifetime average
func (t *SpeedTracker) BytesPerSec() int64 {
	if len(t.samples) >= 2 {
		first := t.samples[0]
		last := t.samples[len(t.samples)-1]
		span := last.at.Sub(first.at).Seconds()
		if span > 0 {
			var windowed int64
			// The first sample only anchors the window start
			for _, s := range t.samples[1:] {
				windowed += s.bytes
			}
			return int64(float64(windowed) / span)
		}
	}

	elapsed := t.now().Sub(t.startTime).Seconds()
	if elapsed > 0 {
		return int64(float64(t.total) / elapsed)
	}
	return 0
}

// EstimatedRemaining returns remaining transfer time at the current rate
// Zero when the rate is zero
func (t *SpeedTracker) EstimatedRemaining(remainingBytes int64) time.Duration {
	speed := t.BytesPerSec()
	if speed <= 0 || remainingBytes <= 0 {
		return 0
	}
	return time.Duration(float64(remainingBytes) / float64(speed) * float64(time.Second))
}
