package segment

import "fmt"

// Segment is one raw timestamped AI-generated description of a video interval.
// Times are seconds from the start of the video.
type Segment struct {
	Start       float64
	End         float64
	Description string
}

// Duration returns the segment span in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Validate reports whether the segment's time span is well formed.
func (s Segment) Validate() error {
	if s.End < s.Start {
		return &InvalidSegmentError{Start: s.Start, End: s.End}
	}
	return nil
}

// InvalidSegmentError describes a segment whose end precedes its start.
// Index is the position in the input sequence when known, -1 otherwise.
type InvalidSegmentError struct {
	Index int
	Start float64
	End   float64
}

func (e *InvalidSegmentError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid segment at index %d: end %.3fs precedes start %.3fs", e.Index, e.End, e.Start)
	}
	return fmt.Sprintf("invalid segment: end %.3fs precedes start %.3fs", e.End, e.Start)
}

// Clock renders a second offset as a zero-padded mm:ss display string.
func Clock(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ClockRange renders a "mm:ss - mm:ss" display range.
func ClockRange(start, end float64) string {
	return Clock(start) + " - " + Clock(end)
}
