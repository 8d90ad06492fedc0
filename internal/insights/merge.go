package insights

import (
	"sort"

	"homesight/internal/segment"
)

// DefaultGapThreshold is the merge window in seconds: consecutive same-entity
// segments merge when the gap between them is strictly below this value.
const DefaultGapThreshold = 5.0

// DescriptionJoin separates constituent descriptions inside a merged event.
const DescriptionJoin = " | "

// MergedEvent is one consolidated activity shown to end users, aggregating one
// or more raw segments of the same entity.
type MergedEvent struct {
	Start         float64
	End           float64
	Description   string
	Entity        Entity
	Icon          string
	OriginalCount int
}

// Duration returns the merged span in seconds.
func (e MergedEvent) Duration() float64 {
	return e.End - e.Start
}

// StartDisplay returns the event start as a zero-padded mm:ss string.
func (e MergedEvent) StartDisplay() string {
	return segment.Clock(e.Start)
}

// EndDisplay returns the event end as a zero-padded mm:ss string.
func (e MergedEvent) EndDisplay() string {
	return segment.Clock(e.End)
}

// Merge consolidates temporally adjacent same-entity segments into merged
// events. Input order does not matter: segments are stably sorted by start
// time first (ties keep their original order). Each segment is classified and
// folded into the open accumulator when all of the following hold: same
// entity, entity is not Unknown, and the gap between the segment start and the
// accumulator's running end is strictly below gapThreshold. Overlapping
// segments (negative gap) merge. Unknown segments always form singleton
// events.
//
// The gap test uses the accumulator's running end, so a long chain can absorb
// a later segment even when the immediately preceding raw segment ended
// earlier.
//
// Merge does not mutate its input. Any segment with End < Start aborts the
// pass with an *segment.InvalidSegmentError; no segment is silently dropped.
func Merge(segments []segment.Segment, gapThreshold float64) ([]MergedEvent, error) {
	for i, seg := range segments {
		if seg.End < seg.Start {
			return nil, &segment.InvalidSegmentError{Index: i, Start: seg.Start, End: seg.End}
		}
	}
	if len(segments) == 0 {
		return []MergedEvent{}, nil
	}

	ordered := make([]segment.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	events := make([]MergedEvent, 0, len(ordered))
	var current *MergedEvent

	for _, seg := range ordered {
		entity, icon := Classify(seg.Description)

		if current == nil {
			current = openEvent(seg, entity, icon)
			continue
		}

		gap := seg.Start - current.End
		if entity == current.Entity && entity != EntityUnknown && gap < gapThreshold {
			if seg.End > current.End {
				current.End = seg.End
			}
			current.Description += DescriptionJoin + seg.Description
			current.OriginalCount++
			continue
		}

		events = append(events, *current)
		current = openEvent(seg, entity, icon)
	}

	events = append(events, *current)
	return events, nil
}

func openEvent(seg segment.Segment, entity Entity, icon string) *MergedEvent {
	return &MergedEvent{
		Start:         seg.Start,
		End:           seg.End,
		Description:   seg.Description,
		Entity:        entity,
		Icon:          icon,
		OriginalCount: 1,
	}
}
