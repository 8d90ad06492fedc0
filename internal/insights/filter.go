package insights

import (
	"strings"

	"homesight/internal/segment"
)

// Static-scene language that usually indicates an empty frame. A segment is
// only dropped when it matches one of these and none of the active keywords,
// so "static" used in an otherwise active description survives.
var staticKeywords = []string{"static", "unchanged", "no movement", "stillness", "empty hallway"}

var activeKeywords = []string{"walk", "enter", "leav", "mov", "person", "man", "woman", "carrying", "holding", "interaction"}

var personKeywords = []string{"person", "man", "woman", "individual", "walking", "holding"}

// Filter narrows a raw segment sequence before merging. The zero value keeps
// everything.
type Filter struct {
	// HideStatic drops segments that describe a static scene with no activity.
	HideStatic bool
	// PersonOnly keeps only segments that mention a person.
	PersonOnly bool
	// Search keeps only segments containing the term (case-insensitive).
	Search string
}

// Apply returns the segments that pass the filter, preserving order. The input
// is never mutated.
func (f Filter) Apply(segments []segment.Segment) []segment.Segment {
	kept := make([]segment.Segment, 0, len(segments))
	search := normalize(f.Search)
	for _, seg := range segments {
		desc := normalize(seg.Description)
		if f.HideStatic && containsAny(desc, staticKeywords) && !containsAny(desc, activeKeywords) {
			continue
		}
		if f.PersonOnly && !containsAny(desc, personKeywords) {
			continue
		}
		if search != "" && !strings.Contains(desc, search) {
			continue
		}
		kept = append(kept, seg)
	}
	return kept
}

func containsAny(desc string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
