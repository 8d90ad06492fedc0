package insights_test

import (
	"reflect"
	"testing"

	"homesight/internal/insights"
)

func TestTags(t *testing.T) {
	cases := []struct {
		name        string
		description string
		want        []string
	}{
		{
			"device and bag",
			"A person holding a phone puts it into a bag",
			[]string{"📱 Device", "👜 Bag"},
		},
		{
			"box synonym",
			"Someone carries a cardboard container inside",
			[]string{"📦 Box"},
		},
		{
			"walking variants",
			"A man walks across the room",
			[]string{"🚶 Walking"},
		},
		{
			"enter and exit",
			"Person enters, then exits through the side door",
			[]string{"🚪 Enter", "🚪 Exit"},
		},
		{
			"case insensitive",
			"WOMAN WITH A PLATE",
			[]string{"🍽️ Plate"},
		},
		{
			"no matches",
			"quiet room",
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := insights.Tags(tc.description)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tags(%q) = %v, want %v", tc.description, got, tc.want)
			}
		})
	}
}

func TestTagsOnMergedDescription(t *testing.T) {
	merged := "man in black jacket with plate | the man walks away with the plate"
	got := insights.Tags(merged)
	want := []string{"🍽️ Plate", "🚶 Walking"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tags = %v, want %v", got, want)
	}
}
