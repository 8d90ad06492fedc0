package insights_test

import (
	"testing"

	"homesight/internal/insights"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		description string
		entity      insights.Entity
		icon        string
	}{
		{"black jacket with plate", "man in black jacket with plate", insights.EntityStaffBlackJacket, "👨‍💼"},
		{"black jacket with man", "a man wearing a black jacket", insights.EntityStaffBlackJacket, "👨‍💼"},
		{"black jacket alone", "a black jacket hanging on a hook", insights.EntityUnknown, "❓"},
		{"hoodie with bag", "hoodie with bag", insights.EntityDeliveryHoodie, "🚚"},
		{"hoodie with white bag", "person in hoodie carrying a white bag", insights.EntityDeliveryHoodie, "🚚"},
		{"hoodie alone", "person in a hoodie", insights.EntityUnknown, "❓"},
		{"phone case", "visitor holding a phone case", insights.EntityVisitorPhone, "📱"},
		{"no keywords", "person walking", insights.EntityUnknown, "❓"},
		{"empty", "", insights.EntityUnknown, "❓"},
		{"case insensitive", "MAN IN BLACK JACKET WITH PLATE", insights.EntityStaffBlackJacket, "👨‍💼"},
		{"surrounding whitespace", "  hoodie with bag  ", insights.EntityDeliveryHoodie, "🚚"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entity, icon := insights.Classify(tc.description)
			if entity != tc.entity {
				t.Fatalf("entity = %q, want %q", entity, tc.entity)
			}
			if icon != tc.icon {
				t.Fatalf("icon = %q, want %q", icon, tc.icon)
			}
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// The staff rule precedes the hoodie rule; a description matching both
	// lands on the first.
	entity, _ := insights.Classify("man in black jacket and hoodie with bag")
	if entity != insights.EntityStaffBlackJacket {
		t.Fatalf("entity = %q, want %q", entity, insights.EntityStaffBlackJacket)
	}
}
