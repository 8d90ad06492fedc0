package insights

import "strings"

// Entity is the coarse actor category assigned to a segment by keyword
// classification. The set is closed; descriptions that match no rule are
// EntityUnknown.
type Entity string

const (
	EntityStaffBlackJacket Entity = "Staff (Black Jacket)"
	EntityDeliveryHoodie   Entity = "Delivery (Hoodie)"
	EntityVisitorPhone     Entity = "Visitor (Phone)"
	EntityUnknown          Entity = "Unknown"
)

// UnknownIcon is the display icon for unclassified segments.
const UnknownIcon = "❓"

// rule matches a description when every substring in all is present and at
// least one substring in any is present (an empty any matches trivially).
type rule struct {
	all    []string
	any    []string
	entity Entity
	icon   string
}

// Rules are evaluated top to bottom; the first match wins. They intentionally
// overlap, so order matters.
var rules = []rule{
	{all: []string{"black jacket"}, any: []string{"plate", "man"}, entity: EntityStaffBlackJacket, icon: "👨‍💼"},
	{all: []string{"hoodie", "bag"}, entity: EntityDeliveryHoodie, icon: "🚚"},
	{all: []string{"phone case"}, entity: EntityVisitorPhone, icon: "📱"},
}

// Classify assigns an entity and icon to a free-text description. It is total:
// any input, including the empty string, yields a result and never an error.
// Matching is case-insensitive substring containment against the trimmed,
// lower-cased description.
func Classify(description string) (Entity, string) {
	desc := normalize(description)
	for _, r := range rules {
		if r.matches(desc) {
			return r.entity, r.icon
		}
	}
	return EntityUnknown, UnknownIcon
}

func (r rule) matches(desc string) bool {
	for _, want := range r.all {
		if !strings.Contains(desc, want) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, want := range r.any {
		if strings.Contains(desc, want) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
