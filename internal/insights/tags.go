package insights

// tagRule adds a display tag when any of its keywords appear in a description.
type tagRule struct {
	keywords []string
	tag      string
}

var tagRules = []tagRule{
	{keywords: []string{"phone", "device"}, tag: "📱 Device"},
	{keywords: []string{"bag"}, tag: "👜 Bag"},
	{keywords: []string{"box", "cardboard"}, tag: "📦 Box"},
	{keywords: []string{"plate"}, tag: "🍽️ Plate"},
	{keywords: []string{"walking", "walks"}, tag: "🚶 Walking"},
	{keywords: []string{"enter"}, tag: "🚪 Enter"},
	{keywords: []string{"exit"}, tag: "🚪 Exit"},
}

// Tags derives display tags from a (possibly merged) description. Matching is
// case-insensitive substring containment; tags are returned in a fixed order.
func Tags(description string) []string {
	desc := normalize(description)
	var tags []string
	for _, r := range tagRules {
		if containsAny(desc, r.keywords) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}
