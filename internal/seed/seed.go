package seed

import (
	"fmt"
	"math/rand"
	"time"

	"homesight/internal/store"
)

type activity struct {
	title   string
	summary string
}

// Sample activities cover the entity classifier's vocabulary so seeded data
// exercises the full feed: staff, delivery, visitor, and unknown events.
var activities = []activity{
	{"Morning News", "Watching morning news while drinking coffee"},
	{"Cooking", "Cooking lunch in kitchen with TV on background"},
	{"Documentary", "Sitting on sofa watching nature documentary"},
	{"Evening News", "Family watching evening news together"},
	{"Movie Night", "Family watching a movie with lights dimmed"},
	{"Phone Usage", "Watching TV while scrolling on smartphone"},
	{"Sleeping", "TV on but person appears to be sleeping on sofa"},
	{"Staff Visit", "A man in a black jacket carries a plate to the door"},
	{"Delivery", "Person in a hoodie drops off a bag at the entrance"},
	{"Visitor", "Visitor holding a phone case waits outside"},
}

// Options controls dummy chapter generation.
type Options struct {
	Households []string
	Days       []int
	// MinChapters and MaxChapters bound the per-day chapter count.
	MinChapters int
	MaxChapters int
	// Seed fixes the random source; zero uses the current time.
	Seed int64
}

func (o *Options) defaults() {
	if len(o.Households) == 0 {
		o.Households = []string{"A", "B", "C", "D", "E", "F"}
	}
	if len(o.Days) == 0 {
		o.Days = []int{1, 2, 3, 4}
	}
	if o.MinChapters <= 0 {
		o.MinChapters = 5
	}
	if o.MaxChapters < o.MinChapters {
		o.MaxChapters = 15
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}

// Generate produces plausible chapter data for every household/day pair.
// The same seed always yields the same chapters.
func Generate(opts Options) []store.Chapter {
	opts.defaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	now := time.Now().UTC()

	var chapters []store.Chapter
	for _, household := range opts.Households {
		for _, day := range opts.Days {
			count := opts.MinChapters + rng.Intn(opts.MaxChapters-opts.MinChapters+1)
			current := 0
			for i := 1; i <= count; i++ {
				start := current + 60 + rng.Intn(541)
				duration := 300 + rng.Intn(3301)
				end := start + duration
				current = end

				act := activities[rng.Intn(len(activities))]
				timeOfDay := store.TimeOfDayFor(float64(start))
				chapters = append(chapters, store.Chapter{
					Household:     household,
					DayNumber:     day,
					DayType:       store.DayTypeForDay(day),
					VideoID:       fmt.Sprintf("v_%s_%d", household, day),
					ChapterNumber: i,
					Start:         float64(start),
					End:           float64(end),
					TimeOfDay:     timeOfDay,
					Title:         fmt.Sprintf("%s (%s)", act.title, timeOfDay),
					Summary:       fmt.Sprintf("%s. Household %s, Day %d.", act.summary, household, day),
					CreatedAt:     now,
				})
			}
		}
	}
	return chapters
}
