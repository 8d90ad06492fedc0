package twelvelabs

// ActivityChapterPrompt steers chapter generation toward concise,
// person-centered activity descriptions. Background and room-layout prose
// drowns the entity keywords the downstream classifier looks for.
const ActivityChapterPrompt = `Generate chapters focused on daily life activities.

Chapter description rules:
- Limit to one or two sentences
- Include only people's main actions (e.g., "using laptop", "watching TV", "cooking", "talking")
- Absolutely exclude background, environment, or object location descriptions
- Include time of day when possible (morning/afternoon/evening)

Good examples:
- "Morning - Husband using laptop and phone at dining table, sharing screen with wife"
- "Afternoon - Couple watching documentary on TV from sofa while talking"
- "Evening - Wife alone on sofa working on laptop while watching TV, with cat"

Bad examples (absolutely forbidden):
- "The video captures a detailed scene..."
- "The environment is meticulously presented..."
- "The camera is positioned at a high angle..."
- Any descriptions of hallways, boxes, doors, or room layouts

Describe only people's actions and activities concisely.`
