package catalog

// Fallback is the catalog served when the subject fetch fails: a transient
// backend error must never leave the screen empty. Lessons stay empty so
// nothing locked is ever shown as available.
func Fallback() []Subject {
	return []Subject{
		{
			ID:          "fallback-mathematics",
			Name:        "Mathematics",
			Description: "Numbers, algebra and geometry",
			Icon:        "calculator",
			Color:       "#4F46E5",
			LessonCount: 0,
			Lessons:     []Lesson{},
		},
		{
			ID:          "fallback-physics",
			Name:        "Physics",
			Description: "Motion, energy and matter",
			Icon:        "atom",
			Color:       "#0891B2",
			LessonCount: 0,
			Lessons:     []Lesson{},
		},
		{
			ID:          "fallback-chemistry",
			Name:        "Chemistry",
			Description: "Elements, reactions and compounds",
			Icon:        "flask",
			Color:       "#16A34A",
			LessonCount: 0,
			Lessons:     []Lesson{},
		},
	}
}
