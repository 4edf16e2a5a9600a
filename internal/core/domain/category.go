package domain

import "time"

// DefaultCategory is the fallback applied wherever a task carries no
// category. Kept next to DefaultCategories so the aggregation and list
// layers cannot drift apart on the fallback value.
const DefaultCategory = "Work"

// DefaultCategories is the fixed selectable set every user starts with.
// Custom categories are appended after these; a custom name that matches
// a default case-insensitively is absorbed into the default.
var DefaultCategories = []string{
	"School",
	"Work",
	"Personal",
	"Business",
	"Teams",
	"Freelancer",
}

type Category struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}
