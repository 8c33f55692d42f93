package manifest

import "slices"

// Category is a coarse grouping hint used when deriving the profile document.
type Category string

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// Categories a manifest entry may declare.
const (
	// CategoryExperiment marks throwaway or exploratory work.
	CategoryExperiment Category = "experiment"

	// CategoryUtility marks small reusable tools.
	CategoryUtility Category = "utility"

	// CategoryWork marks project work done for a job or client.
	CategoryWork Category = "work"

	// CategoryShowcase marks repositories kept visible as references.
	CategoryShowcase Category = "showcase"

	// CategoryPersonal marks personal projects.
	CategoryPersonal Category = "personal"
)

// Categories returns all valid categories.
func Categories() []Category {
	return []Category{
		CategoryExperiment,
		CategoryUtility,
		CategoryWork,
		CategoryShowcase,
		CategoryPersonal,
	}
}

// IsValid returns true if the Category is one of the defined constants.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// Experimental reports whether archived repositories with this category land
// in the archived-experiments profile section rather than useful references.
func (c Category) Experimental() bool {
	return c == CategoryWork || c == CategoryExperiment
}
