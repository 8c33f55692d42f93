package manifest

import "slices"

// Status is a repository's desired lifecycle state. Reconciliation dispatches
// on this value; there is no fallthrough, so adding a status means adding an
// explicit branch.
type Status string

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// Lifecycle states a manifest entry may declare.
const (
	// StatusActive keeps the repository public, unarchived, and banner-free.
	StatusActive Status = "active"

	// StatusArchived freezes the repository with a dated banner in its README.
	StatusArchived Status = "archived"

	// StatusPrivate hides the repository from the public profile.
	StatusPrivate Status = "private"

	// StatusDelete marks the repository for manual deletion. Entries with this
	// status are never touched remotely.
	StatusDelete Status = "delete"
)

// Statuses returns all valid lifecycle states.
func Statuses() []Status {
	return []Status{
		StatusActive,
		StatusArchived,
		StatusPrivate,
		StatusDelete,
	}
}

// IsValid returns true if the Status is one of the defined constants.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses(), s)
}
