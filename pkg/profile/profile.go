// Package profile derives the public profile document from the manifest.
// Repositories are grouped by status and category into a fixed set of
// sections; the rendered document is regenerated wholesale on every run and
// never hand-edited.
package profile

import (
	"github.com/agentstation/gardener/pkg/manifest"
)

// Section titles, emitted in this order with empty sections omitted.
const (
	TitleActive     = "🚀 Active Projects"
	TitleReferences = "🛠️ Useful References"
	TitleArchived   = "🗄️ Archived Experiments"
)

// Entry is one repository line in a section.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Successor   string `json:"successor,omitempty"`
}

// Section is a titled ordered group of repositories.
type Section struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Aggregate groups manifest entries into profile sections. First match wins,
// so the groups partition the non-excluded repositories:
//
//  1. active repositories
//  2. archived work and experiments
//  3. everything else archived, plus private showcase repositories
//
// Remaining private entries and all delete entries are excluded. Manifest
// order is preserved within each section.
func Aggregate(specs []manifest.RepoSpec) []Section {
	var active, references, archived []Entry

	for _, spec := range specs {
		entry := Entry{
			Name:        spec.Name,
			Description: spec.Description,
			Successor:   spec.Successor,
		}

		switch {
		case spec.Status == manifest.StatusActive:
			active = append(active, entry)
		case spec.Status == manifest.StatusArchived && spec.Category.Experimental():
			archived = append(archived, entry)
		case spec.Status == manifest.StatusArchived:
			references = append(references, entry)
		case spec.Status == manifest.StatusPrivate && spec.Category == manifest.CategoryShowcase:
			references = append(references, entry)
		}
	}

	var sections []Section
	for _, s := range []Section{
		{Title: TitleActive, Entries: active},
		{Title: TitleReferences, Entries: references},
		{Title: TitleArchived, Entries: archived},
	} {
		if len(s.Entries) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}
