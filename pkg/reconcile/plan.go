package reconcile

import (
	"strings"

	"github.com/agentstation/gardener/pkg/platform"
)

// StepKind identifies one kind of platform mutation in a plan.
type StepKind string

// The mutations a plan may contain, in the only order they may appear:
// unarchive first, then content and metadata edits, then the final archive.
// The platform refuses content edits while a repository is frozen.
const (
	// StepUnarchive unfreezes the repository so it can be edited.
	StepUnarchive StepKind = "unarchive"

	// StepSetDescription replaces the repository description.
	StepSetDescription StepKind = "set-description"

	// StepSetVisibility changes the repository visibility.
	StepSetVisibility StepKind = "set-visibility"

	// StepCommitReadme commits the README with the banner inserted, updated,
	// or stripped.
	StepCommitReadme StepKind = "commit-readme"

	// StepArchive freezes the repository again, always last.
	StepArchive StepKind = "archive"
)

// Step is one planned platform mutation. Old and New carry human-readable
// values for dry-run display; the unexported payload fields carry what apply
// actually sends.
type Step struct {
	Kind StepKind `json:"kind"`
	Old  string   `json:"old,omitempty"`
	New  string   `json:"new,omitempty"`

	body       string              // full README body for StepCommitReadme
	visibility platform.Visibility // target for StepSetVisibility
	archived   bool                // target flag for StepUnarchive/StepArchive
}

// String renders the step for logs and plain output.
func (s Step) String() string {
	var b strings.Builder
	b.WriteString(string(s.Kind))
	if s.Old != "" || s.New != "" {
		b.WriteString(": ")
		if s.Old != "" {
			b.WriteString(s.Old)
			b.WriteString(" -> ")
		}
		b.WriteString(s.New)
	}
	return b.String()
}

// Plan is the ordered step sequence for one repository. An empty plan means
// remote state already matches the spec.
type Plan []Step

// Empty returns true when no mutation is needed.
func (p Plan) Empty() bool {
	return len(p) == 0
}

// Kinds returns the step kinds in plan order.
func (p Plan) Kinds() []StepKind {
	kinds := make([]StepKind, len(p))
	for i, s := range p {
		kinds[i] = s.Kind
	}
	return kinds
}
