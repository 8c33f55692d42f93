package banner

import "github.com/agentstation/utc"

// DateSource identifies which resolution rule produced an archive date.
type DateSource string

// Resolution branches, reported per repository in dry-run output.
const (
	// DateOverridden means an explicit manifest date won.
	DateOverridden DateSource = "overridden"

	// DatePreserved means the date already embedded in the remote document
	// was kept verbatim.
	DatePreserved DateSource = "preserved"

	// DateNew means no prior date existed and the run's today was stamped.
	DateNew DateSource = "new"
)

// ResolveDate picks the date to stamp on an archive notice. An explicit
// manifest date wins unconditionally; otherwise a date observed in an
// existing notice is preserved verbatim, so repeat runs never roll an
// archive date forward; otherwise today is used. Pure and total.
func ResolveDate(explicit, observed *utc.Time, today utc.Time) (utc.Time, DateSource) {
	switch {
	case explicit != nil:
		return *explicit, DateOverridden
	case observed != nil:
		return *observed, DatePreserved
	default:
		return today, DateNew
	}
}
