package reconcile

import "github.com/agentstation/utc"

// Option is a function that configures a Reconciler.
type Option func(*Reconciler) error

// WithOwner sets the account that owns the repositories. When unset, the
// owner is resolved from the authenticated platform user at run time.
func WithOwner(owner string) Option {
	return func(r *Reconciler) error {
		r.owner = owner
		return nil
	}
}

// WithDryRun configures whether mutating platform calls are suppressed.
// A dry run performs the same reads and produces the same plans as a real
// run, but executes nothing.
func WithDryRun(enabled bool) Option {
	return func(r *Reconciler) error {
		r.dryRun = enabled
		return nil
	}
}

// WithToday pins the date stamped on first-time archive banners. Tests use
// this for deterministic output; the default is the wall clock at run time.
func WithToday(today utc.Time) Option {
	return func(r *Reconciler) error {
		r.today = &today
		return nil
	}
}

// WithReadmePath overrides the in-repository path of the document carrying
// the archive banner.
func WithReadmePath(path string) Option {
	return func(r *Reconciler) error {
		r.readmePath = path
		return nil
	}
}
