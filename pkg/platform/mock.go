package platform

import (
	"context"
	"strconv"
)

// Call records a single platform invocation made through the Mock.
type Call struct {
	Method string // Client method name
	Repo   string // owner/name when the call targets a repository
	Value  string // method-specific detail: path, visibility, description, or archived flag
}

// Mutating reports whether the recorded call changes remote state.
func (c Call) Mutating() bool {
	switch c.Method {
	case "SetArchived", "SetVisibility", "SetDescription", "CommitFile":
		return true
	}
	return false
}

// Mock provides a mock implementation of Client for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value. Every
// invocation is recorded so ordering and safety properties can be asserted.
//
// Example Usage:
//
//	mock := &platform.Mock{
//	    RepoStateFunc: func(ctx context.Context, owner, repo string) (*platform.RepoState, error) {
//	        return &platform.RepoState{Archived: true, Visibility: platform.VisibilityPublic}, nil
//	    },
//	}
//	r, _ := reconcile.New(mock)
//	// ... exercise r, then assert on mock.Calls()
type Mock struct {
	CurrentUserFunc    func(ctx context.Context) (string, error)
	RepoStateFunc      func(ctx context.Context, owner, repo string) (*RepoState, error)
	FileContentFunc    func(ctx context.Context, owner, repo, path string) (string, bool, error)
	SetArchivedFunc    func(ctx context.Context, owner, repo string, archived bool) error
	SetVisibilityFunc  func(ctx context.Context, owner, repo string, visibility Visibility) error
	SetDescriptionFunc func(ctx context.Context, owner, repo, description string) error
	CommitFileFunc     func(ctx context.Context, owner, repo, path, content, message string) error

	calls []Call
}

// CurrentUser returns the login using the mock function or "mock-user".
func (m *Mock) CurrentUser(ctx context.Context) (string, error) {
	m.record("CurrentUser", "", "")
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return "mock-user", nil
}

// RepoState returns state using the mock function or a public, unarchived
// repository with no description.
func (m *Mock) RepoState(ctx context.Context, owner, repo string) (*RepoState, error) {
	m.record("RepoState", owner+"/"+repo, "")
	if m.RepoStateFunc != nil {
		return m.RepoStateFunc(ctx, owner, repo)
	}
	return &RepoState{Visibility: VisibilityPublic}, nil
}

// FileContent returns content using the mock function or reports the file as
// missing.
func (m *Mock) FileContent(ctx context.Context, owner, repo, path string) (string, bool, error) {
	m.record("FileContent", owner+"/"+repo, path)
	if m.FileContentFunc != nil {
		return m.FileContentFunc(ctx, owner, repo, path)
	}
	return "", false, nil
}

// SetArchived records the call and delegates to the mock function if set.
func (m *Mock) SetArchived(ctx context.Context, owner, repo string, archived bool) error {
	m.record("SetArchived", owner+"/"+repo, strconv.FormatBool(archived))
	if m.SetArchivedFunc != nil {
		return m.SetArchivedFunc(ctx, owner, repo, archived)
	}
	return nil
}

// SetVisibility records the call and delegates to the mock function if set.
func (m *Mock) SetVisibility(ctx context.Context, owner, repo string, visibility Visibility) error {
	m.record("SetVisibility", owner+"/"+repo, visibility.String())
	if m.SetVisibilityFunc != nil {
		return m.SetVisibilityFunc(ctx, owner, repo, visibility)
	}
	return nil
}

// SetDescription records the call and delegates to the mock function if set.
func (m *Mock) SetDescription(ctx context.Context, owner, repo, description string) error {
	m.record("SetDescription", owner+"/"+repo, description)
	if m.SetDescriptionFunc != nil {
		return m.SetDescriptionFunc(ctx, owner, repo, description)
	}
	return nil
}

// CommitFile records the call and delegates to the mock function if set.
func (m *Mock) CommitFile(ctx context.Context, owner, repo, path, content, message string) error {
	m.record("CommitFile", owner+"/"+repo, path)
	if m.CommitFileFunc != nil {
		return m.CommitFileFunc(ctx, owner, repo, path, content, message)
	}
	return nil
}

func (m *Mock) record(method, repo, value string) {
	m.calls = append(m.calls, Call{Method: method, Repo: repo, Value: value})
}

// Calls returns a copy of every recorded call in invocation order.
func (m *Mock) Calls() []Call {
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the recorded calls targeting owner/repo.
func (m *Mock) CallsFor(repo string) []Call {
	var out []Call
	for _, c := range m.calls {
		if c.Repo == repo {
			out = append(out, c)
		}
	}
	return out
}

// MutatingCalls returns only the recorded calls that change remote state.
func (m *Mock) MutatingCalls() []Call {
	var out []Call
	for _, c := range m.calls {
		if c.Mutating() {
			out = append(out, c)
		}
	}
	return out
}

// MethodsFor returns the method names invoked against owner/repo in order.
func (m *Mock) MethodsFor(repo string) []string {
	var out []string
	for _, c := range m.calls {
		if c.Repo == repo {
			out = append(out, c.Method)
		}
	}
	return out
}

// Reset clears the recorded calls.
func (m *Mock) Reset() {
	m.calls = nil
}

// Ensure Mock implements Client at compile time.
var _ Client = (*Mock)(nil)
