package gh_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gardener/internal/gh"
	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/platform"
)

// fakeRunner records command lines and replies from canned responses keyed by
// a joined command prefix.
type fakeRunner struct {
	commands  []string
	responses map[string]response
}

type response struct {
	out string
	err error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := name + " " + strings.Join(args, " ")
	f.commands = append(f.commands, cmd)
	for prefix, resp := range f.responses {
		if strings.HasPrefix(cmd, prefix) {
			return []byte(resp.out), resp.err
		}
	}
	return nil, errors.NewProcessError("run gh", cmd, "no fixture for command", errors.New("exit status 1"))
}

func ghError(stderr string, code int) error {
	return &errors.ProcessError{
		Operation: "run gh",
		Command:   "gh api",
		Output:    stderr,
		ExitCode:  code,
		Err:       errors.New("exit status 1"),
	}
}

func newClient(responses map[string]response) (*gh.Client, *fakeRunner) {
	runner := &fakeRunner{responses: responses}
	return gh.New(gh.WithRunner(runner)), runner
}

func TestCurrentUser(t *testing.T) {
	client, runner := newClient(map[string]response{
		"gh api user --jq .login": {out: "octocat\n"},
	})

	login, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
	assert.Equal(t, []string{"gh api user --jq .login"}, runner.commands)
}

func TestCurrentUserNotAuthenticated(t *testing.T) {
	client, _ := newClient(map[string]response{
		"gh api user": {out: "\n"},
	})

	_, err := client.CurrentUser(context.Background())
	assert.True(t, errors.IsNotAuthenticated(err))
}

func TestRepoState(t *testing.T) {
	client, _ := newClient(map[string]response{
		"gh api repos/octocat/old-tool": {
			out: `{"archived": true, "visibility": "public", "description": "Legacy CLI"}`,
		},
	})

	state, err := client.RepoState(context.Background(), "octocat", "old-tool")
	require.NoError(t, err)
	assert.True(t, state.Archived)
	assert.Equal(t, platform.VisibilityPublic, state.Visibility)
	assert.Equal(t, "Legacy CLI", state.Description)
}

func TestRepoStateError(t *testing.T) {
	client, _ := newClient(map[string]response{
		"gh api repos/octocat/gone": {
			err: ghError("gh: Not Found (HTTP 404)", 1),
		},
	})

	_, err := client.RepoState(context.Background(), "octocat", "gone")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	var platErr *errors.PlatformError
	require.True(t, errors.As(err, &platErr))
	assert.Equal(t, 404, platErr.StatusCode)
}

func TestFileContent(t *testing.T) {
	body := "# old-tool\nSome text.\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(body))
	// The API chunks base64 payloads with embedded newlines.
	chunked := encoded[:12] + `\n` + encoded[12:] + `\n`

	client, _ := newClient(map[string]response{
		"gh api repos/octocat/old-tool/contents/README.md": {
			out: `{"content": "` + chunked + `", "encoding": "base64", "sha": "abc123"}`,
		},
	})

	content, found, err := client.FileContent(context.Background(), "octocat", "old-tool", "README.md")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, body, content)
}

func TestFileContentMissing(t *testing.T) {
	client, _ := newClient(map[string]response{
		"gh api repos/octocat/old-tool/contents/README.md": {
			err: ghError("gh: Not Found (HTTP 404)", 1),
		},
	})

	content, found, err := client.FileContent(context.Background(), "octocat", "old-tool", "README.md")
	require.NoError(t, err, "a missing file is a normal outcome")
	assert.False(t, found)
	assert.Empty(t, content)
}

func TestSetArchived(t *testing.T) {
	client, runner := newClient(map[string]response{
		"gh repo archive octocat/old-tool --yes":   {},
		"gh repo unarchive octocat/old-tool --yes": {},
	})

	require.NoError(t, client.SetArchived(context.Background(), "octocat", "old-tool", true))
	require.NoError(t, client.SetArchived(context.Background(), "octocat", "old-tool", false))
	assert.Equal(t, []string{
		"gh repo archive octocat/old-tool --yes",
		"gh repo unarchive octocat/old-tool --yes",
	}, runner.commands)
}

func TestSetVisibilityAndDescription(t *testing.T) {
	client, runner := newClient(map[string]response{
		"gh repo edit octocat/secrets": {},
	})

	require.NoError(t, client.SetVisibility(context.Background(), "octocat", "secrets", platform.VisibilityPrivate))
	require.NoError(t, client.SetDescription(context.Background(), "octocat", "secrets", "Hidden"))

	assert.Equal(t, []string{
		"gh repo edit octocat/secrets --visibility private --accept-visibility-change-consequences",
		"gh repo edit octocat/secrets --description Hidden",
	}, runner.commands)
}

func TestCommitFileSendsSHAAfterFetch(t *testing.T) {
	body := "# old-tool\n"
	client, runner := newClient(map[string]response{
		"gh api repos/octocat/old-tool/contents/README.md": {
			out: `{"content": "` + base64.StdEncoding.EncodeToString([]byte(body)) + `", "encoding": "base64", "sha": "abc123"}`,
		},
		"gh api --method PUT repos/octocat/old-tool/contents/README.md": {
			out: `{"content": {"sha": "def456"}}`,
		},
	})

	_, _, err := client.FileContent(context.Background(), "octocat", "old-tool", "README.md")
	require.NoError(t, err)

	newBody := "# old-tool\n\nUpdated.\n"
	require.NoError(t, client.CommitFile(context.Background(),
		"octocat", "old-tool", "README.md", newBody, "docs: sync archive banner"))

	put := runner.commands[len(runner.commands)-1]
	assert.Contains(t, put, "--method PUT")
	assert.Contains(t, put, "message=docs: sync archive banner")
	assert.Contains(t, put, "sha=abc123")
	assert.Contains(t, put, "content="+base64.StdEncoding.EncodeToString([]byte(newBody)))
}

func TestCommitFileCreateOmitsSHA(t *testing.T) {
	client, runner := newClient(map[string]response{
		"gh api --method PUT repos/octocat/old-tool/contents/README.md": {
			out: `{"content": {"sha": "def456"}}`,
		},
	})

	require.NoError(t, client.CommitFile(context.Background(),
		"octocat", "old-tool", "README.md", "# new\n", "docs: sync archive banner"))
	assert.NotContains(t, runner.commands[0], "sha=")
}
