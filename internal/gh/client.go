// Package gh implements the platform capability on top of the GitHub CLI.
// Every operation shells out to gh, so authentication, hosts, and retries
// stay the gh binary's concern; this package only builds argument lists and
// decodes JSON responses.
//
// The client is not safe for concurrent use. Reconciliation is sequential by
// design, so no operation here ever runs in parallel.
package gh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/gardener/pkg/errors"
	"github.com/agentstation/gardener/pkg/platform"
)

// DefaultBinary is the gh executable looked up on PATH.
const DefaultBinary = "gh"

// httpStatusRE pulls the status code out of gh's error output, e.g.
// "gh: Not Found (HTTP 404)".
var httpStatusRE = regexp.MustCompile(`\(HTTP (\d{3})\)`)

// Client is the gh-CLI-backed platform.Client.
type Client struct {
	binary string
	runner Runner

	// shas remembers the blob SHA of each file fetched via FileContent, keyed
	// by owner/repo/path. The contents API requires the prior SHA to update a
	// file in place.
	shas map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the gh executable path.
func WithBinary(path string) Option {
	return func(c *Client) {
		c.binary = path
	}
}

// WithRunner overrides the command runner. Tests use this to feed fixture
// output instead of executing gh.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// New creates a gh-backed platform client.
func New(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		runner: execRunner{},
		shas:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUser returns the login of the authenticated gh user.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.binary, "api", "user", "--jq", ".login")
	if err != nil {
		return "", c.wrap("get current user", "", err)
	}
	login := strings.TrimSpace(string(out))
	if login == "" {
		return "", errors.ErrNotAuthenticated
	}
	return login, nil
}

// repoResponse is the subset of the repository API response the reconciler
// needs.
type repoResponse struct {
	Archived    bool   `json:"archived"`
	Visibility  string `json:"visibility"`
	Description string `json:"description"`
}

// RepoState fetches the repository's archive flag, visibility, and
// description.
func (c *Client) RepoState(ctx context.Context, owner, repo string) (*platform.RepoState, error) {
	out, err := c.runner.Run(ctx, c.binary, "api", fmt.Sprintf("repos/%s/%s", owner, repo))
	if err != nil {
		return nil, c.wrap("get repository", owner+"/"+repo, err)
	}

	var resp repoResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, errors.WrapParse("json", "repository response", err)
	}
	return &platform.RepoState{
		Archived:    resp.Archived,
		Visibility:  platform.Visibility(resp.Visibility),
		Description: resp.Description,
	}, nil
}

// contentsResponse is the contents API response for a single file.
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

// FileContent fetches a file from the default branch via the contents API.
// A 404 means the file does not exist and is reported as found=false with a
// nil error.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, bool, error) {
	out, err := c.runner.Run(ctx, c.binary, "api",
		fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, path))
	if err != nil {
		wrapped := c.wrap("get file", owner+"/"+repo, err)
		if errors.IsNotFound(wrapped) {
			return "", false, nil
		}
		return "", false, wrapped
	}

	var resp contentsResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", false, errors.WrapParse("json", "contents response", err)
	}
	if resp.Encoding != "base64" {
		return "", false, errors.NewParseError("base64", path,
			fmt.Sprintf("unexpected contents encoding %q", resp.Encoding), nil)
	}

	// The API wraps base64 payloads in newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return "", false, errors.WrapParse("base64", path, err)
	}

	c.shas[c.shaKey(owner, repo, path)] = resp.SHA
	return string(decoded), true, nil
}

// SetArchived freezes or unfreezes the repository.
func (c *Client) SetArchived(ctx context.Context, owner, repo string, archived bool) error {
	verb := "archive"
	if !archived {
		verb = "unarchive"
	}
	_, err := c.runner.Run(ctx, c.binary, "repo", verb, owner+"/"+repo, "--yes")
	if err != nil {
		return c.wrap(verb+" repository", owner+"/"+repo, err)
	}
	return nil
}

// SetVisibility changes the repository's visibility.
func (c *Client) SetVisibility(ctx context.Context, owner, repo string, visibility platform.Visibility) error {
	_, err := c.runner.Run(ctx, c.binary, "repo", "edit", owner+"/"+repo,
		"--visibility", visibility.String(),
		"--accept-visibility-change-consequences")
	if err != nil {
		return c.wrap("set visibility", owner+"/"+repo, err)
	}
	return nil
}

// SetDescription replaces the repository's description.
func (c *Client) SetDescription(ctx context.Context, owner, repo, description string) error {
	_, err := c.runner.Run(ctx, c.binary, "repo", "edit", owner+"/"+repo,
		"--description", description)
	if err != nil {
		return c.wrap("set description", owner+"/"+repo, err)
	}
	return nil
}

// commitResponse is the subset of the contents API PUT response we keep.
type commitResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// CommitFile writes content to path on the default branch as a single
// commit. When the file was previously fetched, its blob SHA is sent so the
// API updates it in place; otherwise the file is created.
func (c *Client) CommitFile(ctx context.Context, owner, repo, path, content, message string) error {
	args := []string{
		"api", "--method", "PUT",
		fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, path),
		"-f", "message=" + message,
		"-f", "content=" + base64.StdEncoding.EncodeToString([]byte(content)),
	}
	if sha, ok := c.shas[c.shaKey(owner, repo, path)]; ok && sha != "" {
		args = append(args, "-f", "sha="+sha)
	}

	out, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return c.wrap("commit file", owner+"/"+repo, err)
	}

	// Remember the new blob SHA in case the same run writes the file again.
	var resp commitResponse
	if err := json.Unmarshal(out, &resp); err == nil && resp.Content.SHA != "" {
		c.shas[c.shaKey(owner, repo, path)] = resp.Content.SHA
	}
	return nil
}

func (c *Client) shaKey(owner, repo, path string) string {
	return owner + "/" + repo + "/" + path
}

// wrap converts a runner failure into a PlatformError, recovering the HTTP
// status from gh's stderr when one is present.
func (c *Client) wrap(operation, repo string, err error) error {
	status := 0
	message := err.Error()

	var procErr *errors.ProcessError
	if errors.As(err, &procErr) && procErr.Output != "" {
		message = procErr.Output
		if m := httpStatusRE.FindStringSubmatch(procErr.Output); m != nil {
			fmt.Sscanf(m[1], "%d", &status)
		}
	}

	return &errors.PlatformError{
		Operation:  operation,
		Repo:       repo,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}

// Ensure Client implements platform.Client at compile time.
var _ platform.Client = (*Client)(nil)
