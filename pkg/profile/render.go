package profile

import (
	"fmt"
	"io"
	"os"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/gardener/pkg/constants"
	"github.com/agentstation/gardener/pkg/errors"
)

// Render writes the sections as a markdown document. Repository names link to
// the owner's repositories on the platform.
func Render(w io.Writer, owner string, sections []Section) error {
	doc := md.NewMarkdown(w)
	for _, section := range sections {
		doc.H2(section.Title)

		items := make([]string, 0, len(section.Entries))
		for _, entry := range section.Entries {
			items = append(items, entryLine(owner, entry))
		}
		doc.BulletList(items...)
	}
	return doc.Build()
}

// entryLine renders one repository bullet: a link, the description, and a
// pointer to the successor when one exists.
func entryLine(owner string, entry Entry) string {
	var b strings.Builder
	b.WriteString(md.Link(entry.Name, repoURL(owner, entry.Name)))
	if entry.Description != "" {
		b.WriteString(" — ")
		b.WriteString(entry.Description)
	}
	if entry.Successor != "" {
		b.WriteString(" See ")
		b.WriteString(md.Link(entry.Successor, repoURL(owner, entry.Successor)))
		b.WriteString(" instead.")
	}
	return b.String()
}

func repoURL(owner, name string) string {
	return fmt.Sprintf("%s/%s/%s", constants.GitHubURL, owner, name)
}

// WriteFile renders the sections and overwrites path wholesale.
func WriteFile(path, owner string, sections []Section) error {
	var b strings.Builder
	if err := Render(&b, owner, sections); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
