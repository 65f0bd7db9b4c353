package history

import (
	"bytes"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/frontmatter"
)

// maxSections caps how many section titles are reported per file.
const maxSections = 3

// SectionHeadings returns up to three level-2 headings added or removed in
// the given file by the given commit, added headings first, in document
// order. Extraction is best-effort: any failure yields nil, which callers
// render as "no section detail".
func (r *Repo) SectionHeadings(hash, path string) []string {
	c, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil
	}

	after := levelTwoHeadings(r.fileContent(c, path))

	var before []string
	if c.NumParents() > 0 {
		if parent, err := c.Parent(0); err == nil {
			before = levelTwoHeadings(r.fileContent(parent, path))
		}
	}

	beforeSet := toSet(before)
	afterSet := toSet(after)

	var sections []string
	add := func(title string) {
		if len(sections) < maxSections {
			sections = append(sections, title)
		}
	}
	for _, title := range after {
		if _, unchanged := beforeSet[title]; !unchanged {
			add(title)
		}
	}
	for _, title := range before {
		if _, unchanged := afterSet[title]; !unchanged {
			add(title)
		}
	}

	return sections
}

// fileContent reads the file's blob at the given commit, nil if absent.
func (r *Repo) fileContent(c *object.Commit, path string) []byte {
	f, err := c.File(path)
	if err != nil {
		return nil
	}
	contents, err := f.Contents()
	if err != nil {
		return nil
	}
	return []byte(contents)
}

// levelTwoHeadings parses markdown content and collects its level-2 heading
// titles in document order, deduplicated. Frontmatter is stripped first so
// header fields never read as markdown constructs.
func levelTwoHeadings(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	body := content
	if _, stripped, had, err := frontmatter.Split(content); err == nil && had {
		body = stripped
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var headings []string
	seen := make(map[string]struct{})
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 2 {
			title := headingTitle(h, body)
			if title == "" {
				return gmast.WalkContinue, nil
			}
			if _, dup := seen[title]; !dup {
				seen[title] = struct{}{}
				headings = append(headings, title)
			}
		}
		return gmast.WalkContinue, nil
	})

	return headings
}

func toSet(titles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[t] = struct{}{}
	}
	return set
}

func headingTitle(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
