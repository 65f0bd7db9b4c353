// Package urlmap converts repository-relative content paths into public
// documentation URLs.
package urlmap

import "strings"

// Mapper holds the site layout needed to build public URLs.
type Mapper struct {
	baseURL       string
	docsRoot      string
	changelogRoot string
}

// New builds a Mapper. Roots are repository-relative directories without
// leading or trailing slashes; baseURL has no trailing slash.
func New(baseURL, docsRoot, changelogRoot string) *Mapper {
	return &Mapper{
		baseURL:       strings.TrimRight(baseURL, "/"),
		docsRoot:      strings.Trim(docsRoot, "/"),
		changelogRoot: strings.Trim(changelogRoot, "/"),
	}
}

// ProductDir returns the product directory a documentation path belongs to:
// the first path segment under the docs root. Paths outside the docs root
// yield ok=false.
func (m *Mapper) ProductDir(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, m.docsRoot+"/")
	if !ok {
		return "", false
	}
	dir, _, found := strings.Cut(rest, "/")
	if !found || dir == "" {
		return "", false
	}
	return dir, true
}

// DocURL maps a documentation file path to its public URL: the docs root and
// a recognized extension are stripped, a trailing "index" segment collapses
// into its directory, and the result gains a trailing slash. Paths outside
// the docs root yield ok=false.
func (m *Mapper) DocURL(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, m.docsRoot+"/")
	if !ok || rest == "" {
		return "", false
	}

	rest = trimExtension(rest)
	if rest == "index" {
		rest = ""
	} else {
		rest = strings.TrimSuffix(rest, "/index")
	}

	if rest == "" {
		return m.baseURL + "/", true
	}
	return m.baseURL + "/" + rest + "/", true
}

// ChangelogURL maps a changelog entry path to its public URL. The category
// directory is not part of the published URL; the remaining slug is
// lowercased and loses any `.` characters, matching publish-time
// sanitization.
func (m *Mapper) ChangelogURL(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, m.changelogRoot+"/")
	if !ok {
		return "", false
	}

	_, slug, found := strings.Cut(rest, "/")
	if !found || slug == "" {
		return "", false
	}

	slug = strings.ToLower(trimExtension(slug))
	slug = strings.ReplaceAll(slug, ".", "")

	return m.baseURL + "/changelog/" + slug + "/", true
}

func trimExtension(path string) string {
	for _, ext := range []string{".mdx", ".md", ".html"} {
		if strings.HasSuffix(path, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}
