// Package report assembles the monthly summary text: documentation changes
// grouped by product, followed by newly published changelog entries.
package report

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/changelog"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/classify"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/history"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/urlmap"
)

// maxFileLinks caps the file bullets rendered per commit; the rest collapse
// into an overflow line.
const maxFileLinks = 3

// ProductCommits maps a product display name to its commits in discovery
// order, de-duplicated by hash.
type ProductCommits map[string][]history.Commit

// History is the slice of repository access the generator needs; tests
// substitute a fake.
type History interface {
	ChangedFiles(hash string) ([]string, error)
	SectionHeadings(hash, path string) []string
}

// Generator renders the report. Output is deterministic for a given input:
// products in lexical order, commits in discovery order, changelog entries
// date-descending.
type Generator struct {
	history    History
	mapper     *urlmap.Mapper
	classifier *classify.Classifier
}

// New builds a Generator.
func New(h History, mapper *urlmap.Mapper, classifier *classify.Classifier) *Generator {
	return &Generator{history: h, mapper: mapper, classifier: classifier}
}

// prNumberSuffix matches trailing pull-request references like " (#12345)".
var prNumberSuffix = regexp.MustCompile(`\s*\(#\d+\)\s*$`)

// CleanSubject removes PR-number noise from a commit subject.
func CleanSubject(subject string) string {
	return strings.TrimSpace(prNumberSuffix.ReplaceAllString(subject, ""))
}

// Write renders both report sections to w.
func (g *Generator) Write(w io.Writer, window config.DateRange, commits ProductCommits, entries map[string][]changelog.Entry) error {
	if err := g.writeDocChanges(w, window, commits); err != nil {
		return err
	}
	return g.writeChangelog(w, window, entries)
}

func (g *Generator) writeDocChanges(w io.Writer, window config.DateRange, commits ProductCommits) error {
	if _, err := fmt.Fprintf(w, "# Documentation Updates - %s\n", window.MonthName()); err != nil {
		return err
	}

	for _, product := range sortedKeys(commits) {
		for _, commit := range commits[product] {
			files, err := g.history.ChangedFiles(commit.Hash)
			if err != nil {
				continue
			}

			docFiles := make([]string, 0, len(files))
			for _, f := range files {
				if _, ok := g.mapper.DocURL(f); ok {
					docFiles = append(docFiles, f)
				}
			}
			if len(docFiles) == 0 {
				continue
			}

			subject := CleanSubject(commit.Subject)
			marker := ""
			if g.classifier.IsSignificant(commit.Subject) && !g.classifier.IsTrivial(commit.Subject) {
				marker = " [significant]"
			}
			if _, err := fmt.Fprintf(w, "\nUpdate to the %s documentation: %s%s\n", product, subject, marker); err != nil {
				return err
			}

			shown := docFiles
			if len(shown) > maxFileLinks {
				shown = shown[:maxFileLinks]
			}
			for _, f := range shown {
				url, _ := g.mapper.DocURL(f)
				if sections := g.history.SectionHeadings(commit.Hash, f); len(sections) > 0 {
					fmt.Fprintf(w, "   - %s - Updated: %s\n", url, strings.Join(sections, ", "))
				} else {
					fmt.Fprintf(w, "   - %s\n", url)
				}
			}
			if extra := len(docFiles) - maxFileLinks; extra > 0 {
				fmt.Fprintf(w, "   - ... and %d more files\n", extra)
			}
		}
	}

	return nil
}

func (g *Generator) writeChangelog(w io.Writer, window config.DateRange, entries map[string][]changelog.Entry) error {
	if _, err := fmt.Fprintf(w, "\n\n# New Changelog Entries - %s\n", window.MonthName()); err != nil {
		return err
	}

	total := 0
	for _, list := range entries {
		total += len(list)
	}
	if total == 0 {
		_, err := fmt.Fprintln(w, "\nNo changelog entries found for this period.")
		return err
	}

	for _, product := range sortedKeys(entries) {
		for _, entry := range entries[product] {
			if _, err := fmt.Fprintf(w, "\nNew changelog entry for %s: %s\n", product, entry.Title); err != nil {
				return err
			}
			fmt.Fprintf(w, "   - %s\n", entry.URL)
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
