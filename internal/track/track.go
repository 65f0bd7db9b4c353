// Package track orchestrates one report run: commit listing, trivial
// filtering, product classification, changelog scanning, and report
// generation. The pipeline is synchronous; all state lives in values built
// for the run and discarded with it.
package track

import (
	"io"
	"log/slog"
	"path"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/changelog"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/classify"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/history"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/logfields"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/products"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/report"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/urlmap"
)

// Options configures one run.
type Options struct {
	RepoPath       string
	Window         config.DateRange
	Site           config.Site
	Categories     []string
	Products       []string
	IncludeTrivial bool
}

// Stats summarizes what a run found, for progress reporting.
type Stats struct {
	TrackedProducts []string
	CommitsFound    int
	CommitsKept     int
	ProductsChanged int
	ChangelogCount  int
}

// Run executes the whole pipeline and writes the report to w.
func Run(opts Options, w io.Writer) (Stats, error) {
	table := products.NewTable()
	for key, display := range opts.Site.Products {
		table.AddProduct(key, display)
	}
	for from, to := range opts.Site.Aliases {
		table.AddAlias(from, to)
	}

	selected, err := table.Select(opts.Categories, opts.Products)
	if err != nil {
		return Stats{}, err
	}
	selectedSet := make(map[string]struct{}, len(selected))
	for _, k := range selected {
		selectedSet[k] = struct{}{}
	}

	repo, err := history.Open(opts.RepoPath)
	if err != nil {
		return Stats{}, err
	}

	prefixes := make([]string, 0, len(selected))
	for _, key := range selected {
		prefixes = append(prefixes, path.Join(opts.Site.DocsRoot, key)+"/")
	}

	commits, err := repo.CommitsInRange(opts.Window, prefixes)
	if err != nil {
		return Stats{}, err
	}
	slog.Info("Commit history scanned", logfields.Commits(len(commits)), logfields.Month(opts.Window.MonthName()))

	classifier := classify.New()
	mapper := urlmap.New(opts.Site.BaseURL, opts.Site.DocsRoot, opts.Site.ChangelogRoot)

	byProduct := make(report.ProductCommits)
	seen := make(map[string]map[string]struct{})
	kept := 0

	for _, commit := range commits {
		if !opts.IncludeTrivial && classifier.IsTrivial(commit.Subject) {
			slog.Debug("Skipping trivial commit", logfields.Commit(commit.Hash))
			continue
		}

		files, err := repo.ChangedFiles(commit.Hash)
		if err != nil {
			continue
		}

		matched := false
		for _, file := range files {
			dir, ok := mapper.ProductDir(file)
			if !ok {
				continue
			}
			if _, tracked := selectedSet[dir]; !tracked {
				continue
			}
			display, ok := table.Resolve(dir)
			if !ok {
				continue
			}

			if seen[display] == nil {
				seen[display] = make(map[string]struct{})
			}
			if _, dup := seen[display][commit.Hash]; dup {
				continue
			}
			seen[display][commit.Hash] = struct{}{}
			byProduct[display] = append(byProduct[display], commit)
			matched = true
		}
		if matched {
			kept++
		}
	}

	scanner := changelog.NewScanner(opts.RepoPath, opts.Site.ChangelogRoot, table, mapper, selected)
	entries := scanner.Scan(opts.Window)
	entryCount := 0
	for _, list := range entries {
		entryCount += len(list)
	}
	slog.Info("Changelog scanned", logfields.Entries(entryCount))

	generator := report.New(repo, mapper, classifier)
	if err := generator.Write(w, opts.Window, byProduct, entries); err != nil {
		return Stats{}, err
	}

	return Stats{
		TrackedProducts: selected,
		CommitsFound:    len(commits),
		CommitsKept:     kept,
		ProductsChanged: len(byProduct),
		ChangelogCount:  entryCount,
	}, nil
}
