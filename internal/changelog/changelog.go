// Package changelog collects newly published changelog entries from the
// repository's changelog tree.
package changelog

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/frontmatter"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/logfields"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/products"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/urlmap"
)

// Entry is one published changelog item.
type Entry struct {
	Title string
	URL   string
	Date  string // YYYY-MM-DD, lexically sortable
	Path  string // repository-relative source file
}

// Scanner walks the changelog tree and classifies entries by product.
type Scanner struct {
	repoPath string
	relRoot  string
	table    *products.Table
	mapper   *urlmap.Mapper
	selected map[string]struct{}
}

// NewScanner builds a Scanner over the changelog root inside repoPath.
// Only entries whose directory resolves to a product in the selected key
// set are collected.
func NewScanner(repoPath, changelogRoot string, table *products.Table, mapper *urlmap.Mapper, selectedKeys []string) *Scanner {
	selected := make(map[string]struct{}, len(selectedKeys))
	for _, k := range selectedKeys {
		selected[k] = struct{}{}
	}
	return &Scanner{
		repoPath: repoPath,
		relRoot:  strings.Trim(changelogRoot, "/"),
		table:    table,
		mapper:   mapper,
		selected: selected,
	}
}

// Scan collects entries whose frontmatter date falls within the window,
// keyed by product display name, each list sorted by date descending.
// A missing changelog tree yields an empty result.
func (s *Scanner) Scan(window config.DateRange) map[string][]Entry {
	byProduct := make(map[string][]Entry)

	root := filepath.Join(s.repoPath, filepath.FromSlash(s.relRoot))
	dirs, err := os.ReadDir(root)
	if err != nil {
		slog.Debug("Changelog tree not readable", logfields.Path(root), logfields.Error(err))
		return byProduct
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		key, display, ok := s.table.ResolveChangelogDir(dir.Name())
		if !ok {
			slog.Debug("Skipping unmapped changelog directory", logfields.Path(dir.Name()))
			continue
		}
		if _, tracked := s.selected[key]; !tracked {
			continue
		}

		files, err := os.ReadDir(filepath.Join(root, dir.Name()))
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() || !isEntryFile(file.Name()) {
				continue
			}

			fullPath := filepath.Join(root, dir.Name(), file.Name())
			header, ok := frontmatter.ReadHeader(fullPath)
			if !ok || header.Date == "" {
				continue
			}
			if !window.ContainsDate(header.Date) {
				continue
			}

			relPath := path.Join(s.relRoot, dir.Name(), file.Name())
			url, ok := s.mapper.ChangelogURL(relPath)
			if !ok {
				continue
			}

			byProduct[display] = append(byProduct[display], Entry{
				Title: header.Title,
				URL:   url,
				Date:  header.Date,
				Path:  relPath,
			})
		}
	}

	for _, entries := range byProduct {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date > entries[j].Date
		})
	}

	return byProduct
}

func isEntryFile(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".mdx")
}
