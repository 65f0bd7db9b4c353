package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
)

// fixtureRepo builds a throwaway git repository with commits at controlled
// committer dates.
type fixtureRepo struct {
	t   *testing.T
	dir string
	wt  *git.Worktree
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixtureRepo{t: t, dir: dir, wt: wt}
}

func (f *fixtureRepo) commit(when time.Time, subject string, files map[string]string) string {
	f.t.Helper()
	for path, content := range files {
		full := filepath.Join(f.dir, filepath.FromSlash(path))
		require.NoError(f.t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(f.t, os.WriteFile(full, []byte(content), 0o600))
		_, err := f.wt.Add(path)
		require.NoError(f.t, err)
	}
	sig := &object.Signature{Name: "Docs Author", Email: "docs@example.com", When: when}
	hash, err := f.wt.Commit(subject, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)
	return hash.String()
}

func januaryWindow(t *testing.T) config.DateRange {
	t.Helper()
	window, err := config.MonthWindow("2026-01", time.Now())
	require.NoError(t, err)
	return window
}

func jan(day, hour int) time.Time {
	return time.Date(2026, time.January, day, hour, 0, 0, 0, time.Local)
}

func TestOpen_MissingPath_ReturnsErrNotDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestOpen_PlainDirectory_ReturnsErrNotRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.ErrorIs(t, err, ErrNotRepository)
}

func TestOpen_ValidRepository(t *testing.T) {
	f := newFixtureRepo(t)

	repo, err := Open(f.dir)
	require.NoError(t, err)
	require.Equal(t, f.dir, repo.Path())
}

func TestCommitsInRange_FiltersByDateAndPrefix(t *testing.T) {
	f := newFixtureRepo(t)
	inRange := f.commit(jan(10, 9), "Document cache rules", map[string]string{
		"src/content/docs/cache/rules.md": "# Rules\n",
	})
	f.commit(jan(12, 9), "Document DNS records", map[string]string{
		"src/content/docs/dns/records.md": "# Records\n",
	})
	f.commit(time.Date(2026, time.February, 3, 9, 0, 0, 0, time.Local), "Cache update after window", map[string]string{
		"src/content/docs/cache/rules.md": "# Rules v2\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(januaryWindow(t), []string{"src/content/docs/cache/"})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	require.Equal(t, inRange, commits[0].Hash)
	require.Equal(t, "Document cache rules", commits[0].Subject)
	require.Equal(t, "Docs Author", commits[0].Author)
}

func TestCommitsInRange_CommitterDateOrder_NewestFirst(t *testing.T) {
	f := newFixtureRepo(t)
	older := f.commit(jan(5, 9), "Older cache change", map[string]string{
		"src/content/docs/cache/a.md": "a\n",
	})
	newer := f.commit(jan(20, 9), "Newer cache change", map[string]string{
		"src/content/docs/cache/b.md": "b\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(januaryWindow(t), []string{"src/content/docs/cache/"})
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, newer, commits[0].Hash)
	require.Equal(t, older, commits[1].Hash)
}

func TestCommitsInRange_NoMatches_EmptyResultNotError(t *testing.T) {
	f := newFixtureRepo(t)
	f.commit(jan(10, 9), "Unrelated change", map[string]string{
		"README.md": "readme\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(januaryWindow(t), []string{"src/content/docs/cache/"})
	require.NoError(t, err)
	require.Empty(t, commits)
}

func TestCommitsInRange_MultilineMessage_SubjectIsFirstLine(t *testing.T) {
	f := newFixtureRepo(t)
	f.commit(jan(10, 9), "Subject line\n\nLonger body text.\n", map[string]string{
		"src/content/docs/cache/a.md": "a\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(januaryWindow(t), []string{"src/content/docs/cache/"})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	require.Equal(t, "Subject line", commits[0].Subject)
}

func TestChangedFiles_RootCommit_ListsAllFiles(t *testing.T) {
	f := newFixtureRepo(t)
	root := f.commit(jan(3, 9), "Initial docs", map[string]string{
		"src/content/docs/cache/a.md": "a\n",
		"src/content/docs/dns/b.md":   "b\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	files, err := repo.ChangedFiles(root)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"src/content/docs/cache/a.md",
		"src/content/docs/dns/b.md",
	}, files)
}

func TestChangedFiles_LaterCommit_ListsOnlyTouchedFiles(t *testing.T) {
	f := newFixtureRepo(t)
	f.commit(jan(3, 9), "Initial docs", map[string]string{
		"src/content/docs/cache/a.md": "a\n",
		"src/content/docs/dns/b.md":   "b\n",
	})
	second := f.commit(jan(8, 9), "Touch cache only", map[string]string{
		"src/content/docs/cache/a.md": "a v2\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	files, err := repo.ChangedFiles(second)
	require.NoError(t, err)
	require.Equal(t, []string{"src/content/docs/cache/a.md"}, files)
}

func TestChangedFiles_UnknownHash_EmptyResultNotError(t *testing.T) {
	f := newFixtureRepo(t)
	f.commit(jan(3, 9), "Initial", map[string]string{"a.md": "a\n"})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	files, err := repo.ChangedFiles("deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestSectionHeadings_AddedAndRemovedLevelTwoHeadings(t *testing.T) {
	f := newFixtureRepo(t)
	const path = "src/content/docs/cache/purge.md"
	f.commit(jan(3, 9), "Initial purge doc", map[string]string{
		path: "---\ntitle: Purge\n---\n\n## Overview\n\n## Purge by URL\n\ntext\n",
	})
	second := f.commit(jan(9, 9), "Rework purge doc", map[string]string{
		path: "---\ntitle: Purge\n---\n\n## Overview\n\n## Purge by tag\n\ntext\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	sections := repo.SectionHeadings(second, path)
	// Added headings come first, then removed; unchanged ones are omitted.
	require.Equal(t, []string{"Purge by tag", "Purge by URL"}, sections)
}

func TestSectionHeadings_CapsAtThree(t *testing.T) {
	f := newFixtureRepo(t)
	const path = "src/content/docs/cache/big.md"
	hash := f.commit(jan(3, 9), "Big doc", map[string]string{
		path: "## One\n\n## Two\n\n## Three\n\n## Four\n\n## Five\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	sections := repo.SectionHeadings(hash, path)
	require.Equal(t, []string{"One", "Two", "Three"}, sections)
}

func TestSectionHeadings_FileAbsentFromCommit_ReturnsNil(t *testing.T) {
	f := newFixtureRepo(t)
	hash := f.commit(jan(3, 9), "Initial", map[string]string{"a.md": "## Heading\n"})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	require.Nil(t, repo.SectionHeadings(hash, "missing.md"))
}

func TestSectionHeadings_LevelOneAndThreeIgnored(t *testing.T) {
	f := newFixtureRepo(t)
	const path = "src/content/docs/cache/levels.md"
	hash := f.commit(jan(3, 9), "Levels", map[string]string{
		path: "# Top\n\n## Section\n\n### Nested\n",
	})

	repo, err := Open(f.dir)
	require.NoError(t, err)

	require.Equal(t, []string{"Section"}, repo.SectionHeadings(hash, path))
}
