package urlmap

import "testing"

func newTestMapper() *Mapper {
	return New("https://developers.cloudflare.com", "src/content/docs", "src/content/changelog")
}

func TestDocURL(t *testing.T) {
	m := newTestMapper()

	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/content/docs/cache/foo/index.mdx", "https://developers.cloudflare.com/cache/foo/", true},
		{"src/content/docs/cache/bar.md", "https://developers.cloudflare.com/cache/bar/", true},
		{"src/content/docs/ssl/origin.html", "https://developers.cloudflare.com/ssl/origin/", true},
		{"src/content/docs/index.mdx", "https://developers.cloudflare.com/", true},
		{"src/content/changelog/cache/entry.mdx", "", false},
		{"README.md", "", false},
	}

	for _, tc := range cases {
		got, ok := m.DocURL(tc.path)
		if ok != tc.ok {
			t.Errorf("DocURL(%q) ok = %v, want %v", tc.path, ok, tc.ok)
			continue
		}
		if got != tc.want {
			t.Errorf("DocURL(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestChangelogURL(t *testing.T) {
	m := newTestMapper()

	cases := []struct {
		path string
		want string
		ok   bool
	}{
		// Lowercased, dots removed, category segment dropped.
		{"src/content/changelog/access/2026-01-19-Some.Entry.mdx", "https://developers.cloudflare.com/changelog/2026-01-19-someentry/", true},
		{"src/content/changelog/cache/2026-01-05-purge-update.md", "https://developers.cloudflare.com/changelog/2026-01-05-purge-update/", true},
		{"src/content/changelog/no-file-here", "", false},
		{"src/content/docs/cache/foo.md", "", false},
	}

	for _, tc := range cases {
		got, ok := m.ChangelogURL(tc.path)
		if ok != tc.ok {
			t.Errorf("ChangelogURL(%q) ok = %v, want %v", tc.path, ok, tc.ok)
			continue
		}
		if got != tc.want {
			t.Errorf("ChangelogURL(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestProductDir(t *testing.T) {
	m := newTestMapper()

	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/content/docs/cache/foo/index.mdx", "cache", true},
		{"src/content/docs/load-balancing/pools.md", "load-balancing", true},
		{"src/content/docs/orphan.md", "", false},
		{"src/assets/logo.svg", "", false},
	}

	for _, tc := range cases {
		got, ok := m.ProductDir(tc.path)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ProductDir(%q) = (%q, %v), want (%q, %v)", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNew_NormalizesSlashes(t *testing.T) {
	m := New("https://example.com/", "/docs/", "/changelog/")

	if got, ok := m.DocURL("docs/cache/foo.md"); !ok || got != "https://example.com/cache/foo/" {
		t.Errorf("DocURL with normalized roots = (%q, %v)", got, ok)
	}
}
