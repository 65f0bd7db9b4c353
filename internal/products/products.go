// Package products holds the classification tables that map documentation
// directories to product display names, group products into report
// categories, and translate changelog directory names to documentation
// directory names.
package products

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tracked maps a documentation content directory to its product display name.
var tracked = map[string]string{
	"analytics":                       "Analytics",
	"automatic-platform-optimization": "Automatic Platform Optimization",
	"cache":                           "Cache",
	"cloudflare-for-platforms":        "Cloudflare for SaaS",
	"cloudflare-one":                  "Cloudflare One",
	"ddos-protection":                 "DDoS Protection",
	"dns":                             "DNS",
	"health-checks":                   "Health Checks",
	"load-balancing":                  "Load Balancing",
	"logs":                            "Logs",
	"notifications":                   "Notifications",
	"pages":                           "Pages",
	"rules":                           "Rules",
	"smart-shield":                    "Smart Shield",
	"spectrum":                        "Spectrum",
	"speed":                           "Speed",
	"ssl":                             "SSL/TLS",
	"support":                         "Support",
	"terraform":                       "Terraform",
	"version-management":              "Version Management",
	"waf":                             "WAF",
	"workers":                         "Workers",
}

// categories groups product keys for scoped report runs. The set of category
// names is closed; unknown names are a configuration error.
var categories = map[string][]string{
	"performance": {
		"automatic-platform-optimization",
		"cache",
		"health-checks",
		"load-balancing",
		"smart-shield",
		"speed",
		"version-management",
	},
	"security": {"cloudflare-one", "ddos-protection", "ssl", "waf"},
	"network":  {"dns", "spectrum"},
	"platform": {"cloudflare-for-platforms", "pages", "rules", "workers"},
	"data":     {"analytics", "logs"},
}

// common products are included in every category-scoped run.
var common = []string{"notifications", "support", "terraform"}

// changelogAliases translates changelog directory names to documentation
// directory names before the direct table is consulted. The alias applies to
// product classification only, never to URL construction.
var changelogAliases = map[string]string{
	"access":                "cloudflare-one",
	"dns-records":           "dns",
	"gateway":               "cloudflare-one",
	"pages-functions":       "pages",
	"warp":                  "cloudflare-one",
	"workers-for-platforms": "cloudflare-for-platforms",
}

var titleCaser = cases.Title(language.English)

// Table is the classification lookup in effect for one run. It starts from
// the static tables and may be extended from site configuration; it is never
// mutated after selection.
type Table struct {
	direct  map[string]string
	aliases map[string]string
}

// NewTable builds a Table from the built-in classification tables.
func NewTable() *Table {
	t := &Table{
		direct:  make(map[string]string, len(tracked)),
		aliases: make(map[string]string, len(changelogAliases)),
	}
	for k, v := range tracked {
		t.direct[k] = v
	}
	for k, v := range changelogAliases {
		t.aliases[k] = v
	}
	return t
}

// AddProduct registers an additional product directory. An empty display name
// is derived from the directory key ("magic-transit" -> "Magic Transit").
func (t *Table) AddProduct(key, display string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if display == "" {
		display = titleCaser.String(strings.ReplaceAll(key, "-", " "))
	}
	t.direct[key] = display
}

// AddAlias registers an additional changelog-directory alias.
func (t *Table) AddAlias(from, to string) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return
	}
	t.aliases[from] = to
}

// Resolve returns the display name for a documentation directory.
// Untracked directories resolve to ok=false, never to a default name.
func (t *Table) Resolve(dir string) (string, bool) {
	display, ok := t.direct[dir]
	return display, ok
}

// ResolveChangelogDir resolves a changelog directory through the alias table
// first, then the direct table. It returns both the documentation directory
// key and the display name.
func (t *Table) ResolveChangelogDir(dir string) (key, display string, ok bool) {
	key = dir
	if aliased, found := t.aliases[dir]; found {
		key = aliased
	}
	display, ok = t.direct[key]
	if !ok {
		return "", "", false
	}
	return key, display, true
}

// Keys returns all tracked product keys in lexical order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.direct))
	for k := range t.direct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CategoryNames returns the closed set of selectable category names in
// lexical order.
func CategoryNames() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves the product keys to track for a run.
//
// An explicit key list takes precedence over category selection: keys present
// in the table are kept (in lexical order), absent keys are dropped silently.
// Category selection unions the named categories with the common set; an
// unknown category name is an error. With neither given, every tracked
// product is selected.
func (t *Table) Select(categoryNames, keys []string) ([]string, error) {
	if len(keys) > 0 {
		selected := make([]string, 0, len(keys))
		seen := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			if _, tracked := t.direct[k]; !tracked {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			selected = append(selected, k)
		}
		sort.Strings(selected)
		return selected, nil
	}

	if len(categoryNames) == 0 {
		return t.Keys(), nil
	}

	seen := make(map[string]struct{})
	for _, name := range categoryNames {
		members, ok := categories[name]
		if !ok {
			return nil, fmt.Errorf("unknown category %q (known: %s)", name, strings.Join(CategoryNames(), ", "))
		}
		for _, k := range members {
			seen[k] = struct{}{}
		}
	}
	for _, k := range common {
		seen[k] = struct{}{}
	}

	selected := make([]string, 0, len(seen))
	for k := range seen {
		if _, tracked := t.direct[k]; tracked {
			selected = append(selected, k)
		}
	}
	sort.Strings(selected)
	return selected, nil
}
