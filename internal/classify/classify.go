// Package classify tags commit subjects as trivial or significant using
// fixed pattern sets compiled once per process.
package classify

import "regexp"

// Subjects matching any of these indicate cosmetic-only edits and are
// excluded from reports by default.
var trivialPatterns = []string{
	`\btypo\b`,
	`\bfix typo\b`,
	`\bformatting\b`,
	`\bwhitespace\b`,
	`\bminor\b`,
	`\bupdate link\b`,
	`\bbroken link\b`,
	`\bfix link\b`,
	`\bstyle\b`,
	`\bindentation\b`,
	`\bpunctuation\b`,
	`\bspelling\b`,
	`\bdash button\b`,
	`\bdashbutton\b`,
}

// Subjects matching any of these indicate noteworthy documentation changes.
var significantPatterns = []string{
	`\bnew feature\b`,
	`\badd\b.*\bsection\b`,
	`\bnew\b.*\bguide\b`,
	`\bupdate\b.*\bapi\b`,
	`\bdeprecate\b`,
	`\bannounce\b`,
	`\brelease\b`,
	`\bmajor\b`,
}

// Classifier matches commit subjects against the trivial and significant
// pattern sets. The two checks are independent; for filtering purposes the
// trivial check takes precedence.
type Classifier struct {
	trivial     []*regexp.Regexp
	significant []*regexp.Regexp
}

// New compiles the pattern sets. The built-in patterns are valid regular
// expressions, so compilation cannot fail.
func New() *Classifier {
	return &Classifier{
		trivial:     compileAll(trivialPatterns),
		significant: compileAll(significantPatterns),
	}
}

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// IsTrivial reports whether the subject describes a cosmetic-only change.
func (c *Classifier) IsTrivial(subject string) bool {
	return matchesAny(c.trivial, subject)
}

// IsSignificant reports whether the subject describes a noteworthy change.
func (c *Classifier) IsSignificant(subject string) bool {
	return matchesAny(c.significant, subject)
}

func matchesAny(patterns []*regexp.Regexp, subject string) bool {
	for _, re := range patterns {
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}
