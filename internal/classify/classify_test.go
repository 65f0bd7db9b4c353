package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTrivial_MatchesCaseInsensitively(t *testing.T) {
	c := New()

	trivial := []string{
		"Fix typo in cache docs",
		"FORMATTING cleanup",
		"minor wording change",
		"fix broken link to API reference",
		"Spelling fixes",
	}
	for _, subject := range trivial {
		require.True(t, c.IsTrivial(subject), "subject %q should be trivial", subject)
	}
}

func TestIsTrivial_DoesNotMatchSubstrings(t *testing.T) {
	c := New()

	// \b anchors: "styled" must not match the "style" pattern.
	require.False(t, c.IsTrivial("Add styled component examples"))
	require.False(t, c.IsTrivial("Document the minorities endpoint"))
}

func TestIsSignificant_MatchesKnownPatterns(t *testing.T) {
	c := New()

	significant := []string{
		"Announce new caching tier",
		"Release notes for version 2",
		"Add troubleshooting section",
		"Deprecate legacy purge endpoint",
		"update the rulesets API examples",
	}
	for _, subject := range significant {
		require.True(t, c.IsSignificant(subject), "subject %q should be significant", subject)
	}

	require.False(t, c.IsSignificant("Reword introduction paragraph"))
}

func TestClassification_IndependentChecks(t *testing.T) {
	c := New()

	// A subject can match both sets; the checks stay independent booleans
	// and the caller applies trivial precedence when filtering.
	subject := "Minor release announcement"
	require.True(t, c.IsTrivial(subject))
	require.True(t, c.IsSignificant(subject))
}
