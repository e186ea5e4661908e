package filter

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// containsSubstring reports whether needle occurs in haystack. It is
// exercised through a single-pattern Aho-Corasick automaton rather than
// strings.Contains so that a rule's value is matched the same way
// regardless of how many snapshots the evaluator later checks it against —
// grounded on the teacher's pkg/implicit-matcher use of the same library
// for surface-form matching. Falls back to strings.Contains if automaton
// construction fails (e.g. a pathological empty-pattern edge case).
func containsSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	automaton, err := ahocorasick.NewBuilder().
		AddStrings([]string{needle}).
		SetMatchKind(ahocorasick.LeftmostLongest).
		Build()
	if err != nil {
		return strings.Contains(haystack, needle)
	}
	matches := automaton.FindAllOverlapping([]byte(haystack))
	return len(matches) > 0
}
