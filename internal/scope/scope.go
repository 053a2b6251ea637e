// Package scope decides whether free-form text is on-topic for the assistant.
// It is intentionally small and deterministic, engineered in the same spirit
// as a read-only index: a Matcher is immutable after construction and safe
// for concurrent use.
//
// Matching semantics are literal, case-folded substring containment against
// the full message text. There is no stemming and no word-boundary check, so
// a keyword can match inside an unrelated longer word. Word-boundary matching
// would need a new, explicit option.
package scope

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher holds the case-folded keyword list. A Matcher with no keywords
// treats every message as in scope (filtering disabled).
type Matcher struct {
	keywords []string
}

// NewMatcher builds a Matcher from the configured keyword list. Keywords are
// case-folded once here; blank entries are dropped. Order is preserved so the
// first configured keyword is also the first one tried.
func NewMatcher(keywords []string) *Matcher {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		folded = append(folded, cases.Fold().String(k))
	}
	return &Matcher{keywords: folded}
}

// Enabled reports whether the matcher carries any keywords.
func (m *Matcher) Enabled() bool { return len(m.keywords) > 0 }

// Keywords returns a copy of the folded keyword list.
func (m *Matcher) Keywords() []string {
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}

// InScope reports whether text contains at least one configured keyword,
// case-folded. With no keywords configured it always returns true.
//
// The input is folded exactly once per call; a cases.Caser is stateful, so a
// fresh one is used rather than sharing across goroutines.
func (m *Matcher) InScope(text string) bool {
	if len(m.keywords) == 0 {
		return true
	}
	folded := cases.Fold().String(text)
	for _, k := range m.keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}
