// Package corpus loads the optional grounding document injected into the
// completion prompt. The document is read exactly once at process start and
// the resulting Corpus is an immutable value: it has no setters and is safe
// to share across concurrent updates for the process lifetime.
package corpus

import (
	"fmt"
	"os"
	"strings"
)

// MaxBytes caps how much grounding text is accepted. The corpus travels
// verbatim inside every prompt, so an oversized document would inflate every
// completion call.
const MaxBytes = 512 << 10 // 512 KiB

// Corpus is a block of grounding text. The zero value is an empty corpus.
type Corpus struct {
	text string
}

// Empty reports whether no grounding text is present.
func (c Corpus) Empty() bool { return c.text == "" }

// Text returns the grounding text as loaded (surrounding whitespace trimmed).
func (c Corpus) Text() string { return c.text }

// Len returns the corpus size in bytes.
func (c Corpus) Len() int { return len(c.text) }

// New wraps an in-memory document as a Corpus. Used by tests and callers
// that already hold the text.
func New(text string) Corpus {
	return Corpus{text: strings.TrimSpace(text)}
}

// Load reads the grounding document at path. An empty path yields an empty
// Corpus and no error, matching the variant without grounding.
func Load(path string) (Corpus, error) {
	if strings.TrimSpace(path) == "" {
		return Corpus{}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("stat corpus %s: %w", path, err)
	}
	if info.Size() > MaxBytes {
		return Corpus{}, fmt.Errorf("corpus %s is %d bytes, exceeds limit of %d", path, info.Size(), MaxBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return New(string(b)), nil
}
