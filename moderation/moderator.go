// Package moderation masks banned phrases in side-channel chat before they
// reach the ledger and the broadcast stream. Substantive debate turns are
// left untouched; the debaters' arguments are what gets evaluated.
package moderation

import (
	_ "embed"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

//go:embed banned.txt
var bannedFile string

// Moderator matches banned phrases case-insensitively with an Aho-Corasick
// automaton built once at startup. Safe for concurrent use after creation.
type Moderator struct {
	matcher *goahocorasick.Machine
	mask    rune
}

// NewModerator builds the automaton from the embedded list plus any extra
// words. Empty entries are skipped.
func NewModerator(extraWords []string, mask rune) (*Moderator, error) {
	var patterns [][]rune
	words := append(strings.Split(bannedFile, "\n"), extraWords...)
	for _, word := range words {
		word = strings.TrimSpace(strings.ToLower(word))
		if word == "" {
			continue
		}
		patterns = append(patterns, []rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, mask: mask}, nil
}

// Censor replaces every banned phrase occurrence with the mask rune and
// reports whether anything was masked.
func (m *Moderator) Censor(original string) (string, bool) {
	runes := []rune(original)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	spans := m.matcher.MultiPatternSearch(lowered, false)
	if len(spans) == 0 {
		return original, false
	}

	for _, span := range spans {
		for i := span.Pos; i < span.Pos+len(span.Word) && i < len(runes); i++ {
			runes[i] = m.mask
		}
	}
	return string(runes), true
}
