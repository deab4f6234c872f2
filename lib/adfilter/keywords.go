package adfilter

import (
	"fmt"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/forPelevin/gomoji"
)

// keywordMatcher finds configured ad keywords in a message. Exact (substring)
// matches are located with an Aho-Corasick automaton over the normalized text,
// keywords missed by the automaton are retried with the fuzzy similarity ratio
// to catch obfuscated variants. Immutable once built, swapped as a whole on reload.
type keywordMatcher struct {
	keywords  []string // normalized, original order preserved
	machine   *goahocorasick.Machine
	threshold float64
}

// newKeywordMatcher builds a matcher from the given keyword list. Empty or
// duplicate keywords are dropped, an empty list makes a matcher that never matches.
func newKeywordMatcher(keywords []string, threshold float64) (*keywordMatcher, error) {
	res := &keywordMatcher{threshold: threshold}

	seen := map[string]struct{}{}
	patterns := [][]rune{}
	for _, kw := range keywords {
		norm := normalizeText(kw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		res.keywords = append(res.keywords, norm)
		patterns = append(patterns, []rune(norm))
	}

	if len(patterns) == 0 {
		return res, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("failed to build keyword automaton: %w", err)
	}
	res.machine = m
	return res, nil
}

// match returns every keyword the text matches, in keyword-list order.
// Empty result means no match.
func (k *keywordMatcher) match(text string) []string {
	if k == nil || len(k.keywords) == 0 {
		return nil
	}

	norm := normalizeText(text)
	if norm == "" {
		return nil
	}

	hits := map[string]struct{}{}
	for _, term := range k.machine.MultiPatternSearch([]rune(norm), false) {
		hits[string(term.Word)] = struct{}{}
	}

	res := []string{}
	for _, kw := range k.keywords {
		if _, ok := hits[kw]; ok {
			res = append(res, kw)
			continue
		}
		if similarity(norm, kw) >= k.threshold {
			res = append(res, kw)
		}
	}
	return res
}

// normalizeText lowercases the input and drops control, format and invisible
// characters spammers use to break up keywords. Emojis are stripped as well,
// they never carry keyword content but do break substring matching.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range gomoji.RemoveEmojis(text) {
		if r == '\n' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if unicode.Is(unicode.Cc, r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		// zero-width and directional marks
		if (r >= 0x200B && r <= 0x200F) || (r >= 0x2060 && r <= 0x206F) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSpace(b.String())
}
