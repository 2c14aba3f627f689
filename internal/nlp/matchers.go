package nlp

import (
	"regexp"
	"strings"
)

// Matcher finds entity mentions in free text. The gazetteer implementations
// below are closed-world heuristics; the interface exists so they can be
// swapped for a real NER model without touching the extractor.
type Matcher interface {
	Match(text string) []string
}

// listMatcher matches case-insensitive substrings against a fixed term list.
// Backs both brand and location extraction.
type listMatcher struct {
	terms []string
}

// NewListMatcher builds a matcher over a fixed term list.
func NewListMatcher(terms []string) Matcher {
	return &listMatcher{terms: terms}
}

func (m *listMatcher) Match(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, term := range m.terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			out = append(out, term)
		}
	}
	return dedupe(out)
}

// personMatcher combines the Korean surname+given-name pattern with the
// capitalized-two-word English pattern.
type personMatcher struct {
	patterns []*regexp.Regexp
}

// NewPersonMatcher builds the default regex-based person matcher.
func NewPersonMatcher() Matcher {
	return &personMatcher{patterns: []*regexp.Regexp{koreanPersonPattern, englishPersonPattern}}
}

func (m *personMatcher) Match(text string) []string {
	var out []string
	for _, p := range m.patterns {
		out = append(out, p.FindAllString(text, -1)...)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
