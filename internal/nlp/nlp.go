// Package nlp extracts keywords, entities, topics, and sentiment from video
// text fields with stopword-filtered tokenization and fixed lexicons. It is
// deliberately shallow: term frequency, substring gazetteers, and lexicon
// lookups: no corpus statistics, no learned models.
package nlp

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/boramlab/vlens/internal/model"
)

// DefaultTopKeywords caps the keyword list per video.
const DefaultTopKeywords = 10

// Extractor runs entity extraction over video text. Safe for concurrent use.
type Extractor struct {
	lex       Lexicon
	topN      int
	brands    Matcher
	people    Matcher
	locations Matcher
	now       func() time.Time
}

// NewExtractor creates an Extractor over the given lexicon. An empty lexicon
// (no stopwords, no topics) falls back to DefaultLexicon. topN <= 0 uses
// DefaultTopKeywords.
func NewExtractor(lex Lexicon, topN int) *Extractor {
	if lex.KoreanStopwords == nil && lex.EnglishStopwords == nil && lex.Topics == nil {
		lex = DefaultLexicon()
	}
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	return &Extractor{
		lex:       lex,
		topN:      topN,
		brands:    NewListMatcher(lex.Brands),
		people:    NewPersonMatcher(),
		locations: NewListMatcher(lex.Locations),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Extract analyzes one video's title, description, and tags.
func (e *Extractor) Extract(meta model.VideoMetadata) model.EntityExtraction {
	combined := strings.TrimSpace(meta.Title + " " + meta.Description + " " + strings.Join(meta.Tags, " "))

	lang := DetectLanguage(combined)
	tokens := e.tokenize(combined, lang)

	sentiment, confidence := e.scoreSentiment(combined)

	return model.EntityExtraction{
		VideoID:             meta.VideoID,
		Language:            lang,
		Keywords:            topKeywords(tokens, e.topN),
		Brands:              e.brands.Match(combined),
		People:              e.people.Match(combined),
		Locations:           e.locations.Match(combined),
		Topics:              e.matchTopics(combined),
		Sentiment:           sentiment,
		SentimentConfidence: confidence,
		ExtractedAt:         e.now(),
	}
}

// DetectLanguage classifies the dominant script by counting Hangul versus
// Latin letters. Above 70% Hangul is Korean, below 30% is English, anything
// between is mixed. Text with no letters at all defaults to mixed.
func DetectLanguage(text string) model.Language {
	var hangul, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case r < 128 && unicode.IsLetter(r):
			latin++
		}
	}
	total := hangul + latin
	if total == 0 {
		return model.LanguageMixed
	}
	ratio := float64(hangul) / float64(total)
	switch {
	case ratio > 0.7:
		return model.LanguageKorean
	case ratio < 0.3:
		return model.LanguageEnglish
	default:
		return model.LanguageMixed
	}
}

// tokenize splits on whitespace and punctuation, then applies the
// language-appropriate stopword filter. Mixed text runs both filters.
func (e *Extractor) tokenize(text string, lang model.Language) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var out []string
	for _, tok := range raw {
		if isHangulToken(tok) {
			if lang == model.LanguageEnglish {
				continue
			}
			if _, stop := e.lex.KoreanStopwords[tok]; stop {
				continue
			}
			out = append(out, tok)
			continue
		}

		lower := strings.ToLower(tok)
		// Single-character Latin tokens are noise.
		if len([]rune(lower)) < 2 {
			continue
		}
		if _, stop := e.lex.EnglishStopwords[lower]; stop {
			continue
		}
		out = append(out, lower)
	}
	return out
}

func isHangulToken(tok string) bool {
	for _, r := range tok {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// topKeywords ranks tokens by raw term frequency. Ties break alphabetically
// so the output is deterministic.
func topKeywords(tokens []string, n int) []model.Keyword {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	out := make([]model.Keyword, 0, len(counts))
	for term, count := range counts {
		out = append(out, model.Keyword{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// scoreSentiment counts lexicon hits on both sides; Korean hits weigh double.
// No hits at all is neutral at 0.5 rather than confidently neutral.
func (e *Extractor) scoreSentiment(text string) (model.Sentiment, float64) {
	lower := strings.ToLower(text)

	var pos, neg float64
	for _, w := range e.lex.PositiveKorean {
		pos += 2 * float64(strings.Count(lower, w))
	}
	for _, w := range e.lex.NegativeKorean {
		neg += 2 * float64(strings.Count(lower, w))
	}
	for _, w := range e.lex.PositiveEnglish {
		pos += float64(countWord(lower, w))
	}
	for _, w := range e.lex.NegativeEnglish {
		neg += float64(countWord(lower, w))
	}

	total := pos + neg
	if total == 0 {
		return model.SentimentNeutral, 0.5
	}
	if pos >= neg {
		return model.SentimentPositive, pos / total
	}
	return model.SentimentNegative, neg / total
}

// countWord counts whole-word occurrences so "bad" does not fire on "badge".
func countWord(text, word string) int {
	count := 0
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return count
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			count++
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (e *Extractor) matchTopics(text string) []string {
	var out []string
	for label, pattern := range e.lex.Topics {
		if pattern.MatchString(text) {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
