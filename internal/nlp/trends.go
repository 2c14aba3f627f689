package nlp

import (
	"sort"
	"time"

	"github.com/boramlab/vlens/internal/model"
)

// Competition-tier cutoffs on raw keyword frequency.
const (
	competitionLowMax    = 10
	competitionMediumMax = 20
)

// directionThreshold is the occurrences-per-day momentum beyond which a
// keyword reads as rising or declining.
const directionThreshold = 0.1

// VideoEntities pairs a video's metadata with its extraction result, the
// input unit of cross-video keyword trend analysis.
type VideoEntities struct {
	Meta       model.VideoMetadata
	Extraction model.EntityExtraction
}

// AnalyzeKeywordTrends aggregates keyword behavior across videos published
// within the window ending at now. Growth rate is the crude
// occurrences-per-day over the keyword's own first-to-last-seen span; the
// direction compares the window's later half against its earlier half, since
// a raw occurrence rate is always non-negative and carries no sign.
func AnalyzeKeywordTrends(videos []VideoEntities, window time.Duration, now time.Time) []model.KeywordTrend {
	cutoff := now.Add(-window)
	mid := now.Add(-window / 2)

	type agg struct {
		occurrences int
		videoIDs    map[string]struct{}
		firstSeen   time.Time
		lastSeen    time.Time
		earlyCount  int // occurrences in the window's first half
		lateCount   int // occurrences in the window's second half
		positive    int
		negative    int
	}
	byKeyword := make(map[string]*agg)

	for _, v := range videos {
		published := v.Meta.PublishedAt
		if published.Before(cutoff) || published.After(now) {
			continue
		}
		for _, kw := range v.Extraction.Keywords {
			a := byKeyword[kw.Term]
			if a == nil {
				a = &agg{videoIDs: make(map[string]struct{}), firstSeen: published, lastSeen: published}
				byKeyword[kw.Term] = a
			}
			a.occurrences += kw.Count
			a.videoIDs[v.Meta.VideoID] = struct{}{}
			if published.Before(a.firstSeen) {
				a.firstSeen = published
			}
			if published.After(a.lastSeen) {
				a.lastSeen = published
			}
			if published.Before(mid) {
				a.earlyCount += kw.Count
			} else {
				a.lateCount += kw.Count
			}
			switch v.Extraction.Sentiment {
			case model.SentimentPositive:
				a.positive++
			case model.SentimentNegative:
				a.negative++
			}
		}
	}

	halfDays := window.Hours() / 48
	if halfDays <= 0 {
		halfDays = 1
	}

	out := make([]model.KeywordTrend, 0, len(byKeyword))
	for term, a := range byKeyword {
		spanDays := a.lastSeen.Sub(a.firstSeen).Hours() / 24
		if spanDays < 1 {
			spanDays = 1
		}

		momentum := (float64(a.lateCount) - float64(a.earlyCount)) / halfDays
		direction := model.DirectionStable
		switch {
		case momentum > directionThreshold:
			direction = model.DirectionRising
		case momentum < -directionThreshold:
			direction = model.DirectionDeclining
		}

		sentiment := model.SentimentNeutral
		if a.positive > a.negative {
			sentiment = model.SentimentPositive
		} else if a.negative > a.positive {
			sentiment = model.SentimentNegative
		}

		out = append(out, model.KeywordTrend{
			Keyword:     term,
			Occurrences: a.occurrences,
			VideoCount:  len(a.videoIDs),
			GrowthRate:  float64(a.occurrences) / spanDays,
			Direction:   direction,
			Competition: competitionTier(a.occurrences),
			Sentiment:   sentiment,
			FirstSeen:   a.firstSeen,
			LastSeen:    a.lastSeen,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

func competitionTier(occurrences int) model.CompetitionTier {
	switch {
	case occurrences <= competitionLowMax:
		return model.CompetitionLow
	case occurrences <= competitionMediumMax:
		return model.CompetitionMedium
	default:
		return model.CompetitionHigh
	}
}
