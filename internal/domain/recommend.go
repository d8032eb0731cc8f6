package domain

import (
	"math"
	"slices"
	"strings"
)

const (
	// Scoring weights
	ScoreSamePeriod = 10
	ScoreRegion     = 5

	// Distance buckets (haversine, km)
	ScoreWithin500km  = 8
	ScoreWithin1000km = 5
	ScoreWithin2000km = 2

	// MaxRecommendations caps the ranked list.
	MaxRecommendations = 3

	earthRadiusKm = 6371.0
)

var (
	greekLocationMarkers  = []string{"greece"}
	greekPeriodMarkers    = []string{"greek"}
	italianLocationMarker = []string{"italy", "rome"}
)

// Recommendation is a catalog entry with its similarity score.
type Recommendation struct {
	Statue *Statue `json:"statue"`
	Score  int     `json:"score"`
}

// Distance returns the great-circle distance in km between two points.
func Distance(a, b Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ScoreCandidate scores how related candidate is to current.
// Missing data contributes nothing.
func ScoreCandidate(current, candidate *Statue) int {
	if current == nil || candidate == nil {
		return 0
	}

	score := 0

	if candidate.Period == current.Period {
		score += ScoreSamePeriod
	}

	if current.FoundCoordinates != nil && candidate.FoundCoordinates != nil {
		score += distanceBonus(Distance(*current.FoundCoordinates, *candidate.FoundCoordinates))
	}

	if isGreek(current) && isGreek(candidate) {
		score += ScoreRegion
	}

	if isItalian(current) && isItalian(candidate) {
		score += ScoreRegion
	}

	return score
}

func distanceBonus(km float64) int {
	switch {
	case km < 500:
		return ScoreWithin500km
	case km < 1000:
		return ScoreWithin1000km
	case km < 2000:
		return ScoreWithin2000km
	default:
		return 0
	}
}

func isGreek(s *Statue) bool {
	return containsAny(s.FoundLocation, greekLocationMarkers) ||
		containsAny(s.Period, greekPeriodMarkers)
}

func isItalian(s *Statue) bool {
	return containsAny(s.FoundLocation, italianLocationMarker)
}

func containsAny(text string, markers []string) bool {
	text = strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// RankRecommendations scores every other statue, drops zero scores and
// sorts descending. Ties keep catalog order.
func RankRecommendations(current *Statue, catalog []*Statue) []*Recommendation {
	if current == nil {
		return nil
	}

	ranked := make([]*Recommendation, 0, len(catalog))
	for _, candidate := range catalog {
		if candidate == nil || candidate.ID == current.ID {
			continue
		}

		score := ScoreCandidate(current, candidate)
		if score <= 0 {
			continue
		}

		ranked = append(ranked, &Recommendation{Statue: candidate, Score: score})
	}

	slices.SortStableFunc(ranked, func(a, b *Recommendation) int {
		return b.Score - a.Score
	})

	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}
	return ranked
}

// Recommend returns up to three statues related to current.
func Recommend(current *Statue, catalog []*Statue) []*Statue {
	ranked := RankRecommendations(current, catalog)
	out := make([]*Statue, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Statue)
	}
	return out
}
