package search

import (
	"strings"

	"ihsearch/internal/models"
)

// Criteria holds the residual filters of a combined search. Empty fields match everything.
type Criteria struct {
	Name     string
	Location string
	Gender   string
	Platform string
}

func Matches(inf *models.Influencer, c Criteria) bool {
	if c.Name != "" && !strings.Contains(strings.ToLower(inf.Name), strings.ToLower(c.Name)) {
		return false
	}
	if c.Location != "" && inf.Location != c.Location {
		return false
	}
	if c.Gender != "" && (inf.Gender == "" || !strings.EqualFold(string(inf.Gender), c.Gender)) {
		return false
	}
	if c.Platform != "" && !hasPlatform(inf, c.Platform) {
		return false
	}
	return true
}

func hasPlatform(inf *models.Influencer, platform string) bool {
	for _, p := range inf.Platforms {
		if p.Platform != "" && strings.EqualFold(string(p.Platform), platform) {
			return true
		}
	}
	return false
}

// Filter keeps the influencers matching c, preserving order.
func Filter(influencers []*models.Influencer, c Criteria) []*models.Influencer {
	out := make([]*models.Influencer, 0, len(influencers))
	for _, inf := range influencers {
		if Matches(inf, c) {
			out = append(out, inf)
		}
	}
	return out
}
