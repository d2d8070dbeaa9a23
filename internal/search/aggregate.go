package search

import (
	"sort"
	"strings"

	"ihsearch/internal/models"
)

// Summary folds the per-platform metrics of one influencer.
type Summary struct {
	TotalFollowers int64
	TotalLikes     int64
	TotalPosts     int64
	TotalComments  int64
	TotalShares    int64
	TotalViews     int64
	EngagementRate float64
	Platforms      []models.Platform
}

// Summarize sums the counters and keeps the best engagement rate across platforms.
func Summarize(metrics []*models.Metrics) Summary {
	s := Summary{Platforms: []models.Platform{}}
	seen := make(map[models.Platform]struct{})
	for _, m := range metrics {
		s.TotalFollowers += m.TotalFollowers
		s.TotalLikes += m.TotalLikes
		s.TotalPosts += m.TotalPosts
		s.TotalComments += m.TotalComments
		s.TotalShares += m.TotalShares
		s.TotalViews += m.TotalViews
		if m.EngagementRate > s.EngagementRate {
			s.EngagementRate = m.EngagementRate
		}
		if m.Platform == "" {
			continue
		}
		if _, ok := seen[m.Platform]; !ok {
			seen[m.Platform] = struct{}{}
			s.Platforms = append(s.Platforms, m.Platform)
		}
	}
	sort.Slice(s.Platforms, func(i, j int) bool { return s.Platforms[i] < s.Platforms[j] })
	return s
}

type Social struct {
	Icon       string `json:"icon"`
	Platform   string `json:"platform"`
	Handle     string `json:"handle"`
	Value      string `json:"value"`
	Engagement string `json:"engagement"`
	Followers  string `json:"followers"`
	Likes      string `json:"likes"`
	Posts      int64  `json:"posts"`
}

const genericIcon = "generic"

func PlatformIcon(platform models.Platform) string {
	switch platform {
	case models.PlatformInstagram:
		return "/instagram.svg"
	case models.PlatformTikTok:
		return "/tiktok.svg"
	default:
		return genericIcon
	}
}

// Socials pairs each embedded profile with the metrics record of the same platform.
func Socials(inf *models.Influencer, metrics []*models.Metrics) []Social {
	byPlatform := make(map[models.Platform]*models.Metrics, len(metrics))
	for _, m := range metrics {
		byPlatform[m.Platform] = m
	}

	out := make([]Social, 0, len(inf.Platforms))
	for _, p := range inf.Platforms {
		s := Social{
			Icon:       PlatformIcon(models.Platform(strings.ToUpper(string(p.Platform)))),
			Platform:   string(p.Platform),
			Handle:     p.Handle,
			Value:      p.Handle,
			Engagement: Percent(0),
		}
		if m, ok := byPlatform[p.Platform]; ok {
			s.Engagement = Percent(m.EngagementRate)
			s.Followers = ShortNumber(m.TotalFollowers)
			s.Likes = ShortNumber(m.TotalLikes)
			s.Posts = m.TotalPosts
		}
		out = append(out, s)
	}
	return out
}

// Card is the presentation shape of an influencer in the combined search.
type Card struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Avatar         string            `json:"avatar"`
	Bio            string            `json:"bio"`
	Engagement     string            `json:"engagement"`
	Reach          string            `json:"reach"`
	TotalFollowers string            `json:"totalFollowers"`
	TotalLikes     string            `json:"totalLikes"`
	Posts          int64             `json:"posts"`
	Categories     []models.Category `json:"categories"`
	Platforms      []models.Platform `json:"platforms"`
	Socials        []Social          `json:"socials"`
	Tag            string            `json:"tag"`
	Gender         *models.Gender    `json:"gender"`
	RecentPosts    []any             `json:"recentPosts"`
	Conversions    int               `json:"conversions"`
	Progress       int               `json:"progress"`
}

func NewCard(inf *models.Influencer, metrics []*models.Metrics) Card {
	summary := Summarize(metrics)
	categories := inf.Categories()

	card := Card{
		ID:             inf.InfluencerID,
		Name:           inf.Name,
		Engagement:     Percent(summary.EngagementRate),
		Reach:          ShortNumber(summary.TotalFollowers),
		TotalFollowers: ShortNumber(summary.TotalFollowers),
		TotalLikes:     ShortNumber(summary.TotalLikes),
		Posts:          summary.TotalPosts,
		Categories:     categories,
		Platforms:      summary.Platforms,
		Socials:        Socials(inf, metrics),
		RecentPosts:    []any{},
	}
	if p, ok := inf.DefaultProfile(); ok {
		card.Avatar = p.ProfileImgURL
		card.Bio = p.Bio
	}
	if len(categories) > 0 {
		card.Tag = string(categories[0])
	}
	if inf.Gender != "" {
		g := inf.Gender
		card.Gender = &g
	}
	return card
}
