package models

// Metrics holds the counters of one influencer on one platform.
type Metrics struct {
	ID                string    `json:"id" dynamodbav:"id"`
	InfluencerID      string    `json:"influencer_id" dynamodbav:"influencer_id"`
	Platform          Platform  `json:"platform" dynamodbav:"platform"`
	TotalFollowers    int64     `json:"total_followers" dynamodbav:"total_followers"`
	TotalFollowersStr string    `json:"total_followers_str" dynamodbav:"total_followers_str"`
	EngagementRate    float64   `json:"engagement_rate" dynamodbav:"engagement_rate"`
	TotalLikes        int64     `json:"total_likes" dynamodbav:"total_likes"`
	TotalLikesStr     string    `json:"total_likes_str" dynamodbav:"total_likes_str"`
	TotalComments     int64     `json:"total_comments" dynamodbav:"total_comments"`
	TotalCommentsStr  string    `json:"total_comments_str" dynamodbav:"total_comments_str"`
	TotalShares       int64     `json:"total_shares" dynamodbav:"total_shares"`
	TotalSharesStr    string    `json:"total_shares_str" dynamodbav:"total_shares_str"`
	TotalViews        int64     `json:"total_views" dynamodbav:"total_views"`
	TotalViewsStr     string    `json:"total_views_str" dynamodbav:"total_views_str"`
	TotalPosts        int64     `json:"total_posts" dynamodbav:"total_posts"`
	TotalPostsStr     string    `json:"total_posts_str" dynamodbav:"total_posts_str"`
	CreatedAt         Timestamp `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         Timestamp `json:"updated_at" dynamodbav:"updated_at"`
}

// MetricField names a numeric counter that can be range-filtered.
type MetricField string

const (
	FieldTotalFollowers MetricField = "total_followers"
	FieldEngagementRate MetricField = "engagement_rate"
	FieldTotalLikes     MetricField = "total_likes"
	FieldTotalComments  MetricField = "total_comments"
	FieldTotalShares    MetricField = "total_shares"
	FieldTotalViews     MetricField = "total_views"
	FieldTotalPosts     MetricField = "total_posts"
)

func (f MetricField) Valid() bool {
	switch f {
	case FieldTotalFollowers, FieldEngagementRate, FieldTotalLikes, FieldTotalComments,
		FieldTotalShares, FieldTotalViews, FieldTotalPosts:
		return true
	default:
		return false
	}
}

// Value returns the counter named by f as a float.
func (m *Metrics) Value(f MetricField) (float64, bool) {
	switch f {
	case FieldTotalFollowers:
		return float64(m.TotalFollowers), true
	case FieldEngagementRate:
		return m.EngagementRate, true
	case FieldTotalLikes:
		return float64(m.TotalLikes), true
	case FieldTotalComments:
		return float64(m.TotalComments), true
	case FieldTotalShares:
		return float64(m.TotalShares), true
	case FieldTotalViews:
		return float64(m.TotalViews), true
	case FieldTotalPosts:
		return float64(m.TotalPosts), true
	default:
		return 0, false
	}
}
