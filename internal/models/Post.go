package models

type Post struct {
	PostID        string     `json:"post_id" dynamodbav:"post_id"`
	InfluencerID  string     `json:"influencer_id" dynamodbav:"influencer_id"`
	Platform      Platform   `json:"platform" dynamodbav:"platform"`
	Title         string     `json:"title" dynamodbav:"title"`
	URL           string     `json:"url" dynamodbav:"url"`
	Description   *string    `json:"description" dynamodbav:"description,omitempty"`
	Likes         *int64     `json:"likes" dynamodbav:"likes,omitempty"`
	LikesStr      *string    `json:"likes_str" dynamodbav:"likes_str,omitempty"`
	Comments      *int64     `json:"comments" dynamodbav:"comments,omitempty"`
	CommentsStr   *string    `json:"comments_str" dynamodbav:"comments_str,omitempty"`
	Shares        *int64     `json:"shares" dynamodbav:"shares,omitempty"`
	SharesStr     *string    `json:"shares_str" dynamodbav:"shares_str,omitempty"`
	Views         *int64     `json:"views" dynamodbav:"views,omitempty"`
	ViewsStr      *string    `json:"views_str" dynamodbav:"views_str,omitempty"`
	PostCreatedAt *Timestamp `json:"post_created_at" dynamodbav:"post_created_at,omitempty"`
	PostType      *string    `json:"post_type" dynamodbav:"post_type,omitempty"`
	CreatedAt     Timestamp  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     *Timestamp `json:"updated_at" dynamodbav:"updated_at,omitempty"`
}

// Clone returns a copy that shares no pointers with p.
func (p *Post) Clone() *Post {
	c := *p
	c.Description = cloneString(p.Description)
	c.Likes = cloneInt(p.Likes)
	c.LikesStr = cloneString(p.LikesStr)
	c.Comments = cloneInt(p.Comments)
	c.CommentsStr = cloneString(p.CommentsStr)
	c.Shares = cloneInt(p.Shares)
	c.SharesStr = cloneString(p.SharesStr)
	c.Views = cloneInt(p.Views)
	c.ViewsStr = cloneString(p.ViewsStr)
	c.PostType = cloneString(p.PostType)
	if p.PostCreatedAt != nil {
		t := *p.PostCreatedAt
		c.PostCreatedAt = &t
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
