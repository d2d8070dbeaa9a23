package models

// PlatformProfile is embedded in an Influencer, one per social platform.
type PlatformProfile struct {
	InfluencerID     string    `json:"influencer_id" dynamodbav:"influencer_id"`
	Platform         Platform  `json:"platform" dynamodbav:"platform"`
	Handle           string    `json:"influencer_handle" dynamodbav:"influencer_handle"`
	ProfileURL       string    `json:"profile_url" dynamodbav:"profile_url"`
	ProfileImgURL    string    `json:"profile_img_url" dynamodbav:"profile_img_url"`
	Bio              string    `json:"influencer_bio" dynamodbav:"influencer_bio"`
	Email            string    `json:"influencer_email" dynamodbav:"influencer_email"`
	ProfileTimestamp Timestamp `json:"profile_timestamp" dynamodbav:"profile_timestamp"`
	CreatedAt        Timestamp `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt        Timestamp `json:"updated_at" dynamodbav:"updated_at"`
}

type Influencer struct {
	InfluencerID string            `json:"influencer_id" dynamodbav:"influencer_id"`
	Name         string            `json:"name" dynamodbav:"name"`
	Location     string            `json:"location" dynamodbav:"location"`
	Gender       Gender            `json:"gender" dynamodbav:"gender"`
	Category     Category          `json:"category" dynamodbav:"category"`
	Platforms    []PlatformProfile `json:"platforms" dynamodbav:"platforms"`
	CreatedAt    Timestamp         `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    Timestamp         `json:"updated_at" dynamodbav:"updated_at"`
}

// Categories returns the category as a list; influencers carry a single one today.
func (i *Influencer) Categories() []Category {
	if i.Category == "" {
		return []Category{}
	}
	return []Category{i.Category}
}

// DefaultProfile is the first platform profile, used for avatar and bio.
func (i *Influencer) DefaultProfile() (PlatformProfile, bool) {
	if len(i.Platforms) == 0 {
		return PlatformProfile{}, false
	}
	return i.Platforms[0], true
}
