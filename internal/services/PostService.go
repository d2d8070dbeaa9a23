package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/gookit/validate"

	"ihsearch/internal/apperr"
	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

// PostInput is the body of a create request.
type PostInput struct {
	InfluencerID  string  `json:"influencer_id" validate:"required"`
	Platform      string  `json:"platform" validate:"required"`
	Title         string  `json:"title" validate:"required"`
	URL           string  `json:"url" validate:"required"`
	Description   *string `json:"description"`
	Likes         *int64  `json:"likes"`
	LikesStr      *string `json:"likes_str"`
	Comments      *int64  `json:"comments"`
	CommentsStr   *string `json:"comments_str"`
	Shares        *int64  `json:"shares"`
	SharesStr     *string `json:"shares_str"`
	Views         *int64  `json:"views"`
	ViewsStr      *string `json:"views_str"`
	PostCreatedAt *string `json:"post_created_at"`
	PostType      *string `json:"post_type"`
}

// PostPatch is the body of an update request. Nil fields are left untouched.
type PostPatch struct {
	Title         *string `json:"title"`
	URL           *string `json:"url"`
	Description   *string `json:"description"`
	Likes         *int64  `json:"likes"`
	LikesStr      *string `json:"likes_str"`
	Comments      *int64  `json:"comments"`
	CommentsStr   *string `json:"comments_str"`
	Shares        *int64  `json:"shares"`
	SharesStr     *string `json:"shares_str"`
	Views         *int64  `json:"views"`
	ViewsStr      *string `json:"views_str"`
	Platform      *string `json:"platform"`
	InfluencerID  *string `json:"influencer_id"`
	PostCreatedAt *string `json:"post_created_at"`
	PostType      *string `json:"post_type"`
}

type PostServiceInterface interface {
	Create(ctx context.Context, in PostInput) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, req pagination.Request) (Page[*models.Post], error)
	Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	SearchByInfluencer(ctx context.Context, influencerID string, req pagination.Request) (Page[*models.Post], error)
	SearchByURL(ctx context.Context, url string, req pagination.Request) (Page[*models.Post], error)
	SearchByPlatform(ctx context.Context, platform string, req pagination.Request) (Page[*models.Post], error)
}

type PostService struct {
	store storage.StoreInterface
	newID func() string
	now   func() models.Timestamp
}

func NewPostService(store storage.StoreInterface) PostServiceInterface {
	return &PostService{
		store: store,
		newID: uuid.NewString,
		now:   models.Now,
	}
}

const errPostNotFound = "Post not found"

// Posts carry the stored platform value verbatim, so no case folding here.
func postPlatform(value string) (models.Platform, error) {
	p, err := models.PlatformFromValue(value)
	if err != nil {
		return "", apperr.InvalidEnumValue("platform", value)
	}
	return p, nil
}

func optionalTimestamp(field string, value *string) (*models.Timestamp, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	ts, err := models.ParseTimestamp(*value)
	if err != nil {
		return nil, apperr.InvalidArgument("Invalid "+field+": "+*value, err)
	}
	return &ts, nil
}

func counter(n *int64) *int64 {
	if n == nil {
		var zero int64
		return &zero
	}
	return n
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	v := validate.Struct(&in)
	if !v.Validate() {
		return nil, apperr.InvalidArgument(v.Errors.One(), v.Errors)
	}
	platform, err := postPlatform(in.Platform)
	if err != nil {
		return nil, err
	}
	postCreatedAt, err := optionalTimestamp("post_created_at", in.PostCreatedAt)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		PostID:        s.newID(),
		InfluencerID:  in.InfluencerID,
		Platform:      platform,
		Title:         in.Title,
		URL:           in.URL,
		Description:   in.Description,
		Likes:         counter(in.Likes),
		LikesStr:      in.LikesStr,
		Comments:      counter(in.Comments),
		CommentsStr:   in.CommentsStr,
		Shares:        counter(in.Shares),
		SharesStr:     in.SharesStr,
		Views:         counter(in.Views),
		ViewsStr:      in.ViewsStr,
		PostCreatedAt: postCreatedAt,
		PostType:      in.PostType,
		CreatedAt:     s.now(),
	}
	if err := s.store.Posts().Put(ctx, post); err != nil {
		return nil, storeError("Failed to create post", err)
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.store.Posts().Get(ctx, id)
	if isNotFound(err) {
		return nil, apperr.NotFound(errPostNotFound)
	}
	if err != nil {
		return nil, storeError("Failed to get post", err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, req pagination.Request) (Page[*models.Post], error) {
	return storeSearch(ctx, req, "Failed to list posts", s.store.Posts().ScanPage)
}

// Update applies patch to the stored post. The post id never changes.
func (s *PostService) Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Platform != nil {
		p, err := postPlatform(*patch.Platform)
		if err != nil {
			return nil, err
		}
		post.Platform = p
	}
	if patch.PostCreatedAt != nil {
		ts, err := optionalTimestamp("post_created_at", patch.PostCreatedAt)
		if err != nil {
			return nil, err
		}
		post.PostCreatedAt = ts
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.URL != nil {
		post.URL = *patch.URL
	}
	if patch.InfluencerID != nil {
		post.InfluencerID = *patch.InfluencerID
	}
	if patch.Description != nil {
		post.Description = patch.Description
	}
	if patch.Likes != nil {
		post.Likes = patch.Likes
	}
	if patch.LikesStr != nil {
		post.LikesStr = patch.LikesStr
	}
	if patch.Comments != nil {
		post.Comments = patch.Comments
	}
	if patch.CommentsStr != nil {
		post.CommentsStr = patch.CommentsStr
	}
	if patch.Shares != nil {
		post.Shares = patch.Shares
	}
	if patch.SharesStr != nil {
		post.SharesStr = patch.SharesStr
	}
	if patch.Views != nil {
		post.Views = patch.Views
	}
	if patch.ViewsStr != nil {
		post.ViewsStr = patch.ViewsStr
	}
	if patch.PostType != nil {
		post.PostType = patch.PostType
	}

	now := s.now()
	post.UpdatedAt = &now
	if err := s.store.Posts().Put(ctx, post); err != nil {
		return nil, storeError("Failed to update post", err)
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	err := s.store.Posts().Delete(ctx, id)
	if isNotFound(err) {
		return apperr.NotFound(errPostNotFound)
	}
	if err != nil {
		return storeError("Failed to delete post", err)
	}
	return nil
}

func (s *PostService) SearchByInfluencer(ctx context.Context, influencerID string, req pagination.Request) (Page[*models.Post], error) {
	if influencerID == "" {
		return Page[*models.Post]{}, apperr.MissingParameter("influencer_id")
	}
	return storeSearch(ctx, req, "Failed to search posts by influencer", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Post], error) {
		return s.store.Posts().QueryByInfluencer(ctx, influencerID, page)
	})
}

func (s *PostService) SearchByURL(ctx context.Context, url string, req pagination.Request) (Page[*models.Post], error) {
	if url == "" {
		return Page[*models.Post]{}, apperr.MissingParameter("url")
	}
	return storeSearch(ctx, req, "Failed to search posts by url", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Post], error) {
		return s.store.Posts().QueryByURL(ctx, url, page)
	})
}

func (s *PostService) SearchByPlatform(ctx context.Context, platform string, req pagination.Request) (Page[*models.Post], error) {
	if platform == "" {
		return Page[*models.Post]{}, apperr.MissingParameter("platform")
	}
	p, err := postPlatform(platform)
	if err != nil {
		return Page[*models.Post]{}, err
	}
	return storeSearch(ctx, req, "Failed to search posts by platform", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Post], error) {
		return s.store.Posts().QueryByPlatform(ctx, p, page)
	})
}
