package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ihsearch/internal/models"
	"ihsearch/internal/services"
	"ihsearch/internal/testutil"
)

func newPostController(t *testing.T) *PostController {
	t.Helper()
	return NewPostController(&testutil.MockLogger{}, services.NewPostService(seededStore(t)), testConfig())
}

func decodePost(t *testing.T, data json.RawMessage) models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, json.Unmarshal(data, &post))
	return post
}

func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}

func createPost(t *testing.T, pc *PostController, body string) models.Post {
	t.Helper()
	rr := serve(pc.Create, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	return decodePost(t, env.Data)
}

func TestPostController_Lifecycle(t *testing.T) {
	pc := newPostController(t)

	created := createPost(t, pc, `{"influencer_id":"i-1","platform":"INSTAGRAM","title":"Leg day","url":"https://instagram.com/p/1","likes":7}`)
	require.NotEmpty(t, created.PostID)
	assert.Equal(t, int64(7), *created.Likes)
	assert.Equal(t, int64(0), *created.Shares)

	rr := serve(pc.Get, withID(httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID, nil), created.PostID))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Leg day", decodePost(t, decodeEnvelope(t, rr).Data).Title)

	rr = serve(pc.Update, withID(httptest.NewRequest(http.MethodPut, "/posts/"+created.PostID, strings.NewReader(`{"title":"Rest day"}`)), created.PostID))
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodePost(t, decodeEnvelope(t, rr).Data)
	assert.Equal(t, created.PostID, updated.PostID)
	assert.Equal(t, "Rest day", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	rr = serve(pc.Delete, withID(httptest.NewRequest(http.MethodDelete, "/posts/"+created.PostID, nil), created.PostID))
	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Post deleted successfully", env.Message)

	rr = serve(pc.Get, withID(httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID, nil), created.PostID))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Post not found", decodeEnvelope(t, rr).Error)
}

func TestPostController_CreateRejectsBadInput(t *testing.T) {
	pc := newPostController(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"title":`},
		{"missing title", `{"influencer_id":"i-1","platform":"INSTAGRAM","url":"https://x/1"}`},
		{"lowercase platform", `{"influencer_id":"i-1","platform":"instagram","title":"t","url":"https://x/1"}`},
		{"bad post date", `{"influencer_id":"i-1","platform":"TIKTOK","title":"t","url":"https://x/1","post_created_at":"soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(pc.Create, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestPostController_Searches(t *testing.T) {
	pc := newPostController(t)
	createPost(t, pc, `{"influencer_id":"i-1","platform":"INSTAGRAM","title":"a","url":"https://x/1"}`)
	createPost(t, pc, `{"influencer_id":"i-1","platform":"TIKTOK","title":"b","url":"https://x/2"}`)
	createPost(t, pc, `{"influencer_id":"i-2","platform":"TIKTOK","title":"c","url":"https://x/3"}`)

	countPosts := func(rr *httptest.ResponseRecorder) int {
		t.Helper()
		require.Equal(t, http.StatusOK, rr.Code)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &posts))
		return len(posts)
	}

	assert.Equal(t, 2, countPosts(serve(pc.SearchByInfluencer, httptest.NewRequest(http.MethodGet, "/posts/search/influencer?influencer_id=i-1", nil))))
	assert.Equal(t, 1, countPosts(serve(pc.SearchByURL, httptest.NewRequest(http.MethodGet, "/posts/search/url?url=https://x/3", nil))))
	assert.Equal(t, 2, countPosts(serve(pc.SearchByPlatform, httptest.NewRequest(http.MethodGet, "/posts/search/platform?platform=TIKTOK", nil))))
	assert.Equal(t, 3, countPosts(serve(pc.List, httptest.NewRequest(http.MethodGet, "/posts", nil))))

	rr := serve(pc.List, httptest.NewRequest(http.MethodGet, "/posts?limit=2", nil))
	assert.Equal(t, 2, countPosts(rr))
	assert.NotEmpty(t, decodeEnvelope(t, rr).NextToken)

	rr = serve(pc.SearchByURL, httptest.NewRequest(http.MethodGet, "/posts/search/url", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No url parameter provided", decodeEnvelope(t, rr).Error)
}
