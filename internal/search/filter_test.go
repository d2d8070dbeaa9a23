package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ihsearch/internal/models"
)

func johnDoe() *models.Influencer {
	return &models.Influencer{
		InfluencerID: "i-1",
		Name:         "John Doe",
		Location:     "Berlin",
		Gender:       models.GenderMale,
		Platforms: []models.PlatformProfile{
			{Platform: models.PlatformInstagram, Handle: "@john"},
		},
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"no criteria", Criteria{}, true},
		{"name substring any case", Criteria{Name: "john"}, true},
		{"name inner substring", Criteria{Name: "N D"}, true},
		{"name miss", Criteria{Name: "Jane"}, false},
		{"location exact", Criteria{Location: "Berlin"}, true},
		{"location is case sensitive", Criteria{Location: "berlin"}, false},
		{"gender any case", Criteria{Gender: "MALE"}, true},
		{"gender miss", Criteria{Gender: "female"}, false},
		{"platform any case", Criteria{Platform: "instagram"}, true},
		{"platform miss", Criteria{Platform: "TIKTOK"}, false},
		{"all match", Criteria{Name: "doe", Location: "Berlin", Gender: "male", Platform: "INSTAGRAM"}, true},
		{"one fails", Criteria{Name: "doe", Location: "Paris"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(johnDoe(), tt.criteria))
		})
	}
}

func TestMatches_MissingGender(t *testing.T) {
	inf := johnDoe()
	inf.Gender = ""
	assert.False(t, Matches(inf, Criteria{Gender: "male"}))
	assert.True(t, Matches(inf, Criteria{}))
}

func TestFilter_PreservesOrder(t *testing.T) {
	a := johnDoe()
	b := &models.Influencer{InfluencerID: "i-2", Name: "Jane Roe"}
	c := johnDoe()
	c.InfluencerID = "i-3"
	c.Name = "Johnny"

	got := Filter([]*models.Influencer{a, b, c}, Criteria{Name: "JOHN"})
	assert.Equal(t, []*models.Influencer{a, c}, got)
}
