package controllers

import (
	"context"
	"net/http"

	"github.com/spf13/cast"

	"ihsearch/internal/apperr"
	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/services"
	"ihsearch/internal/structures"
)

type InfluencerController struct {
	logger  providers.Logger
	service services.InfluencerServiceInterface
	paging  structures.PaginationConfig
}

func NewInfluencerController(logger providers.Logger, service services.InfluencerServiceInterface, conf *structures.Config) *InfluencerController {
	return &InfluencerController{
		logger:  logger,
		service: service,
		paging:  conf.Pagination,
	}
}

func (ic *InfluencerController) SearchByID(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "influencer_id", "Failed to search by ID", ic.service.SearchByID)
}

func (ic *InfluencerController) SearchByName(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "name", "Failed to search by name", ic.service.SearchByName)
}

func (ic *InfluencerController) SearchByLocation(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "location", "Failed to search by location", ic.service.SearchByLocation)
}

func (ic *InfluencerController) SearchByPlatform(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "platform", "Failed to search by platform", ic.service.SearchByPlatform)
}

func (ic *InfluencerController) SearchByCategory(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "category", "Failed to search by category", ic.service.SearchByCategory)
}

func (ic *InfluencerController) SearchByGender(w http.ResponseWriter, r *http.Request) {
	ic.byParam(w, r, "gender", "Failed to search by gender", ic.service.SearchByGender)
}

type singleParamSearch func(ctx context.Context, value string, req pagination.Request) (services.Page[*models.Influencer], error)

func (ic *InfluencerController) byParam(w http.ResponseWriter, r *http.Request, param, failure string, search singleParamSearch) {
	req, err := pageRequest(r, ic.paging)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	page, err := search(r.Context(), r.URL.Query().Get(param), req)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	writePage(w, page)
}

func (ic *InfluencerController) SearchByFilters(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to search by filters"
	req, err := pageRequest(r, ic.paging)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	q := r.URL.Query()
	page, err := ic.service.SearchByFilters(r.Context(), services.FilterQuery{
		InfluencerID: q.Get("influencer_id"),
		Name:         q.Get("name"),
		Location:     q.Get("location"),
	}, req)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	writePage(w, page)
}

func (ic *InfluencerController) SearchInfluencers(w http.ResponseWriter, r *http.Request) {
	const failure = "Unexpected error occurred"
	query, err := influencerQuery(r)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	req, err := pageRequest(r, ic.paging)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	page, err := ic.service.SearchInfluencers(r.Context(), query, req)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	writePage(w, page)
}

func influencerQuery(r *http.Request) (services.InfluencerQuery, error) {
	q := r.URL.Query()
	out := services.InfluencerQuery{
		Name:     q.Get("name"),
		Location: q.Get("location"),
		Gender:   q.Get("gender"),
		Platform: q.Get("platform"),
	}
	var err error
	if out.MinFollowers, err = optionalInt(r, "min_followers"); err != nil {
		return out, err
	}
	if out.MaxFollowers, err = optionalInt(r, "max_followers"); err != nil {
		return out, err
	}
	if out.MinEngagementRate, err = optionalFloat(r, "min_engagement_rate"); err != nil {
		return out, err
	}
	if out.MaxEngagementRate, err = optionalFloat(r, "max_engagement_rate"); err != nil {
		return out, err
	}
	return out, nil
}

type metricsSearchBody struct {
	MetricsRanges map[string]map[string]any `json:"metrics_ranges"`
	Platform      string                    `json:"platform"`
}

func (ic *InfluencerController) SearchByMetrics(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to search by metrics"
	var body metricsSearchBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	query, err := metricsQuery(body)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	req, err := pageRequest(r, ic.paging)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	page, err := ic.service.SearchByMetrics(r.Context(), query, req)
	if err != nil {
		writeError(w, r, ic.logger, err, failure)
		return
	}
	writePage(w, page)
}

// metricsQuery accepts bounds given as JSON numbers or numeric strings.
func metricsQuery(body metricsSearchBody) (services.MetricsQuery, error) {
	q := services.MetricsQuery{
		Platform: body.Platform,
		Ranges:   make(map[models.MetricField]services.MetricRange, len(body.MetricsRanges)),
	}
	for name, bounds := range body.MetricsRanges {
		var rng services.MetricRange
		for _, side := range []string{"min", "max"} {
			raw, ok := bounds[side]
			if !ok || raw == nil {
				continue
			}
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return q, apperr.InvalidArgument("Invalid "+side+" for "+name, err)
			}
			if side == "min" {
				rng.Min = &v
			} else {
				rng.Max = &v
			}
		}
		q.Ranges[models.MetricField(name)] = rng
	}
	return q, nil
}
