package controllers

import (
	"net/http"

	"ihsearch/internal/providers"
	"ihsearch/internal/services"
	"ihsearch/internal/structures"
)

type MetricsController struct {
	logger  providers.Logger
	service services.MetricsServiceInterface
	paging  structures.PaginationConfig
}

func NewMetricsController(logger providers.Logger, service services.MetricsServiceInterface, conf *structures.Config) *MetricsController {
	return &MetricsController{
		logger:  logger,
		service: service,
		paging:  conf.Pagination,
	}
}

func (mc *MetricsController) SearchByEngagementRate(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to search by engagement rate"
	min, err := optionalFloat(r, "min_engagement_rate")
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	max, err := optionalFloat(r, "max_engagement_rate")
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	req, err := pageRequest(r, mc.paging)
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	page, err := mc.service.SearchByEngagementRate(r.Context(), r.URL.Query().Get("platform"), min, max, req)
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	writePage(w, page)
}

func (mc *MetricsController) SearchByFollowersCount(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to search by followers count"
	min, err := optionalInt(r, "min_followers")
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	max, err := optionalInt(r, "max_followers")
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	req, err := pageRequest(r, mc.paging)
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	page, err := mc.service.SearchByFollowersCount(r.Context(), r.URL.Query().Get("platform"), min, max, req)
	if err != nil {
		writeError(w, r, mc.logger, err, failure)
		return
	}
	writePage(w, page)
}
