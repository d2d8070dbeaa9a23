package controllers

import (
	"context"
	"net/http"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/services"
	"ihsearch/internal/structures"
)

type PostController struct {
	logger  providers.Logger
	service services.PostServiceInterface
	paging  structures.PaginationConfig
}

func NewPostController(logger providers.Logger, service services.PostServiceInterface, conf *structures.Config) *PostController {
	return &PostController{
		logger:  logger,
		service: service,
		paging:  conf.Pagination,
	}
}

func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to create post"
	var in services.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	post, err := pc.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: post})
}

func (pc *PostController) Get(w http.ResponseWriter, r *http.Request) {
	post, err := pc.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, pc.logger, err, "Failed to get post")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: post})
}

func (pc *PostController) List(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to list posts"
	req, err := pageRequest(r, pc.paging)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	page, err := pc.service.List(r.Context(), req)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	writePage(w, page)
}

func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to update post"
	var patch services.PostPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	post, err := pc.service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: post})
}

func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, pc.logger, err, "Failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Post deleted successfully"})
}

func (pc *PostController) SearchByInfluencer(w http.ResponseWriter, r *http.Request) {
	pc.search(w, r, "influencer_id", "Failed to search posts by influencer", pc.service.SearchByInfluencer)
}

func (pc *PostController) SearchByURL(w http.ResponseWriter, r *http.Request) {
	pc.search(w, r, "url", "Failed to search posts by url", pc.service.SearchByURL)
}

func (pc *PostController) SearchByPlatform(w http.ResponseWriter, r *http.Request) {
	pc.search(w, r, "platform", "Failed to search posts by platform", pc.service.SearchByPlatform)
}

type postSearch func(ctx context.Context, value string, req pagination.Request) (services.Page[*models.Post], error)

func (pc *PostController) search(w http.ResponseWriter, r *http.Request, param, failure string, search postSearch) {
	req, err := pageRequest(r, pc.paging)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	page, err := search(r.Context(), r.URL.Query().Get(param), req)
	if err != nil {
		writeError(w, r, pc.logger, err, failure)
		return
	}
	writePage(w, page)
}
