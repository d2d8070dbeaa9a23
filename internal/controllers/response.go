package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"ihsearch/internal/apperr"
	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/services"
	"ihsearch/internal/storage"
	"ihsearch/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	NextToken string `json:"next_token,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writePage[T any](w http.ResponseWriter, page services.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, NextToken: page.NextToken})
}

// writeError answers with the client-facing message of err. Upstream failures
// are logged with their cause, which never reaches the client. Transient store
// failures (throttling, timeouts) are logged as warnings.
func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error, fallback string) {
	e := apperr.From(err, fallback)
	if e.Kind == apperr.KindUpstream {
		logType := providers.GetLogTypeByRequestType(r.Method)
		if storage.IsTransient(e.Err) {
			logger.Warnf(logType, "%s %s: %s: transient store failure: %v", r.Method, r.URL.Path, e.Message, e.Err)
		} else {
			logger.Errorf(logType, "%s %s: %s: %v", r.Method, r.URL.Path, e.Message, e.Err)
		}
	}
	writeJSON(w, e.Status(), envelope{Success: false, Error: e.Message})
}

// pageRequest reads limit and next_token. An absent limit is zero; a supplied
// one must lie in 1..maxLimit.
func pageRequest(r *http.Request, conf structures.PaginationConfig) (pagination.Request, error) {
	q := r.URL.Query()
	req := pagination.Request{
		Token:        q.Get("next_token"),
		DefaultLimit: conf.DefaultLimit,
		MaxLimit:     conf.MaxLimit,
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := cast.ToIntE(raw)
		if err != nil {
			return req, apperr.InvalidArgument("Invalid limit: "+raw, err)
		}
		req.Limit = limit
		if limit == 0 {
			return req, apperr.InvalidArgument("Invalid limit: "+raw, pagination.ErrInvalidArgument)
		}
		if err := req.CheckLimit(); err != nil {
			return req, apperr.InvalidArgument("Invalid limit: "+raw, err)
		}
	}
	return req, nil
}

func optionalInt(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToInt64E(raw)
	if err != nil {
		return nil, apperr.InvalidArgument("Invalid "+name+": "+raw, err)
	}
	return &v, nil
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, apperr.InvalidArgument("Invalid "+name+": "+raw, err)
	}
	return &v, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.InvalidArgument("Invalid request body", err)
	}
	return nil
}
