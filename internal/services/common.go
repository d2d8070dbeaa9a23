package services

import (
	"context"
	"errors"

	"ihsearch/internal/apperr"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

// Page is one page of a listing plus the token that fetches the next one.
// NextToken is empty when the listing is exhausted.
type Page[T any] struct {
	Items     []T
	NextToken string
}

func emptyPage[T any]() Page[T] {
	return Page[T]{Items: []T{}}
}

func toPage[T any](res pagination.Result[T], req pagination.Request) (Page[T], error) {
	items, token, err := pagination.Normalize(res, req)
	if err != nil {
		return Page[T]{}, pagingError(err)
	}
	return Page[T]{Items: items, NextToken: token}, nil
}

// storePage turns the client's paging parameters into a store page request.
// Only store-key tokens are accepted here.
func storePage(req pagination.Request) (storage.PageRequest, error) {
	if err := req.CheckLimit(); err != nil {
		return storage.PageRequest{}, apperr.InvalidArgument("Invalid limit", err)
	}
	key, err := pagination.DecodeStoreKey(req.Token)
	if err != nil {
		return storage.PageRequest{}, apperr.InvalidToken(err)
	}
	return storage.PageRequest{Limit: req.Limit, StartKey: key}, nil
}

// storeSearch runs one paged store query on behalf of the client.
func storeSearch[T any](ctx context.Context, req pagination.Request, failure string, query func(context.Context, storage.PageRequest) (pagination.Result[T], error)) (Page[T], error) {
	page, err := storePage(req)
	if err != nil {
		return Page[T]{}, err
	}
	res, err := query(ctx, page)
	if err != nil {
		return Page[T]{}, storeError(failure, err)
	}
	return toPage(res, req)
}

func pagingError(err error) error {
	switch {
	case errors.Is(err, pagination.ErrInvalidToken):
		return apperr.InvalidToken(err)
	case errors.Is(err, pagination.ErrInvalidArgument):
		return apperr.InvalidArgument("Invalid limit", err)
	default:
		return err
	}
}

// storeError hides a repository failure behind message. A start key the store
// refused is still the client's fault.
func storeError(message string, err error) error {
	if errors.Is(err, pagination.ErrInvalidToken) {
		return apperr.InvalidToken(err)
	}
	return apperr.Upstream(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
