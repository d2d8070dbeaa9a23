package pagination

import "fmt"

type ResultKind int

const (
	KindMaterialized ResultKind = iota
	KindCursorPaginated
)

// Result is what a repository hands back: either a fully materialized list or
// one page of a store query together with the store's continuation key.
type Result[T any] struct {
	kind  ResultKind
	items []T
	key   StoreKey
}

func Materialized[T any](items []T) Result[T] {
	return Result[T]{kind: KindMaterialized, items: items}
}

// CursorPaginated wraps a store page; an empty key means the store has no more pages.
func CursorPaginated[T any](items []T, key StoreKey) Result[T] {
	return Result[T]{kind: KindCursorPaginated, items: items, key: key}
}

func (r Result[T]) Kind() ResultKind { return r.kind }

func (r Result[T]) Items() []T { return r.items }

func (r Result[T]) Key() StoreKey { return r.key }

// Map converts the items of r, keeping its kind and key.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, fn(item))
	}
	return Result[U]{kind: r.kind, items: out, key: r.key}
}

// Request carries the client's paging parameters. Zero Limit and empty Token mean absent.
// Zero DefaultLimit and MaxLimit fall back to the package defaults.
type Request struct {
	Limit        int
	Token        string
	DefaultLimit int
	MaxLimit     int
}

func (r Request) maxLimit() int {
	if r.MaxLimit > 0 {
		return r.MaxLimit
	}
	return MaxLimit
}

// CheckLimit rejects a negative limit or one above the maximum page size.
func (r Request) CheckLimit() error {
	if r.Limit < 0 || r.Limit > r.maxLimit() {
		return fmt.Errorf("%w: limit %d outside 1..%d", ErrInvalidArgument, r.Limit, r.maxLimit())
	}
	return nil
}

func (r Request) limit() int {
	if r.Limit != 0 {
		return r.Limit
	}
	if r.DefaultLimit > 0 {
		return r.DefaultLimit
	}
	return DefaultLimit
}

// Normalize turns any Result into a page of items plus the outgoing token.
// Store pages pass through untouched; materialized lists are sliced in memory
// unless the client asked for neither a limit nor a token.
func Normalize[T any](result Result[T], req Request) ([]T, string, error) {
	items := result.items
	if items == nil {
		items = []T{}
	}

	switch result.kind {
	case KindCursorPaginated:
		if len(result.key) == 0 {
			return items, "", nil
		}
		return items, Encode(StoreKeyCursor(result.key)), nil
	case KindMaterialized:
		if req.Limit == 0 && req.Token == "" {
			return items, "", nil
		}
		if err := req.CheckLimit(); err != nil {
			return nil, "", err
		}
		cursor := OffsetCursor(0)
		if req.Token != "" {
			decoded, err := DecodeAs(req.Token, KindOffset)
			if err != nil {
				return nil, "", err
			}
			cursor = decoded
		}
		page, next, err := Paginate(items, req.limit(), &cursor)
		if err != nil {
			return nil, "", err
		}
		if next == nil {
			return page, "", nil
		}
		return page, Encode(*next), nil
	default:
		panic("pagination: unknown result kind")
	}
}
