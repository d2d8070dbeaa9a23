package pagination

import "fmt"

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Paginate slices items starting at cursor (offset 0 when nil) and returns the
// cursor of the following page, nil once the sequence is exhausted.
// Callers must pass the same ordering on every call.
func Paginate[T any](items []T, limit int, cursor *Cursor) ([]T, *Cursor, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}

	offset := 0
	if cursor != nil {
		if cursor.Kind != KindOffset {
			return nil, nil, fmt.Errorf("%w: in-memory pagination needs an offset cursor", ErrInvalidToken)
		}
		offset = cursor.Offset
	}
	if offset < 0 {
		return nil, nil, fmt.Errorf("%w: negative offset", ErrInvalidToken)
	}
	if offset >= len(items) {
		return []T{}, nil, nil
	}

	if limit >= len(items)-offset {
		return items[offset:], nil, nil
	}
	end := offset + limit
	next := OffsetCursor(end)
	return items[offset:end], &next, nil
}
