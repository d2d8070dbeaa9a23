package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var (
	ErrInvalidToken    = errors.New("invalid pagination token")
	ErrInvalidArgument = errors.New("invalid pagination argument")
)

type Kind string

const (
	KindOffset   Kind = "offset"
	KindStoreKey Kind = "last_key"
)

// StoreKey is the continuation marker handed back by the store, kept as a JSON-shaped value.
type StoreKey map[string]any

// Cursor is either an offset into a materialized list or a store continuation key.
type Cursor struct {
	Kind   Kind
	Offset int
	Key    StoreKey
}

func OffsetCursor(offset int) Cursor {
	return Cursor{Kind: KindOffset, Offset: offset}
}

// StoreKeyCursor wraps a store continuation key. The key must be non-empty:
// an empty key means the listing is exhausted and has no token.
func StoreKeyCursor(key StoreKey) Cursor {
	return Cursor{Kind: KindStoreKey, Key: key}
}

type wireCursor struct {
	Type   Kind           `json:"type"`
	Offset *int           `json:"offset,omitempty"`
	Key    map[string]any `json:"key,omitempty"`
}

// Encode renders c as URL-safe base64 of its JSON form. A store key cursor
// with an empty key encodes to the empty token, which callers treat as absent.
func Encode(c Cursor) string {
	w := wireCursor{Type: c.Kind}
	switch c.Kind {
	case KindOffset:
		offset := c.Offset
		w.Offset = &offset
	case KindStoreKey:
		if len(c.Key) == 0 {
			return ""
		}
		w.Key = c.Key
	}
	raw, err := json.Marshal(w)
	if err != nil {
		// StoreKey values originate from JSON or the store adapter and always marshal.
		panic(fmt.Sprintf("pagination: encode cursor: %v", err))
	}
	return base64.URLEncoding.EncodeToString(raw)
}

func Decode(token string) (Cursor, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		if raw, err = base64.RawURLEncoding.DecodeString(token); err != nil {
			return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	var w wireCursor
	if err := json.Unmarshal(raw, &w); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch w.Type {
	case KindOffset:
		if w.Offset == nil || *w.Offset < 0 {
			return Cursor{}, fmt.Errorf("%w: bad offset", ErrInvalidToken)
		}
		return OffsetCursor(*w.Offset), nil
	case KindStoreKey:
		if len(w.Key) == 0 {
			return Cursor{}, fmt.Errorf("%w: missing key", ErrInvalidToken)
		}
		return StoreKeyCursor(w.Key), nil
	default:
		return Cursor{}, fmt.Errorf("%w: unknown cursor type %q", ErrInvalidToken, w.Type)
	}
}

// DecodeAs decodes token and rejects it unless it carries the expected kind.
func DecodeAs(token string, kind Kind) (Cursor, error) {
	c, err := Decode(token)
	if err != nil {
		return Cursor{}, err
	}
	if c.Kind != kind {
		return Cursor{}, fmt.Errorf("%w: expected %s cursor, got %s", ErrInvalidToken, kind, c.Kind)
	}
	return c, nil
}

// DecodeStoreKey returns the store key carried by token, or nil for an empty token.
func DecodeStoreKey(token string) (StoreKey, error) {
	if token == "" {
		return nil, nil
	}
	c, err := DecodeAs(token, KindStoreKey)
	if err != nil {
		return nil, err
	}
	return c.Key, nil
}
