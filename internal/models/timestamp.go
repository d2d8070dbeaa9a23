package models

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	json "github.com/goccy/go-json"
)

// storedLayout is the UTC datetime format already present in the tables.
const storedLayout = "2006-01-02T15:04:05.000000-0700"

var parseLayouts = []string{storedLayout, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Timestamp is a UTC instant stored as a string attribute.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func Now() Timestamp {
	return NewTimestamp(time.Now())
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if t.IsZero() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	return &types.AttributeValueMemberS{Value: t.UTC().Format(storedLayout)}, nil
}

func (t *Timestamp) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		parsed, err := ParseTimestamp(v.Value)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case *types.AttributeValueMemberNULL:
		*t = Timestamp{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp attribute %T", av)
	}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
