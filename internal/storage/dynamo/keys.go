package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"ihsearch/internal/pagination"
)

// fromAttributeKey converts a LastEvaluatedKey into a JSON-shaped store key.
func fromAttributeKey(key map[string]types.AttributeValue) (pagination.StoreKey, error) {
	if len(key) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(key))
	if err := attributevalue.UnmarshalMap(key, &out); err != nil {
		return nil, fmt.Errorf("dynamo: decode last evaluated key: %w", err)
	}
	return out, nil
}

// toAttributeKey is the inverse of fromAttributeKey, used for ExclusiveStartKey.
func toAttributeKey(key pagination.StoreKey) (map[string]types.AttributeValue, error) {
	if len(key) == 0 {
		return nil, nil
	}
	out, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pagination.ErrInvalidToken, err)
	}
	return out, nil
}

func decodeItems[T any](items []item) ([]*T, error) {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		v := new(T)
		if err := attributevalue.UnmarshalMap(it, v); err != nil {
			return nil, fmt.Errorf("dynamo: decode item: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func stringKey(name, value string) item {
	return item{name: &types.AttributeValueMemberS{Value: value}}
}
