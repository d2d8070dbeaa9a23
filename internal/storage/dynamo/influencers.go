package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

type influencerRepo struct {
	store *Store
	table string
}

func (r *influencerRepo) page(items []item, next pagination.StoreKey) (pagination.Result[*models.Influencer], error) {
	decoded, err := decodeItems[models.Influencer](items)
	if err != nil {
		return pagination.Result[*models.Influencer]{}, err
	}
	return pagination.CursorPaginated(decoded, next), nil
}

func (r *influencerRepo) queryIndex(ctx context.Context, op, index string, cond expression.KeyConditionBuilder, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return pagination.Result[*models.Influencer]{}, fmt.Errorf("dynamo: build %s: %w", op, err)
	}
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if index != "" {
		in.IndexName = aws.String(index)
	}
	items, next, err := r.store.queryPage(ctx, op, in, page)
	if err != nil {
		return pagination.Result[*models.Influencer]{}, err
	}
	return r.page(items, next)
}

func (r *influencerRepo) QueryByID(ctx context.Context, id string, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.queryIndex(ctx, "influencer_query_id", "",
		expression.Key("influencer_id").Equal(expression.Value(id)), page)
}

func (r *influencerRepo) QueryByLocation(ctx context.Context, location string, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.queryIndex(ctx, "influencer_query_location", indexInfluencerLocation,
		expression.Key("location").Equal(expression.Value(location)), page)
}

func (r *influencerRepo) QueryByGender(ctx context.Context, gender models.Gender, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.queryIndex(ctx, "influencer_query_gender", indexInfluencerGender,
		expression.Key("gender").Equal(expression.Value(string(gender))), page)
}

func (r *influencerRepo) QueryByCategory(ctx context.Context, category models.Category) ([]*models.Influencer, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("category").Equal(expression.Value(string(category)))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dynamo: build category query: %w", err)
	}
	items, err := r.store.queryAll(ctx, "influencer_query_category", &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(indexInfluencerCategory),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}
	return decodeItems[models.Influencer](items)
}

func (r *influencerRepo) ScanByName(ctx context.Context, name string, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("name").Contains(name)).
		Build()
	if err != nil {
		return pagination.Result[*models.Influencer]{}, fmt.Errorf("dynamo: build name scan: %w", err)
	}
	items, next, err := r.store.scanPage(ctx, "influencer_scan_name", &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, page)
	if err != nil {
		return pagination.Result[*models.Influencer]{}, err
	}
	return r.page(items, next)
}

func (r *influencerRepo) ScanPage(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	items, next, err := r.store.scanPage(ctx, "influencer_scan", &dynamodb.ScanInput{TableName: aws.String(r.table)}, page)
	if err != nil {
		return pagination.Result[*models.Influencer]{}, err
	}
	return r.page(items, next)
}

func (r *influencerRepo) ScanAll(ctx context.Context) ([]*models.Influencer, error) {
	items, err := r.store.scanAll(ctx, "influencer_scan", &dynamodb.ScanInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, err
	}
	return decodeItems[models.Influencer](items)
}

func (r *influencerRepo) BatchGet(ctx context.Context, ids []string) ([]*models.Influencer, error) {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]item, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, stringKey("influencer_id", id))
	}
	items, err := r.store.batchGet(ctx, r.table, keys)
	if err != nil {
		return nil, err
	}
	return decodeItems[models.Influencer](items)
}

func (r *influencerRepo) Get(ctx context.Context, id string) (*models.Influencer, error) {
	var out *dynamodb.GetItemOutput
	err := r.store.call(ctx, "influencer_get", func(ctx context.Context) error {
		var err error
		out, err = r.store.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.table),
			Key:       stringKey("influencer_id", id),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, storage.ErrNotFound
	}
	decoded, err := decodeItems[models.Influencer]([]item{out.Item})
	if err != nil {
		return nil, err
	}
	return decoded[0], nil
}
