package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

type postRepo struct {
	store *Store
	table string
}

func (r *postRepo) Put(ctx context.Context, post *models.Post) error {
	av, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("dynamo: encode post: %w", err)
	}
	return r.store.call(ctx, "post_put", func(ctx context.Context) error {
		_, err := r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.table),
			Item:      av,
		})
		return err
	})
}

func (r *postRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	var out *dynamodb.GetItemOutput
	err := r.store.call(ctx, "post_get", func(ctx context.Context) error {
		var err error
		out, err = r.store.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.table),
			Key:       stringKey("post_id", id),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, storage.ErrNotFound
	}
	decoded, err := decodeItems[models.Post]([]item{out.Item})
	if err != nil {
		return nil, err
	}
	return decoded[0], nil
}

// Delete removes the post, reporting ErrNotFound when nothing was stored under id.
func (r *postRepo) Delete(ctx context.Context, id string) error {
	var out *dynamodb.DeleteItemOutput
	err := r.store.call(ctx, "post_delete", func(ctx context.Context) error {
		var err error
		out, err = r.store.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:    aws.String(r.table),
			Key:          stringKey("post_id", id),
			ReturnValues: types.ReturnValueAllOld,
		})
		return err
	})
	if err != nil {
		return err
	}
	if len(out.Attributes) == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *postRepo) page(items []item, next pagination.StoreKey) (pagination.Result[*models.Post], error) {
	decoded, err := decodeItems[models.Post](items)
	if err != nil {
		return pagination.Result[*models.Post]{}, err
	}
	return pagination.CursorPaginated(decoded, next), nil
}

func (r *postRepo) ScanPage(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Post], error) {
	items, next, err := r.store.scanPage(ctx, "post_scan", &dynamodb.ScanInput{TableName: aws.String(r.table)}, page)
	if err != nil {
		return pagination.Result[*models.Post]{}, err
	}
	return r.page(items, next)
}

func (r *postRepo) queryIndex(ctx context.Context, op, index, attr, value string, page storage.PageRequest) (pagination.Result[*models.Post], error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attr).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return pagination.Result[*models.Post]{}, fmt.Errorf("dynamo: build %s: %w", op, err)
	}
	items, next, err := r.store.queryPage(ctx, op, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, page)
	if err != nil {
		return pagination.Result[*models.Post]{}, err
	}
	return r.page(items, next)
}

func (r *postRepo) QueryByInfluencer(ctx context.Context, influencerID string, page storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.queryIndex(ctx, "post_query_influencer", indexInfluencerID, "influencer_id", influencerID, page)
}

func (r *postRepo) QueryByURL(ctx context.Context, url string, page storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.queryIndex(ctx, "post_query_url", indexPostURL, "url", url, page)
}

func (r *postRepo) QueryByPlatform(ctx context.Context, platform models.Platform, page storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.queryIndex(ctx, "post_query_platform", indexPostPlatform, "platform", string(platform), page)
}
