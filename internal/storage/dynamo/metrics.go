package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"ihsearch/internal/models"
	"ihsearch/internal/storage"
)

type metricsRepo struct {
	store *Store
	table string
}

func (r *metricsRepo) queryAll(ctx context.Context, op, index string, cond expression.KeyConditionBuilder) ([]*models.Metrics, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("dynamo: build %s: %w", op, err)
	}
	items, err := r.store.queryAll(ctx, op, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}
	return decodeItems[models.Metrics](items)
}

func rangeCondition[T int64 | float64](attr string, r storage.Range[T]) expression.KeyConditionBuilder {
	if r.Max != nil {
		return expression.Key(attr).Between(expression.Value(r.Min), expression.Value(*r.Max))
	}
	return expression.Key(attr).GreaterThanEqual(expression.Value(r.Min))
}

func (r *metricsRepo) QueryFollowers(ctx context.Context, platform models.Platform, rng storage.Range[int64]) ([]*models.Metrics, error) {
	cond := expression.KeyAnd(
		expression.Key("platform").Equal(expression.Value(string(platform))),
		rangeCondition("total_followers", rng),
	)
	return r.queryAll(ctx, "metrics_query_followers", indexTotalFollowers, cond)
}

func (r *metricsRepo) QueryEngagementRate(ctx context.Context, platform models.Platform, rng storage.Range[float64]) ([]*models.Metrics, error) {
	cond := expression.KeyAnd(
		expression.Key("platform").Equal(expression.Value(string(platform))),
		rangeCondition("engagement_rate", rng),
	)
	return r.queryAll(ctx, "metrics_query_engagement", indexEngagementRate, cond)
}

func (r *metricsRepo) QueryByInfluencer(ctx context.Context, influencerID string) ([]*models.Metrics, error) {
	return r.queryAll(ctx, "metrics_query_influencer", indexInfluencerID,
		expression.Key("influencer_id").Equal(expression.Value(influencerID)))
}

// QueryByPlatform walks the followers index, which is partitioned by platform.
func (r *metricsRepo) QueryByPlatform(ctx context.Context, platform models.Platform) ([]*models.Metrics, error) {
	return r.queryAll(ctx, "metrics_query_platform", indexTotalFollowers,
		expression.Key("platform").Equal(expression.Value(string(platform))))
}

func (r *metricsRepo) ScanAll(ctx context.Context) ([]*models.Metrics, error) {
	items, err := r.store.scanAll(ctx, "metrics_scan", &dynamodb.ScanInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, err
	}
	return decodeItems[models.Metrics](items)
}
