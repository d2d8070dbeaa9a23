package dynamo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/storage"
	"ihsearch/internal/structures"
)

// API is the subset of the DynamoDB client the store relies on.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, in *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

const (
	indexInfluencerLocation = "influencer_location_index"
	indexInfluencerGender   = "influencer_gender_index"
	indexInfluencerCategory = "influencer_category_index"
	indexInfluencerID       = "influencer_id_index"
	indexTotalFollowers     = "total_followers_index"
	indexEngagementRate     = "engagement_rate_index"
	indexPostURL            = "post_url_index"
	indexPostPlatform       = "post_platform_index"

	// batchGetLimit is the DynamoDB ceiling of keys per BatchGetItem request.
	batchGetLimit = 100
	// unprocessedRetries bounds how often unprocessed batch keys are resubmitted.
	unprocessedRetries = 5
)

type Store struct {
	client  API
	conf    structures.DynamoConfig
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	influencers *influencerRepo
	metricsRepo *metricsRepo
	posts       *postRepo
}

// New builds a DynamoDB client from the default AWS credential chain.
func New(ctx context.Context, conf structures.DynamoConfig, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Region))
	if err != nil {
		return nil, fmt.Errorf("dynamo: load aws config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
	})
	return NewWithClient(client, conf, logger, metrics), nil
}

func NewWithClient(client API, conf structures.DynamoConfig, logger providers.Logger, metrics providers.MetricsProviderInterface) *Store {
	s := &Store{client: client, conf: conf, logger: logger, metrics: metrics}
	s.influencers = &influencerRepo{store: s, table: conf.InfluencerTable}
	s.metricsRepo = &metricsRepo{store: s, table: conf.MetricsTable}
	s.posts = &postRepo{store: s, table: conf.PostTable}
	return s
}

func (s *Store) Influencers() storage.InfluencerRepository { return s.influencers }

func (s *Store) Metrics() storage.MetricsRepository { return s.metricsRepo }

func (s *Store) Posts() storage.PostRepository { return s.posts }

func (s *Store) Driver() string { return structures.StorageDynamo }

func (s *Store) Start() error {
	s.logger.Infof(providers.TypeStore, "DynamoDB store ready (region %s, tables %s, %s, %s)",
		s.conf.Region, s.conf.InfluencerTable, s.conf.MetricsTable, s.conf.PostTable)
	return nil
}

func (s *Store) Stop() error { return nil }

// Ping checks that every configured table is reachable.
func (s *Store) Ping(ctx context.Context) error {
	for _, table := range []string{s.conf.InfluencerTable, s.conf.MetricsTable, s.conf.PostTable} {
		err := s.call(ctx, "describe_table", func(ctx context.Context) error {
			_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
			return err
		})
		if err != nil {
			return fmt.Errorf("table %s: %w", table, err)
		}
	}
	return nil
}

// call runs fn under the configured timeout and records its duration.
func (s *Store) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.conf.Timeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveStoreOperation(op, time.Since(start), err)
	if err != nil {
		s.logger.Debugf(providers.TypeStore, "dynamo %s failed: %v", op, err)
		return wrapError(err, "dynamo: "+op)
	}
	return nil
}

type item = map[string]types.AttributeValue

// pageLimit converts a page size to the request's Limit, nil when unset.
// Sizes beyond int32 are clamped rather than wrapped.
func pageLimit(limit int) *int32 {
	if limit <= 0 {
		return nil
	}
	return aws.Int32(int32(min(limit, math.MaxInt32)))
}

func (s *Store) queryPage(ctx context.Context, op string, in *dynamodb.QueryInput, page storage.PageRequest) ([]item, pagination.StoreKey, error) {
	in.Limit = pageLimit(page.Limit)
	startKey, err := toAttributeKey(page.StartKey)
	if err != nil {
		return nil, nil, err
	}
	in.ExclusiveStartKey = startKey

	var out *dynamodb.QueryOutput
	err = s.call(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = s.client.Query(ctx, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	next, err := fromAttributeKey(out.LastEvaluatedKey)
	if err != nil {
		return nil, nil, err
	}
	return out.Items, next, nil
}

func (s *Store) queryAll(ctx context.Context, op string, in *dynamodb.QueryInput) ([]item, error) {
	var all []item
	for {
		var out *dynamodb.QueryOutput
		err := s.call(ctx, op, func(ctx context.Context) error {
			var err error
			out, err = s.client.Query(ctx, in)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return all, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *Store) scanPage(ctx context.Context, op string, in *dynamodb.ScanInput, page storage.PageRequest) ([]item, pagination.StoreKey, error) {
	in.Limit = pageLimit(page.Limit)
	startKey, err := toAttributeKey(page.StartKey)
	if err != nil {
		return nil, nil, err
	}
	in.ExclusiveStartKey = startKey

	var out *dynamodb.ScanOutput
	err = s.call(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = s.client.Scan(ctx, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	next, err := fromAttributeKey(out.LastEvaluatedKey)
	if err != nil {
		return nil, nil, err
	}
	return out.Items, next, nil
}

func (s *Store) scanAll(ctx context.Context, op string, in *dynamodb.ScanInput) ([]item, error) {
	var all []item
	for {
		var out *dynamodb.ScanOutput
		err := s.call(ctx, op, func(ctx context.Context) error {
			var err error
			out, err = s.client.Scan(ctx, in)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return all, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// batchGet loads keys in chunks, resubmitting whatever DynamoDB leaves unprocessed.
func (s *Store) batchGet(ctx context.Context, table string, keys []item) ([]item, error) {
	var all []item
	for start := 0; start < len(keys); start += batchGetLimit {
		end := min(start+batchGetLimit, len(keys))
		request := map[string]types.KeysAndAttributes{table: {Keys: keys[start:end]}}

		for attempt := 0; len(request) > 0; attempt++ {
			if attempt > unprocessedRetries {
				return nil, storage.NewTransientError(fmt.Errorf("dynamo: batch get %s: unprocessed keys after %d attempts", table, attempt))
			}
			if attempt > 0 {
				if err := sleepCtx(ctx, time.Duration(attempt)*50*time.Millisecond); err != nil {
					return nil, err
				}
			}
			var out *dynamodb.BatchGetItemOutput
			err := s.call(ctx, "batch_get_item", func(ctx context.Context) error {
				var err error
				out, err = s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
				return err
			})
			if err != nil {
				return nil, err
			}
			all = append(all, out.Responses[table]...)
			request = out.UnprocessedKeys
		}
	}
	return all, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
