package internal

import (
	"context"
	"fmt"

	"ihsearch/internal/providers"
	"ihsearch/internal/storage"
	"ihsearch/internal/storage/dynamo"
	"ihsearch/internal/storage/memory"
	"ihsearch/internal/structures"
)

// NewStorage selects the backend named by storage.driver.
func NewStorage(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (storage.StoreInterface, error) {
	switch conf.Storage.Driver {
	case structures.StorageDynamo:
		ctx, cancel := context.WithTimeout(context.Background(), conf.Dynamo.Timeout)
		defer cancel()
		store, err := dynamo.New(ctx, conf.Dynamo, logger, metrics)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeStore, "Using DynamoDB storage in %s", conf.Dynamo.Region)
		return store, nil
	case structures.StorageMemory:
		store, err := memory.New(conf.Memory, logger, metrics)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeStore, "Using in-memory storage")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
