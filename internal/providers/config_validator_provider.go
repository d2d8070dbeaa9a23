package providers

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"

	"ihsearch/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	switch cv.conf.Storage.Driver {
	case structures.StorageDynamo:
		d := cv.conf.Dynamo
		if d.Region == "" {
			return errors.New("invalid config: dynamodb.region is required")
		}
		if d.InfluencerTable == "" || d.MetricsTable == "" || d.PostTable == "" {
			return errors.New("invalid config: dynamodb table names are required")
		}
	case structures.StorageMemory:
		if cv.conf.Memory.FilePath != "" && cv.conf.Memory.SaveInterval <= 0 {
			return errors.New("invalid config: memory.saveInterval must be positive when filePath is set")
		}
		switch cv.conf.Memory.Compression {
		case "", "fastest", "default", "better", "best":
		default:
			return fmt.Errorf("invalid config: unknown memory.compression %q", cv.conf.Memory.Compression)
		}
	}

	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return errors.New("invalid config: cache.size must be positive when cache is enabled")
	}
	if cv.conf.Pagination.DefaultLimit < 0 {
		return errors.New("invalid config: pagination.defaultLimit must not be negative")
	}
	if p := cv.conf.Pagination; p.MaxLimit < 0 || (p.MaxLimit > 0 && p.DefaultLimit > p.MaxLimit) {
		return errors.New("invalid config: pagination.maxLimit must be positive and not below defaultLimit")
	}
	return nil
}
