package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ihsearch/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Storage: structures.StorageConfig{Driver: structures.StorageDynamo},
		Dynamo: structures.DynamoConfig{
			Region:          "us-west-2",
			InfluencerTable: "InfluencerTable",
			MetricsTable:    "MetricsTable",
			PostTable:       "PostTable",
			Timeout:         10 * time.Second,
		},
		Pagination: structures.PaginationConfig{DefaultLimit: 50},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *structures.Config)
	}{
		{"empty host", func(c *structures.Config) { c.WebServer.Host = "" }},
		{"zero port", func(c *structures.Config) { c.WebServer.Port = 0 }},
		{"empty log level", func(c *structures.Config) { c.Logger.Level = "" }},
		{"invalid log level", func(c *structures.Config) { c.Logger.Level = "verbose" }},
		{"unknown driver", func(c *structures.Config) { c.Storage.Driver = "sqlite" }},
		{"dynamo without region", func(c *structures.Config) { c.Dynamo.Region = "" }},
		{"dynamo without tables", func(c *structures.Config) { c.Dynamo.PostTable = "" }},
		{"memory snapshot without interval", func(c *structures.Config) {
			c.Storage.Driver = structures.StorageMemory
			c.Memory = structures.MemoryConfig{FilePath: "/tmp/store.zst"}
		}},
		{"cache without size", func(c *structures.Config) { c.Cache = structures.CacheConfig{Enabled: true} }},
		{"negative default limit", func(c *structures.Config) { c.Pagination.DefaultLimit = -1 }},
		{"max limit below default", func(c *structures.Config) { c.Pagination.MaxLimit = 10 }},
		{"negative max limit", func(c *structures.Config) { c.Pagination.MaxLimit = -1 }},
		{"unknown snapshot compression", func(c *structures.Config) {
			c.Storage.Driver = structures.StorageMemory
			c.Memory = structures.MemoryConfig{FilePath: "/tmp/store.zst", SaveInterval: time.Minute, Compression: "ultra"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, NewCnfValidator(c).Validate())
		})
	}
}

func TestConfigValidator_MemoryWithoutSnapshot(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = structures.StorageMemory
	c.Dynamo = structures.DynamoConfig{}
	assert.NoError(t, NewCnfValidator(c).Validate())

	c.Memory = structures.MemoryConfig{FilePath: "/tmp/store.zst", SaveInterval: time.Minute, Compression: "best"}
	c.Pagination.MaxLimit = 500
	assert.NoError(t, NewCnfValidator(c).Validate())
}
