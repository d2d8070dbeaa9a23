package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"ihsearch/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("webServer.basePath", "")
	viper.SetDefault("storage.driver", structures.StorageDynamo)
	viper.SetDefault("dynamodb.region", "us-west-2")
	viper.SetDefault("dynamodb.influencerTable", "InfluencerTable")
	viper.SetDefault("dynamodb.metricsTable", "MetricsTable")
	viper.SetDefault("dynamodb.postTable", "PostTable")
	viper.SetDefault("dynamodb.timeout", 10*time.Second)
	viper.SetDefault("memory.saveInterval", time.Minute)
	viper.SetDefault("cache.ttl", 30*time.Second)
	viper.SetDefault("pagination.defaultLimit", 50)
	viper.SetDefault("pagination.maxLimit", 1000)

	viper.BindEnv("logger.level", "IH_LOG_LEVEL")
	viper.BindEnv("storage.driver", "IH_STORAGE_DRIVER")
	viper.BindEnv("dynamodb.region", "AWS_REGION")
	viper.BindEnv("dynamodb.endpoint", "IH_DYNAMODB_ENDPOINT")
	viper.BindEnv("cache.enabled", "IH_CACHE_ENABLED")
	viper.BindEnv("metrics.enabled", "IH_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "InfluencerSearchService"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
