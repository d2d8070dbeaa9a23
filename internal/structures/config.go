package structures

import "time"

const (
	StorageDynamo = "dynamodb"
	StorageMemory = "memory"
)

type Server struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required|uint|min:1"`
	BasePath string `yaml:"basePath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required|in:dynamodb,memory"`
}

type DynamoConfig struct {
	Region          string        `yaml:"region"`
	Endpoint        string        `yaml:"endpoint"`
	InfluencerTable string        `yaml:"influencerTable"`
	MetricsTable    string        `yaml:"metricsTable"`
	PostTable       string        `yaml:"postTable"`
	Timeout         time.Duration `yaml:"timeout"`
}

type MemoryConfig struct {
	FilePath     string        `yaml:"filePath"`
	SaveInterval time.Duration `yaml:"saveInterval"`
	Compression  string        `yaml:"compression" validate:"in:fastest,default,better,best"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Storage    StorageConfig    `yaml:"storage"`
	Dynamo     DynamoConfig     `yaml:"dynamodb" mapstructure:"dynamodb"`
	Memory     MemoryConfig     `yaml:"memory"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Cors       CorsConfig       `yaml:"cors"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
