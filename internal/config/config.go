package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/trip-atlas/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Geocoder GeocoderConfig
	Atlas    AtlasConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	AtlasCacheTTL time.Duration
	LabelCacheTTL time.Duration
	JobTTL        time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	MaxBatchSize  int
}

type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout int
	Zoom           int
}

// AtlasConfig - параметры конвейера атласа по умолчанию;
// запрос может переопределить любой из них
type AtlasConfig struct {
	EpsilonMeters float64
	MinPoints     int
	Limit         int
	CanvasWidth   int
	CanvasHeight  int
	Theme         string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AtlasCacheTTL: time.Duration(viper.GetInt("ATLAS_CACHE_TTL")) * time.Second,
			LabelCacheTTL: time.Duration(viper.GetInt("LABEL_CACHE_TTL")) * time.Second,
			JobTTL:        time.Duration(viper.GetInt("JOB_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			MaxBatchSize:  viper.GetInt("WORKER_MAX_BATCH_SIZE"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			RequestTimeout: viper.GetInt("GEOCODER_REQUEST_TIMEOUT"),
			Zoom:           viper.GetInt("GEOCODER_ZOOM"),
		},
		Atlas: AtlasConfig{
			EpsilonMeters: viper.GetFloat64("ATLAS_EPSILON_METERS"),
			MinPoints:     viper.GetInt("ATLAS_MIN_POINTS"),
			Limit:         viper.GetInt("ATLAS_LIMIT"),
			CanvasWidth:   viper.GetInt("ATLAS_CANVAS_WIDTH"),
			CanvasHeight:  viper.GetInt("ATLAS_CANVAS_HEIGHT"),
			Theme:         viper.GetString("ATLAS_THEME"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.AtlasCacheTTL == 0 {
		cfg.Cache.AtlasCacheTTL = time.Hour
	}
	if cfg.Cache.LabelCacheTTL == 0 {
		cfg.Cache.LabelCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.JobTTL == 0 {
		cfg.Cache.JobTTL = 24 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "atlas-render-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.MaxBatchSize == 0 {
		cfg.Worker.MaxBatchSize = 10
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "trip-atlas/1.0"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}
	if cfg.Geocoder.Zoom == 0 {
		cfg.Geocoder.Zoom = 10
	}
	if cfg.Atlas.EpsilonMeters == 0 {
		cfg.Atlas.EpsilonMeters = domain.DefaultEpsilonMeters
	}
	if cfg.Atlas.MinPoints == 0 {
		cfg.Atlas.MinPoints = domain.DefaultMinPoints
	}
	if cfg.Atlas.Limit == 0 {
		cfg.Atlas.Limit = domain.DefaultLimit
	}
	if cfg.Atlas.CanvasWidth == 0 {
		cfg.Atlas.CanvasWidth = domain.DefaultCanvasWidth
	}
	if cfg.Atlas.CanvasHeight == 0 {
		cfg.Atlas.CanvasHeight = domain.DefaultCanvasHeight
	}
	if cfg.Atlas.Theme == "" {
		cfg.Atlas.Theme = "dark"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// AtlasOptions - опции атласа из конфигурации
func (c *Config) AtlasOptions() domain.AtlasOptions {
	return domain.AtlasOptions{
		EpsilonMeters: c.Atlas.EpsilonMeters,
		MinPoints:     c.Atlas.MinPoints,
		Limit:         c.Atlas.Limit,
		CanvasWidth:   c.Atlas.CanvasWidth,
		CanvasHeight:  c.Atlas.CanvasHeight,
		Theme:         c.Atlas.Theme,
	}
}
