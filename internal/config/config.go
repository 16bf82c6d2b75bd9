package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Бэкенды хранилища документов
const (
	BackendPostgres      = "postgres"
	BackendElasticsearch = "elasticsearch"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Elasticsearch ElasticsearchConfig
	Cache         CacheConfig
	Log           LogConfig
	Worker        WorkerConfig
	Discovery     DiscoveryConfig
	Location      LocationConfig
	Auth          AuthConfig
	Wishlist      WishlistConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
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
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type CacheConfig struct {
	PlaceCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	SessionIdleTTL    time.Duration
	JanitorInterval   time.Duration
}

type DiscoveryConfig struct {
	RadiusMeters float64
	PageSize     int
	Backend      string
	Collection   string
}

type LocationConfig struct {
	Timeout         time.Duration
	HighAccuracy    bool
	MaxAge          time.Duration
	FallbackEnabled bool
	FallbackLat     float64
	FallbackLon     float64
	IPGeoBaseURL    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type WishlistConfig struct {
	WriteRetries int
	RetryBackoff time.Duration
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// без .env работаем только на переменных окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
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
		Elasticsearch: ElasticsearchConfig{
			Addresses: parseList(viper.GetString("ES_ADDRESSES")),
			Username:  viper.GetString("ES_USERNAME"),
			Password:  viper.GetString("ES_PASSWORD"),
		},
		Cache: CacheConfig{
			PlaceCacheTTL: time.Duration(viper.GetInt("PLACE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			SessionIdleTTL:    time.Duration(viper.GetInt("SESSION_IDLE_TTL")) * time.Second,
			JanitorInterval:   time.Duration(viper.GetInt("SESSION_JANITOR_INTERVAL")) * time.Second,
		},
		Discovery: DiscoveryConfig{
			RadiusMeters: viper.GetFloat64("DISCOVERY_RADIUS_M"),
			PageSize:     viper.GetInt("DISCOVERY_PAGE_SIZE"),
			Backend:      viper.GetString("DISCOVERY_BACKEND"),
			Collection:   viper.GetString("DISCOVERY_COLLECTION"),
		},
		Location: LocationConfig{
			Timeout:         time.Duration(viper.GetInt("LOCATION_TIMEOUT_MS")) * time.Millisecond,
			HighAccuracy:    viper.GetBool("LOCATION_HIGH_ACCURACY"),
			MaxAge:          time.Duration(viper.GetInt("LOCATION_MAX_AGE")) * time.Second,
			FallbackEnabled: viper.GetBool("LOCATION_FALLBACK_ENABLED"),
			FallbackLat:     viper.GetFloat64("LOCATION_FALLBACK_LAT"),
			FallbackLon:     viper.GetFloat64("LOCATION_FALLBACK_LON"),
			IPGeoBaseURL:    viper.GetString("IPGEO_BASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			TokenTTL:  time.Duration(viper.GetInt("JWT_TOKEN_TTL")) * time.Second,
			Issuer:    viper.GetString("JWT_ISSUER"),
		},
		Wishlist: WishlistConfig{
			WriteRetries: viper.GetInt("WISHLIST_WRITE_RETRIES"),
			RetryBackoff: time.Duration(viper.GetInt("WISHLIST_RETRY_BACKOFF_MS")) * time.Millisecond,
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults - значения по умолчанию, если не заданы
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Cache.PlaceCacheTTL == 0 {
		c.Cache.PlaceCacheTTL = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "place-discovery-sessions"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.SessionIdleTTL == 0 {
		c.Worker.SessionIdleTTL = 30 * time.Minute
	}
	if c.Worker.JanitorInterval == 0 {
		c.Worker.JanitorInterval = time.Minute
	}
	if c.Discovery.RadiusMeters == 0 {
		c.Discovery.RadiusMeters = 10000
	}
	if c.Discovery.PageSize == 0 {
		c.Discovery.PageSize = 20
	}
	if c.Discovery.Backend == "" {
		c.Discovery.Backend = BackendPostgres
	}
	if c.Discovery.Collection == "" {
		c.Discovery.Collection = "places"
	}
	if c.Location.Timeout == 0 {
		c.Location.Timeout = 10000 * time.Millisecond
	}
	if !viper.IsSet("LOCATION_HIGH_ACCURACY") {
		c.Location.HighAccuracy = true
	}
	if c.Location.FallbackLat == 0 && c.Location.FallbackLon == 0 {
		c.Location.FallbackLat = 13.0246
		c.Location.FallbackLon = 77.7626
	}
	if c.Location.IPGeoBaseURL == "" {
		c.Location.IPGeoBaseURL = "http://ip-api.com"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "place-discovery"
	}
	if c.Wishlist.WriteRetries == 0 {
		c.Wishlist.WriteRetries = 3
	}
	if c.Wishlist.RetryBackoff == 0 {
		c.Wishlist.RetryBackoff = 100 * time.Millisecond
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		c.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	if c.Discovery.RadiusMeters <= 0 {
		return fmt.Errorf("DISCOVERY_RADIUS_M must be positive, got %v", c.Discovery.RadiusMeters)
	}
	if c.Discovery.PageSize <= 0 {
		return fmt.Errorf("DISCOVERY_PAGE_SIZE must be positive, got %d", c.Discovery.PageSize)
	}
	switch c.Discovery.Backend {
	case BackendPostgres, BackendElasticsearch:
	default:
		return fmt.Errorf("unknown DISCOVERY_BACKEND %q", c.Discovery.Backend)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
