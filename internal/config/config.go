package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Directory DirectoryConfig
	Search    SearchConfig
	Worker    WorkerConfig
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
	SearchTTL     time.Duration
	DeparturesTTL time.Duration
}

type LogConfig struct {
	Level string
}

// DirectoryConfig points at the external station directory (Rejseplanen).
type DirectoryConfig struct {
	BaseURL        string
	AccessID       string
	Language       string
	RequestTimeout time.Duration
}

type SearchConfig struct {
	MinQueryLength int
	MaxResults     int
	Debounce       time.Duration
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
	MaxDepartures   int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	setDefaults()

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
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchTTL:     viper.GetDuration("CACHE_SEARCH_TTL"),
			DeparturesTTL: viper.GetDuration("CACHE_DEPARTURES_TTL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Directory: DirectoryConfig{
			BaseURL:        viper.GetString("DIRECTORY_BASE_URL"),
			AccessID:       viper.GetString("DIRECTORY_ACCESS_ID"),
			Language:       viper.GetString("DIRECTORY_LANGUAGE"),
			RequestTimeout: viper.GetDuration("DIRECTORY_REQUEST_TIMEOUT"),
		},
		Search: SearchConfig{
			MinQueryLength: viper.GetInt("SEARCH_MIN_QUERY_LENGTH"),
			MaxResults:     viper.GetInt("SEARCH_MAX_RESULTS"),
			Debounce:       viper.GetDuration("SEARCH_DEBOUNCE"),
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			RefreshInterval: viper.GetDuration("WORKER_REFRESH_INTERVAL"),
			MaxDepartures:   viper.GetInt("WORKER_MAX_DEPARTURES"),
		},
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")

	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 20)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", time.Minute)

	viper.SetDefault("CACHE_SEARCH_TTL", 5*time.Minute)
	viper.SetDefault("CACHE_DEPARTURES_TTL", time.Minute)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DIRECTORY_BASE_URL", "https://www.rejseplanen.dk/bin/iphone.exe")
	viper.SetDefault("DIRECTORY_LANGUAGE", "dan")
	viper.SetDefault("DIRECTORY_REQUEST_TIMEOUT", 30*time.Second)

	viper.SetDefault("SEARCH_MIN_QUERY_LENGTH", 2)
	viper.SetDefault("SEARCH_MAX_RESULTS", 10)
	viper.SetDefault("SEARCH_DEBOUNCE", 300*time.Millisecond)

	viper.SetDefault("WORKER_ENABLED", false)
	viper.SetDefault("WORKER_REFRESH_INTERVAL", time.Minute)
	viper.SetDefault("WORKER_MAX_DEPARTURES", 10)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
