package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Dashboard DashboardConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type AppConfig struct {
	// SnapshotPath points to the catalog snapshot JSON the server seeds
	// its in-memory store from. Empty means start with an empty catalog.
	SnapshotPath string
	ExportDir    string
}

type DashboardConfig struct {
	// IncludeToday controls whether trailing 7d/30d ranges include the
	// current day. The default anchors ranges on yesterday so partially
	// recorded days never skew period-over-period comparisons.
	IncludeToday bool
	DefaultRange string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

// Load reads configuration from the environment (and an optional .env file)
// exactly once and returns the shared instance.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_LOG_LEVEL", "info")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("APP_SNAPSHOT_PATH", "")
		viper.SetDefault("APP_EXPORT_DIR", "./data/exports")
		viper.SetDefault("DASHBOARD_INCLUDE_TODAY", false)
		viper.SetDefault("DASHBOARD_DEFAULT_RANGE", "7d")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				LogLevel:       viper.GetString("SERVER_LOG_LEVEL"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			App: AppConfig{
				SnapshotPath: viper.GetString("APP_SNAPSHOT_PATH"),
				ExportDir:    viper.GetString("APP_EXPORT_DIR"),
			},
			Dashboard: DashboardConfig{
				IncludeToday: viper.GetBool("DASHBOARD_INCLUDE_TODAY"),
				DefaultRange: viper.GetString("DASHBOARD_DEFAULT_RANGE"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
		}
	})

	return instance
}
