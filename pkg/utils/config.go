package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Media    MediaConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	BcryptCost      int
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	MigrateOnStart  bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// RedisConfig is optional; an empty Addr disables the availability cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AMQPConfig is optional; an empty URL disables order events.
type AMQPConfig struct {
	URL   string
	Queue string
}

type MediaConfig struct {
	Root        string
	URL         string
	MaxUploadMB int64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_NAME", "airport-api")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "30s")
	viper.SetDefault("AMQP_QUEUE", "order.created")
	viper.SetDefault("MEDIA_ROOT", "media/")
	viper.SetDefault("MEDIA_URL", "/media/")
	viper.SetDefault("MAX_UPLOAD_MB", 5)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("MIGRATE_ON_START", true)

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			BcryptCost:      viper.GetInt("BCRYPT_COST"),
			CORSOrigins:     splitList(viper.GetString("CORS_ORIGINS")),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
			MigrateOnStart:  viper.GetBool("MIGRATE_ON_START"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Media: MediaConfig{
			Root:        viper.GetString("MEDIA_ROOT"),
			URL:         viper.GetString("MEDIA_URL"),
			MaxUploadMB: viper.GetInt64("MAX_UPLOAD_MB"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
