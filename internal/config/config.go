package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Notify   NotifyConfig
	Log      LogConfig
	Paths    PathsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type NotifyConfig struct {
	WebhookURL string
	RatePerSec int
	Workers    int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type PathsConfig struct {
	MigrationsDir  string
	SeedSkillsFile string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var envKeys = []string{
	"APP_NAME", "APP_ENV", "HTTP_PORT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSL_MODE",
	"DB_CONNECT_TIMEOUT", "DB_POOL_MAX_CONNS", "DB_POOL_MIN_CONNS",
	"DB_POOL_MAX_CONN_LIFETIME", "DB_POOL_MAX_CONN_IDLE_TIME", "DB_POOL_HEALTH_CHECK_PERIOD",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_TTL",
	"JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET", "JWT_ACCESS_EXPIRES_IN", "JWT_REFRESH_EXPIRES_IN",
	"NOTIFY_WEBHOOK_URL", "NOTIFY_RATE_PER_SEC", "NOTIFY_WORKERS",
	"LOG_JSON", "LOG_DEBUG",
	"MIGRATIONS_DIR", "SEED_SKILLS_FILE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", 600*time.Second)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 168*time.Hour)

	v.SetDefault("NOTIFY_RATE_PER_SEC", 5)
	v.SetDefault("NOTIFY_WORKERS", 4)

	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("SEED_SKILLS_FILE", "seeds/skills.yaml")
}

// Load reads the process environment only.
func Load() (Config, error) {
	return LoadFrom(viper.New(), "")
}

// LoadFrom binds env keys on v and, when file is set, merges the YAML file
// underneath them. Keys in the file use the same names as the env vars.
func LoadFrom(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.Notify = NotifyConfig{
		WebhookURL: opt("NOTIFY_WEBHOOK_URL"),
		RatePerSec: v.GetInt("NOTIFY_RATE_PER_SEC"),
		Workers:    v.GetInt("NOTIFY_WORKERS"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Paths = PathsConfig{
		MigrationsDir:  opt("MIGRATIONS_DIR"),
		SeedSkillsFile: opt("SEED_SKILLS_FILE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// IsMissingRequired reports whether err came from absent required keys.
func IsMissingRequired(err error) bool {
	return errors.Is(err, errMissingRequiredEnv)
}
