package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration loaded from environment
// variables, an optional .env file and an optional YAML file.
type Config struct {
	ServerPort     string
	DBDriver       string
	MySQLDSN       string
	SQLitePath     string
	DBMaxOpenConns int
	DBMaxIdleConns int
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	UploadDir      string
	CORSOrigins    []string
	SwaggerHost    string
	BcryptCost     int
	ResetDB        bool
	Log            LogConfig
}

// LogConfig controls the optional rotated log file.
type LogConfig struct {
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_driver", DriverMySQL)
	v.SetDefault("mysql_dsn", "user:password@tcp(localhost:3306)/fotolab?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true")
	v.SetDefault("sqlite_path", "fotolab.db")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_password", "")
	v.SetDefault("session_secret", "change-me")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("cors_origins", "")
	v.SetDefault("swagger_host", "")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("reset_db", false)
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size", 128)
	v.SetDefault("log_max_backups", 5)
	v.SetDefault("log_max_age", 16)
	v.SetDefault("log_compress", false)
}

// Load builds Config. Environment variables win over CONFIG_PATH's YAML
// file, which wins over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env") // optional

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("config_path"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		ServerPort:     v.GetString("server_port"),
		DBDriver:       strings.ToLower(v.GetString("db_driver")),
		MySQLDSN:       v.GetString("mysql_dsn"),
		SQLitePath:     v.GetString("sqlite_path"),
		DBMaxOpenConns: v.GetInt("db_max_open_conns"),
		DBMaxIdleConns: v.GetInt("db_max_idle_conns"),
		RedisAddr:      v.GetString("redis_addr"),
		RedisDB:        v.GetInt("redis_db"),
		RedisPass:      v.GetString("redis_password"),
		SessionSecret:  v.GetString("session_secret"),
		SessionTTL:     v.GetDuration("session_ttl"),
		CookieSecure:   v.GetBool("cookie_secure"),
		UploadDir:      v.GetString("upload_dir"),
		CORSOrigins:    splitList(v.GetString("cors_origins")),
		SwaggerHost:    v.GetString("swagger_host"),
		BcryptCost:     v.GetInt("bcrypt_cost"),
		ResetDB:        v.GetBool("reset_db"),
		Log: LogConfig{
			File:       v.GetString("log_file"),
			MaxSize:    v.GetInt("log_max_size"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAge:     v.GetInt("log_max_age"),
			Compress:   v.GetBool("log_compress"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DBDriver != DriverMySQL && c.DBDriver != DriverSQLite {
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range 4..31", c.BcryptCost))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR must not be empty"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
