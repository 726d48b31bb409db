package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const ENV_PORT = "PORT"
const ENV_DB_HOST = "DB_HOST"
const ENV_DB_PORT = "DB_PORT"
const ENV_DB_USER = "DB_USER"
const ENV_DB_PASSWORD = "DB_PASSWORD"
const ENV_DB_NAME = "DB_NAME"
const ENV_DB_SSLMODE = "DB_SSLMODE"
const ENV_DATABASE = "DATABASE" // sqlite path, used when DB_HOST is empty
const ENV_LOG_LEVEL = "LOG_LEVEL"
const ENV_LOGSTASH_ADDR = "LOGSTASH_ADDR"
const ENV_SLOW_REQUEST = "SLOW_REQUEST_THRESHOLD"

// Media storage
const ENV_MEDIA_STORAGE = "MEDIA_STORAGE" // "disk" or "s3"
const ENV_MEDIA_DIR = "MEDIA_DIR"
const ENV_MEDIA_URL_PREFIX = "MEDIA_URL_PREFIX"
const ENV_S3_ENDPOINT = "S3_ENDPOINT"
const ENV_S3_ACCESS_KEY = "S3_ACCESS_KEY"
const ENV_S3_SECRET_KEY = "S3_SECRET_KEY"
const ENV_S3_BUCKET = "S3_BUCKET"
const ENV_S3_USE_SSL = "S3_USE_SSL"
const ENV_S3_PUBLIC_URL = "S3_PUBLIC_URL"

// Tracing
const ENV_OTEL_ENDPOINT = "OTEL_EXPORTER_OTLP_ENDPOINT"
const ENV_OTEL_SERVICE_NAME = "OTEL_SERVICE_NAME"

const MEDIA_STORAGE_DISK = "disk"
const MEDIA_STORAGE_S3 = "s3"

type Config struct {
	Port     string         `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Media    MediaConfig    `yaml:"media"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level                string        `yaml:"level"`
	LogstashAddr         string        `yaml:"logstash_addr"`
	SlowRequestThreshold time.Duration `yaml:"slow_request_threshold"`
}

type MediaConfig struct {
	Storage   string   `yaml:"storage"`
	Dir       string   `yaml:"dir"`
	URLPrefix string   `yaml:"url_prefix"`
	S3        S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Postgres reports whether a remote postgres database is configured.
// Without DB_HOST the service falls back to a local sqlite file.
func (d DatabaseConfig) Postgres() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func Default() *Config {
	return &Config{
		Port: ":9090",
		Database: DatabaseConfig{
			Port:       "5432",
			SSLMode:    "require",
			SQLitePath: "microblog.db",
		},
		Log: LogConfig{
			Level:                "info",
			SlowRequestThreshold: 2 * time.Second,
		},
		Media: MediaConfig{
			Storage:   MEDIA_STORAGE_DISK,
			Dir:       "media_files",
			URLPrefix: "/static/media_files/",
			S3: S3Config{
				Endpoint: "localhost:9000",
				Bucket:   "media",
			},
		},
		Tracing: TracingConfig{
			ServiceName: "microblog-api",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, ENV_PORT)
	setString(&c.Database.Host, ENV_DB_HOST)
	setString(&c.Database.Port, ENV_DB_PORT)
	setString(&c.Database.User, ENV_DB_USER)
	setString(&c.Database.Password, ENV_DB_PASSWORD)
	setString(&c.Database.Name, ENV_DB_NAME)
	setString(&c.Database.SSLMode, ENV_DB_SSLMODE)
	setString(&c.Database.SQLitePath, ENV_DATABASE)
	setString(&c.Log.Level, ENV_LOG_LEVEL)
	setString(&c.Log.LogstashAddr, ENV_LOGSTASH_ADDR)
	setString(&c.Media.Storage, ENV_MEDIA_STORAGE)
	setString(&c.Media.Dir, ENV_MEDIA_DIR)
	setString(&c.Media.URLPrefix, ENV_MEDIA_URL_PREFIX)
	setString(&c.Media.S3.Endpoint, ENV_S3_ENDPOINT)
	setString(&c.Media.S3.AccessKey, ENV_S3_ACCESS_KEY)
	setString(&c.Media.S3.SecretKey, ENV_S3_SECRET_KEY)
	setString(&c.Media.S3.Bucket, ENV_S3_BUCKET)
	setString(&c.Media.S3.PublicURL, ENV_S3_PUBLIC_URL)
	setString(&c.Tracing.Endpoint, ENV_OTEL_ENDPOINT)
	setString(&c.Tracing.ServiceName, ENV_OTEL_SERVICE_NAME)

	if v := os.Getenv(ENV_S3_USE_SSL); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ENV_S3_USE_SSL, err)
		}
		c.Media.S3.UseSSL = useSSL
	}
	if v := os.Getenv(ENV_SLOW_REQUEST); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ENV_SLOW_REQUEST, err)
		}
		c.Log.SlowRequestThreshold = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Media.Storage {
	case MEDIA_STORAGE_DISK:
		if c.Media.Dir == "" {
			return fmt.Errorf("media dir should be set for disk storage: %s", ENV_MEDIA_DIR)
		}
	case MEDIA_STORAGE_S3:
		if c.Media.S3.Bucket == "" {
			return fmt.Errorf("bucket should be set for s3 storage: %s", ENV_S3_BUCKET)
		}
	default:
		return fmt.Errorf("unknown media storage %q", c.Media.Storage)
	}
	if !c.Database.Postgres() && c.Database.SQLitePath == "" {
		return fmt.Errorf("either %s or %s should be set", ENV_DB_HOST, ENV_DATABASE)
	}
	return nil
}

func (c *Config) String() string {
	db := "sqlite:" + c.Database.SQLitePath
	if c.Database.Postgres() {
		db = "postgres:" + c.Database.Host
	}
	return fmt.Sprintf("Port=%s, Database=%s, MediaStorage=%s, LogLevel=%s",
		c.Port, db, c.Media.Storage, c.Log.Level)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
