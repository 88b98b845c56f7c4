package config

import (
	"os"

	"github.com/spf13/viper"
)

// DefaultAdminKey is used when ADMIN_KEY is not configured.
const DefaultAdminKey = "changeme"

type Config struct {
	Server   Server   `mapstructure:"server"`
	Postgres Postgres `mapstructure:"postgres"`
	Admin    Admin    `mapstructure:"admin"`
	Storage  Storage  `mapstructure:"storage"`
	Email    Email    `mapstructure:"email"`
	Log      Log      `mapstructure:"log"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

type Postgres struct {
	DSN        string `mapstructure:"dsn"`
	AutoCreate bool   `mapstructure:"autocreate"`
}

type Admin struct {
	Key string `mapstructure:"key"`
}

// Storage describes where mirrored images go. Bucket is the bucket written to,
// PublicBucket is the bucket segment of the public CDN URL.
type Storage struct {
	Driver       string `mapstructure:"driver"` // "minio" or "s3"
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	Bucket       string `mapstructure:"bucket"`
	PublicBucket string `mapstructure:"public_bucket"`
	Region       string `mapstructure:"region"`
	CDNHost      string `mapstructure:"cdn_host"`
}

type Email struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

var envBindings = map[string]string{
	"server.port":           "PORT",
	"postgres.dsn":          "DATABASE_URL",
	"postgres.autocreate":   "DATABASE_AUTO_CREATE",
	"admin.key":             "ADMIN_KEY",
	"storage.driver":        "STORAGE_DRIVER",
	"storage.endpoint":      "S3_ENDPOINT",
	"storage.access_key":    "AWS_ACCESS_KEY_ID",
	"storage.secret_key":    "AWS_SECRET_ACCESS_KEY",
	"storage.bucket":        "S3_BUCKET",
	"storage.public_bucket": "S3_PUBLIC_BUCKET",
	"storage.region":        "AWS_REGION",
	"storage.cdn_host":      "CDN_HOST",
	"email.api_key":         "MAILERSEND_API_KEY",
	"email.from":            "NOTIFY_FROM",
	"email.to":              "NOTIFY_TO",
	"log.level":             "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.autocreate", false)
	v.SetDefault("admin.key", DefaultAdminKey)
	v.SetDefault("storage.driver", "minio")
	v.SetDefault("storage.endpoint", "bucket.poehali.dev")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "files")
	v.SetDefault("storage.public_bucket", "bucket")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.cdn_host", "cdn.poehali.dev")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.from", "")
	v.SetDefault("email.to", "")
	v.SetDefault("log.level", "info")
}

// InitConfig reads the yaml file at filename when it exists and overlays the
// environment on top of it. An empty filename means environment only.
func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			v.SetConfigFile(filename)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsingDefaultAdminKey reports whether the insecure fallback key is active.
func (c *Config) UsingDefaultAdminKey() bool {
	return c.Admin.Key == DefaultAdminKey
}
