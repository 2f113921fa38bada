package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	RecordStore RecordStoreConfig
	JWT         JWTConfig
	ObjectStore ObjectStoreConfig
	Mail        MailConfig
	Redis       RedisConfig
	Cron        CronConfig
}

type ServerConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	SiteURL     string `env:"SITE_URL" envDefault:"http://localhost:5173"`
	BodyLimitMB int    `env:"BODY_LIMIT_MB" envDefault:"4"`
}

type DatabaseConfig struct {
	URL          string `env:"DATABASE_URL"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
}

// RecordStoreConfig selects where entity records live: the local database ("gorm")
// or a remote service gateway ("remote").
type RecordStoreConfig struct {
	Driver     string        `env:"RECORD_STORE" envDefault:"gorm"`
	GatewayURL string        `env:"RECORD_GATEWAY_URL"`
	GatewayKey string        `env:"RECORD_GATEWAY_KEY"`
	Timeout    time.Duration `env:"RECORD_GATEWAY_TIMEOUT" envDefault:"10s"`
}

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production.
const DevJWTSecret = "tripnest-dev-secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=production")

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

type ObjectStoreConfig struct {
	Driver   string `env:"OBJECT_STORE" envDefault:"s3"`
	Reencode bool   `env:"IMAGE_REENCODE" envDefault:"false"`
	// Only used when Reencode is on.
	ImageQuality      int `env:"IMAGE_QUALITY" envDefault:"85"`
	ImageMaxDimension int `env:"IMAGE_MAX_DIMENSION" envDefault:"2560"`

	Bucket        string `env:"S3_BUCKET" envDefault:"travel-images"`
	Region        string `env:"S3_REGION" envDefault:"auto"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	R2AccountID   string `env:"R2_ACCOUNT_ID"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
}

type MailConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT" envDefault:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	From        string `env:"SMTP_FROM" envDefault:"TripNest <noreply@tripnest.travel>"`
	AgencyInbox string `env:"AGENCY_INBOX"`
}

// Enabled reports whether outgoing mail is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CronConfig struct {
	LeadDigest string `env:"LEAD_DIGEST_CRON" envDefault:"0 19 * * *"`
}

func Load() (*Config, error) {
	godotenv.Load() // .env is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == DevJWTSecret {
		if cfg.Server.Production() {
			return nil, ErrMissingJWTSecret
		}
		log.Printf("JWT_SECRET not set, using the development secret")
		cfg.JWT.Secret = DevJWTSecret
	}
	return cfg, nil
}

func (s ServerConfig) Production() bool {
	return s.Env == "production"
}
