package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the report service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	LogLevel            string
	DatabaseURL         string
	DatabaseMaxConns    int
	DatabaseMaxLifetime time.Duration
	RedisURL            string
	NATSURL             string
	NATSSubject         string
	JWTSecret           string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	InstitutionName     string
	InstitutionSubtitle string
	ReportTimeout       time.Duration
	DepartmentCacheTTL  time.Duration
	ReportRateLimit     int
	ReportRateWindow    time.Duration
	PDFCompression      bool
	PDFFontRegular      string
	PDFFontBold         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// CloudinaryEnabled reports whether attachment public IDs can be resolved.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Load reads configuration values from IQAC_* environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("IQAC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "IQAC Report API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.max_conns", 16)
	v.SetDefault("database.max_lifetime", "30m")
	v.SetDefault("nats.subject", "iqac.reports.generated")
	v.SetDefault("cloudinary.folder", "iqac/documents")
	v.SetDefault("institution.name", "Institute of Technology")
	v.SetDefault("institution.subtitle", "Internal Quality Assurance Cell")
	v.SetDefault("report.timeout", "60s")
	v.SetDefault("report.department_cache_ttl", "5m")
	v.SetDefault("report.rate_limit", 10)
	v.SetDefault("report.rate_window", "1m")
	v.SetDefault("report.pdf_compression", true)

	timeout, err := parseDuration(v, "report.timeout")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration(v, "report.department_cache_ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "report.rate_window")
	if err != nil {
		return Config{}, err
	}
	maxLifetime, err := parseDuration(v, "database.max_lifetime")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		LogLevel:            strings.ToLower(v.GetString("log.level")),
		DatabaseURL:         v.GetString("database.url"),
		DatabaseMaxConns:    v.GetInt("database.max_conns"),
		DatabaseMaxLifetime: maxLifetime,
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		NATSSubject:         v.GetString("nats.subject"),
		JWTSecret:           v.GetString("jwt.secret"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		InstitutionName:     v.GetString("institution.name"),
		InstitutionSubtitle: v.GetString("institution.subtitle"),
		ReportTimeout:       timeout,
		DepartmentCacheTTL:  cacheTTL,
		ReportRateLimit:     v.GetInt("report.rate_limit"),
		ReportRateWindow:    rateWindow,
		PDFCompression:      v.GetBool("report.pdf_compression"),
		PDFFontRegular:      v.GetString("report.pdf_font_regular"),
		PDFFontBold:         v.GetString("report.pdf_font_bold"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ReportRateLimit <= 0 {
		cfg.ReportRateLimit = 10
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
