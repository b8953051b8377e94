package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds every knob the blog needs at runtime.
// Secrets (session secret, SMTP password, admin hash) must come from the
// config file or the environment; there are no in-code defaults for them.
type AppConfig struct {
	AppPort string
	GinMode string
	GinPath string

	// Blog presentation parameters rendered into every page.
	BlogTitle   string
	BlogTagline string
	AboutText   string

	// Single admin identity. AdminPasswordHash is a bcrypt hash.
	AdminUsername     string
	AdminPasswordHash string

	// Session cookie signing
	SessionSecret   string
	SessionTTLHours int

	PostsPerPage int

	// Owner notification mail
	OwnerEmail   string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      bool

	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Redis for session revocation (optional; in-memory fallback when unset)
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot.
// Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Optional .env file for local development; missing file is fine.
	_ = godotenv.Load()

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set via config/config.json or environment")
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD_HASH must be configured")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func applyDefaults(c *AppConfig) {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	defInt := func(i *int, v int) {
		if *i == 0 {
			*i = v
		}
	}

	def(&c.AppPort, "8080")
	def(&c.GinMode, "release")
	def(&c.GinPath, "logs/gin.log")
	def(&c.BlogTitle, "My Blog")
	def(&c.BlogTagline, "Notes and essays")
	def(&c.AboutText, "A personal blog.")
	defInt(&c.SessionTTLHours, 24)
	defInt(&c.PostsPerPage, 5)
	def(&c.SMTPFromName, c.BlogTitle)
	defInt(&c.SMTPPort, 465)
	def(&c.DBHost, "127.0.0.1")
	def(&c.DBPort, "3306")
	def(&c.DBUser, "blog")
	def(&c.DBName, "blog")
	defInt(&c.RedisPort, 6379)
	defInt(&c.RateLimitPerMinute, 20)
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	def(&c.LogLevel, "info")
	def(&c.LogPath, "logs/app.log")
	defInt(&c.LogMaxSizeMB, 100)
	defInt(&c.LogMaxBackups, 3)
	defInt(&c.LogMaxAgeDays, 7)
}

// loadJSONConfig reads a JSON file into out if present.
// A missing file is silently ignored; invalid JSON is an error.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	// Accept both top-level keys and the legacy flat "params" wrapper.
	if params, ok := raw["params"].(map[string]any); ok {
		raw = params
	}

	getString := func(key string) string {
		if s, ok := raw[key].(string); ok {
			return s
		}
		return ""
	}
	getInt := func(key string) int {
		switch v := raw[key].(type) {
		case float64:
			return int(v)
		case string:
			n, _ := strconv.Atoi(v)
			return n
		}
		return 0
	}
	getBool := func(key string) bool {
		b, _ := raw[key].(bool)
		return b
	}

	set := func(dst *string, key string) {
		if v := getString(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := getInt(key); v != 0 {
			*dst = v
		}
	}

	set(&out.AppPort, "app_port")
	set(&out.GinMode, "gin_mode")
	set(&out.GinPath, "gin_log_path")
	set(&out.BlogTitle, "blog_title")
	set(&out.BlogTagline, "blog_tagline")
	set(&out.AboutText, "about_text")
	set(&out.AdminUsername, "admin_user")
	set(&out.AdminPasswordHash, "admin_password_hash")
	set(&out.SessionSecret, "session_secret")
	setInt(&out.SessionTTLHours, "session_ttl_hours")
	setInt(&out.PostsPerPage, "no_of_posts")
	set(&out.OwnerEmail, "user_email")
	set(&out.SMTPHost, "smtp_host")
	setInt(&out.SMTPPort, "smtp_port")
	set(&out.SMTPUsername, "smtp_username")
	set(&out.SMTPPassword, "smtp_password")
	set(&out.SMTPFrom, "smtp_from")
	set(&out.SMTPFromName, "smtp_from_name")
	if _, ok := raw["smtp_tls"]; ok {
		out.SMTPTLS = getBool("smtp_tls")
	}
	set(&out.DatabaseURI, "database_uri")
	set(&out.DBHost, "db_host")
	set(&out.DBPort, "db_port")
	set(&out.DBUser, "db_user")
	set(&out.DBPassword, "db_password")
	set(&out.DBName, "db_name")
	set(&out.RedisHost, "redis_host")
	setInt(&out.RedisPort, "redis_port")
	setInt(&out.RedisDB, "redis_db")
	set(&out.RedisPassword, "redis_password")
	setInt(&out.RateLimitPerMinute, "rate_limit_per_minute")
	if v := getString("allowed_origins"); v != "" {
		out.AllowedOrigins = splitAndTrim(v)
	}
	set(&out.LogLevel, "log_level")
	set(&out.LogPath, "log_path")
	setInt(&out.LogMaxSizeMB, "log_max_size_mb")
	setInt(&out.LogMaxBackups, "log_max_backups")
	setInt(&out.LogMaxAgeDays, "log_max_age_days")
	if _, ok := raw["log_compress"]; ok {
		out.LogCompress = getBool("log_compress")
	}

	return nil
}

func applyEnvOverrides(c *AppConfig) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}

	set(&c.AppPort, "APP_PORT")
	set(&c.GinMode, "GIN_MODE")
	set(&c.GinPath, "GIN_LOG_PATH")
	set(&c.BlogTitle, "BLOG_TITLE")
	set(&c.BlogTagline, "BLOG_TAGLINE")
	set(&c.AboutText, "ABOUT_TEXT")
	set(&c.AdminUsername, "ADMIN_USERNAME")
	set(&c.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	set(&c.SessionSecret, "SESSION_SECRET")
	setInt(&c.SessionTTLHours, "SESSION_TTL_HOURS")
	setInt(&c.PostsPerPage, "POSTS_PER_PAGE")
	set(&c.OwnerEmail, "OWNER_EMAIL")
	set(&c.SMTPHost, "SMTP_HOST")
	setInt(&c.SMTPPort, "SMTP_PORT")
	set(&c.SMTPUsername, "SMTP_USERNAME")
	set(&c.SMTPPassword, "SMTP_PASSWORD")
	set(&c.SMTPFrom, "SMTP_FROM")
	set(&c.SMTPFromName, "SMTP_FROM_NAME")
	setBool(&c.SMTPTLS, "SMTP_TLS")
	set(&c.DatabaseURI, "DATABASE_URI")
	set(&c.DBHost, "DB_HOST")
	set(&c.DBPort, "DB_PORT")
	set(&c.DBUser, "DB_USER")
	set(&c.DBPassword, "DB_PASSWORD")
	set(&c.DBName, "DB_NAME")
	set(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	set(&c.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
