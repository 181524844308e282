package config

import (
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	Port       string
	GinMode    string
	UploadDir  string
	CORSOrigin []string

	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	Mail     MailConfig
	Enquiry  EnquiryConfig
}

type DatabaseConfig struct {
	Driver       string // mysql | sqlite
	URL          string
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
	Seed         bool
}

type AuthConfig struct {
	JWTSecret          string
	JWTExpirationHours int
	AdminEmail         string
	AdminPassword      string
}

type LoggingConfig struct {
	Level      string
	Format     string // json | text
	Output     string // stdout | file
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type MailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	NotifyEmail string
}

// Enabled reports whether SMTP credentials are complete.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port > 0 && m.Username != "" && m.Password != ""
}

type EnquiryConfig struct {
	RatePerMinute int
	RateBurst     int
}

// Load reads the configuration from the environment. The caller is expected
// to have loaded .env beforehand.
func Load() *AppConfig {
	return &AppConfig{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigin: getEnvSlice("CORS_ORIGINS", []string{"*"}),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			URL:          firstEnv("MYSQL_URL", "DATABASE_URL"),
			User:         getEnv("DB_USER", "root"),
			Password:     getEnv("DB_PASS", ""),
			Host:         getEnv("DB_HOST", "127.0.0.1"),
			Port:         getEnv("DB_PORT", "3306"),
			Name:         getEnv("DB_NAME", "travel_db"),
			SQLitePath:   getEnv("SQLITE_PATH", "travel.db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", true),
			Seed:         getEnvBool("DB_SEED", true),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
			AdminEmail:         getEnv("ADMIN_EMAIL", "admin@travel.local"),
			AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/travel-backend.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 28),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Mail: MailConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromName:    getEnv("SMTP_FROM_NAME", "Travel Desk"),
			NotifyEmail: getEnv("ENQUIRY_NOTIFY_EMAIL", ""),
		},
		Enquiry: EnquiryConfig{
			RatePerMinute: getEnvInt("ENQUIRY_RATE_PER_MINUTE", 30),
			RateBurst:     getEnvInt("ENQUIRY_RATE_BURST", 5),
		},
	}
}

func getEnv(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvSlice(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
