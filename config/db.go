package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travel-backend/models"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// ResolveMySQLDSN prefers MYSQL_URL / DATABASE_URL (mysql:// form or a raw
// driver DSN) and falls back to the discrete DB_* settings.
func ResolveMySQLDSN(cfg DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		if strings.HasPrefix(cfg.URL, "mysql://") {
			return mysqlDSNFromURL(cfg.URL)
		}
		return cfg.URL, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
	), nil
}

func dialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	case "mysql", "":
		dsn, err := ResolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
}

// ConnectDatabase opens the pool, migrates and seeds according to cfg.
// SQL statements are logged through w.
func ConnectDatabase(cfg *AppConfig, w logger.Writer) (*gorm.DB, error) {
	d, err := dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(w, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(d, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.Database.Seed {
		if err := SeedDatabase(db, cfg.Auth); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

// Migrate creates or updates every table in parent -> child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.Tables...)
}

// SeedDatabase inserts the reference currencies and the bootstrap admin when
// their tables are empty. It is safe to run on every start.
func SeedDatabase(db *gorm.DB, auth AuthConfig) error {
	var currencyCount int64
	if err := db.Model(&models.Currency{}).Count(&currencyCount).Error; err != nil {
		return err
	}
	if currencyCount == 0 {
		currencies := []models.Currency{
			{Code: "INR", Name: "Indian Rupee", Symbol: "₹", ExchangeRate: 1, IsDefault: true, IsActive: true},
			{Code: "USD", Name: "US Dollar", Symbol: "$", ExchangeRate: 0.012, IsActive: true},
			{Code: "EUR", Name: "Euro", Symbol: "€", ExchangeRate: 0.011, IsActive: true},
			{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ", ExchangeRate: 0.044, IsActive: true},
		}
		if err := db.Create(&currencies).Error; err != nil {
			return fmt.Errorf("seed currencies: %w", err)
		}
	}

	if auth.AdminPassword == "" {
		return nil
	}
	var admin models.Admin
	err := db.Where("username = ?", auth.AdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin = models.Admin{
		FullName: "Administrator",
		Username: auth.AdminEmail,
		Password: string(hash),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
