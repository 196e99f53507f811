package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-pricing/models"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func baseMySQLConfig() *mysqldrv.Config {
	c := mysqldrv.NewConfig()
	c.Net = "tcp"
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	c := baseMySQLConfig()
	c.User = u.User.Username()
	c.Passwd, _ = u.User.Password()
	c.Addr = net.JoinHostPort(u.Hostname(), port)
	c.DBName = dbName
	for k, vs := range u.Query() {
		if len(vs) == 0 {
			continue
		}
		switch k {
		case "parseTime":
			c.ParseTime = strings.EqualFold(vs[0], "true")
		case "loc":
			if loc, err := time.LoadLocation(vs[0]); err == nil {
				c.Loc = loc
			}
		default:
			c.Params[k] = vs[0]
		}
	}
	return c.FormatDSN(), nil
}

// ResolveMySQLDSN picks MYSQL_URL, then DATABASE_URL, then the DB_* variables.
// The second result is false when nothing database-related is configured.
func ResolveMySQLDSN() (string, bool, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			dsn, err := mysqlDSNFromURL(raw)
			return dsn, true, err
		}
		if _, err := mysqldrv.ParseDSN(raw); err != nil {
			return "", true, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return raw, true, nil
	}
	if os.Getenv("DB_HOST") == "" && os.Getenv("DB_NAME") == "" {
		return "", false, nil
	}

	c := baseMySQLConfig()
	c.User = envOrDefault("DB_USER", "root")
	c.Passwd = os.Getenv("DB_PASS")
	c.Addr = net.JoinHostPort(envOrDefault("DB_HOST", "127.0.0.1"), envOrDefault("DB_PORT", "3306"))
	c.DBName = envOrDefault("DB_NAME", "hotel_pricing")
	return c.FormatDSN(), true, nil
}

// ConnectDatabase opens MySQL through GORM and migrates the competitor table.
func ConnectDatabase(log *slog.Logger) (*gorm.DB, error) {
	dsn, ok, err := ResolveMySQLDSN()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no mysql connection configured (set MYSQL_URL, DATABASE_URL or DB_HOST/DB_NAME)")
	}

	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.AutoMigrate(&models.CompetitorPrice{}); err != nil {
		return nil, err
	}
	return db, nil
}

// CompetitorImporter is the part of the MySQL source used for seeding.
type CompetitorImporter interface {
	Count(ctx context.Context) (int64, error)
	Import(ctx context.Context, records []models.CompetitorPriceRecord) error
}

// SeedCompetitorPrices fills an empty competitor table from the records read
// by load, typically the CSV source.
func SeedCompetitorPrices(ctx context.Context, store CompetitorImporter, load func(context.Context) ([]models.CompetitorPriceRecord, error), log *slog.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("competitor prices already seeded", "count", n)
		return nil
	}
	records, err := load(ctx)
	if err != nil {
		return err
	}
	if err := store.Import(ctx, records); err != nil {
		return err
	}
	log.Info("competitor prices seeded", "count", len(records))
	return nil
}
