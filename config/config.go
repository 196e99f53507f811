package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Competitor data backends.
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

type Config struct {
	Env         string
	Port        string
	CorsOrigins []string

	CompetitorSource       string
	CompetitorCSVPath      string
	CompetitorFetchTimeout time.Duration
	CompetitorCacheTTL     time.Duration

	// DefaultOccupancyRate prices single-room bookings, which carry no
	// occupancy rate of their own.
	DefaultOccupancyRate int

	RabbitMQURL     string
	AllocationQueue string

	Log LogConfig
}

type LogConfig struct {
	Level  string
	Format string
	Output string
	File   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("COMPETITOR_SOURCE", SourceCSV)
	v.SetDefault("COMPETITOR_CSV_PATH", "historical.csv")
	v.SetDefault("COMPETITOR_FETCH_TIMEOUT", "5s")
	v.SetDefault("COMPETITOR_CACHE_TTL", "30s")
	v.SetDefault("DEFAULT_OCCUPANCY_RATE", 40)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ALLOCATION_QUEUE", "room.allocated")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "logs/app.log")
}

// Load reads .env (optional) and the environment into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	source := strings.ToLower(strings.TrimSpace(v.GetString("COMPETITOR_SOURCE")))
	if source != SourceMySQL {
		source = SourceCSV
	}
	occupancy := v.GetInt("DEFAULT_OCCUPANCY_RATE")
	if occupancy < 0 || occupancy > 100 {
		occupancy = 40
	}
	return Config{
		Env:                    v.GetString("APP_ENV"),
		Port:                   v.GetString("PORT"),
		CorsOrigins:            ParseCorsOrigins(v.GetString("CORS_ORIGINS")),
		CompetitorSource:       source,
		CompetitorCSVPath:      v.GetString("COMPETITOR_CSV_PATH"),
		CompetitorFetchTimeout: durationOr(v.GetDuration("COMPETITOR_FETCH_TIMEOUT"), 5*time.Second),
		CompetitorCacheTTL:     durationOr(v.GetDuration("COMPETITOR_CACHE_TTL"), 30*time.Second),
		DefaultOccupancyRate:   occupancy,
		RabbitMQURL:            strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		AllocationQueue:        v.GetString("ALLOCATION_QUEUE"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
	}
}

// ParseCorsOrigins splits a comma list. Empty input allows every origin.
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
