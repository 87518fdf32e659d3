package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverFile     = "file"
)

type Config struct {
	Port            string
	AllowOrigins    []string
	LogstashTCPAddr string

	FavoritesStore   string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	FavoritesFileDir string

	TMDBAPIKey     string
	TMDBAPIURL     string
	TMDBImageURL   string
	TMDBRateLimit  int
	TMDBCacheTTL   time.Duration
	TMDBCacheSize  int
	TMDBCacheRedis bool

	ProfileTokenSecret string
	ProfileTokenTTL    time.Duration

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketPosters string
	MinIOPublicURL     string
	PosterMaxDimension int
	FFMPEGPath         string
}

// PosterMirrorEnabled reports whether enough MinIO settings are present to mirror posters.
func (c Config) PosterMirrorEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != "" && c.MinIOBucketPosters != ""
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	store := strings.ToLower(getenv("FAVORITES_STORE", StoreDriverPostgres))
	switch store {
	case StoreDriverPostgres, StoreDriverRedis, StoreDriverFile:
	default:
		panic("invalid FAVORITES_STORE: " + store)
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		FavoritesStore:   store,
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getInt("REDIS_DB", 0),
		FavoritesFileDir: getenv("FAVORITES_FILE_DIR", "./data/favorites"),

		TMDBAPIKey:     must("TMDB_API_KEY"),
		TMDBAPIURL:     getenv("TMDB_API_URL", "https://api.themoviedb.org/3"),
		TMDBImageURL:   getenv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p"),
		TMDBRateLimit:  getInt("TMDB_RATE_LIMIT", 20),
		TMDBCacheTTL:   getDuration("TMDB_CACHE_TTL", 10*time.Minute),
		TMDBCacheSize:  getInt("TMDB_CACHE_SIZE", 512),
		TMDBCacheRedis: getenv("TMDB_CACHE_REDIS", "false") == "true",

		ProfileTokenSecret: must("PROFILE_TOKEN_SECRET"),
		ProfileTokenTTL:    getDuration("PROFILE_TOKEN_TTL", 365*24*time.Hour),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketPosters: getenv("MINIO_BUCKET_POSTERS", "movieshelf-posters"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		PosterMaxDimension: getInt("POSTER_MAX_DIMENSION", 780),
		FFMPEGPath:         getenv("FFMPEG_PATH", "ffmpeg"),
	}
	if store == StoreDriverPostgres {
		cfg.DatabaseURL = must("DATABASE_URL")
	}
	return cfg
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return d
	}
	return v
}

func getDuration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid duration %s=%q, using %s", k, raw, d)
		return d
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
