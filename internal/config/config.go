package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAdminEmail is the historical designated admin address. The account
// registered or logged in with this email always carries the admin role.
const DefaultAdminEmail = "ininsico@gmail.com"

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	AdminEmail         string
	GoogleAudience     string
	AllowOrigins       []string
	LogstashTCPAddr    string
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketAvatars string
	MinIOBucketImages  string
	MinIOPublicURL     string
	AvatarMaxBytes     int64
	ImageMaxBytes      int64
	FFmpegPath         string
	CatalogCacheTTL    time.Duration
	CatalogCachePolicy string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	tokenTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("TOKEN_TTL", "24h")); err == nil && v > 0 {
		tokenTTL = v
	}

	cacheTTL := 5 * time.Minute
	if v, err := time.ParseDuration(getenv("CATALOG_CACHE_TTL", "5m")); err == nil && v > 0 {
		cacheTTL = v
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        must("DATABASE_URL"),
		JWTSecret:          must("JWT_SECRET"),
		TokenTTL:           tokenTTL,
		AdminEmail:         strings.ToLower(getenv("ADMIN_EMAIL", DefaultAdminEmail)),
		GoogleAudience:     getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:       splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:    getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:      must("MINIO_ENDPOINT"),
		MinIOAccessKey:     must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     must("MINIO_SECRET_KEY"),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketAvatars: getenv("MINIO_BUCKET_AVATARS", "voyago-avatars"),
		MinIOBucketImages:  getenv("MINIO_BUCKET_IMAGES", "voyago-destinations"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		AvatarMaxBytes:     avatarMax,
		ImageMaxBytes:      imageMax,
		FFmpegPath:         getenv("FFMPEG_PATH", "ffmpeg"),
		CatalogCacheTTL:    cacheTTL,
		CatalogCachePolicy: getenv("CATALOG_CACHE_POLICY", "lru"),
	}
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
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
