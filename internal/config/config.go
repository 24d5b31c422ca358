package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	JWTSecret     string
	AccessTTLMin  int
	RefreshTTLMin int
}

func Load() Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDSN:         getEnv("DB_DSN", "mall.db"),
		MediaDir:      getEnv("MEDIA_DIR", "./media"),
		LogFile:       getEnv("LOG_FILE", ""),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTLMin:  getEnvInt("ACCESS_TTL_MIN", 15),
		RefreshTTLMin: getEnvInt("REFRESH_TTL_MIN", 60*24),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s access_ttl=%dm refresh_ttl=%dm",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.AccessTTLMin, cfg.RefreshTTLMin)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
