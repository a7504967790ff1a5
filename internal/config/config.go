package config

import (
	"os"
	"strconv"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Addr         string
	CORSOrigin   string
	StoreBackend string
	DataFile     string
	DBURL        string
	BodyLimit    int
}

func Load() Config {
	return Config{
		Addr:         ":" + getenv("PORT", "3000"),
		CORSOrigin:   getenv("CORS_ORIGIN", "*"),
		StoreBackend: getenv("STORE_BACKEND", StoreBackendFile),
		DataFile:     getenv("DATA_FILE", "data/data.json"),
		DBURL:        getenv("DB_URL", ""),
		// 10MB default, big enough for inline 5MB images after base64 growth
		BodyLimit: getenvInt("BODY_LIMIT_BYTES", 10*1024*1024),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
