package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/nurhusenm/Devtracker/logging"
)

type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
}

// Load reads .env if present and falls back to defaults, matching the
// environment variables the service has always used.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Infof("No .env file loaded: %v", err)
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "devtracker"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
