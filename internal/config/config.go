package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Version is the compiled-in release identifier returned by /health.
const Version = "1.4.0"

// Config holds all environment-driven settings for the service.
type Config struct {
	Env               string
	Port              string
	AppSecretKey      string
	MongoURI          string
	MongoDB           string
	Auth0Domain       string
	Auth0ClientID     string
	Auth0ClientSecret string
	Auth0Audience     string
	Auth0Namespace    string
	RootUserEmail     string
	RootUserPassword  string
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Env:               getEnv("GO_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		AppSecretKey:      os.Getenv("APP_SECRET_KEY"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "indieneer"),
		Auth0Domain:       os.Getenv("AUTH0_DOMAIN"),
		Auth0ClientID:     os.Getenv("AUTH0_CLIENT_ID"),
		Auth0ClientSecret: os.Getenv("AUTH0_CLIENT_SECRET"),
		Auth0Audience:     os.Getenv("AUTH0_AUDIENCE"),
		Auth0Namespace:    getEnv("AUTH0_NAMESPACE", "https://indieneer.com"),
		RootUserEmail:     os.Getenv("ROOT_USER_EMAIL"),
		RootUserPassword:  os.Getenv("ROOT_USER_PASSWORD"),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "test"
}

// AllowedOrigins returns the CORS origin whitelist for the current environment.
func (c *Config) AllowedOrigins() []string {
	switch c.Env {
	case "production":
		return []string{"http://indieneer.com"}
	case "staging":
		return []string{"http://*.indieneer.com"}
	default:
		return []string{"http://localhost:3000"}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
