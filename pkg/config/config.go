package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/alimgiray/demography/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Query    QueryConfig
	Proxy    ProxyConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type QueryConfig struct {
	DefaultPageSize int
}

// ProxyConfig drives the demography proxy and its TLS client
type ProxyConfig struct {
	Port               string
	CentralServiceURL  string
	CAFile             string
	InsecureSkipVerify bool
	Timeout            int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./persons.db"),
		},
		Query: QueryConfig{
			DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 20),
		},
		Proxy: ProxyConfig{
			Port:               getEnv("PROXY_PORT", "8090"),
			CentralServiceURL:  strings.TrimRight(getEnv("CENTRAL_SERVICE_URL", "https://localhost:18085/api"), "/"),
			CAFile:             getEnv("PROXY_CA_FILE", ""),
			InsecureSkipVerify: getEnvAsBool("PROXY_INSECURE_SKIP_VERIFY", false),
			Timeout:            getEnvAsInt("PROXY_TIMEOUT", 10),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
