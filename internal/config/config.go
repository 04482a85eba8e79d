package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	Env          string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxWorkers   int

	// Upload share configuration
	BaseUploadPath    string
	PublicBaseURL     string
	MaxUploadSize     int64
	UploadMaxWidth    int
	UploadJPEGQuality int

	// Legacy database configuration
	UseDatabase      bool
	DBDriver         string
	DBDSN            string
	DBSchema         string
	DBTable          string
	DBSeriesColumn   string
	DBNumberColumn   string
	DBCustomerColumn string
	DBDateColumn     string
	DBSeriesFilter   string

	// Cache configuration
	QueryCacheTTL time.Duration // zero disables the query cache
	ImageIndexTTL time.Duration

	// Upload mirror configuration
	S3Endpoint        string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Region          string
	S3Prefix          string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Get the executable directory
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
	}

	// Determine project root directory
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	// Load .env file if it exists
	if err := godotenv.Load(envPath); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading .env file. Using environment variables.")
		} else {
			log.Println("Loaded environment variables from current directory .env file")
		}
	} else {
		log.Printf("Loaded environment variables from %s", envPath)
	}

	config := FromEnv()

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// FromEnv builds the configuration from the current environment without touching .env files
func FromEnv() *Config {
	return &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 3000),
		Env:          getEnvString("APP_ENV", "prod"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 4),

		// Upload share configuration
		BaseUploadPath:    getEnvString("BASE_UPLOAD_PATH", `\\10.0.0.20\abr\publico\Documentos\Upload_Sistema`),
		PublicBaseURL:     getEnvString("PUBLIC_BASE_URL", "/api/uploads"),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 50)) << 20,
		UploadMaxWidth:    getEnvInt("UPLOAD_MAX_WIDTH", 1280),
		UploadJPEGQuality: getEnvInt("UPLOAD_JPEG_QUALITY", 80),

		// Legacy database configuration
		UseDatabase:      getEnvBool("USE_DATABASE", true),
		DBDriver:         getEnvString("DB_DRIVER", "odbc"),
		DBDSN:            os.Getenv("DB_DSN"),
		DBSchema:         getEnvString("DB_SCHEMA", "GCFDTA"),
		DBTable:          getEnvString("DB_TABLE", "GCF030"),
		DBSeriesColumn:   getEnvString("DB_COL_SERIES", "GCF030SER"),
		DBNumberColumn:   getEnvString("DB_COL_NUMBER", "GCF030NNF"),
		DBCustomerColumn: getEnvString("DB_COL_CUSTOMER", "GCF030NCL"),
		DBDateColumn:     getEnvString("DB_COL_DATE", "GCF030DEM"),
		DBSeriesFilter:   getEnvString("DB_SERIES_FILTER", "4"),

		// Cache configuration
		QueryCacheTTL: time.Duration(getEnvInt("QUERY_CACHE_TTL_MS", 15000)) * time.Millisecond,
		ImageIndexTTL: time.Duration(getEnvInt("IMAGE_INDEX_TTL_MS", 60000)) * time.Millisecond,

		// Upload mirror configuration
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnvString("S3_REGION", "us-east-1"),
		S3Prefix:          os.Getenv("S3_PREFIX"),
	}
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	// Check if the legacy database is reachable at all
	if config.UseDatabase && config.DBDSN == "" {
		log.Println("Warning: USE_DATABASE is enabled but DB_DSN is empty. Every query will fall back to the image index.")
	}

	// Check if the upload share exists
	if _, err := os.Stat(config.BaseUploadPath); err != nil {
		log.Printf("Warning: upload path %s is not accessible: %v", config.BaseUploadPath, err)
	}

	// Check if the mirror is half configured
	if config.S3Bucket == "" && (config.S3AccessKeyID != "" || config.S3Endpoint != "") {
		log.Println("Warning: S3 credentials provided without S3_BUCKET. Upload mirroring is disabled.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration gets a duration such as "30s" from an environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
