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
	defaultPort          = "8080"
	defaultVinDecodeURL  = "https://vpic.nhtsa.dot.gov/api/vehicles/decodevin"
	defaultRenderTimeout = 30 * time.Second
	defaultHTTPTimeout   = 20 * time.Second
	defaultShopName      = "Bodyshop Work Order"
	defaultSessionTTL    = 12 * time.Hour
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env             string
	Port            string
	BaseURL         string
	AnalysisBaseURL string
	VinDecodeURL    string
	ChromePath      string
	RenderTimeout   time.Duration
	HTTPTimeout     time.Duration
	ShopName        string
	NodeID          int64
	SessionTTL      time.Duration

	// Optional integrations, disabled when empty
	DatabaseURL      string
	DriveCredentials string
	DriveFolderID    string
}

// LoadEnv loads .env outside production. Values in .env override the process environment.
func LoadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}

	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
}

// FromEnv builds the configuration from environment variables
func FromEnv() Config {
	port := strings.TrimPrefix(getEnv("PORT", defaultPort), ":")

	cfg := Config{
		Env:              getEnv("ENV", "development"),
		Port:             port,
		BaseURL:          strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
		VinDecodeURL:     strings.TrimRight(getEnv("VIN_DECODE_URL", defaultVinDecodeURL), "/"),
		ChromePath:       os.Getenv("CHROME_PATH"),
		RenderTimeout:    getSeconds("RENDER_TIMEOUT_SECONDS", defaultRenderTimeout),
		HTTPTimeout:      getSeconds("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout),
		ShopName:         getEnv("SHOP_NAME", defaultShopName),
		NodeID:           getInt("NODE_ID", 1),
		SessionTTL:       getSeconds("SESSION_TTL_SECONDS", defaultSessionTTL),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DriveCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:    os.Getenv("DRIVE_FOLDER_ID"),
	}

	// The analysis backend is served by this process unless pointed elsewhere
	cfg.AnalysisBaseURL = strings.TrimRight(getEnv("ANALYSIS_BASE_URL", cfg.BaseURL), "/")
	return cfg
}

// DriveEnabled reports whether PDF export to Google Drive is configured
func (c Config) DriveEnabled() bool {
	return c.DriveCredentials != "" && c.DriveFolderID != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getSeconds(key string, fallback time.Duration) time.Duration {
	n := getInt(key, 0)
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
