package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Assets  AssetsConfig
	Secrets SecretsConfig
	App     AppConfig
}

type ServerConfig struct {
	Port        string
	AdminAddr   string
	CORSOrigins []string
}

type StoreConfig struct {
	Backend         string
	CredentialsPath string
	FirebaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Collection      string
}

type AssetsConfig struct {
	StaticDir string
	SiteDir   string
}

type SecretsConfig struct {
	File           string
	GeminiAPIKey   string
	DeepgramAPIKey string
	AdminUser      string
	AdminPassword  string
}

type AppConfig struct {
	Environment string
	GinMode     string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8501"),
			AdminAddr:   getEnv("ADMIN_ADDR", "127.0.0.1:8502"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			Backend:         getEnv("STORE_BACKEND", "firebase"),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "firebase_credentials.json"),
			FirebaseURL:     getEnv("FIREBASE_DB_URL", "https://loga-portfolio-default-rtdb.firebaseio.com"),
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         getEnvAsInt("REDIS_DB", 0),
			Collection:      getEnv("PROJECTS_COLLECTION", "projects"),
		},
		Assets: AssetsConfig{
			StaticDir: getEnv("STATIC_DIR", "static"),
			SiteDir:   getEnv("SITE_DIR", "."),
		},
		Secrets: SecretsConfig{
			File: getEnv("SECRETS_FILE", ".streamlit/secrets.toml"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
	}
	cfg.App.GinMode = getEnv("GIN_MODE", ginModeFor(cfg.App.Environment))
	cfg.Secrets.load()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "firebase", "redis", "memory":
	default:
		return fmt.Errorf("STORE_BACKEND must be firebase, redis or memory, got %q", c.Store.Backend)
	}
	if c.Store.Collection == "" {
		return fmt.Errorf("PROJECTS_COLLECTION is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Assets.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR is required")
	}
	if err := ValidateAdminAddr(c.Server.AdminAddr, c.Secrets.AdminPassword); err != nil {
		return err
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be * or start with http:// or https://", origin)
		}
	}
	if len(c.Server.CORSOrigins) > 1 && slices.Contains(c.Server.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS cannot mix * with explicit origins")
	}
	return nil
}

// ValidateAdminAddr refuses to expose the admin API beyond loopback
// unless a password protects it.
func ValidateAdminAddr(addr, password string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("ADMIN_ADDR %q: %w", addr, err)
	}
	if password != "" || host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("ADMIN_ADDR %q is not a loopback address; set ADMIN_PASSWORD to serve the admin API on it", addr)
}

func ginModeFor(env string) string {
	if env == "production" {
		return "release"
	}
	return "debug"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
