package config

import (
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// load resolves API keys from the secrets file first and the environment
// second. A missing or unreadable secrets file only means every key falls
// through to the environment.
func (s *SecretsConfig) load() {
	values := readSecretsFile(s.File)

	s.GeminiAPIKey = lookupSecret(values, "GEMINI_API_KEY")
	s.DeepgramAPIKey = lookupSecret(values, "DEEPGRAM_API_KEY")
	s.AdminPassword = lookupSecret(values, "ADMIN_PASSWORD")
	s.AdminUser = lookupSecret(values, "ADMIN_USER")
	if s.AdminUser == "" {
		s.AdminUser = "admin"
	}
}

func readSecretsFile(path string) map[string]any {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		log.Printf("[warn] ignoring secrets file %s: %v", path, err)
		return nil
	}
	return values
}

func lookupSecret(values map[string]any, key string) string {
	if v, ok := values[key].(string); ok && v != "" {
		return v
	}
	return os.Getenv(key)
}
