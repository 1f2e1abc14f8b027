package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	baseURLEnvVar = "VOYAGO_API_URL"
	appNameVar    = "VOYAGO_APP_NAME"
	folderEnvVar  = "VOYAGO_DATA_DIR"
	timeoutVar    = "VOYAGO_HTTP_TIMEOUT"
)

func init() {
	// Best effort: a missing .env file is the normal case.
	_ = godotenv.Load()
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the base URL of the Voyago REST API
// (e.g. "http://localhost:8081"). All endpoint paths are relative to it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(baseURLEnvVar, "http://localhost:8081")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Voyago")
}

// GetDataFolder returns the directory holding the session file.
func (EnvVars) GetDataFolder() string {
	if folder := GetEnv(folderEnvVar, ""); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".voyago")
}

func (EnvVars) GetHTTPTimeoutSeconds() int {
	v, err := strconv.Atoi(GetEnv(timeoutVar, "30"))
	if err != nil || v <= 0 {
		return 30
	}
	return v
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
