package config

type Config interface {
	EnvConfig
	FileConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetDataFolder() string
	GetHTTPTimeoutSeconds() int
	GetEnv() string
}

type FileConfig interface {
	GetLandingRoute(role string) string
}

type mainConfig struct {
	EnvVars
	File
}

func New() Config {
	return mainConfig{File: LoadFile()}
}
