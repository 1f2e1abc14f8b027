package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "voyago.yaml"

// File holds optional settings read from voyago.yaml in the working
// directory or the data folder. Everything in it has a sensible default,
// so a missing or unparseable file is silently ignored.
type File struct {
	Routes struct {
		// Landing route per role, e.g. CLIENT: /client
		Landing map[string]string `yaml:"landing"`
	} `yaml:"routes"`
}

var _ FileConfig = File{}

// GetLandingRoute returns the route a user of the given role lands on after
// login, or when a role guard turns them away from somebody else's screen.
func (f File) GetLandingRoute(role string) string {
	if route, ok := f.Routes.Landing[role]; ok {
		return route
	}
	switch role {
	case "ADMIN":
		return "/admin"
	default:
		return "/client"
	}
}

func LoadFile() File {
	var f File
	for _, dir := range []string{".", EnvVars{}.GetDataFolder()} {
		data, err := os.ReadFile(filepath.Join(dir, configFileName))
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &f); err == nil {
			break
		}
	}
	return f
}
