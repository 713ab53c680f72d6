package config

import (
	"os"
	"strings"
)

// Environment is the deployment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV. CI=true wins over ENV; unknown values fall
// back to Development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps a name such as "prod" or "Production" to an Environment.
func ParseEnvironment(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "test", "testing":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// RequiresSecrets reports whether default credentials are refused.
func (e Environment) RequiresSecrets() bool {
	return e == Production || e == CI
}
