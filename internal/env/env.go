package env

import (
	"os"
	"strings"

	"github.com/doda2025-team8/model-service/internal/envvar"
)

// Environment is the deployment environment the process runs in.
type Environment string

const (
	// Development renders colored, human-oriented logs.
	Development Environment = "development"

	// Production renders JSON logs.
	Production Environment = "production"
)

// FromEnv reads the environment from MODEL_SERVICE_ENV, defaulting to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.ModelServiceEnv))
}

// Parse converts a raw value into an Environment.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}
