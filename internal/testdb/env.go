package testdb

import (
	"os"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/redact"
)

// Environment variables consulted for the test database URL, in order.
const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvAppDatabaseURL = config.EnvPrefix + "_DATABASE_URL"
)

// ciEnvVars are set by the common CI providers.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// GetTestDatabaseURL returns the first non-empty of DATABASE_URL and
// TASKMGR_DATABASE_URL.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvAppDatabaseURL} {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database URL is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// IsCI reports whether the tests run under a CI provider.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// maskDatabaseURL hides credentials in dbURL for failure messages.
func maskDatabaseURL(dbURL string) string {
	return redact.String(dbURL)
}
