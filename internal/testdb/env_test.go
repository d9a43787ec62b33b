package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvAppDatabaseURL, "")
	assert.Empty(t, GetTestDatabaseURL())
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv(EnvAppDatabaseURL, "postgres://app@localhost/tasks")
	assert.Equal(t, "postgres://app@localhost/tasks", GetTestDatabaseURL())

	t.Setenv(EnvDatabaseURL, "postgres://test@localhost/tasks_test")
	assert.Equal(t, "postgres://test@localhost/tasks_test", GetTestDatabaseURL())
	assert.True(t, IsIntegrationTestEnvironment())
}

func TestIsCI(t *testing.T) {
	for _, name := range ciEnvVars {
		t.Setenv(name, "")
	}
	assert.False(t, IsCI())

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, IsCI())
}

func TestMaskDatabaseURL(t *testing.T) {
	masked := maskDatabaseURL("postgres://tasks:s3cret@db:5432/tasks")
	assert.NotContains(t, masked, "s3cret")
	assert.Contains(t, masked, "db:5432")
}
