package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "DEFAULT_PAGE_SIZE", "PROXY_PORT", "PROXY_INSECURE_SKIP_VERIFY"} {
		t.Setenv(key, "")
	}

	require.NoError(t, Load())

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "./persons.db", AppConfig.Database.Path)
	assert.Equal(t, 20, AppConfig.Query.DefaultPageSize)
	assert.Equal(t, "8090", AppConfig.Proxy.Port)
	assert.False(t, AppConfig.Proxy.InsecureSkipVerify)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_PAGE_SIZE", "50")
	t.Setenv("CENTRAL_SERVICE_URL", "https://central.example:8443/api/")
	t.Setenv("PROXY_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("PROXY_TIMEOUT", "not-a-number")

	require.NoError(t, Load())

	assert.Equal(t, "9000", AppConfig.Server.Port)
	assert.Equal(t, 50, AppConfig.Query.DefaultPageSize)
	assert.Equal(t, "https://central.example:8443/api", AppConfig.Proxy.CentralServiceURL)
	assert.True(t, AppConfig.Proxy.InsecureSkipVerify)
	assert.Equal(t, 10, AppConfig.Proxy.Timeout)
}
