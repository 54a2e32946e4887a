package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBackendURL_PrimeraVariableNoVaciaGana(t *testing.T) {
	v := viper.New()
	v.Set("API_URL", "https://api.example.test/")
	v.Set("NEXT_PUBLIC_API_URL", "https://otro.example.test")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", cfg.Backend.BaseURL, "se elimina la barra final")
}

func TestResolveBackendURL_IgnoraLiteralesUndefinedYNull(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_API_URL", "undefined")
	v.Set("NEXT_PUBLIC_BACKEND_API", "null")
	v.Set("NEXT_PUBLIC_BACKEND_API_URL", "https://backend.example.test")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.test", cfg.Backend.BaseURL)
}

func TestLoad_SinBackendRetornaError(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.ErrorIs(t, err, ErrMissingBackendURL)
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_API_URL", "https://backend.example.test")
	v.Set("BACKEND_TIMEOUT", "30")
	v.Set("HTTP_PORT", "9090")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "NGN", cfg.Gateway.Currency)
	assert.Contains(t, cfg.DB.ConnectionString(), "sslmode=disable")
}
