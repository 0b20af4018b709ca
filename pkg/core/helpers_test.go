package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile_MissingFileIsIgnored(t *testing.T) {
	err := loadEnvFile(".env.does-not-exist")

	require.NoErrorf(t, err, `loading a missing env file should be a no-op: %v`, err)
}

func TestLoadEnvFile_SetsValues(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("ENROLLMENT_TEST_KEY=from-file\n"), 0o600))

	t.Setenv("ENROLLMENT_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("ENROLLMENT_TEST_KEY"))

	err := loadEnvFile(file)
	require.NoError(t, err)

	assert.Equal(t, "from-file", os.Getenv("ENROLLMENT_TEST_KEY"))
}

func TestLoadEnv_NoFilesPresent(t *testing.T) {
	t.Chdir(t.TempDir())

	err := LoadEnv("os")

	require.NoErrorf(t, err, "LoadEnv should not return an error. Got %v", err)
}

func TestGetEnv_KeyValue(t *testing.T) {
	t.Setenv("xyz", "abc")

	result := getEnv("xyz", "development")

	expected := "abc"

	assert.Equalf(t, expected, result, `getEnv("xyz", "development) = %q; expected: %q`, result, expected)
}

func TestGetEnv_FallbackValue(t *testing.T) {
	t.Setenv("xyz", "")

	result := getEnv("xyz", "development")

	expected := "development"

	assert.Equalf(t, expected, result, `getEnv("xyz", "development") = %q; expected: %q`, result, expected)
}

func TestIsProd(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.IsProd())

	cfg := NewConfig(WithEnvironment("production"))
	assert.True(t, cfg.IsProd())

	cfg = NewConfig()
	assert.False(t, cfg.IsProd())
}
