package envutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostEnv(t *testing.T) {
	t.Setenv("OTLP2PARQUET_REGION", "  eu-west-1 ")
	assert.Equal(t, "OTLP2PARQUET_REGION", HostEnvKey("REGION"))
	assert.Equal(t, "eu-west-1", GetHostEnv("REGION"))
}

func TestLoadEnvFileKeepsProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prod.env")
	require.NoError(t, os.WriteFile(path, []byte("OTLP2PARQUET_TEST_A=file\nOTLP2PARQUET_TEST_B=file\n"), 0o600))
	t.Setenv("OTLP2PARQUET_TEST_A", "process")
	t.Setenv("OTLP2PARQUET_TEST_B", "")
	require.NoError(t, os.Unsetenv("OTLP2PARQUET_TEST_B"))

	loaded, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "process", os.Getenv("OTLP2PARQUET_TEST_A"))
	assert.Equal(t, "file", os.Getenv("OTLP2PARQUET_TEST_B"))
}

func TestLoadEnvFileMissingExplicitFile(t *testing.T) {
	_, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestLoadEnvFileWithoutDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	loaded, err := LoadEnvFile("")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFlagValue(t *testing.T) {
	assert.Equal(t, "prod.env", FlagValue([]string{"--env-file", "prod.env", "create", "aws"}, "env-file"))
	assert.Equal(t, "prod.env", FlagValue([]string{"create", "--env-file=prod.env"}, "env-file"))
	assert.Empty(t, FlagValue([]string{"create", "--", "--env-file", "x"}, "env-file"))
	assert.Empty(t, FlagValue([]string{"--env-file"}, "env-file"))
}
