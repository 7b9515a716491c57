// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/otlp2parquet/cli/internal/meta"
)

// DefaultEnvFile is loaded when present and no explicit file is given.
const DefaultEnvFile = ".env"

// HostEnvKey constructs a prefixed environment variable name.
// Example: HostEnvKey("CLI_NAME") returns "OTLP2PARQUET_CLI_NAME".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a prefixed environment variable, trimmed.
// Example: GetHostEnv("CLI_NAME") returns the value of OTLP2PARQUET_CLI_NAME.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// LoadEnvFile loads variables from path without overriding ones already set
// in the process environment. An empty path loads DefaultEnvFile if it
// exists. It returns the file that was loaded, or "" when none was.
func LoadEnvFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return "", nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return "", errors.Wrapf(err, "load env file %s", path)
	}
	return path, nil
}

// FlagValue scans raw arguments for a string flag before parsing, accepting
// both "--flag value" and "--flag=value".
func FlagValue(args []string, name string) string {
	flag := "--" + name
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value
		}
	}
	return ""
}
