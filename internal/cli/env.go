package cli

import "os"

// Environment variables overriding flag defaults.
const (
	EnvConfig   = "LED_GROUP_CONFIG"
	EnvBasePath = "LED_GROUP_BASE_PATH"
)

// GetEnvOrDefault returns the value of key, or def if it is unset. A variable
// set to the empty string counts as set.
func GetEnvOrDefault(key, def string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	return val
}
