package env

import "os"

// Prefix namespaces every environment variable this service reads.
const Prefix = "MAMMAMIA_"

// Get returns the value of the given environment variable or a fallback.
// The prefixed form wins over the bare one, so MAMMAMIA_LOG_FORMAT
// overrides LOG_FORMAT.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
