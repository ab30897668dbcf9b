package utils

import "os"

// GetEnv returns the environment variable key, or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
