package common

import (
	"log"
	"os"
)

// CheckEnvVars stops the process early when the ambient AWS credentials the
// identity client needs are missing.
func CheckEnvVars() {
	requiredEnvVars := []string{
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
	}

	for _, envVar := range requiredEnvVars {
		if _, ok := os.LookupEnv(envVar); !ok {
			log.Fatalf("%s environment variable is required and not found", envVar)
		}
	}
}
