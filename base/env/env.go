package env

import (
	"os"
)

// PodName example: k8ssta-transfer-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: transfer-api
func AppName() string {
	return os.Getenv("APP_NAME")
}

// Or returns the value of the environment variable key, or fallback if unset
func Or(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
