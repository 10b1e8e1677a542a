// safemap/config/config.go
package config

import (
	"log/slog"
	"os"
)

// JwtKey signs both student session tokens and short-lived join tickets.
var JwtKey []byte

func LoadConfig() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
