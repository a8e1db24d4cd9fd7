// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	UploadDir     string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables and returns a validated
// Config. Every variable has a default: AUTOMANI_LISTEN_ADDR (127.0.0.1:3000),
// AUTOMANI_DB_PATH (automani.db), AUTOMANI_UPLOAD_DIR (uploads),
// AUTOMANI_ADMIN_USERNAME (admin), AUTOMANI_ADMIN_PASSWORD (automani2024).
// The admin credentials seed the first admin account on an empty database;
// setting either to an empty string is an error.
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:3000"
	if v, ok := os.LookupEnv("AUTOMANI_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "automani.db"
	if v, ok := os.LookupEnv("AUTOMANI_DB_PATH"); ok {
		dbPath = v
	}

	uploadDir := "uploads"
	if v, ok := os.LookupEnv("AUTOMANI_UPLOAD_DIR"); ok {
		uploadDir = v
	}

	adminUsername := "admin"
	if v, ok := os.LookupEnv("AUTOMANI_ADMIN_USERNAME"); ok {
		if v == "" {
			return nil, fmt.Errorf("AUTOMANI_ADMIN_USERNAME must not be empty")
		}
		adminUsername = v
	}

	adminPassword := "automani2024"
	if v, ok := os.LookupEnv("AUTOMANI_ADMIN_PASSWORD"); ok {
		if v == "" {
			return nil, fmt.Errorf("AUTOMANI_ADMIN_PASSWORD must not be empty")
		}
		adminPassword = v
	}

	return &Config{
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		UploadDir:     uploadDir,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
	}, nil
}
