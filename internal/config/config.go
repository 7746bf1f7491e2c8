// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database and server
// settings are required; email settings are optional and the
// application degrades to log-only delivery when they are absent.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	ResendAPIKey string // Resend API key; empty disables real email delivery
	AdminEmail   string // recipient of reservation alerts; empty skips them
	ContactInbox string // destination inbox for contact-form leads
	ContactFrom  string // verified sender address for contact-form emails
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		ContactInbox: getenv("CONTACT_INBOX", "hola@goodenergycol.com"),
		ContactFrom:  getenv("CONTACT_FROM", "Good Energy Web <onboarding@resend.dev>"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
