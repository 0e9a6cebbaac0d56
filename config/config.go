// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvs      = []string{"development", "production"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.env", "app_env")
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.frontend_url", "host_frontend_url")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.access_ttl", "jwt_access_ttl")
	v.BindEnv("jwt.refresh_ttl", "jwt_refresh_ttl")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("cleanup.interval", "cleanup_interval")
	v.BindEnv("cleanup.confirmation_max_age", "cleanup_confirmation_max_age")

	v.BindEnv("cache.user_lookups", "cache_user_lookups")

	//
	// Defaults
	//
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.ssl.enabled", false)
	v.SetDefault("host.frontend_url", "http://localhost:5173")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("jwt.access_ttl", "5m")
	v.SetDefault("jwt.refresh_ttl", "720h")

	v.SetDefault("cleanup.interval", "1h")
	v.SetDefault("cleanup.confirmation_max_age", "72h")

	v.SetDefault("cache.user_lookups", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validEnvs, v.GetString("app.env")) {
		return errors.New("app.env must be development or production")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be bigger than 0")
	}

	if v.GetDuration("jwt.refresh_ttl") <= 0 {
		return errors.New("jwt.refresh_ttl must be bigger than 0")
	}

	if v.GetDuration("cleanup.interval") <= 0 {
		return errors.New("cleanup.interval must be bigger than 0")
	}

	// Registration in production dispatches real confirmation mail, so the
	// mail settings stop being optional there
	if IsProduction() {
		if v.GetString("mail.host") == "" {
			return errors.New("mail.host can't be empty in production")
		}
		if v.GetInt("mail.port") <= 0 {
			return errors.New("invalid mail.port provided")
		}
		if v.GetString("mail.sender") == "" {
			return errors.New("mail.sender can't be empty in production")
		}
		if v.GetString("mail.password") == "" {
			return errors.New("mail.password can't be empty in production")
		}
		if v.GetString("host.frontend_url") == "" {
			return errors.New("host.frontend_url can't be empty in production")
		}
	}

	return nil
}

func IsProduction() bool {
	return v.GetString("app.env") == "production"
}
