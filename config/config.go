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
	seedGeo        = pflag.Bool("seed-geo", false, "Seeds the country and city tables from geo.json")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

// SeedGeo reports whether the server was started with --seed-geo.
func SeedGeo() bool {
	return *seedGeo
}

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
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors", "host_cors")
	v.BindEnv("host.backend_url", "host_backend_url")
	v.BindEnv("host.frontend_url", "host_frontend_url")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("token.validity_days", "token_validity_days")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender_address", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("google.enabled", "google_enabled")
	v.BindEnv("google.client_id", "google_client_id")
	v.BindEnv("google.client_secret", "google_client_secret")
	v.BindEnv("google.redirect_url", "google_redirect_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.backend_url", "http://localhost:8080")
	v.SetDefault("host.frontend_url", "http://localhost:3000")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("token.validity_days", 2)
	v.SetDefault("security.rate_limit", 20)
	v.SetDefault("google.enabled", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("token.validity_days") <= 0 {
		return errors.New("token.validity_days must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("mail.sender_address") == "" {
		return errors.New("no mail sender address provided")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("no mail host provided")
	}

	if v.GetBool("google.enabled") {
		if v.GetString("google.client_id") == "" {
			return errors.New("google client id can't be empty")
		}
		if v.GetString("google.client_secret") == "" {
			return errors.New("google client secret can't be empty")
		}
		if v.GetString("google.redirect_url") == "" {
			return errors.New("google redirect url can't be empty")
		}
	} else {
		fmt.Println("[WARNING]: Google login is disabled. Users can only register with an email address")
	}

	return nil
}
