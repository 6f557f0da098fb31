package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	VonageApplicationID   string
	VonagePrivateKeyPath  string
	VonageSignatureSecret string
	VonageBaseURL         string
	VerifyPayloadHash     bool
	RCSSenderID           string

	// Rate limiting for the outbound trigger endpoint. Zero disables it.
	SendRateLimitRPS   float64
	SendRateLimitBurst int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "3000"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		VonageApplicationID:   strings.TrimSpace(getEnv("VONAGE_APPLICATION_ID", "")),
		VonagePrivateKeyPath:  strings.TrimSpace(getEnv("VONAGE_PRIVATE_KEY", "")),
		VonageSignatureSecret: getEnv("VONAGE_API_SIGNATURE_SECRET", ""),
		VonageBaseURL:         getEnv("VONAGE_API_BASE_URL", "https://api.nexmo.com"),
		VerifyPayloadHash:     getEnvAsBool("VONAGE_VERIFY_PAYLOAD_HASH", false),
		RCSSenderID:           strings.TrimSpace(getEnv("RCS_SENDER_ID", "")),
		SendRateLimitRPS:      getEnvAsFloat("SEND_RATE_LIMIT_RPS", 0),
		SendRateLimitBurst:    getEnvAsInt("SEND_RATE_LIMIT_BURST", 5),
	}
}

// Validate reports every required setting that is missing.
func (c *Config) Validate() error {
	var errs []error
	if c.VonageApplicationID == "" {
		errs = append(errs, errors.New("config: VONAGE_APPLICATION_ID is required"))
	}
	if c.VonagePrivateKeyPath == "" {
		errs = append(errs, errors.New("config: VONAGE_PRIVATE_KEY is required"))
	}
	if c.VonageSignatureSecret == "" {
		errs = append(errs, errors.New("config: VONAGE_API_SIGNATURE_SECRET is required"))
	}
	if c.RCSSenderID == "" {
		errs = append(errs, errors.New("config: RCS_SENDER_ID is required"))
	}
	if c.SendRateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("config: SEND_RATE_LIMIT_RPS must not be negative, got %v", c.SendRateLimitRPS))
	}
	return errors.Join(errs...)
}

// ReadPrivateKey loads the PEM private key referenced by VONAGE_PRIVATE_KEY.
func (c *Config) ReadPrivateKey() ([]byte, error) {
	data, err := os.ReadFile(c.VonagePrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("config: read private key: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("config: private key file %s is empty", c.VonagePrivateKeyPath)
	}
	return data, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
