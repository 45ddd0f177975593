package config

import (
	"fmt"
	"time"
)

// Retry configuration constants
const (
	// API request retry configuration. Only 5xx and 429 responses are retried.
	APIRequestMaxAttempts = 3
	APIRequestInitialWait = 1 * time.Second
	APIRequestMaxWait     = 10 * time.Second
	APIRequestTimeout     = 30 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Timeout     time.Duration
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	APIRequest RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: RetryConfig{
		MaxAttempts: APIRequestMaxAttempts,
		InitialWait: APIRequestInitialWait,
		MaxWait:     APIRequestMaxWait,
		Timeout:     APIRequestTimeout,
	},
}

// Validate reports whether the retry settings are usable
func (c RetryConfig) Validate() error {
	switch {
	case c.MaxAttempts <= 0:
		return fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	case c.InitialWait <= 0:
		return fmt.Errorf("initial wait must be positive, got %v", c.InitialWait)
	case c.MaxWait < c.InitialWait:
		return fmt.Errorf("max wait %v is below initial wait %v", c.MaxWait, c.InitialWait)
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// Retries returns how many retries follow the first attempt
func (c RetryConfig) Retries() uint64 {
	if c.MaxAttempts <= 1 {
		return 0
	}
	return uint64(c.MaxAttempts - 1)
}
