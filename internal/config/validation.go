package config

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// responseFormats the transcription endpoint accepts. Only the JSON formats carry
// a text field the service can read.
var responseFormats = []string{"json", "verbose_json"}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateTemperature validates the sampling temperature.
func ValidateTemperature(temperature float32) error {
	if temperature < 0 || temperature > 1 {
		return fmt.Errorf("temperature out of range (must be between 0 and 1)")
	}
	return nil
}

// ValidateResponseFormat validates the requested response format.
func ValidateResponseFormat(format string) error {
	if !lo.Contains(responseFormats, format) {
		return fmt.Errorf("unsupported response_format %q (expected one of %v)", format, responseFormats)
	}
	return nil
}
