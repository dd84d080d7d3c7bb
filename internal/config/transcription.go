package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTranscriptionConfigPath is read when TRANSCRIBER_CONFIG is unset. A missing
// file at this path means built-in defaults.
const DefaultTranscriptionConfigPath = "config/transcription.yaml"

// TranscriptionDefaults are the fixed parameters sent with every transcription request.
type TranscriptionDefaults struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	Language       string  `yaml:"language"`
	ResponseFormat string  `yaml:"response_format"`
	Temperature    float32 `yaml:"temperature"`
	BaseURL        string  `yaml:"base_url,omitempty"`

	GeminiModel   string `yaml:"gemini_model,omitempty"`
	GeminiBaseURL string `yaml:"gemini_base_url,omitempty"`
}

// DefaultTranscription returns the parameters the upload page has always used:
// whisper-1, Spanish, verbose_json, temperature 0.
func DefaultTranscription() TranscriptionDefaults {
	return TranscriptionDefaults{
		Provider:       "openai",
		Model:          "whisper-1",
		Language:       "es",
		ResponseFormat: "verbose_json",
		Temperature:    0,
		GeminiModel:    "gemini-2.5-flash",
	}
}

// LoadTranscriptionDefaults loads defaults from a YAML file. Fields absent from the file
// keep their built-in values. A missing file at the default path is not an error.
func LoadTranscriptionDefaults(configPath string) (*TranscriptionDefaults, error) {
	defaults := DefaultTranscription()

	configPath = os.ExpandEnv(configPath)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && configPath == DefaultTranscriptionConfigPath {
			defaults.applyEnv()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	defaults.applyEnv()
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &defaults, nil
}

// SaveTranscriptionDefaults writes defaults to a YAML file.
func SaveTranscriptionDefaults(defaults *TranscriptionDefaults, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (d *TranscriptionDefaults) applyEnv() {
	if baseURL := getEnvOrDefault("OPENAI_BASE_URL", ""); baseURL != "" {
		d.BaseURL = baseURL
	}
}

// Validate checks the defaults.
func (d *TranscriptionDefaults) Validate() error {
	if d.Model == "" {
		return fmt.Errorf("model is required")
	}
	if err := ValidateResponseFormat(d.ResponseFormat); err != nil {
		return err
	}
	return ValidateTemperature(d.Temperature)
}

// ModelFor returns the model name sent to the given provider.
func (d *TranscriptionDefaults) ModelFor(provider string) string {
	if provider == "gemini" {
		return d.GeminiModel
	}
	return d.Model
}
