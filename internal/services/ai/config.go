// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string

	// Model names per capability.
	ChatModel          string
	VisionModel        string
	TranscriptionModel string

	// Sampling. The portal's assistant runs at temperature 0 so answers
	// stay anchored to the patient record.
	Temperature float32

	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.ChatModel == "" {
		return fmt.Errorf("chat model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ChatModel:          "gpt-4o",
		VisionModel:        "gpt-4o",
		TranscriptionModel: "whisper-1",
		Temperature:        0,
		Timeout:            2 * time.Minute,
	}
}
