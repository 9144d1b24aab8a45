// File: internal/services/assistant/config.go
package assistant

import "fmt"

type Config struct {
	// Context bounds: how much of the patient record each prompt carries.
	MaxVisits    int
	MaxReports   int
	MaxChatTurns int

	// ReportExcerptRunes caps how much of a report's content is quoted in
	// the prompt.
	ReportExcerptRunes int
}

func (c *Config) Validate() error {
	if c.MaxVisits <= 0 {
		return fmt.Errorf("max_visits must be positive")
	}
	if c.MaxReports <= 0 {
		return fmt.Errorf("max_reports must be positive")
	}
	if c.MaxChatTurns <= 0 {
		return fmt.Errorf("max_chat_turns must be positive")
	}
	if c.ReportExcerptRunes <= 0 {
		return fmt.Errorf("report_excerpt_runes must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxVisits:          3,
		MaxReports:         3,
		MaxChatTurns:       10,
		ReportExcerptRunes: 300,
	}
}
