// Package compliance adds the medical disclaimers regulators expect
// and keeps an audit trail of compliance-relevant events.
package compliance

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahrie-ai/platform/internal/i18n"
)

// DisclaimerLevel represents the verbosity of the disclaimer.
type DisclaimerLevel string

const (
	DisclaimerShort  DisclaimerLevel = "short"
	DisclaimerMedium DisclaimerLevel = "medium"
	DisclaimerFull   DisclaimerLevel = "full"
)

// ParseDisclaimerLevel maps a config string to a level, defaulting to
// medium.
func ParseDisclaimerLevel(s string) DisclaimerLevel {
	switch DisclaimerLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DisclaimerShort:
		return DisclaimerShort
	case DisclaimerFull:
		return DisclaimerFull
	default:
		return DisclaimerMedium
	}
}

// DisclaimerConfig configures the disclaimer service.
type DisclaimerConfig struct {
	Level            DisclaimerLevel
	Enabled          bool
	FirstMessageOnly bool
}

// DefaultDisclaimerConfig returns sensible defaults.
func DefaultDisclaimerConfig() DisclaimerConfig {
	return DisclaimerConfig{
		Level:   DisclaimerMedium,
		Enabled: true,
	}
}

// DisclaimerService appends localized medical disclaimers to replies.
type DisclaimerService struct {
	audit  *AuditService
	config DisclaimerConfig
}

// NewDisclaimerService creates a new disclaimer service.
func NewDisclaimerService(audit *AuditService, config DisclaimerConfig) *DisclaimerService {
	return &DisclaimerService{
		audit:  audit,
		config: config,
	}
}

// Text returns the disclaimer for the configured level in the given
// language.
func (s *DisclaimerService) Text(lang i18n.Language) string {
	switch s.config.Level {
	case DisclaimerShort:
		return i18n.T("disclaimer_short", lang)
	case DisclaimerFull:
		return i18n.T("disclaimer_full", lang)
	default:
		return i18n.T("disclaimer_medium", lang)
	}
}

// DisclaimerOptions provides context for disclaimer addition.
type DisclaimerOptions struct {
	ConversationID string
	ChatID         int64
	Language       i18n.Language
	IsFirstMessage bool
}

// AddDisclaimer appends the disclaimer to the message if configured.
func (s *DisclaimerService) AddDisclaimer(ctx context.Context, message string, opts DisclaimerOptions) string {
	if !s.config.Enabled {
		return message
	}
	if s.config.FirstMessageOnly && !opts.IsFirstMessage {
		return message
	}

	disclaimer := s.Text(opts.Language)
	if strings.Contains(message, disclaimer) {
		return message
	}

	result := fmt.Sprintf("%s\n\n_%s_", strings.TrimSpace(message), disclaimer)

	if s.audit != nil {
		_ = s.audit.LogDisclaimerSent(ctx, opts.ConversationID, opts.ChatID, string(s.config.Level), string(opts.Language))
	}
	return result
}
