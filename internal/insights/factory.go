package insights

import (
	"fmt"

	apperrors "insightcli/internal/errors"
)

// Provider names accepted by NewProvider.
const (
	ProviderLocal     = "local"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// NewProvider builds the named provider. The local provider is represented
// as a nil Provider; the Generator treats nil as local-only mode.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	switch name {
	case "", ProviderLocal:
		return nil, nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, apperrors.NewConfigError("anthropic provider requires an API key", nil)
		}
		return NewAnthropicProvider(cfg), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, apperrors.NewConfigError("openai provider requires an API key", nil)
		}
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown insight provider: %s", name), nil)
	}
}
