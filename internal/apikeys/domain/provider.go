// Package domain defines the core types for encrypted API key storage.
package domain

// Provider identifies an upstream model provider an API key belongs to.
type Provider string

// Supported providers.
const (
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGoogle     Provider = "google"
	ProviderMistral    Provider = "mistral"
	ProviderOpenRouter Provider = "openrouter"
)

// ParseProvider validates and converts a string into a Provider.
func ParseProvider(value string) (Provider, error) {
	switch Provider(value) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderMistral:
		return ProviderMistral, nil
	case ProviderOpenRouter:
		return ProviderOpenRouter, nil
	default:
		return "", ErrUnknownProvider
	}
}

// Label returns the human-readable display name for the provider.
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGoogle:
		return "Google"
	case ProviderMistral:
		return "Mistral"
	case ProviderOpenRouter:
		return "OpenRouter"
	default:
		return string(p)
	}
}
