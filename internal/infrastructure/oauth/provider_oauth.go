package oauth

import (
	"context"

	"flightwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ProviderOAuth handles client-credentials authentication with the
// flight-status provider
type ProviderOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewProviderOAuth creates a new provider OAuth handler
func NewProviderOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *ProviderOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &ProviderOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a token source for provider API calls
func (o *ProviderOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}
