package main

import (
	"context"
	"fmt"
	"os"

	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/oauth"
	"flightwatch-service/pkg/logger"
)

// Sanity check for provider credentials: fetches one client-credentials
// token and prints its expiry.
func main() {
	log := logger.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	providerOAuth := oauth.NewProviderOAuth(
		cfg.ProviderClientID,
		cfg.ProviderClientSecret,
		cfg.ProviderTokenURL,
		log,
	)

	token, err := providerOAuth.GetTokenSource(context.Background()).Token()
	if err != nil {
		log.Error("Failed to fetch provider token", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Token type:  %s\n", token.TokenType)
	fmt.Printf("Expires at:  %s\n", token.Expiry)
	fmt.Printf("Access token: %s...\n", token.AccessToken[:min(16, len(token.AccessToken))])
}
