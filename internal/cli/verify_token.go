package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/hushline/internal/services"
)

func RunVerifyTokenCommand(env Env, service *services.CredentialService, secretKey []byte, rawToken string) error {
	claims, err := service.VerifySessionToken(secretKey, rawToken)
	if err != nil {
		return err
	}

	expiresAt := "never"
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}
	fmt.Fprintf(env.out(), "Token valid for %s (expires %s)\n", claims.Name, expiresAt)
	return nil
}
