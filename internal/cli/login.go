package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/hushline/internal/prompt"
	"github.com/terraincognita07/hushline/internal/services"
	"go.uber.org/zap"
)

const passwordPrompt = "Password: "

// RunLoginCommand asks for the password of name and prints a session token
// once it matches.
func RunLoginCommand(env Env, service *services.CredentialService, secretKey []byte, ttl time.Duration, name string) error {
	validate, err := service.VerifyPassword(name)
	if err != nil {
		return err
	}

	credential, err := prompt.Ask(env.Console, passwordPrompt, validate, env.askOptions())
	if err != nil {
		return err
	}

	token, err := services.BuildSessionToken(secretKey, credential, ttl, time.Now())
	if err != nil {
		return fmt.Errorf("build session token: %w", err)
	}

	if credential.MustChangePassword {
		fmt.Fprintf(env.prompts(), "Password for %s was reset and must be changed: hushline set %s\n", credential.Name, credential.Name)
	}
	fmt.Fprintln(env.out(), token)
	env.logger().Debug("session token issued", zap.String("credential", credential.Name), zap.Duration("ttl", ttl))
	return nil
}
