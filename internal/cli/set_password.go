package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/hushline/internal/prompt"
	"github.com/terraincognita07/hushline/internal/services"
)

const (
	newPasswordPrompt     = "New password: "
	confirmPasswordPrompt = "Confirm password: "
)

func RunSetPasswordCommand(env Env, service *services.CredentialService, name string) error {
	exists, err := service.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(env.prompts(), "Changing password for %s\n", strings.TrimSpace(name))
	} else {
		fmt.Fprintf(env.prompts(), "Creating credential %s\n", strings.TrimSpace(name))
	}

	confirm := func() (*prompt.Secret, error) {
		if _, err := io.WriteString(env.prompts(), confirmPasswordPrompt); err != nil {
			return nil, fmt.Errorf("write prompt: %w", err)
		}
		return prompt.ReadPasswordFrom(env.Console)
	}

	passwordHash, err := prompt.Ask(env.Console, newPasswordPrompt, service.NewPasswordHash(confirm), env.askOptions())
	if err != nil {
		return err
	}

	credential, created, err := service.SetPassword(name, passwordHash)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(env.out(), "Credential %s created\n", credential.Name)
	} else {
		fmt.Fprintf(env.out(), "Password for %s updated\n", credential.Name)
	}
	return nil
}
