package cli

import (
	"fmt"

	"github.com/terraincognita07/hushline/internal/services"
)

func RunResetPasswordCommand(env Env, service *services.CredentialService, name string) error {
	temporaryPassword, err := service.ResetPassword(name)
	if err != nil {
		return err
	}

	out := env.out()
	fmt.Fprintln(out, "✅ Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Password must be changed after the next login.")

	return nil
}
