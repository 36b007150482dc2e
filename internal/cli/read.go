package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/hushline/internal/prompt"
)

// RunReadCommand reads one secret without echo and writes it to the output
// unchanged, without a trailing newline, so it can be piped into another
// program.
func RunReadCommand(env Env, promptText string) error {
	if promptText != "" {
		if _, err := io.WriteString(env.prompts(), promptText); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
	}

	secret, err := prompt.ReadPasswordFrom(env.Console)
	if err != nil {
		return err
	}
	defer secret.Wipe()

	if _, err := env.out().Write(secret.Bytes()); err != nil {
		return fmt.Errorf("write secret: %w", err)
	}
	env.logger().Debug("secret read from terminal")
	return nil
}
