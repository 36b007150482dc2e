package cli

import (
	"io"
	"os"

	"github.com/terraincognita07/hushline/internal/prompt"
	"go.uber.org/zap"
)

// Env carries what every command needs to talk to the user.
type Env struct {
	// Console is where secrets are read from.
	Console prompt.Console
	// Prompts receives prompts and warnings. When nil they go
	// to the console if it is writable, otherwise to stderr.
	Prompts io.Writer
	// Out receives command results. Defaults to stdout.
	Out io.Writer

	Logger   *zap.Logger
	Attempts int
}

func (env Env) out() io.Writer {
	if env.Out != nil {
		return env.Out
	}
	return os.Stdout
}

func (env Env) prompts() io.Writer {
	if env.Prompts != nil {
		return env.Prompts
	}
	if writer, ok := env.Console.(io.Writer); ok {
		return writer
	}
	return os.Stderr
}

func (env Env) logger() *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}

func (env Env) askOptions() prompt.Options {
	return prompt.Options{
		Attempts: env.Attempts,
		Output:   env.prompts(),
	}
}
