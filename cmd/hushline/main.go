package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/terraincognita07/hushline/internal/cli"
	"github.com/terraincognita07/hushline/internal/config"
	"github.com/terraincognita07/hushline/internal/db"
	"github.com/terraincognita07/hushline/internal/logger"
	"github.com/terraincognita07/hushline/internal/prompt"
	"github.com/terraincognita07/hushline/internal/services"
	"go.uber.org/zap"
)

type application struct {
	opts config.Options

	out    io.Writer
	errOut io.Writer

	// openConsole is replaced in tests.
	openConsole func() (prompt.Console, func() error, error)
}

func main() {
	app := &application{
		out:         os.Stdout,
		errOut:      os.Stderr,
		openConsole: openTerminal,
	}

	if err := run(os.Args[1:], app); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(app.out, flagsErr.Message)
			return
		}
		fmt.Fprintf(app.errOut, "hushline: %v\n", err)
		os.Exit(1)
	}
}

func openTerminal() (prompt.Console, func() error, error) {
	tty, err := prompt.OpenTTY()
	if err != nil {
		return nil, nil, err
	}
	return tty, tty.Close, nil
}

func run(args []string, app *application) error {
	parser := config.NewParser(&app.opts)

	commands := []struct {
		name        string
		short       string
		long        string
		implementer any
	}{
		{"read", "Read a secret without echo and print it", "Reads one line from the terminal with echo disabled and writes it to stdout.", &readCommand{app: app}},
		{"set", "Create a credential or change its password", "Prompts for a new password twice and stores its bcrypt hash.", &setCommand{app: app}},
		{"login", "Verify a password and print a session token", "Prompts for the password of a credential, allowing a limited number of attempts.", &loginCommand{app: app}},
		{"verify-token", "Check a session token", "Checks the signature, expiry and password state of a session token.", &verifyTokenCommand{app: app}},
		{"reset", "Replace a password with a temporary one", "Generates a temporary password that must be changed after the next login.", &resetCommand{app: app}},
	}
	for _, command := range commands {
		if _, err := parser.AddCommand(command.name, command.short, command.long, command.implementer); err != nil {
			return fmt.Errorf("register %s command: %w", command.name, err)
		}
	}

	_, err := parser.ParseArgs(args)
	return err
}

// setup validates the global options and builds the logger. The returned
// cleanup flushes the logger.
func (app *application) setup() (*zap.Logger, func(), error) {
	if err := app.opts.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := logger.New(app.opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func (app *application) env(log *zap.Logger, console prompt.Console) cli.Env {
	return cli.Env{
		Console:  console,
		Out:      app.out,
		Logger:   log,
		Attempts: app.opts.Attempts,
	}
}

// withConsole runs fn with the terminal open and closes it afterwards.
func (app *application) withConsole(log *zap.Logger, fn func(cli.Env) error) (err error) {
	console, closeConsole, err := app.openConsole()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeConsole(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	return fn(app.env(log, console))
}

// withService opens the credential store for the duration of fn.
func (app *application) withService(log *zap.Logger, fn func(*services.CredentialService) error) error {
	database, err := db.OpenSQLite(app.opts.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if closeErr := db.Close(database); closeErr != nil {
			log.Warn("close database", zap.Error(closeErr))
		}
	}()

	repositories := db.NewRepositories(database)
	return fn(services.NewCredentialService(repositories.Credentials, log))
}

type credentialArgs struct {
	Name string `positional-arg-name:"name" description:"Credential name"`
}

type readCommand struct {
	app *application

	Prompt string `short:"p" long:"prompt" description:"Prompt written to the terminal before reading"`
}

func (command *readCommand) Execute([]string) error {
	log, cleanup, err := command.app.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return command.app.withConsole(log, func(env cli.Env) error {
		return cli.RunReadCommand(env, command.Prompt)
	})
}

type setCommand struct {
	app *application

	Args credentialArgs `positional-args:"yes" required:"yes"`
}

func (command *setCommand) Execute([]string) error {
	log, cleanup, err := command.app.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return command.app.withService(log, func(service *services.CredentialService) error {
		return command.app.withConsole(log, func(env cli.Env) error {
			return cli.RunSetPasswordCommand(env, service, command.Args.Name)
		})
	})
}

type loginCommand struct {
	app *application

	Args credentialArgs `positional-args:"yes" required:"yes"`
}

func (command *loginCommand) Execute([]string) error {
	log, cleanup, err := command.app.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	secretKey, err := command.app.opts.ResolveSecretKey()
	if err != nil {
		return err
	}

	return command.app.withService(log, func(service *services.CredentialService) error {
		return command.app.withConsole(log, func(env cli.Env) error {
			return cli.RunLoginCommand(env, service, secretKey, command.app.opts.TokenTTL, command.Args.Name)
		})
	})
}

type verifyTokenCommand struct {
	app *application

	Args struct {
		Token string `positional-arg-name:"token" description:"Session token printed by login"`
	} `positional-args:"yes" required:"yes"`
}

func (command *verifyTokenCommand) Execute([]string) error {
	log, cleanup, err := command.app.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	secretKey, err := command.app.opts.ResolveSecretKey()
	if err != nil {
		return err
	}

	return command.app.withService(log, func(service *services.CredentialService) error {
		return cli.RunVerifyTokenCommand(command.app.env(log, nil), service, secretKey, command.Args.Token)
	})
}

type resetCommand struct {
	app *application

	Args credentialArgs `positional-args:"yes" required:"yes"`
}

func (command *resetCommand) Execute([]string) error {
	log, cleanup, err := command.app.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return command.app.withService(log, func(service *services.CredentialService) error {
		return cli.RunResetPasswordCommand(command.app.env(log, nil), service, command.Args.Name)
	})
}
