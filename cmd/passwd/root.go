package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"passwd/internal/clipboard"
	"passwd/internal/complexity"
	"passwd/internal/config"
	"passwd/internal/domain"
	"passwd/internal/kdf"
	"passwd/internal/logger"
	"passwd/internal/prompt"
	"passwd/internal/service"
)

const passphraseLabel = "Master password: "

// deps are the collaborators the commands talk to outside the process.
type deps struct {
	loadConfig func() (config.Config, error)
	prompter   prompt.Prompter
	clipboard  clipboard.Writer
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.Load,
		prompter:   prompt.NewTerminal(os.Stdin, os.Stderr),
		clipboard:  clipboard.System{},
	}
}

type rootFlags struct {
	length      int
	iterations  int
	kdf         string
	noClipboard bool
	normalize   bool
	verbose     bool
}

func newRootCmd(d deps) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "passwd [flags] NAME",
		Short: "Derive a strong password for a service from a master passphrase",
		Long: `passwd derives the same strong password every time for a given service
name and master passphrase. Nothing is stored: the password is recomputed
with a slow, salted key derivation function on each run.

The password is printed on stdout and copied to the clipboard when one is
available. To derive a password for a service whose name matches a
subcommand, put the name after "--".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return classify(runDerive(cmd, args[0], flags, d))
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.length, "length", "n", 12,
		fmt.Sprintf("password length (%d-%d)", complexity.MinLength, service.MaxLength))
	f.IntVarP(&flags.iterations, "iterations", "i", kdf.DefaultIterations, "PBKDF2 iteration count")
	f.StringVar(&flags.kdf, "kdf", kdf.BackendPBKDF2, "key derivation backend (pbkdf2 or argon2id)")
	f.BoolVar(&flags.noClipboard, "no-clipboard", false, "do not copy the password to the clipboard")
	f.BoolVar(&flags.normalize, "normalize", false, "apply Unicode NFC normalisation to the name and passphrase")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log derivation diagnostics on stderr")

	cmd.AddCommand(newSaltCmd())
	cmd.AddCommand(newAlphabetCmd())

	return cmd
}

// applyFlags lets explicitly set flags override environment configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags rootFlags) {
	f := cmd.Flags()
	if f.Changed("length") {
		cfg.Length = flags.length
	}
	if f.Changed("iterations") {
		cfg.Iterations = flags.iterations
	}
	if f.Changed("kdf") {
		cfg.KDF = flags.kdf
	}
	if f.Changed("no-clipboard") {
		cfg.NoClipboard = flags.noClipboard
	}
	if f.Changed("normalize") {
		cfg.Normalize = flags.normalize
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level, err := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	)
	if err != nil {
		log.Warn("falling back to warn level", "error", err)
	}
	return log
}

func runDerive(cmd *cobra.Command, name string, flags rootFlags, d deps) error {
	cfg, err := d.loadConfig()
	if err != nil {
		return &CLIError{Code: ExitConfigError, Message: "failed to load configuration", Cause: err}
	}
	applyFlags(cmd, &cfg, flags)
	log := newLogger(cmd, cfg)

	// Everything that can be rejected up front is checked before asking for
	// the passphrase.
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := service.ValidateLength(cfg.Length); err != nil {
		return err
	}
	deriver, err := kdf.New(cfg.KDF, []byte(cfg.Salt), cfg.KDFOptions())
	if err != nil {
		if !errors.Is(err, domain.ErrConfiguration) {
			err = fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		return err
	}

	passphrase, err := d.prompter.Secret(cmd.Context(), passphraseLabel)
	if err != nil {
		return wrapError(ExitError, "failed to read master password", err)
	}

	svc := service.NewPasswordService(deriver,
		service.WithMaxAttempts(cfg.MaxAttempts),
		service.WithLogger(log),
		service.WithNormalization(cfg.Normalize),
	)

	result, err := svc.Derive(cmd.Context(), domain.Request{
		Name:       name,
		Passphrase: passphrase,
		Length:     cfg.Length,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Password)

	if cfg.NoClipboard {
		return nil
	}
	if err := d.clipboard.WriteAll(result.Password); err != nil {
		log.Warn("password was not copied to the clipboard", "error", err)
	}
	return nil
}
