package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"passwd/internal/alphabet"
	"passwd/internal/kdf"
)

const defaultSaltBytes = 32

func newSaltCmd() *cobra.Command {
	var (
		size  int
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Generate a random installation salt",
		Long: `salt prints a fresh random salt for this installation. Every password
depends on the salt, so generate it once and keep it: set PASSWD_SALT in
the environment or a .env file, or compile it into the binary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			salt, err := kdf.GenerateSalt(size)
			if err != nil {
				return err
			}

			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), salt)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PASSWD_SALT=%s\n", salt)
			cmd.PrintErrf("or build with: go build -ldflags \"-X passwd/internal/config.BuildSalt=%s\" ./cmd/passwd\n", salt)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "bytes", defaultSaltBytes, "number of random bytes")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the salt")

	return cmd
}

func newAlphabetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabet",
		Short: "Print the symbols passwords are made of",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), alphabet.Symbols())
		},
	}
}
