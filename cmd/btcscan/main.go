// Command btcscan searches files and disk images for Bitcoin addresses,
// private keys and HD wallet nodes encoded in Base58Check.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"btcscan/internal/config"
)

// Exit codes
const (
	exitCodeSuccess = iota
	exitCodeUncategorizedError
	exitCodeUsageError
)

// usageError marks errors caused by the command line.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// Root is the main btcscan command.
var Root = &cobra.Command{
	Use:   "btcscan",
	Short: "Search binary data for Base58Check encoded Bitcoin tokens",
	Long: `btcscan scans files, directories and raw disk images for Bitcoin
addresses, WIF and BIP38 private keys and BIP32 extended keys. Candidates
are only reported when their Base58Check checksum is valid. Both plain
and UTF-16 ("unicode") encodings are searched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	Root.PersistentFlags().String("config", "", "Config file (YAML, TOML or JSON)")
	Root.PersistentFlags().String("log-level", "warning", "Log level: error, warning, info, debug or trace")
	Root.PersistentFlags().CountP("verbose", "v", "Print more log messages (repeat for debug)")
	Root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
}

func resolveExitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return exitCodeSuccess
	case errors.As(err, &usage), errors.Is(err, config.ErrNoInput):
		return exitCodeUsageError
	default:
		return exitCodeUncategorizedError
	}
}

func main() {
	err := Root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(resolveExitCode(err))
}
