package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"btcscan/internal/base58check"
	"btcscan/internal/scanner"
	"btcscan/internal/token"
)

var checkCommand = &cobra.Command{
	Use:   "check token...",
	Short: "Identify and verify Base58Check tokens given on the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		return checkTokens(os.Stdout, args)
	},
}

func init() {
	Root.AddCommand(checkCommand)
}

// identify returns the first plain token type text is a complete,
// verified token of. When none verifies, spec and result name the last
// type text had the shape of and why it was rejected. spec is zero if
// text has the shape of no type.
func identify(text string) (spec token.Spec, result base58check.Result, ok bool) {
	for _, s := range token.Active(token.Mode{NonUnicodeOnly: true}) {
		m := scanner.New([]byte(text), s)
		if !m.Next() {
			continue
		}
		if match := m.Match(); match.Offset != 0 || match.Length != len(text) {
			continue
		}
		r := base58check.Classify(text, s.DecodedLen)
		if r == base58check.Valid {
			return s, r, true
		}
		spec, result = s, r
	}
	return spec, result, false
}

func checkTokens(out io.Writer, tokens []string) error {
	bad := 0
	for _, text := range tokens {
		spec, result, ok := identify(text)
		switch {
		case ok:
			fmt.Fprintf(out, "%s: %s\n", text, spec)
		case spec.Name != "":
			bad++
			fmt.Fprintf(out, "%s: invalid %s (%s)\n", text, spec, result)
		default:
			bad++
			fmt.Fprintf(out, "%s: not a recognised token\n", text)
		}
	}
	if bad > 0 {
		return errors.Errorf("%d of %d tokens did not verify", bad, len(tokens))
	}
	return nil
}
