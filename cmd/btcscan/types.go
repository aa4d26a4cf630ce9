package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"btcscan/internal/token"
)

var typesCommand = &cobra.Command{
	Use:   "types",
	Short: "List the token types searched for, in search order",
	Args:  cobra.NoArgs,
	RunE: func(command *cobra.Command, args []string) error {
		quick, _ := command.Flags().GetBool("quick")
		unicode, _ := command.Flags().GetBool("unicode")
		nonUnicode, _ := command.Flags().GetBool("nonunicode")
		return listTypes(os.Stdout, token.Mode{
			Quick:          quick,
			UnicodeOnly:    unicode,
			NonUnicodeOnly: nonUnicode,
		})
	},
}

func init() {
	flags := typesCommand.Flags()
	flags.BoolP("quick", "q", false, "Only list the types searched in quick mode")
	flags.BoolP("unicode", "u", false, "Only list UTF-16 encoded types")
	flags.BoolP("nonunicode", "n", false, "Only list plain encoded types")
	Root.AddCommand(typesCommand)
}

func listTypes(out io.Writer, mode token.Mode) error {
	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPATTERN\tBYTES")
	for _, spec := range token.Active(mode) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", spec, spec.Pattern(), spec.DecodedLen)
	}
	return tw.Flush()
}
