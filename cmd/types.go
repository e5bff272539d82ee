package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/syncproc/generator"
	"github.com/ridoystarlord/syncproc/schema"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show how column types are defaulted and compared",
	Long: `Show the NULL fallback, coalescing function and collation handling
used for each column type. Pass extra types as arguments to check them too.

Examples:
  syncproc types
  syncproc types datetime2 "varchar(20)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan, color.Bold)

		cyan.Fprintf(w, "%-20s %-42s %-10s %s\n", "TYPE", "DEFAULT", "FUNCTION", "COLLATE")
		fmt.Fprintln(w, strings.Repeat("-", 84))

		for _, t := range append(append([]string{}, schema.TypeChoices...), args...) {
			collate := "-"
			if generator.IsNVarchar(t) {
				collate = "DATABASE_DEFAULT"
			}
			fmt.Fprintf(w, "%-20s %-42s %-10s %s\n", t, generator.DefaultValue(t), generator.CoalesceFunc(t), collate)
		}
	},
}
