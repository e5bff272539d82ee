package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/syncproc/config"
	"github.com/ridoystarlord/syncproc/loader"
	"github.com/ridoystarlord/syncproc/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check sync definitions before generating",
	Long: `Check a sync definitions file for likely mistakes.

The generator accepts any non-empty column list and emits SQL as given; this
command points out what will probably need editing afterwards:
- Empty or identical target/source table names
- Empty and duplicate column names
- Types without a known default (NULLs become '')
- Join key columns that are not in the column list
- Column counts outside 1..20

Examples:
  syncproc validate                   # Validate sync.yaml
  syncproc validate -f orders.yaml    # Validate another file
  syncproc validate --format json     # Output results as JSON
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		valid, err := validateDefinitions(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if !valid {
			return fmt.Errorf("%s has errors", validateFile)
		}
		return nil
	},
}

var (
	validateFile   string
	validateFormat string
)

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "sync.yaml", "Definitions file to validate")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func validateDefinitions(w io.Writer) (bool, error) {
	defs, err := loader.LoadDefinitionsFromYAML(validateFile)
	if err != nil {
		return false, fmt.Errorf("failed to load definitions: %w", err)
	}

	opts, err := config.Options(viper.GetViper())
	if err != nil {
		return false, err
	}

	result := validator.NewDefinitionValidator(opts).ValidateDefinitions(defs)

	switch validateFormat {
	case "json":
		return result.Valid, outputJSON(w, result)
	case "text":
		outputText(w, result)
		return result.Valid, nil
	}
	return false, fmt.Errorf("unsupported format %q", validateFormat)
}

func outputJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *validator.ValidationResult) {
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Definitions are valid!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Definitions are invalid!")
	}

	printFindings(w, "🔴 Errors", result.Errors)
	printFindings(w, "🟡 Warnings", result.Warnings)
	printFindings(w, "🔵 Info", result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Ready for syncproc generate -f %s\n", validateFile)
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before generating.\n")
	}
}

func printFindings(w io.Writer, title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Fprintf(w, "  %d. ", i+1)
		if f.Table != "" {
			fmt.Fprintf(w, "%s", f.Table)
		}
		if f.Column != "" {
			fmt.Fprintf(w, ".%s", f.Column)
		}
		fmt.Fprintf(w, ": %s\n", f.Message)
	}
}
