package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/syncproc/config"
	"github.com/ridoystarlord/syncproc/generator"
	"github.com/ridoystarlord/syncproc/loader"
	"github.com/ridoystarlord/syncproc/schema"
)

const (
	defaultTargetTable = "[dbo].[tbl_dw_Target]"
	defaultSourceTable = "[SRV-SQL].[DB].[dbo].[Source]"
)

var (
	definitionsFile string
	targetTable     string
	sourceTable     string
	columnFlags     []string
)

func init() {
	generateCmd.Flags().StringVarP(&definitionsFile, "file", "f", "", "Definitions YAML file (generates every sync in it)")
	generateCmd.Flags().StringVarP(&targetTable, "target", "t", defaultTargetTable, "Target table name")
	generateCmd.Flags().StringVarP(&sourceTable, "source", "s", defaultSourceTable, "Source table name")
	generateCmd.Flags().StringArrayVarP(&columnFlags, "column", "c", nil, "Column as Name:type, repeatable and ordered")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the sync stored procedure",
	Long: `Generate the sync stored procedure and print it to stdout.

Columns come either from repeated --column flags or from a definitions file.
The first column is the join key unless --key-strategy or --key-column say
otherwise.

Examples:
  syncproc generate -c Id:int -c Name:nvarchar(50)
  syncproc generate -t "[dbo].[tbl_dw_Orders]" -s "[SRV].[DB].[dbo].[Orders]" -c OrderId:int -c Total:"decimal(10, 3)"
  syncproc generate -f sync.yaml --comparison non-null
  syncproc generate -c Id:int --key-strategy fixed       # joins target.InstructionId = src.Id
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := loadDefinitions()
		if err != nil {
			return fmt.Errorf("loading definitions: %w", err)
		}

		opts, err := config.Options(viper.GetViper())
		if err != nil {
			return fmt.Errorf("reading settings: %w", err)
		}

		script, err := buildScript(defs, opts)
		if err != nil {
			var cfgErr *generator.ConfigurationError
			if errors.As(err, &cfgErr) {
				return fmt.Errorf("cannot generate procedure: %w", err)
			}
			return fmt.Errorf("generating procedure: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	},
}

func loadDefinitions() ([]schema.SyncDefinition, error) {
	if definitionsFile != "" {
		if len(columnFlags) > 0 {
			return nil, fmt.Errorf("--column cannot be combined with --file")
		}
		return loader.LoadDefinitionsFromYAML(definitionsFile)
	}

	columns, err := parseColumnFlags(columnFlags)
	if err != nil {
		return nil, err
	}
	return []schema.SyncDefinition{{
		TargetTable: targetTable,
		SourceTable: sourceTable,
		Columns:     columns,
	}}, nil
}

// buildScript enforces the column count bounds of the input form and
// generates every definition.
func buildScript(defs []schema.SyncDefinition, opts generator.Options) (string, error) {
	if len(defs) == 0 {
		return "", fmt.Errorf("no sync definitions found")
	}
	for _, def := range defs {
		if len(def.Columns) > schema.MaxColumns {
			return "", fmt.Errorf("%s: %d columns given, at most %d are supported", def.TargetTable, len(def.Columns), schema.MaxColumns)
		}
	}
	return generator.GenerateAll(defs, opts)
}

// parseColumnFlags turns "Name:type" values into columns, keeping order.
func parseColumnFlags(values []string) ([]schema.Column, error) {
	columns := make([]schema.Column, 0, len(values))
	for _, v := range values {
		name, dataType, ok := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		dataType = strings.TrimSpace(dataType)
		if !ok || name == "" || dataType == "" {
			return nil, fmt.Errorf("invalid column %q, expected Name:type", v)
		}
		columns = append(columns, schema.Column{Name: name, Type: dataType})
	}
	return columns, nil
}
