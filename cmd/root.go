package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/syncproc/config"
	"github.com/ridoystarlord/syncproc/utils"
)

var rootCmd = &cobra.Command{
	Use:   "syncproc",
	Short: "MS SQL sync stored procedure generator",
	Long: `syncproc writes a T-SQL stored procedure that keeps a target table in sync
with a source table: update changed rows, delete rows missing from the source,
insert new rows. Edit the generated procedure further if required.

Examples:

  syncproc init
  syncproc generate -f sync.yaml
  syncproc generate --target "[dbo].[tbl_dw_Target]" --source "[SRV-SQL].[DB].[dbo].[Source]" \
      --column Id:int --column Name:nvarchar(50)
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return utils.LoadEnv(envFiles...)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var envFiles []string

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// Register subcommands and settings shared by them
func init() {
	config.Configure(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default .env)")
	flags.String("database", "DW_SSK", "Database named in the USE statement")
	flags.String("schema", "dbo", "Schema owning the generated procedure")
	flags.String("key-strategy", "first-column", "Join key: first-column, fixed or explicit")
	flags.String("key-column", "", "Join key column (implies --key-strategy=explicit)")
	flags.String("fixed-target-key", "InstructionId", "Target key column for --key-strategy=fixed")
	flags.String("fixed-source-key", "Id", "Source key column for --key-strategy=fixed")
	flags.String("comparison", "coalesce", "Change detection: coalesce or non-null")

	viper.BindPFlag(config.KeyDatabase, flags.Lookup("database"))
	viper.BindPFlag(config.KeySchema, flags.Lookup("schema"))
	viper.BindPFlag(config.KeyKeyStrategy, flags.Lookup("key-strategy"))
	viper.BindPFlag(config.KeyKeyColumn, flags.Lookup("key-column"))
	viper.BindPFlag(config.KeyFixedTargetKey, flags.Lookup("fixed-target-key"))
	viper.BindPFlag(config.KeyFixedSourceKey, flags.Lookup("fixed-source-key"))
	viper.BindPFlag(config.KeyComparison, flags.Lookup("comparison"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(typesCmd)
}
