package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const sampleDefinitions = `# Sync definitions. Every entry produces one stp_sync_* procedure.
# Column order matters: the first column is the join key unless
# key_strategy / key_column say otherwise.
syncs:
  - target: "[dbo].[tbl_dw_Target]"
    source: "[SRV-SQL].[DB].[dbo].[Source]"
    columns:
      - name: Id
        type: int
      - name: Name
        type: nvarchar(50)
      - name: Amount
        type: decimal(10, 3)
      - name: IsActive
        type: bit

  # key_strategy: fixed joins target.InstructionId = src.Id instead;
  # list both columns when using it.
  - target: "[dbo].[tbl_dw_Instruction]"
    source: "[SRV-SQL].[DB].[dbo].[Instruction]"
    key_column: InstructionId  # target.InstructionId = src.InstructionId
    comparison: non-null       # ignore changes to or from NULL
    columns:
      - name: InstructionId
        type: int
      - name: Reference
        type: uniqueidentifier
      - name: ValueDate
        type: date
`

var initFile string

func init() {
	initCmd.Flags().StringVarP(&initFile, "file", "f", "sync.yaml", "Definitions file to create")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample sync definitions file",
	Long: `Create a sample sync definitions file to edit and pass to generate -f.

Examples:
  syncproc init                   # writes sync.yaml
  syncproc init -f orders.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if _, err := os.Stat(initFile); err == nil {
			fmt.Fprintf(w, "❌ %s already exists!\n", initFile)
			return nil
		}

		if err := os.WriteFile(initFile, []byte(sampleDefinitions), 0644); err != nil {
			return fmt.Errorf("writing definitions file: %w", err)
		}

		fmt.Fprintf(w, "✅ Created %s\n", initFile)
		fmt.Fprintf(w, "   Next: syncproc validate -f %s && syncproc generate -f %s\n", initFile, initFile)
		return nil
	},
}
