package generator

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/syncproc/schema"
)

const (
	exampleTarget = "[dbo].[tbl_dw_Target]"
	exampleSource = "[SRV-SQL].[DB].[dbo].[Source]"
)

var exampleColumns = []schema.Column{
	{Name: "Id", Type: "int"},
	{Name: "Name", Type: "nvarchar(50)"},
}

const exampleScript = `USE [DW_SSK]
GO

/****** Object:  StoredProcedure [dbo].[stp_sync_tbl_dw_Target] ******/
SET ANSI_NULLS ON
GO
SET QUOTED_IDENTIFIER ON
GO

CREATE OR ALTER PROCEDURE [dbo].[stp_sync_tbl_dw_Target]
AS
BEGIN
    SET NOCOUNT ON;

    -- Update existing records only if changes are detected
    UPDATE target
    SET
        target.Id = COALESCE(src.Id, 0),
        target.Name = COALESCE(src.Name, '')
    FROM
        [dbo].[tbl_dw_Target] target
    INNER JOIN
        [SRV-SQL].[DB].[dbo].[Source] src
    ON
        target.Id = src.Id
    WHERE
        COALESCE(target.Id, 0) <> COALESCE(src.Id, 0) OR
        COALESCE(target.Name, '') COLLATE DATABASE_DEFAULT <> COALESCE(src.Name, '') COLLATE DATABASE_DEFAULT;

    -- Delete records that no longer exist in the source
    DELETE target
    FROM
        [dbo].[tbl_dw_Target] target
    WHERE NOT EXISTS (
        SELECT 1
        FROM [SRV-SQL].[DB].[dbo].[Source] src
        WHERE target.Id = src.Id
    );

    -- Insert new records
    INSERT INTO [dbo].[tbl_dw_Target] (
        Id,
        Name
    )
    SELECT
        COALESCE(src.Id, 0),
        COALESCE(src.Name, '')
    FROM
        [SRV-SQL].[DB].[dbo].[Source] src
    WHERE NOT EXISTS (
        SELECT 1
        FROM [dbo].[tbl_dw_Target] target
        WHERE target.Id = src.Id
    );
END
GO
`

func TestGenerateProcedure_Golden(t *testing.T) {
	script, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, exampleScript, script)
}

func TestGenerateProcedure_ZeroOptionsUseDefaults(t *testing.T) {
	script, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, Options{})
	require.NoError(t, err)
	assert.Equal(t, exampleScript, script)
}

func TestGenerateProcedure_EndToEndExample(t *testing.T) {
	script, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, script, "stp_sync_tbl_dw_Target")
	assert.Contains(t, script, "target.Id = COALESCE(src.Id, 0)")
	assert.Contains(t, script, "COALESCE(target.Name, '') COLLATE DATABASE_DEFAULT")
	assert.Contains(t, script, "DELETE target")
	assert.Contains(t, script, "INSERT INTO [dbo].[tbl_dw_Target] (\n        Id,\n        Name\n    )")
	assert.Contains(t, script, "COALESCE(src.Id, 0),\n        COALESCE(src.Name, '')")
}

func TestGenerateProcedure_StatementOrder(t *testing.T) {
	script, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
	require.NoError(t, err)

	order := []string{
		"USE [DW_SSK]",
		"SET ANSI_NULLS ON",
		"SET QUOTED_IDENTIFIER ON",
		"CREATE OR ALTER PROCEDURE",
		"UPDATE target",
		"DELETE target",
		"INSERT INTO",
		"END\nGO\n",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(script, marker)
		require.NotEqual(t, -1, idx, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestGenerateProcedure_EmptyColumns(t *testing.T) {
	for _, cols := range [][]schema.Column{nil, {}} {
		script, err := GenerateProcedure(exampleTarget, exampleSource, cols, DefaultOptions())
		require.Error(t, err)
		assert.Empty(t, script)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "columns", cfgErr.Field)
	}
}

func TestGenerateProcedure_Deterministic(t *testing.T) {
	first, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateProcedure_Concurrent(t *testing.T) {
	want, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = GenerateProcedure(exampleTarget, exampleSource, exampleColumns, DefaultOptions())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerateProcedure_DoesNotMutateColumns(t *testing.T) {
	cols := []schema.Column{
		{Name: "Id", Type: "uniqueidentifier"},
		{Name: "Amount", Type: "decimal(10,3)"},
	}
	snapshot := append([]schema.Column(nil), cols...)

	_, err := GenerateProcedure(exampleTarget, exampleSource, cols, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, snapshot, cols)
}

func TestGenerateProcedure_GUIDColumnsUseISNULL(t *testing.T) {
	cols := []schema.Column{
		{Name: "RowGuid", Type: "uniqueidentifier"},
		{Name: "Label", Type: "nvarchar(50)"},
	}
	script, err := GenerateProcedure(exampleTarget, exampleSource, cols, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, script, "target.RowGuid = ISNULL(src.RowGuid, '00000000-0000-0000-0000-000000000000')")
	assert.Contains(t, script, "SELECT\n        ISNULL(src.RowGuid, '00000000-0000-0000-0000-000000000000'),")
	assert.NotContains(t, script, "COALESCE(src.RowGuid")
	assert.NotContains(t, script, "src.RowGuid, '')")
}

func TestGenerateProcedure_KeyStrategies(t *testing.T) {
	cols := []schema.Column{
		{Name: "Code", Type: "nvarchar(50)"},
		{Name: "Id", Type: "int"},
	}

	tests := []struct {
		name string
		opts Options
		join string
	}{
		{"first column", Options{KeyStrategy: KeyFirstColumn}, "target.Code = src.Code"},
		{"fixed default pair", Options{KeyStrategy: KeyFixed}, "target.InstructionId = src.Id"},
		{"fixed custom pair", Options{KeyStrategy: KeyFixed, FixedKey: JoinKey{Target: "SrcId", Source: "Id"}}, "target.SrcId = src.Id"},
		{"explicit", Options{KeyStrategy: KeyExplicit, KeyColumn: "Id"}, "target.Id = src.Id"},
		{"explicit without column", Options{KeyStrategy: KeyExplicit}, "target.Code = src.Code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := GenerateProcedure(exampleTarget, exampleSource, cols, tt.opts)
			require.NoError(t, err)
			// UPDATE join, DELETE subquery and INSERT subquery.
			assert.Equal(t, 3, strings.Count(script, tt.join))
		})
	}
}

func TestGenerateProcedure_UnknownStrategies(t *testing.T) {
	_, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, Options{KeyStrategy: "random"})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "key_strategy", cfgErr.Field)

	_, err = GenerateProcedure(exampleTarget, exampleSource, exampleColumns, Options{Comparison: "fuzzy"})
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "comparison", cfgErr.Field)
}

func TestGenerateProcedure_DatabaseAndSchema(t *testing.T) {
	script, err := GenerateProcedure(exampleTarget, exampleSource, exampleColumns, Options{Database: "Reporting", Schema: "sync"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "USE [Reporting]\nGO\n"))
	assert.Contains(t, script, "CREATE OR ALTER PROCEDURE [sync].[stp_sync_tbl_dw_Target]")
}

func TestGenerateProcedure_UnvalidatedInputs(t *testing.T) {
	cols := []schema.Column{
		{Name: "A", Type: "geography"},
		{Name: "A", Type: "geography"},
	}
	script, err := GenerateProcedure("", "", cols, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, script, "[dbo].[stp_sync_]")
	assert.Contains(t, script, "target.A = COALESCE(src.A, '')")
}

func TestProcedureName(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"[dbo].[tbl_dw_Target]", "stp_sync_tbl_dw_Target"},
		{"tbl_plain", "stp_sync_tbl_plain"},
		{"[stage].[Orders]", "stp_sync_[stage.[Orders"},
		{"", "stp_sync_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProcedureName(tt.target), tt.target)
	}
}

func TestGenerate_AppliesDefinitionOverrides(t *testing.T) {
	def := schema.SyncDefinition{
		TargetTable: exampleTarget,
		SourceTable: exampleSource,
		Columns:     exampleColumns,
		KeyColumn:   "Name",
		Comparison:  string(CompareNonNull),
	}
	script, err := Generate(def, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, script, "target.Name = src.Name")
	assert.Contains(t, script, "(target.Id IS NOT NULL AND src.Id IS NOT NULL AND target.Id <> src.Id)")
}

func TestGenerate_BadOverride(t *testing.T) {
	def := schema.SyncDefinition{
		TargetTable: exampleTarget,
		SourceTable: exampleSource,
		Columns:     exampleColumns,
		KeyStrategy: "nope",
	}
	_, err := Generate(def, DefaultOptions())
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestGenerateAll(t *testing.T) {
	defs := []schema.SyncDefinition{
		{TargetTable: "[dbo].[A]", SourceTable: "[src].[A]", Columns: exampleColumns},
		{TargetTable: "[dbo].[B]", SourceTable: "[src].[B]", Columns: exampleColumns},
	}
	out, err := GenerateAll(defs, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, out, "[dbo].[stp_sync_A]")
	assert.Contains(t, out, "[dbo].[stp_sync_B]")
	assert.Contains(t, out, "END\nGO\n\nUSE [DW_SSK]")
}

func TestGenerateAll_StopsOnFirstError(t *testing.T) {
	defs := []schema.SyncDefinition{
		{TargetTable: "[dbo].[A]", SourceTable: "[src].[A]", Columns: exampleColumns},
		{TargetTable: "[dbo].[B]", SourceTable: "[src].[B]"},
	}
	out, err := GenerateAll(defs, DefaultOptions())
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "definition 2 ([dbo].[B])")

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
