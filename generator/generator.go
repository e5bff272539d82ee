package generator

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ridoystarlord/syncproc/schema"
)

const procedurePrefix = "stp_sync_"

const procedureTemplate = `USE [{{.Database}}]
GO

/****** Object:  StoredProcedure [{{.Schema}}].[{{.Name}}] ******/
SET ANSI_NULLS ON
GO
SET QUOTED_IDENTIFIER ON
GO

CREATE OR ALTER PROCEDURE [{{.Schema}}].[{{.Name}}]
AS
BEGIN
    SET NOCOUNT ON;

    -- Update existing records only if changes are detected
    UPDATE target
    SET
        {{.Set}}
    FROM
        {{.Target}} target
    INNER JOIN
        {{.Source}} src
    ON
        {{.Join}}
    WHERE
        {{.Where}};

    -- Delete records that no longer exist in the source
    DELETE target
    FROM
        {{.Target}} target
    WHERE NOT EXISTS (
        SELECT 1
        FROM {{.Source}} src
        WHERE {{.Join}}
    );

    -- Insert new records
    INSERT INTO {{.Target}} (
        {{.Insert}}
    )
    SELECT
        {{.Select}}
    FROM
        {{.Source}} src
    WHERE NOT EXISTS (
        SELECT 1
        FROM {{.Target}} target
        WHERE {{.Join}}
    );
END
GO
`

var procedureTmpl = template.Must(template.New("procedure").Parse(procedureTemplate))

type procedureData struct {
	Database string
	Schema   string
	Name     string
	Target   string
	Source   string
	Join     string
	Set      string
	Where    string
	Insert   string
	Select   string
}

// ProcedureName derives the procedure name from a target table reference by
// stripping "[dbo].[" and "]". The result is not checked for being a legal
// identifier.
func ProcedureName(targetTable string) string {
	name := strings.ReplaceAll(targetTable, "[dbo].[", "")
	name = strings.ReplaceAll(name, "]", "")
	return procedurePrefix + name
}

// GenerateProcedure renders the sync procedure for one target/source pair.
// It fails with *ConfigurationError when columns is empty; no other input is
// validated.
func GenerateProcedure(targetTable, sourceTable string, columns []schema.Column, opts Options) (string, error) {
	if len(columns) == 0 {
		return "", errNoColumns()
	}
	opts = opts.withDefaults()

	key, err := ResolveKey(columns, opts)
	if err != nil {
		return "", err
	}

	clauses, err := BuildClauses(columns, opts.Comparison)
	if err != nil {
		return "", err
	}

	data := procedureData{
		Database: opts.Database,
		Schema:   opts.Schema,
		Name:     ProcedureName(targetTable),
		Target:   targetTable,
		Source:   sourceTable,
		Join:     key.Predicate(),
		Set:      clauses.SetClause(),
		Where:    clauses.WhereClause(),
		Insert:   clauses.InsertList(),
		Select:   clauses.SelectList(),
	}

	var b strings.Builder
	if err := procedureTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render procedure: %w", err)
	}
	return b.String(), nil
}

// Generate renders the procedure for a definition, applying its overrides on
// top of opts.
func Generate(def schema.SyncDefinition, opts Options) (string, error) {
	merged, err := ApplyOverrides(def, opts)
	if err != nil {
		return "", err
	}
	return GenerateProcedure(def.TargetTable, def.SourceTable, def.Columns, merged)
}

// GenerateAll renders every definition, separating scripts with a blank line.
// The first failure aborts and nothing is returned.
func GenerateAll(defs []schema.SyncDefinition, opts Options) (string, error) {
	scripts := make([]string, 0, len(defs))
	for i, def := range defs {
		script, err := Generate(def, opts)
		if err != nil {
			return "", fmt.Errorf("definition %d (%s): %w", i+1, def.TargetTable, err)
		}
		scripts = append(scripts, script)
	}
	return strings.Join(scripts, "\n"), nil
}

// ApplyOverrides returns opts with the definition's non-empty settings applied.
func ApplyOverrides(def schema.SyncDefinition, opts Options) (Options, error) {
	if def.KeyStrategy != "" {
		ks, err := ParseKeyStrategy(def.KeyStrategy)
		if err != nil {
			return Options{}, err
		}
		opts.KeyStrategy = ks
	}
	if def.KeyColumn != "" {
		opts.KeyColumn = def.KeyColumn
		if def.KeyStrategy == "" {
			opts.KeyStrategy = KeyExplicit
		}
	}
	if def.Comparison != "" {
		cmp, err := ParseComparison(def.Comparison)
		if err != nil {
			return Options{}, err
		}
		opts.Comparison = cmp
	}
	return opts, nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Database == "" {
		o.Database = d.Database
	}
	if o.Schema == "" {
		o.Schema = d.Schema
	}
	if o.KeyStrategy == "" {
		o.KeyStrategy = d.KeyStrategy
	}
	if o.Comparison == "" {
		o.Comparison = d.Comparison
	}
	return o
}
