package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ridoystarlord/syncproc/generator"
	"github.com/ridoystarlord/syncproc/schema"
)

// ValidationError represents a validation finding with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// Type keywords with a fitting NULL fallback: the numeric and GUID types the
// generator maps, and the string and date families where an empty string is
// the intended default. Other types (numeric, money, float, binary) also fall
// back to an empty string, which SQL Server cannot convert.
var knownTypeKeywords = []string{
	"uniqueidentifier", "int", "decimal", "bit",
	"char", "text", "date", "time", "xml",
}

// DefinitionValidator checks sync definitions before generation. The
// generator itself accepts any non-empty column list; findings here are
// advisory except for the column count bounds.
type DefinitionValidator struct {
	opts generator.Options
}

// NewDefinitionValidator creates a validator using opts for key resolution
func NewDefinitionValidator(opts generator.Options) *DefinitionValidator {
	return &DefinitionValidator{opts: opts}
}

// ValidateDefinitions validates every definition
func (v *DefinitionValidator) ValidateDefinitions(defs []schema.SyncDefinition) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	if len(defs) == 0 {
		result.add(ValidationError{
			Type:     "no_definitions",
			Message:  "No sync definitions found",
			Severity: "error",
		})
	}

	for _, def := range defs {
		v.validateDefinition(def, result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *DefinitionValidator) validateDefinition(def schema.SyncDefinition, result *ValidationResult) {
	v.validateTables(def, result)
	v.validateColumns(def, result)
	v.validateKey(def, result)
}

// validateTables checks the table references
func (v *DefinitionValidator) validateTables(def schema.SyncDefinition, result *ValidationResult) {
	if strings.TrimSpace(def.TargetTable) == "" {
		result.add(ValidationError{
			Type:     "table_name",
			Message:  "Target table is empty; the procedure will be named stp_sync_",
			Severity: "warning",
		})
	}
	if strings.TrimSpace(def.SourceTable) == "" {
		result.add(ValidationError{
			Type:     "table_name",
			Table:    def.TargetTable,
			Message:  "Source table is empty",
			Severity: "warning",
		})
	}
	if def.TargetTable != "" && def.TargetTable == def.SourceTable {
		result.add(ValidationError{
			Type:     "same_table",
			Table:    def.TargetTable,
			Message:  "Target and source are the same table",
			Severity: "warning",
		})
	}
	if def.TargetTable != "" && !strings.HasPrefix(def.TargetTable, "[dbo].[") {
		result.add(ValidationError{
			Type:     "procedure_name",
			Table:    def.TargetTable,
			Message:  fmt.Sprintf("Target is not [dbo].[...]; procedure will be named %s", generator.ProcedureName(def.TargetTable)),
			Severity: "info",
		})
	}
}

// validateColumns validates all columns in a definition
func (v *DefinitionValidator) validateColumns(def schema.SyncDefinition, result *ValidationResult) {
	if len(def.Columns) == 0 {
		result.add(ValidationError{
			Type:     "no_columns",
			Table:    def.TargetTable,
			Message:  fmt.Sprintf("Sync for '%s' must have at least one column", def.TargetTable),
			Severity: "error",
		})
		return
	}

	if len(def.Columns) > schema.MaxColumns {
		result.add(ValidationError{
			Type:     "too_many_columns",
			Table:    def.TargetTable,
			Message:  fmt.Sprintf("Sync for '%s' has %d columns (max %d)", def.TargetTable, len(def.Columns), schema.MaxColumns),
			Severity: "error",
		})
	}

	seen := make(map[string]bool)
	for _, column := range def.Columns {
		if strings.TrimSpace(column.Name) == "" {
			result.add(ValidationError{
				Type:     "column_name",
				Table:    def.TargetTable,
				Message:  "Column name is empty",
				Severity: "warning",
			})
			continue
		}

		if seen[column.Name] {
			result.add(ValidationError{
				Type:     "duplicate_column",
				Table:    def.TargetTable,
				Column:   column.Name,
				Message:  fmt.Sprintf("Duplicate column name '%s'", column.Name),
				Severity: "warning",
			})
		}
		seen[column.Name] = true

		if !isKnownType(column.Type) {
			result.add(ValidationError{
				Type:     "data_type",
				Table:    def.TargetTable,
				Column:   column.Name,
				Message:  fmt.Sprintf("Unrecognized type '%s'; NULLs will be replaced with ''", column.Type),
				Severity: "warning",
			})
		} else if strings.Contains(column.Type, "date") || strings.Contains(column.Type, "time") {
			result.add(ValidationError{
				Type:     "default_value",
				Table:    def.TargetTable,
				Column:   column.Name,
				Message:  fmt.Sprintf("Type '%s' defaults to '', which SQL Server converts to 1900-01-01", column.Type),
				Severity: "info",
			})
		}
	}
}

// validateKey checks that the join key resolves to a column of the definition
func (v *DefinitionValidator) validateKey(def schema.SyncDefinition, result *ValidationResult) {
	opts, err := generator.ApplyOverrides(def, v.opts)
	if err != nil {
		result.add(ValidationError{
			Type:     "configuration",
			Table:    def.TargetTable,
			Message:  err.Error(),
			Severity: "error",
		})
		return
	}
	if len(def.Columns) == 0 {
		return
	}

	key, err := generator.ResolveKey(def.Columns, opts)
	if err != nil {
		result.add(ValidationError{
			Type:     "configuration",
			Table:    def.TargetTable,
			Message:  err.Error(),
			Severity: "error",
		})
		return
	}

	if !slices.Contains(def.ColumnNames(), key.Source) {
		result.add(ValidationError{
			Type:     "key_column",
			Table:    def.TargetTable,
			Column:   key.Source,
			Message:  fmt.Sprintf("Join key %s is not one of the listed columns", key.Predicate()),
			Severity: "warning",
		})
	}
}

func (r *ValidationResult) add(e ValidationError) {
	switch e.Severity {
	case "error":
		r.Errors = append(r.Errors, e)
	case "warning":
		r.Warnings = append(r.Warnings, e)
	default:
		r.Info = append(r.Info, e)
	}
}

func isKnownType(dataType string) bool {
	for _, kw := range knownTypeKeywords {
		if strings.Contains(dataType, kw) {
			return true
		}
	}
	return false
}
