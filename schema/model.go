package schema

// SyncDefinition describes one target table kept in sync from a source table.
type SyncDefinition struct {
	TargetTable string
	SourceTable string
	Columns     []Column

	// Optional per-definition overrides of the generator settings.
	// Empty means "use the global configuration".
	KeyStrategy string
	KeyColumn   string
	Comparison  string
}

// Column is a single column of the synchronized tables.
type Column struct {
	Name string
	Type string // SQL type literal: int, nvarchar(50), decimal(10,3), ...
}

// ColumnNames returns the column names in definition order.
func (d SyncDefinition) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	return names
}

// TypeChoices are the column types offered by the column form.
var TypeChoices = []string{
	"int",
	"uniqueidentifier",
	"nvarchar(50)",
	"date",
	"decimal(10, 3)",
	"bit",
}

// MaxColumns is the upper bound on columns accepted by the input shell.
const MaxColumns = 20
