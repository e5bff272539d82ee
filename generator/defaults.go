package generator

import (
	"strings"

	"github.com/google/uuid"
)

var nilGUID = "'" + uuid.Nil.String() + "'"

// NilGUID returns the fallback literal for uniqueidentifier columns.
func NilGUID() string {
	return nilGUID
}

// DefaultValue maps a SQL type literal to the expression substituted when a
// value is NULL. Matching is a case-sensitive substring test so parameterized
// types like decimal(10,3) or nvarchar(50) need no type grammar.
func DefaultValue(dataType string) string {
	switch {
	case isGUID(dataType):
		return nilGUID
	case strings.Contains(dataType, "int") || strings.Contains(dataType, "decimal"):
		return "0"
	case strings.Contains(dataType, "bit"):
		return "0"
	default:
		return "''"
	}
}

// CoalesceFunc returns the null-coalescing function used for a column type.
// GUID columns use ISNULL, everything else COALESCE.
func CoalesceFunc(dataType string) string {
	if isGUID(dataType) {
		return "ISNULL"
	}
	return "COALESCE"
}

// IsNVarchar reports whether comparisons on the type need a collation qualifier.
func IsNVarchar(dataType string) bool {
	return strings.Contains(dataType, "nvarchar")
}

func isGUID(dataType string) bool {
	return strings.Contains(dataType, "uniqueidentifier")
}
