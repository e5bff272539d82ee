package generator

import "fmt"

// KeyStrategy selects how the join key between target and source is chosen.
type KeyStrategy string

const (
	// KeyFirstColumn joins on the first column of the definition, same name on both sides.
	KeyFirstColumn KeyStrategy = "first-column"
	// KeyFixed joins on Options.FixedKey (InstructionId = Id by default).
	KeyFixed KeyStrategy = "fixed"
	// KeyExplicit joins on Options.KeyColumn, same name on both sides.
	KeyExplicit KeyStrategy = "explicit"
)

// Comparison selects the change-detection predicate used in the UPDATE.
type Comparison string

const (
	// CompareCoalesce coalesces both sides to the column default before comparing,
	// so NULL and the default are treated as equal.
	CompareCoalesce Comparison = "coalesce"
	// CompareNonNull only compares when both sides are non-NULL.
	CompareNonNull Comparison = "non-null"
)

// JoinKey is the pair of columns correlating a target row with a source row.
type JoinKey struct {
	Target string
	Source string
}

// Options configure script assembly.
type Options struct {
	Database    string // USE [Database]
	Schema      string // schema owning the procedure
	KeyStrategy KeyStrategy
	KeyColumn   string
	FixedKey    JoinKey
	Comparison  Comparison
}

// DefaultOptions returns the settings the generator uses when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Database:    "DW_SSK",
		Schema:      "dbo",
		KeyStrategy: KeyFirstColumn,
		FixedKey:    JoinKey{Target: "InstructionId", Source: "Id"},
		Comparison:  CompareCoalesce,
	}
}

// ParseKeyStrategy converts a configuration string into a KeyStrategy.
// An empty string yields KeyFirstColumn.
func ParseKeyStrategy(s string) (KeyStrategy, error) {
	switch KeyStrategy(s) {
	case "", KeyFirstColumn:
		return KeyFirstColumn, nil
	case KeyFixed, KeyExplicit:
		return KeyStrategy(s), nil
	}
	return "", &ConfigurationError{
		Field:   "key_strategy",
		Message: fmt.Sprintf("unknown key strategy %q (want %s, %s or %s)", s, KeyFirstColumn, KeyFixed, KeyExplicit),
	}
}

// ParseComparison converts a configuration string into a Comparison.
// An empty string yields CompareCoalesce.
func ParseComparison(s string) (Comparison, error) {
	switch Comparison(s) {
	case "", CompareCoalesce:
		return CompareCoalesce, nil
	case CompareNonNull:
		return CompareNonNull, nil
	}
	return "", &ConfigurationError{
		Field:   "comparison",
		Message: fmt.Sprintf("unknown comparison %q (want %s or %s)", s, CompareCoalesce, CompareNonNull),
	}
}
