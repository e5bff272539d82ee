package generator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/syncproc/schema"
)

const (
	listSep  = ",\n        "
	orSep    = " OR\n        "
	collated = " COLLATE DATABASE_DEFAULT"
)

// Clauses holds the per-column fragments of the generated statements, in
// column order.
type Clauses struct {
	Set           []string
	Where         []string
	InsertColumns []string
	SelectColumns []string
}

// BuildClauses renders the SET, WHERE, INSERT and SELECT fragments for columns.
func BuildClauses(columns []schema.Column, cmp Comparison) (Clauses, error) {
	var c Clauses
	for _, col := range columns {
		def := DefaultValue(col.Type)
		fn := CoalesceFunc(col.Type)

		c.Set = append(c.Set, fmt.Sprintf("target.%s = %s(src.%s, %s)", col.Name, fn, col.Name, def))

		pred, err := changePredicate(col, cmp)
		if err != nil {
			return Clauses{}, err
		}
		c.Where = append(c.Where, pred)

		c.InsertColumns = append(c.InsertColumns, col.Name)
		c.SelectColumns = append(c.SelectColumns, fmt.Sprintf("%s(src.%s, %s)", fn, col.Name, def))
	}
	return c, nil
}

func changePredicate(col schema.Column, cmp Comparison) (string, error) {
	suffix := ""
	if IsNVarchar(col.Type) {
		suffix = collated
	}

	switch cmp {
	case "", CompareCoalesce:
		def := DefaultValue(col.Type)
		fn := CoalesceFunc(col.Type)
		return fmt.Sprintf("%s(target.%s, %s)%s <> %s(src.%s, %s)%s",
			fn, col.Name, def, suffix,
			fn, col.Name, def, suffix,
		), nil
	case CompareNonNull:
		return fmt.Sprintf("(target.%s IS NOT NULL AND src.%s IS NOT NULL AND target.%s%s <> src.%s%s)",
			col.Name, col.Name,
			col.Name, suffix,
			col.Name, suffix,
		), nil
	}
	return "", &ConfigurationError{Field: "comparison", Message: fmt.Sprintf("unknown comparison %q", cmp)}
}

// SetClause joins the SET fragments.
func (c Clauses) SetClause() string { return strings.Join(c.Set, listSep) }

// WhereClause joins the change predicates; a row differs if any column differs.
func (c Clauses) WhereClause() string { return strings.Join(c.Where, orSep) }

// InsertList joins the INSERT column names.
func (c Clauses) InsertList() string { return strings.Join(c.InsertColumns, listSep) }

// SelectList joins the SELECT value expressions.
func (c Clauses) SelectList() string { return strings.Join(c.SelectColumns, listSep) }

// ResolveKey picks the join key for columns according to the key strategy.
func ResolveKey(columns []schema.Column, opts Options) (JoinKey, error) {
	if len(columns) == 0 {
		return JoinKey{}, errNoColumns()
	}

	first := columns[0].Name
	switch opts.KeyStrategy {
	case "", KeyFirstColumn:
		return JoinKey{Target: first, Source: first}, nil
	case KeyFixed:
		key := opts.FixedKey
		if key.Target == "" || key.Source == "" {
			key = DefaultOptions().FixedKey
		}
		return key, nil
	case KeyExplicit:
		if opts.KeyColumn == "" {
			return JoinKey{Target: first, Source: first}, nil
		}
		return JoinKey{Target: opts.KeyColumn, Source: opts.KeyColumn}, nil
	}
	return JoinKey{}, &ConfigurationError{
		Field:   "key_strategy",
		Message: fmt.Sprintf("unknown key strategy %q", opts.KeyStrategy),
	}
}

// Predicate renders the join condition between the target and src aliases.
func (k JoinKey) Predicate() string {
	return fmt.Sprintf("target.%s = src.%s", k.Target, k.Source)
}

func errNoColumns() *ConfigurationError {
	return &ConfigurationError{Field: "columns", Message: "at least one column is required"}
}
