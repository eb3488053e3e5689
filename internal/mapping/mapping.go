// Package mapping transforms table descriptors into the context handed to
// templates. Everything here is a pure function of its inputs.
package mapping

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"

	"github.com/spigotdb/spigot/internal/model"
)

// TypeMapper converts a database-native type label into the type name
// emitted in generated code.
type TypeMapper func(typeName string) string

// PropertyMapper converts a column name into the property name emitted in
// generated code.
type PropertyMapper func(columnName string) string

// Entry is the per-column unit of the render context.
type Entry struct {
	Name         string
	CamelizeName string
	TypeName     string
	Nullable     bool
}

// MappingError reports a primary-key column that has no matching column in
// its table descriptor. This is an invariant violation in the source
// metadata and is never skipped.
type MappingError struct {
	Table  string
	Column string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("table %q: primary-key column %q not found among columns", e.Table, e.Column)
}

// Camelize converts a delimiter-separated identifier to UpperCamelCase:
// "user_id" becomes "UserId".
func Camelize(identifier string) string {
	return inflect.Camelize(identifier)
}

// LowerCamel lowercases only the first rune: "UserDao" becomes "userDao".
func LowerCamel(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// PrimaryKeyEntries builds one entry per primary-key descriptor, in key
// order. Each key column is looked up in the table's column list; a
// missing column fails with MappingError before any entry is returned.
func PrimaryKeyEntries(typeMapper TypeMapper, propertyMapper PropertyMapper, table model.TableDesc) ([]Entry, error) {
	entries := make([]Entry, 0, len(table.PrimaryKeys))
	for _, pk := range table.PrimaryKeys {
		col, ok := table.Column(pk.ColumnName)
		if !ok {
			return nil, &MappingError{Table: table.Name, Column: pk.ColumnName}
		}
		entries = append(entries, newEntry(typeMapper, propertyMapper, col))
	}
	return entries, nil
}

// ColumnEntries builds one entry per non-key column, preserving the
// original column order.
func ColumnEntries(typeMapper TypeMapper, propertyMapper PropertyMapper, table model.TableDesc) []Entry {
	pkCols := table.PrimaryKeyColumnNames()

	entries := make([]Entry, 0, len(table.Columns))
	for _, col := range table.Columns {
		if pkCols[col.Name] {
			continue
		}
		entries = append(entries, newEntry(typeMapper, propertyMapper, col))
	}
	return entries
}

func newEntry(typeMapper TypeMapper, propertyMapper PropertyMapper, col model.ColumnDesc) Entry {
	return Entry{
		Name:         propertyMapper(col.Name),
		CamelizeName: Camelize(col.Name),
		TypeName:     typeMapper(col.TypeName),
		Nullable:     col.Nullable,
	}
}

// RenderContext is the flattened string-keyed mapping passed to the
// template engine. It is rebuilt fresh per (table, className) pair and not
// retained after rendering.
type RenderContext map[string]any

// NewRenderContext composes the final context: className,
// lowerCamelClassName, primaryKeys, columns, and primaryKeysWithColumns
// (primary keys first).
func NewRenderContext(pkEntries, colEntries []Entry, className string) RenderContext {
	all := make([]Entry, 0, len(pkEntries)+len(colEntries))
	all = append(all, pkEntries...)
	all = append(all, colEntries...)

	return RenderContext{
		"className":              className,
		"lowerCamelClassName":    LowerCamel(className),
		"primaryKeys":            pkEntries,
		"columns":                colEntries,
		"primaryKeysWithColumns": all,
	}
}
