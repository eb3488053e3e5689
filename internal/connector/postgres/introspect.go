package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigotdb/spigot/internal/model"
)

// tableRow holds the result of querying information_schema.tables.
type tableRow struct {
	TableName string `db:"table_name"`
	TableType string `db:"table_type"`
}

// columnRow holds the result of querying information_schema.columns. The
// udt_name carries the native type label (int4, varchar, timestamptz)
// rather than the SQL-standard data_type spelling.
type columnRow struct {
	ColumnName string `db:"column_name"`
	UDTName    string `db:"udt_name"`
	IsNullable string `db:"is_nullable"`
	MaxLength  *int64 `db:"character_maximum_length"`
}

// pkRow holds a primary key column with its constraint name and ordinal.
type pkRow struct {
	ConstraintName string `db:"constraint_name"`
	ColumnName     string `db:"column_name"`
	Ordinal        int    `db:"ordinal_position"`
}

// ListTables returns the names of all base tables in the configured schema.
// TABLE_TYPE is re-checked row by row so views and foreign tables never
// leak through.
func (c *PostgresConnector) ListTables(ctx context.Context) ([]string, error) {
	const query = `SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	var rows []tableRow
	if err := c.db.SelectContext(ctx, &rows, query, c.schemaName); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	names := make([]string, 0, len(rows))
	for _, t := range rows {
		if t.TableType != "BASE TABLE" {
			continue
		}
		names = append(names, t.TableName)
	}
	return names, nil
}

// ListColumns returns the columns of the given table in ordinal order.
func (c *PostgresConnector) ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error) {
	const query = `SELECT column_name, udt_name, is_nullable, character_maximum_length
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`

	var rows []columnRow
	if err := c.db.SelectContext(ctx, &rows, query, c.schemaName, table); err != nil {
		return nil, fmt.Errorf("list columns for %q: %w", table, err)
	}

	columns := make([]model.ColumnDesc, 0, len(rows))
	for _, col := range rows {
		columns = append(columns, model.ColumnDesc{
			Name:     col.ColumnName,
			TypeName: col.UDTName,
			Nullable: col.IsNullable == "YES",
			Size:     col.MaxLength,
		})
	}
	return columns, nil
}

// ListPrimaryKeys returns the primary key columns of the given table in key
// order.
func (c *PostgresConnector) ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error) {
	const query = `SELECT tc.constraint_name, kcu.column_name, kcu.ordinal_position
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1 AND tc.table_name = $2
		ORDER BY kcu.ordinal_position`

	var rows []pkRow
	if err := c.db.SelectContext(ctx, &rows, query, c.schemaName, table); err != nil {
		return nil, fmt.Errorf("list primary keys for %q: %w", table, err)
	}

	keys := make([]model.PrimaryKeyDesc, 0, len(rows))
	for _, pk := range rows {
		keys = append(keys, model.PrimaryKeyDesc{
			KeyName:     pk.ConstraintName,
			ColumnName:  pk.ColumnName,
			KeySequence: strconv.Itoa(pk.Ordinal),
		})
	}
	return keys, nil
}
