package mysql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigotdb/spigot/internal/model"
)

// tableRow holds the result of querying information_schema.tables.
type tableRow struct {
	TableName string `db:"TABLE_NAME"`
	TableType string `db:"TABLE_TYPE"`
}

// columnRow holds the result of querying information_schema.columns.
type columnRow struct {
	ColumnName string `db:"COLUMN_NAME"`
	DataType   string `db:"DATA_TYPE"`
	IsNullable string `db:"IS_NULLABLE"`
	MaxLength  *int64 `db:"CHARACTER_MAXIMUM_LENGTH"`
}

// pkRow holds a primary key column with its constraint name and ordinal.
type pkRow struct {
	ConstraintName string `db:"CONSTRAINT_NAME"`
	ColumnName     string `db:"COLUMN_NAME"`
	Ordinal        int    `db:"ORDINAL_POSITION"`
}

// ListTables returns the names of all base tables in the configured schema.
// The TABLE_TYPE is re-checked row by row: some MySQL-compatible servers
// report views through the same catalog even with the WHERE filter.
func (c *MySQLConnector) ListTables(ctx context.Context) ([]string, error) {
	const query = `SELECT TABLE_NAME, TABLE_TYPE
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`

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
func (c *MySQLConnector) ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error) {
	const query = `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`

	var rows []columnRow
	if err := c.db.SelectContext(ctx, &rows, query, c.schemaName, table); err != nil {
		return nil, fmt.Errorf("list columns for %q: %w", table, err)
	}

	columns := make([]model.ColumnDesc, 0, len(rows))
	for _, col := range rows {
		columns = append(columns, model.ColumnDesc{
			Name:     col.ColumnName,
			TypeName: col.DataType,
			Nullable: col.IsNullable == "YES",
			Size:     col.MaxLength,
		})
	}
	return columns, nil
}

// ListPrimaryKeys returns the primary key columns of the given table in key
// order. MySQL names every primary key constraint 'PRIMARY'.
func (c *MySQLConnector) ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error) {
	const query = `SELECT CONSTRAINT_NAME, COLUMN_NAME, ORDINAL_POSITION
		FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_NAME = 'PRIMARY'
		ORDER BY ORDINAL_POSITION`

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
