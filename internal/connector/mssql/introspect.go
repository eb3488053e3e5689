package mssql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigotdb/spigot/internal/model"
)

// tableRow holds the result of querying INFORMATION_SCHEMA.TABLES.
type tableRow struct {
	TableName string `db:"TABLE_NAME"`
	TableType string `db:"TABLE_TYPE"`
}

// columnRow holds the result of querying INFORMATION_SCHEMA.COLUMNS.
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
// TABLE_TYPE is re-checked row by row so views never leak through.
func (c *MSSQLConnector) ListTables(ctx context.Context) ([]string, error) {
	const query = `SELECT TABLE_NAME, TABLE_TYPE
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
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
func (c *MSSQLConnector) ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error) {
	const query = `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
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
// order.
func (c *MSSQLConnector) ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error) {
	const query = `SELECT tc.CONSTRAINT_NAME, kcu.COLUMN_NAME, kcu.ORDINAL_POSITION
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
			AND tc.TABLE_NAME = kcu.TABLE_NAME
		WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
			AND tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2
		ORDER BY kcu.ORDINAL_POSITION`

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
