package snowflake

import (
	"context"
	"fmt"
	"sort"
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

// ListTables returns the names of all base tables in the configured schema.
// TABLE_TYPE is re-checked row by row so views never leak through.
func (c *SnowflakeConnector) ListTables(ctx context.Context) ([]string, error) {
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
func (c *SnowflakeConnector) ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error) {
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

// ListPrimaryKeys returns the primary key columns of the given table.
// Snowflake's information_schema has no key_column_usage rows, so the
// SHOW PRIMARY KEYS command is used and its result set scanned by column
// name. Rows are ordered by the reported key_sequence.
func (c *SnowflakeConnector) ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error) {
	query := fmt.Sprintf(`SHOW PRIMARY KEYS IN TABLE %s.%s`,
		c.QuoteIdentifier(c.schemaName), c.QuoteIdentifier(table))

	rawRows, err := c.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list primary keys for %q: %w", table, err)
	}
	defer rawRows.Close()

	var keys []model.PrimaryKeyDesc
	for rawRows.Next() {
		row := make(map[string]interface{})
		if err := rawRows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan primary keys for %q: %w", table, err)
		}
		columnName, _ := row["column_name"].(string)
		constraintName, _ := row["constraint_name"].(string)
		keySequence := fmt.Sprint(row["key_sequence"])

		keys = append(keys, model.PrimaryKeyDesc{
			KeyName:     constraintName,
			ColumnName:  columnName,
			KeySequence: keySequence,
		})
	}
	if err := rawRows.Err(); err != nil {
		return nil, fmt.Errorf("list primary keys for %q: %w", table, err)
	}

	// SHOW output order is not guaranteed; order by the numeric value of
	// key_sequence while keeping the reported string untouched.
	sort.SliceStable(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i].KeySequence)
		b, _ := strconv.Atoi(keys[j].KeySequence)
		return a < b
	})
	return keys, nil
}
