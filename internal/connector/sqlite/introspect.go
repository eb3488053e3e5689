package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spigotdb/spigot/internal/model"
)

// tableInfoRow holds a row from PRAGMA table_info().
type tableInfoRow struct {
	CID     int     `db:"cid"`
	Name    string  `db:"name"`
	Type    string  `db:"type"`
	NotNull int     `db:"notnull"`
	Default *string `db:"dflt_value"`
	PK      int     `db:"pk"`
}

// ListTables returns the names of all user tables. Views and the internal
// sqlite_* tables are excluded.
func (c *SQLiteConnector) ListTables(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	var names []string
	if err := c.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

// ListColumns returns the columns of the given table in declaration order.
// Declared types like VARCHAR(50) are split into the bare type label and a
// size, matching what the information_schema drivers report.
func (c *SQLiteConnector) ListColumns(ctx context.Context, table string) ([]model.ColumnDesc, error) {
	rows, err := c.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}

	columns := make([]model.ColumnDesc, 0, len(rows))
	for _, col := range rows {
		typeName, size := splitDeclaredType(col.Type)
		columns = append(columns, model.ColumnDesc{
			Name:     col.Name,
			TypeName: typeName,
			Nullable: col.NotNull == 0 && col.PK == 0,
			Size:     size,
		})
	}
	return columns, nil
}

// ListPrimaryKeys returns the primary key columns of the given table in key
// order. SQLite does not name primary key constraints, so KeyName is empty.
func (c *SQLiteConnector) ListPrimaryKeys(ctx context.Context, table string) ([]model.PrimaryKeyDesc, error) {
	rows, err := c.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}

	var pks []tableInfoRow
	for _, col := range rows {
		if col.PK > 0 {
			pks = append(pks, col)
		}
	}
	// table_info lists columns in declaration order; the pk field carries
	// the position within the key.
	sort.SliceStable(pks, func(i, j int) bool { return pks[i].PK < pks[j].PK })

	keys := make([]model.PrimaryKeyDesc, 0, len(pks))
	for _, col := range pks {
		keys = append(keys, model.PrimaryKeyDesc{
			ColumnName:  col.Name,
			KeySequence: strconv.Itoa(col.PK),
		})
	}
	return keys, nil
}

func (c *SQLiteConnector) tableInfo(ctx context.Context, table string) ([]tableInfoRow, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", c.QuoteIdentifier(table))
	var rows []tableInfoRow
	if err := c.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("table_info for %q: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return rows, nil
}

// splitDeclaredType separates "VARCHAR(50)" into ("VARCHAR", 50). Types
// without a parenthesized length come back with a nil size.
func splitDeclaredType(declared string) (string, *int64) {
	open := strings.IndexByte(declared, '(')
	if open < 0 {
		return declared, nil
	}
	close := strings.IndexByte(declared[open:], ')')
	if close < 0 {
		return declared, nil
	}
	inner := declared[open+1 : open+close]
	// NUMERIC(10,2) carries precision and scale; take the first number.
	if comma := strings.IndexByte(inner, ','); comma >= 0 {
		inner = inner[:comma]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(inner), 10, 64)
	if err != nil {
		return declared, nil
	}
	return declared[:open], &n
}
