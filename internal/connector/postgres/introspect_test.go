package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockConnector(t *testing.T) (*PostgresConnector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	c := &PostgresConnector{db: sqlx.NewDb(db, "sqlmock"), schemaName: "public"}
	t.Cleanup(func() { c.Disconnect() })
	return c, mock
}

func TestListTables(t *testing.T) {
	c, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).
			AddRow("accounts", "BASE TABLE").
			AddRow("account_summary", "VIEW").
			AddRow("users", "BASE TABLE"))

	tables, err := c.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables error: %v", err)
	}

	want := []string{"accounts", "users"}
	if len(tables) != len(want) {
		t.Fatalf("tables = %v, want %v", tables, want)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("tables[%d] = %q, want %q", i, tables[i], want[i])
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListColumnsUsesUDTName(t *testing.T) {
	c, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "udt_name", "is_nullable", "character_maximum_length"}).
			AddRow("id", "int4", "NO", nil).
			AddRow("email", "varchar", "YES", int64(255)).
			AddRow("created_at", "timestamptz", "NO", nil))

	columns, err := c.ListColumns(context.Background(), "users")
	if err != nil {
		t.Fatalf("ListColumns error: %v", err)
	}

	if len(columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(columns))
	}
	if columns[0].TypeName != "int4" {
		t.Errorf("columns[0].TypeName = %q, want the native udt label int4", columns[0].TypeName)
	}
	if columns[2].TypeName != "timestamptz" {
		t.Errorf("columns[2].TypeName = %q, want timestamptz", columns[2].TypeName)
	}
	if columns[1].Size == nil || *columns[1].Size != 255 {
		t.Errorf("columns[1].Size = %v, want 255", columns[1].Size)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListPrimaryKeysComposite(t *testing.T) {
	c, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.table_constraints")).
		WithArgs("public", "order_items").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name", "ordinal_position"}).
			AddRow("order_items_pkey", "order_id", 1).
			AddRow("order_items_pkey", "line_no", 2))

	keys, err := c.ListPrimaryKeys(context.Background(), "order_items")
	if err != nil {
		t.Fatalf("ListPrimaryKeys error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(keys))
	}
	if keys[0].KeyName != "order_items_pkey" {
		t.Errorf("KeyName = %q, want order_items_pkey", keys[0].KeyName)
	}
	if keys[0].ColumnName != "order_id" || keys[1].ColumnName != "line_no" {
		t.Errorf("key order = [%s %s], want [order_id line_no]", keys[0].ColumnName, keys[1].ColumnName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListColumnsQueryFailure(t *testing.T) {
	c, mock := newMockConnector(t)

	boom := errors.New("relation does not exist")
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("public", "ghost").
		WillReturnError(boom)

	if _, err := c.ListColumns(context.Background(), "ghost"); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	c := &PostgresConnector{}

	if got := c.QuoteIdentifier("users"); got != `"users"` {
		t.Errorf("QuoteIdentifier = %q, want double quotes", got)
	}
	if got := c.QuoteIdentifier(`we"ird`); got != `"we""ird"` {
		t.Errorf("QuoteIdentifier = %q, want escaped quote", got)
	}
}
