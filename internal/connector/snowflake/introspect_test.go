package snowflake

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockConnector(t *testing.T) (*SnowflakeConnector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	c := &SnowflakeConnector{db: sqlx.NewDb(db, "sqlmock"), schemaName: "PUBLIC"}
	t.Cleanup(func() { c.Disconnect() })
	return c, mock
}

func TestListColumns(t *testing.T) {
	c, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM INFORMATION_SCHEMA.COLUMNS")).
		WithArgs("PUBLIC", "EVENTS").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "CHARACTER_MAXIMUM_LENGTH"}).
			AddRow("ID", "NUMBER", "NO", nil).
			AddRow("PAYLOAD", "VARIANT", "YES", nil))

	columns, err := c.ListColumns(context.Background(), "EVENTS")
	if err != nil {
		t.Fatalf("ListColumns error: %v", err)
	}

	if len(columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(columns))
	}
	if columns[0].Name != "ID" || columns[0].TypeName != "NUMBER" {
		t.Errorf("columns[0] = %+v, want NUMBER ID", columns[0])
	}
	if columns[1].TypeName != "VARIANT" || !columns[1].Nullable {
		t.Errorf("columns[1] = %+v, want nullable VARIANT", columns[1])
	}
}

func TestListPrimaryKeysOrdersByKeySequence(t *testing.T) {
	c, mock := newMockConnector(t)

	// SHOW PRIMARY KEYS reports rows in no guaranteed order.
	mock.ExpectQuery(regexp.QuoteMeta("SHOW PRIMARY KEYS IN TABLE")).
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "key_sequence", "constraint_name"}).
			AddRow("LINE_NO", int64(2), "ORDER_ITEMS_PK").
			AddRow("ORDER_ID", int64(1), "ORDER_ITEMS_PK"))

	keys, err := c.ListPrimaryKeys(context.Background(), "ORDER_ITEMS")
	if err != nil {
		t.Fatalf("ListPrimaryKeys error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(keys))
	}
	if keys[0].ColumnName != "ORDER_ID" || keys[0].KeySequence != "1" {
		t.Errorf("keys[0] = %+v, want ORDER_ID at sequence 1", keys[0])
	}
	if keys[1].ColumnName != "LINE_NO" || keys[1].KeySequence != "2" {
		t.Errorf("keys[1] = %+v, want LINE_NO at sequence 2", keys[1])
	}
	if keys[0].KeyName != "ORDER_ITEMS_PK" {
		t.Errorf("KeyName = %q, want ORDER_ITEMS_PK", keys[0].KeyName)
	}
}

func TestListPrimaryKeysEmpty(t *testing.T) {
	c, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW PRIMARY KEYS IN TABLE")).
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "key_sequence", "constraint_name"}))

	keys, err := c.ListPrimaryKeys(context.Background(), "NO_KEYS")
	if err != nil {
		t.Fatalf("ListPrimaryKeys error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}
