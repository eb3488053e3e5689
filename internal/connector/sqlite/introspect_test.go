package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/spigotdb/spigot/internal/connector"
)

func newTestConnector(t *testing.T) *SQLiteConnector {
	t.Helper()
	c := New().(*SQLiteConnector)
	err := c.Connect(connector.ConnectionConfig{DSN: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	t.Cleanup(func() { c.Disconnect() })

	ddl := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name VARCHAR(50),
			balance NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE order_items (
			order_id INTEGER NOT NULL,
			line_no INTEGER NOT NULL,
			sku TEXT,
			PRIMARY KEY (order_id, line_no)
		)`,
		`CREATE VIEW user_names AS SELECT name FROM users`,
	}
	for _, stmt := range ddl {
		if _, err := c.db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return c
}

func TestListTables(t *testing.T) {
	c := newTestConnector(t)

	tables, err := c.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables error: %v", err)
	}

	want := []string{"order_items", "users"}
	if len(tables) != len(want) {
		t.Fatalf("tables = %v, want %v", tables, want)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("tables[%d] = %q, want %q", i, tables[i], want[i])
		}
	}
}

func TestListColumns(t *testing.T) {
	c := newTestConnector(t)

	columns, err := c.ListColumns(context.Background(), "users")
	if err != nil {
		t.Fatalf("ListColumns error: %v", err)
	}

	if len(columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(columns))
	}

	if columns[0].Name != "id" || columns[0].TypeName != "INTEGER" {
		t.Errorf("columns[0] = %+v, want INTEGER id", columns[0])
	}
	if columns[0].Nullable {
		t.Error("primary key column reported nullable")
	}

	if columns[1].Name != "name" || columns[1].TypeName != "VARCHAR" {
		t.Errorf("columns[1] = %+v, want VARCHAR name", columns[1])
	}
	if columns[1].Size == nil || *columns[1].Size != 50 {
		t.Errorf("columns[1].Size = %v, want 50 from the declared length", columns[1].Size)
	}
	if !columns[1].Nullable {
		t.Error("name reported not nullable")
	}

	if columns[2].TypeName != "NUMERIC" {
		t.Errorf("columns[2].TypeName = %q, want NUMERIC with precision stripped", columns[2].TypeName)
	}
	if columns[2].Size == nil || *columns[2].Size != 10 {
		t.Errorf("columns[2].Size = %v, want 10", columns[2].Size)
	}
}

func TestListColumnsUnknownTable(t *testing.T) {
	c := newTestConnector(t)

	_, err := c.ListColumns(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for unknown table")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not-found message", err)
	}
}

func TestListPrimaryKeys(t *testing.T) {
	c := newTestConnector(t)

	keys, err := c.ListPrimaryKeys(context.Background(), "order_items")
	if err != nil {
		t.Fatalf("ListPrimaryKeys error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(keys))
	}
	if keys[0].ColumnName != "order_id" || keys[0].KeySequence != "1" {
		t.Errorf("keys[0] = %+v, want order_id at sequence 1", keys[0])
	}
	if keys[1].ColumnName != "line_no" || keys[1].KeySequence != "2" {
		t.Errorf("keys[1] = %+v, want line_no at sequence 2", keys[1])
	}
	if keys[0].KeyName != "" {
		t.Errorf("KeyName = %q, want empty (unnamed constraint)", keys[0].KeyName)
	}
}

func TestSplitDeclaredType(t *testing.T) {
	cases := []struct {
		in       string
		wantType string
		wantSize int64 // 0 means nil
	}{
		{"VARCHAR(50)", "VARCHAR", 50},
		{"NUMERIC(10,2)", "NUMERIC", 10},
		{"INTEGER", "INTEGER", 0},
		{"TEXT", "TEXT", 0},
		{"BROKEN(", "BROKEN(", 0},
		{"BROKEN(abc)", "BROKEN(abc)", 0},
	}
	for _, tc := range cases {
		typeName, size := splitDeclaredType(tc.in)
		if typeName != tc.wantType {
			t.Errorf("splitDeclaredType(%q) type = %q, want %q", tc.in, typeName, tc.wantType)
		}
		if tc.wantSize == 0 {
			if size != nil {
				t.Errorf("splitDeclaredType(%q) size = %d, want nil", tc.in, *size)
			}
		} else if size == nil || *size != tc.wantSize {
			t.Errorf("splitDeclaredType(%q) size = %v, want %d", tc.in, size, tc.wantSize)
		}
	}
}
