package mapping

import "testing"

func TestDefaultTypeMapper(t *testing.T) {
	cases := []struct {
		driver, typeName, want string
	}{
		{"mysql", "varchar", "string"},
		{"mysql", "VARCHAR", "string"},
		{"mysql", "bigint", "int64"},
		{"mysql", "datetime", "time.Time"},
		{"postgres", "int4", "int32"},
		{"postgres", "timestamptz", "time.Time"},
		{"postgres", "bytea", "[]byte"},
		{"mssql", "uniqueidentifier", "string"},
		{"mssql", "bit", "bool"},
		{"sqlite", "INTEGER", "int64"},
		{"snowflake", "timestamp_ntz", "time.Time"},
		{"snowflake", "variant", "interface{}"},
		{"mysql", "geometry", "interface{}"},
		{"nosuchdriver", "varchar", "interface{}"},
	}
	for _, tc := range cases {
		if got := DefaultTypeMapper(tc.driver)(tc.typeName); got != tc.want {
			t.Errorf("DefaultTypeMapper(%q)(%q) = %q, want %q", tc.driver, tc.typeName, got, tc.want)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultTypeMapper("postgres")
	mapper := WithOverrides(base, map[string]string{
		"UUID": "uuid.UUID",
		"int8": "uint64",
	})

	if got := mapper("uuid"); got != "uuid.UUID" {
		t.Errorf("uuid = %q, want uuid.UUID", got)
	}
	if got := mapper("INT8"); got != "uint64" {
		t.Errorf("INT8 = %q, want uint64", got)
	}
	if got := mapper("varchar"); got != "string" {
		t.Errorf("varchar = %q, want string (base mapping)", got)
	}
}

func TestWithOverridesEmpty(t *testing.T) {
	base := DefaultTypeMapper("mysql")
	if got := WithOverrides(base, nil)("varchar"); got != "string" {
		t.Errorf("varchar = %q, want string", got)
	}
}
