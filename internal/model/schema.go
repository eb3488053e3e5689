package model

// ColumnDesc describes a single column of a table as reported by the
// database catalog. It is a read-only snapshot constructed once per
// metadata row.
type ColumnDesc struct {
	Name     string `json:"name"`
	TypeName string `json:"db_type"` // native type label, e.g. "varchar"
	Nullable bool   `json:"nullable"`
	Size     *int64 `json:"size,omitempty"`
}

// PrimaryKeyDesc describes one column of a table's primary key.
//
// KeySequence carries the ordinal position exactly as the catalog returned
// it. It is kept as an opaque string and never parsed; the introspection
// queries order key columns server-side, so slice order is authoritative.
type PrimaryKeyDesc struct {
	KeyName     string `json:"key_name,omitempty"` // empty when the constraint is unnamed
	ColumnName  string `json:"column_name"`
	KeySequence string `json:"key_sequence"`
}

// TableDesc is a normalized snapshot of one database table. Columns and
// PrimaryKeys preserve catalog order. Every primary-key column name is
// expected to match a column in Columns; the mapping layer treats a
// violation as fatal.
type TableDesc struct {
	Name        string           `json:"name"`
	PrimaryKeys []PrimaryKeyDesc `json:"primary_keys"`
	Columns     []ColumnDesc     `json:"columns"`
}

// Column returns the column with the given name, and whether it exists.
func (t TableDesc) Column(name string) (ColumnDesc, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDesc{}, false
}

// PrimaryKeyColumnNames returns the set of column names that participate in
// the primary key.
func (t TableDesc) PrimaryKeyColumnNames() map[string]bool {
	set := make(map[string]bool, len(t.PrimaryKeys))
	for _, pk := range t.PrimaryKeys {
		set[pk.ColumnName] = true
	}
	return set
}
