package generate

import "fmt"

// SchemaReadError wraps a metadata query failure. It aborts the whole
// generation run; there is no retry.
type SchemaReadError struct {
	Err error
}

func (e *SchemaReadError) Error() string {
	return fmt.Sprintf("schema read: %v", e.Err)
}

func (e *SchemaReadError) Unwrap() error { return e.Err }

// TableNotFoundError reports a requested table that is absent from the
// filtered descriptor set.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}
