// Package schema composes connector metadata queries into table
// descriptors. A Reader takes fresh snapshots on every call; nothing is
// cached between generation runs.
package schema

import (
	"context"
	"fmt"

	"github.com/spigotdb/spigot/internal/connector"
	"github.com/spigotdb/spigot/internal/model"
)

// Reader reads normalized table descriptors through a connected Connector.
type Reader struct {
	conn connector.Connector
}

// NewReader creates a Reader over an already connected Connector. The
// Reader does not own the connection; the caller disconnects it.
func NewReader(conn connector.Connector) *Reader {
	return &Reader{conn: conn}
}

// ReadTable reads the columns and primary keys of a single table into a
// TableDesc. Catalog order is preserved for both.
func (r *Reader) ReadTable(ctx context.Context, table string) (model.TableDesc, error) {
	columns, err := r.conn.ListColumns(ctx, table)
	if err != nil {
		return model.TableDesc{}, fmt.Errorf("read table %q: %w", table, err)
	}

	pks, err := r.conn.ListPrimaryKeys(ctx, table)
	if err != nil {
		return model.TableDesc{}, fmt.Errorf("read table %q: %w", table, err)
	}

	return model.TableDesc{
		Name:        table,
		PrimaryKeys: pks,
		Columns:     columns,
	}, nil
}

// ReadAll reads a descriptor for every base table visible to the
// connection. The first metadata failure aborts the whole read; there is
// no retry and no partial result.
func (r *Reader) ReadAll(ctx context.Context) ([]model.TableDesc, error) {
	tables, err := r.conn.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	descs := make([]model.TableDesc, 0, len(tables))
	for _, table := range tables {
		desc, err := r.ReadTable(ctx, table)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}
