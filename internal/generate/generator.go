// Package generate orchestrates the introspect → map → render → write
// pipeline. Composition is fail-fast: the first component error aborts the
// remaining work and no partial file list is returned.
package generate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spigotdb/spigot/internal/connector"
	"github.com/spigotdb/spigot/internal/emitter"
	"github.com/spigotdb/spigot/internal/mapping"
	"github.com/spigotdb/spigot/internal/model"
	"github.com/spigotdb/spigot/internal/render"
	"github.com/spigotdb/spigot/internal/schema"
)

// Context bundles everything one generation run needs. It is built fresh
// per invocation and holds the four mapping functions as first-class
// values.
type Context struct {
	// Conn is the live connection for this run. The Context does not own
	// it; the caller disconnects it when the run finishes.
	Conn connector.Connector

	// ClassNames maps a table name to zero or more generated class names.
	// One table may fan out to several classes (entity, DAO, ...).
	ClassNames func(table string) []string
	// TypeName maps a native column type label to the emitted type name.
	TypeName mapping.TypeMapper
	// PropertyName maps a column name to the emitted property name.
	PropertyName mapping.PropertyMapper
	// IncludeTable decides whether a discovered table participates at all.
	IncludeTable func(table string) bool

	// TemplateName maps a class name to the template that renders it.
	TemplateName func(className string) string
	// OutputDir maps a class name to the directory its file is written to.
	OutputDir func(className string) string

	Renderer *render.Engine
	Emitter  *emitter.Emitter
	Logger   *slog.Logger
}

// Generator runs generation requests against one Context, sequentially:
// each (table, className) pair is mapped, rendered, and written in full
// before the next starts.
type Generator struct {
	ctx   Context
	runID string
}

// New creates a Generator. A nil Logger is replaced with slog's default;
// every run gets a fresh run ID for log correlation.
func New(ctx Context) *Generator {
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}
	if ctx.IncludeTable == nil {
		ctx.IncludeTable = func(string) bool { return true }
	}
	return &Generator{ctx: ctx, runID: uuid.NewString()}
}

// GenerateOne generates all files for a single named table. The name must
// match a discovered, included table exactly; otherwise the run fails with
// TableNotFoundError and nothing is written.
func (g *Generator) GenerateOne(ctx context.Context, table string) ([]string, error) {
	descs, err := g.readIncluded(ctx)
	if err != nil {
		return nil, err
	}

	for _, desc := range descs {
		if desc.Name == table {
			return g.generateTable(desc)
		}
	}
	return nil, &TableNotFoundError{Table: table}
}

// GenerateMany generates files for every descriptor whose name is in
// tables. Output order follows descriptor order, not the requested order.
// Requested names that match no descriptor are dropped without error; each
// one is logged at WARN so the tolerance stays visible.
func (g *Generator) GenerateMany(ctx context.Context, tables []string) ([]string, error) {
	descs, err := g.readIncluded(ctx)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(tables))
	for _, t := range tables {
		requested[t] = true
	}

	var paths []string
	for _, desc := range descs {
		if !requested[desc.Name] {
			continue
		}
		delete(requested, desc.Name)

		generated, err := g.generateTable(desc)
		if err != nil {
			return nil, err
		}
		paths = append(paths, generated...)
	}

	for t := range requested {
		g.ctx.Logger.Warn("requested table not found, skipping",
			"run_id", g.runID, "table", t)
	}
	return paths, nil
}

// GenerateAll generates files for every discovered table that passes the
// inclusion predicate.
func (g *Generator) GenerateAll(ctx context.Context) ([]string, error) {
	descs, err := g.readIncluded(ctx)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, desc := range descs {
		generated, err := g.generateTable(desc)
		if err != nil {
			return nil, err
		}
		paths = append(paths, generated...)
	}
	return paths, nil
}

// readIncluded takes a fresh schema snapshot and applies the inclusion
// predicate.
func (g *Generator) readIncluded(ctx context.Context) ([]model.TableDesc, error) {
	descs, err := schema.NewReader(g.ctx.Conn).ReadAll(ctx)
	if err != nil {
		return nil, &SchemaReadError{Err: err}
	}

	included := descs[:0]
	for _, desc := range descs {
		if g.ctx.IncludeTable(desc.Name) {
			included = append(included, desc)
		}
	}
	return included, nil
}

// generateTable fans one descriptor out over its class names and writes
// one file per class.
func (g *Generator) generateTable(desc model.TableDesc) ([]string, error) {
	pkEntries, err := mapping.PrimaryKeyEntries(g.ctx.TypeName, g.ctx.PropertyName, desc)
	if err != nil {
		return nil, err
	}
	colEntries := mapping.ColumnEntries(g.ctx.TypeName, g.ctx.PropertyName, desc)

	var paths []string
	for _, className := range g.ctx.ClassNames(desc.Name) {
		renderCtx := mapping.NewRenderContext(pkEntries, colEntries, className)

		text, err := g.ctx.Renderer.Render(g.ctx.TemplateName(className), renderCtx)
		if err != nil {
			return nil, err
		}

		path, err := g.ctx.Emitter.Write(g.ctx.OutputDir(className), className, text)
		if err != nil {
			return nil, err
		}

		g.ctx.Logger.Info("generated file",
			"run_id", g.runID, "table", desc.Name, "class", className, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
