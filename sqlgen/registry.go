package sqlgen

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

// Registry is the generator selection chain. For a statement it picks the
// supporting generator with the highest priority.
type Registry struct {
	generators map[statement.Kind][]Generator
}

func NewRegistry() *Registry {
	return &Registry{generators: map[statement.Kind][]Generator{}}
}

// NewDefaultRegistry returns a registry holding every generator of this package.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func RegisterDefaults(r *Registry) {
	r.Register(statement.KindCreateSchema, BaseCreateSchemaGenerator{})
	r.Register(statement.KindCreateSchema, CreateSchemaGenerator{})
	r.Register(statement.KindDropSchema, BaseDropSchemaGenerator{})
	r.Register(statement.KindDropSchema, DropSchemaGenerator{})
	r.Register(statement.KindCatalogExists, CatalogExistsGenerator{})
	r.Register(statement.KindSchemaExists, SchemaExistsGenerator{})
	r.Register(statement.KindSetIdentityInsert, SetIdentityInsertGenerator{})
	r.Register(statement.KindInsertOrUpdate, InsertOrUpdateGenerator{})
	r.Register(statement.KindCreateDatabase, CreateDatabaseGenerator{})
	r.Register(statement.KindDropDatabase, DropDatabaseGenerator{})
}

// Register adds g for kind. Generators with equal priority keep registration
// order.
func (r *Registry) Register(kind statement.Kind, g Generator) {
	gens := append(r.generators[kind], g)
	sort.SliceStable(gens, func(i, j int) bool {
		return gens[i].Priority() > gens[j].Priority()
	})
	r.generators[kind] = gens
}

// Select returns the generator to use for stmt on target.
func (r *Registry) Select(stmt statement.Statement, target *database.Target) (Generator, bool) {
	for _, g := range r.generators[stmt.Kind()] {
		if g.Supports(stmt, target) {
			return g, true
		}
	}
	return nil, false
}

func (r *Registry) Supports(stmt statement.Statement, target *database.Target) bool {
	_, ok := r.Select(stmt, target)
	return ok
}

func (r *Registry) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	g, ok := r.Select(stmt, target)
	if !ok {
		var v ValidationErrors
		v.AddError("%s is not supported on %s", stmt.Kind(), target.Kind())
		return v
	}
	return g.Validate(stmt, target)
}

// Generate validates stmt and renders it. Validation problems are returned as
// ValidationErrors and no SQL is produced.
func (r *Registry) Generate(stmt statement.Statement, target *database.Target) ([]SQL, error) {
	g, ok := r.Select(stmt, target)
	if !ok {
		return nil, fmt.Errorf("no generator for %s on %s", stmt.Kind(), target.Kind())
	}
	if v := g.Validate(stmt, target); v.HasErrors() {
		return nil, v
	}
	sqls := g.GenerateSQL(stmt, target)
	slog.Debug("generated sql", "statement", stmt.Kind(), "dialect", target.Kind(), "generator", fmt.Sprintf("%T", g), "sql", Texts(sqls))
	return sqls, nil
}
