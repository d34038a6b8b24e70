// Package precondition checks facts about a live database before a migration
// step runs. A check that finds the fact untrue reports PreconditionFailed; a
// check that could not find out reports Errored with the cause.
package precondition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/result"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

type Precondition interface {
	Name() string
	Validate(target *database.Target, registry *sqlgen.Registry) sqlgen.ValidationErrors
	Check(ctx context.Context, q database.Querier, target *database.Target, registry *sqlgen.Registry) result.Result[struct{}]
}

// CatalogExists holds when the named catalog exists.
type CatalogExists struct {
	CatalogName string
}

func (p CatalogExists) Name() string {
	return "catalogExists"
}

func (p CatalogExists) Validate(target *database.Target, registry *sqlgen.Registry) sqlgen.ValidationErrors {
	var v sqlgen.ValidationErrors
	v.CheckRequiredField("catalogName", p.CatalogName)
	return validateStatement(v, registry, statement.NewCatalogExistsStatement(p.CatalogName), target)
}

func (p CatalogExists) Check(ctx context.Context, q database.Querier, target *database.Target, registry *sqlgen.Registry) result.Result[struct{}] {
	stmt := statement.NewCatalogExistsStatement(p.CatalogName)
	return checkExists(ctx, q, target, registry, stmt, fmt.Sprintf("catalog %s does not exist", p.CatalogName))
}

// SchemaExists holds when the named schema exists, in CatalogName when given.
type SchemaExists struct {
	CatalogName string
	SchemaName  string
}

func (p SchemaExists) Name() string {
	return "schemaExists"
}

func (p SchemaExists) Validate(target *database.Target, registry *sqlgen.Registry) sqlgen.ValidationErrors {
	var v sqlgen.ValidationErrors
	v.CheckRequiredField("schemaName", p.SchemaName)
	return validateStatement(v, registry, statement.NewSchemaExistsStatement(p.CatalogName, p.SchemaName), target)
}

func (p SchemaExists) Check(ctx context.Context, q database.Querier, target *database.Target, registry *sqlgen.Registry) result.Result[struct{}] {
	stmt := statement.NewSchemaExistsStatement(p.CatalogName, p.SchemaName)
	reason := fmt.Sprintf("schema %s does not exist", p.SchemaName)
	if p.CatalogName != "" {
		reason = fmt.Sprintf("schema %s does not exist in catalog %s", p.SchemaName, p.CatalogName)
	}
	return checkExists(ctx, q, target, registry, stmt, reason)
}

// validateStatement adds the generator's dialect checks once the precondition's
// own fields are present.
func validateStatement(v sqlgen.ValidationErrors, registry *sqlgen.Registry, stmt statement.Statement, target *database.Target) sqlgen.ValidationErrors {
	if !v.HasErrors() {
		v.Merge(registry.Validate(stmt, target))
	}
	return v
}

func checkExists(ctx context.Context, q database.Querier, target *database.Target, registry *sqlgen.Registry, stmt statement.Statement, reason string) result.Result[struct{}] {
	sqls, err := registry.Generate(stmt, target)
	if err != nil {
		return result.Errored[struct{}](err)
	}
	if len(sqls) != 1 {
		return result.Errored[struct{}](fmt.Errorf("%s produced %d statements, expected 1", stmt.Kind(), len(sqls)))
	}

	var exists bool
	if err := q.QueryRowContext(ctx, sqls[0].Text).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.Errored[struct{}](fmt.Errorf("%s returned no rows", stmt.Kind()))
		}
		return result.Errored[struct{}](fmt.Errorf("checking %s: %w", stmt.Kind(), err))
	}
	if !exists {
		return result.PreconditionFailed[struct{}](reason)
	}
	return result.OK(struct{}{})
}
