package markitect

import (
	"context"
	"log/slog"

	"github.com/markitect-dev/markitect-liquibase-sub001/change"
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/precondition"
	"github.com/markitect-dev/markitect-liquibase-sub001/result"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
)

// ChangeSet is one migration step: preconditions gating a list of changes.
type ChangeSet struct {
	ID            string
	Preconditions []precondition.Precondition
	Changes       []change.Change
}

// Rollback returns the change set undoing cs. It has no preconditions.
func (cs ChangeSet) Rollback() (ChangeSet, bool) {
	inverses, ok := change.Inverses(cs.Changes)
	if !ok {
		return ChangeSet{}, false
	}
	return ChangeSet{ID: cs.ID, Changes: inverses}, true
}

type Options struct {
	DryRun bool
	Logger database.Logger
}

// Run validates, checks and applies cs. The SQL it produced is returned on
// success. Without a connection it behaves as a dry run and skips the
// preconditions. A nil options applies with no logging.
func Run(ctx context.Context, db database.Database, target *database.Target, registry *sqlgen.Registry, cs ChangeSet, options *Options) result.Result[[]string] {
	if options == nil {
		options = &Options{}
	}
	logger := options.Logger
	if logger == nil {
		logger = database.NullLogger{}
	}

	if errs := Validate(target, registry, cs); errs.HasErrors() {
		return result.ValidationFailed[[]string](errs.Errors())
	}

	offline := db.DB() == nil
	if offline {
		if len(cs.Preconditions) > 0 {
			slog.Info("no connection, skipping preconditions", "changeSet", cs.ID)
		}
	} else {
		for _, p := range cs.Preconditions {
			r := p.Check(ctx, db.DB(), target, registry)
			if !r.OK() {
				slog.Debug("precondition did not pass", "changeSet", cs.ID, "precondition", p.Name(), "status", r.Status)
				return result.Convert[struct{}, []string](r)
			}
		}
	}

	var sqls []string
	for _, c := range cs.Changes {
		for _, stmt := range c.GenerateStatements() {
			generated, err := registry.Generate(stmt, target)
			if err != nil {
				return result.Errored[[]string](err)
			}
			sqls = append(sqls, sqlgen.Texts(generated)...)
		}
	}

	var execDB database.Database = db
	if options.DryRun || offline {
		logger.Println("-- dry run --")
		execDB = database.NewDryRunDatabase(db)
		defer execDB.DB().Close()
	} else {
		logger.Println("-- Apply --")
	}
	if err := database.RunStatements(ctx, execDB, sqls, logger); err != nil {
		return result.Errored[[]string](err)
	}
	return result.OK(sqls)
}

// Validate collects the problems of every precondition and every statement of
// cs on target.
func Validate(target *database.Target, registry *sqlgen.Registry, cs ChangeSet) sqlgen.ValidationErrors {
	var errs sqlgen.ValidationErrors
	for _, p := range cs.Preconditions {
		errs.Merge(p.Validate(target, registry))
	}
	for _, c := range cs.Changes {
		for _, stmt := range c.GenerateStatements() {
			errs.Merge(registry.Validate(stmt, target))
		}
	}
	for _, w := range errs.Warnings() {
		slog.Warn(w, "changeSet", cs.ID)
	}
	return errs
}
