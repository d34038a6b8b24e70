// Package sqlgen turns statements into literal SQL for one dialect. Every
// generator declares the dialects it handles, validates the statement's fields
// for that dialect and renders text through the database package's quoting
// functions. Generators never assemble multi-part names themselves.
package sqlgen

import (
	"slices"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

const (
	PriorityDefault  = 1
	PriorityDatabase = PriorityDefault + 5
)

// SQL is one fragment of generated SQL, without a trailing delimiter.
// AffectedObjects names the objects it changes, as written in Text.
type SQL struct {
	Text            string
	AffectedObjects []string
}

func (s SQL) String() string {
	return s.Text
}

// Generator renders one kind of statement. GenerateSQL must only be called
// after Validate reported no errors; handing it a statement of another kind is
// a programming error and panics.
type Generator interface {
	Priority() int
	Supports(stmt statement.Statement, target *database.Target) bool
	Validate(stmt statement.Statement, target *database.Target) ValidationErrors
	GenerateSQL(stmt statement.Statement, target *database.Target) []SQL
}

// The four products this package has rules for.
var supportedKinds = []database.Kind{database.H2, database.HSQLDB, database.MSSQL, database.Postgres}

func supportsKind(target *database.Target, kinds ...database.Kind) bool {
	return target != nil && slices.Contains(kinds, target.Kind())
}

func single(text string, affected ...string) []SQL {
	return []SQL{{Text: text, AffectedObjects: affected}}
}

// Texts returns the text of each fragment.
func Texts(sqls []SQL) []string {
	texts := make([]string, len(sqls))
	for i, s := range sqls {
		texts[i] = s.Text
	}
	return texts
}
