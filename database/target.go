package database

import (
	"strings"

	"github.com/lib/pq"
)

// Target is the dialect handle of one connection: the product rule set plus the
// settings that were active when it was taken. It is a value; callers that need
// different settings make a copy instead of mutating a shared one.
type Target struct {
	Dialect            *Dialect
	Defaults           ConnectionDefaults
	QuotingStrategy    QuotingStrategy
	PreserveSchemaCase bool
}

// NewTarget returns a Target for kind with the Legacy strategy.
func NewTarget(kind Kind, defaults ConnectionDefaults) *Target {
	return &Target{
		Dialect:  GetDialect(kind),
		Defaults: defaults,
	}
}

// Kind returns the product kind of the target's dialect.
func (t *Target) Kind() Kind {
	return t.Dialect.Kind
}

// With returns a copy of t using strategy.
func (t *Target) With(strategy QuotingStrategy) *Target {
	c := *t
	c.QuotingStrategy = strategy
	return &c
}

func (t *Target) MustQuoteObjectName(name string, objectType ObjectType) bool {
	return t.Dialect.MustQuoteObjectName(name, objectType, t.PreserveSchemaCase)
}

func (t *Target) CorrectObjectName(name string, objectType ObjectType) string {
	return t.Dialect.CorrectObjectName(name, objectType, t.QuotingStrategy, t.PreserveSchemaCase)
}

func (t *Target) EscapeObjectName(name string, objectType ObjectType) string {
	return t.Dialect.EscapeObjectName(name, objectType, t.QuotingStrategy, t.PreserveSchemaCase)
}

func (t *Target) EscapeQualifiedName(catalog, schema, name string, objectType ObjectType) string {
	return t.Dialect.EscapeQualifiedName(catalog, schema, name, objectType, t.QuotingStrategy, t.PreserveSchemaCase, t.Defaults)
}

// IsDefaultCatalog reports whether catalog is absent or equal to the connection's
// default catalog.
func (t *Target) IsDefaultCatalog(catalog string) bool {
	return t.Defaults.IsDefaultCatalog(catalog)
}

// EscapeStringLiteral doubles single quotes so s can sit between quotes.
func (d *Dialect) EscapeStringLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// StringLiteral renders s as a quoted string constant holding an identifier.
func (d *Dialect) StringLiteral(s string) string {
	if d.Kind == Postgres {
		// QuoteLiteral prefixes escape strings with a space.
		return strings.TrimSpace(pq.QuoteLiteral(s))
	}
	return d.NationalPrefix + "'" + d.EscapeStringLiteral(s) + "'"
}

func (t *Target) StringLiteral(s string) string {
	return t.Dialect.StringLiteral(s)
}
