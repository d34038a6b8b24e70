package database

import (
	"strings"

	"github.com/samber/lo"
)

// ConnectionDefaults describes the namespace a connection lands in and whether
// names equal to it are still written out.
type ConnectionDefaults struct {
	DefaultCatalogName   string
	DefaultSchemaName    string
	OutputDefaultCatalog bool
	OutputDefaultSchema  bool
}

// IsDefaultCatalog reports whether catalog is absent or names the default catalog.
func (c ConnectionDefaults) IsDefaultCatalog(catalog string) bool {
	return catalog == "" || strings.EqualFold(catalog, c.DefaultCatalogName)
}

// IsDefaultSchema reports whether schema is absent or names the default schema.
func (c ConnectionDefaults) IsDefaultSchema(schema string) bool {
	return schema == "" || strings.EqualFold(schema, c.DefaultSchemaName)
}

// EscapeQualifiedName composes catalog, schema and object into one escaped name.
// Index names are never qualified. Each qualifier is dropped on its own when it
// equals the connection default and the default is not meant to be output.
func (d *Dialect) EscapeQualifiedName(catalog, schema, name string, objectType ObjectType, strategy QuotingStrategy, preserveSchemaCase bool, defaults ConnectionDefaults) string {
	mustBeValid(objectType)
	escape := func(n string, t ObjectType) string {
		return d.EscapeObjectName(n, t, strategy, preserveSchemaCase)
	}
	if objectType == Index {
		return escape(name, objectType)
	}

	defaultCatalog := defaults.IsDefaultCatalog(catalog)
	includeCatalog := !defaultCatalog || defaults.OutputDefaultCatalog
	if includeCatalog && catalog == "" {
		catalog = defaults.DefaultCatalogName
	}

	includeSchema := !defaults.IsDefaultSchema(schema) || defaults.OutputDefaultSchema
	if includeSchema && schema == "" {
		if defaultCatalog {
			schema = defaults.DefaultSchemaName
		}
	}

	parts := qualifiedParts{
		catalog: escape(lo.Ternary(includeCatalog, catalog, ""), Catalog),
		schema:  escape(lo.Ternary(includeSchema, schema, ""), Schema),
		object:  escape(name, objectType),
	}
	switch d.PartStyle {
	case PartsMSSQL:
		return parts.mssql()
	default:
		return parts.standard()
	}
}

type qualifiedParts struct {
	catalog string
	schema  string
	object  string
}

func (p qualifiedParts) mssql() string {
	var b strings.Builder
	if p.catalog != "" {
		b.WriteString(p.catalog)
		b.WriteString(".")
	}
	b.WriteString(p.schema)
	if p.catalog != "" || p.schema != "" {
		b.WriteString(".")
	}
	b.WriteString(p.object)
	return b.String()
}

func (p qualifiedParts) standard() string {
	var b strings.Builder
	if p.catalog != "" {
		b.WriteString(p.catalog)
		b.WriteString(".")
	}
	if p.schema != "" {
		b.WriteString(p.schema)
		b.WriteString(".")
	}
	b.WriteString(p.object)
	return b.String()
}
