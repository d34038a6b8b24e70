// Package statement holds the operations a migration step wants performed.
// Statements are values: they are built once through their constructor and
// only read afterwards. Empty strings stand for absent optional fields.
package statement

type Kind string

const (
	KindCreateSchema      Kind = "createSchema"
	KindDropSchema        Kind = "dropSchema"
	KindCatalogExists     Kind = "catalogExists"
	KindSchemaExists      Kind = "schemaExists"
	KindSetIdentityInsert Kind = "setIdentityInsert"
	KindInsertOrUpdate    Kind = "insertOrUpdate"
	KindCreateDatabase    Kind = "createDatabase"
	KindDropDatabase      Kind = "dropDatabase"
)

type Statement interface {
	Kind() Kind
}

type CreateSchemaStatement struct {
	catalogName string
	schemaName  string
}

func NewCreateSchemaStatement(catalogName, schemaName string) CreateSchemaStatement {
	return CreateSchemaStatement{catalogName: catalogName, schemaName: schemaName}
}

func (s CreateSchemaStatement) Kind() Kind          { return KindCreateSchema }
func (s CreateSchemaStatement) CatalogName() string { return s.catalogName }
func (s CreateSchemaStatement) SchemaName() string  { return s.schemaName }

type DropSchemaStatement struct {
	catalogName string
	schemaName  string
}

func NewDropSchemaStatement(catalogName, schemaName string) DropSchemaStatement {
	return DropSchemaStatement{catalogName: catalogName, schemaName: schemaName}
}

func (s DropSchemaStatement) Kind() Kind          { return KindDropSchema }
func (s DropSchemaStatement) CatalogName() string { return s.catalogName }
func (s DropSchemaStatement) SchemaName() string  { return s.schemaName }

// CatalogExistsStatement selects a single boolean telling whether the catalog
// exists.
type CatalogExistsStatement struct {
	catalogName string
}

func NewCatalogExistsStatement(catalogName string) CatalogExistsStatement {
	return CatalogExistsStatement{catalogName: catalogName}
}

func (s CatalogExistsStatement) Kind() Kind          { return KindCatalogExists }
func (s CatalogExistsStatement) CatalogName() string { return s.catalogName }

// SchemaExistsStatement selects a single boolean telling whether the schema
// exists, optionally inside another catalog.
type SchemaExistsStatement struct {
	catalogName string
	schemaName  string
}

func NewSchemaExistsStatement(catalogName, schemaName string) SchemaExistsStatement {
	return SchemaExistsStatement{catalogName: catalogName, schemaName: schemaName}
}

func (s SchemaExistsStatement) Kind() Kind          { return KindSchemaExists }
func (s SchemaExistsStatement) CatalogName() string { return s.catalogName }
func (s SchemaExistsStatement) SchemaName() string  { return s.schemaName }

type CreateDatabaseStatement struct {
	databaseName string
}

func NewCreateDatabaseStatement(databaseName string) CreateDatabaseStatement {
	return CreateDatabaseStatement{databaseName: databaseName}
}

func (s CreateDatabaseStatement) Kind() Kind           { return KindCreateDatabase }
func (s CreateDatabaseStatement) DatabaseName() string { return s.databaseName }

type DropDatabaseStatement struct {
	databaseName string
}

func NewDropDatabaseStatement(databaseName string) DropDatabaseStatement {
	return DropDatabaseStatement{databaseName: databaseName}
}

func (s DropDatabaseStatement) Kind() Kind           { return KindDropDatabase }
func (s DropDatabaseStatement) DatabaseName() string { return s.databaseName }
