package database

import (
	"fmt"
	"strings"
)

// ObjectType classifies the object a name refers to. Only Catalog and Schema
// change how names are quoted and corrected.
type ObjectType int

const (
	invalidObjectType ObjectType = iota
	Catalog
	Schema
	Table
	View
	Column
	Index
	Sequence
	PrimaryKey
	ForeignKey
	UniqueConstraint
	StoredProcedure
)

var objectTypeNames = map[ObjectType]string{
	Catalog:          "catalog",
	Schema:           "schema",
	Table:            "table",
	View:             "view",
	Column:           "column",
	Index:            "index",
	Sequence:         "sequence",
	PrimaryKey:       "primaryKey",
	ForeignKey:       "foreignKey",
	UniqueConstraint: "uniqueConstraint",
	StoredProcedure:  "storedProcedure",
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// IsCatalogOrSchema reports whether t names a namespace rather than an object.
func (t ObjectType) IsCatalogOrSchema() bool {
	return t == Catalog || t == Schema
}

func mustBeValid(t ObjectType) {
	if _, ok := objectTypeNames[t]; !ok {
		panic(fmt.Sprintf("database: invalid object type %v", t))
	}
}

// QuotingStrategy decides when identifiers are wrapped in quote characters.
type QuotingStrategy int

const (
	// Legacy quotes only names that cannot be written bare.
	Legacy QuotingStrategy = iota
	// QuoteAllObjects quotes every name and keeps its case.
	QuoteAllObjects
	// QuoteOnlyReservedWords quotes reserved words and illegal names, never
	// forcing catalog or schema names into quotes.
	QuoteOnlyReservedWords
)

func (s QuotingStrategy) String() string {
	switch s {
	case QuoteAllObjects:
		return "QUOTE_ALL_OBJECTS"
	case QuoteOnlyReservedWords:
		return "QUOTE_ONLY_RESERVED_WORDS"
	default:
		return "LEGACY"
	}
}

// ParseQuotingStrategy accepts the upper-case names printed by String.
func ParseQuotingStrategy(s string) (QuotingStrategy, error) {
	switch strings.ToUpper(s) {
	case "", "LEGACY":
		return Legacy, nil
	case "QUOTE_ALL_OBJECTS":
		return QuoteAllObjects, nil
	case "QUOTE_ONLY_RESERVED_WORDS":
		return QuoteOnlyReservedWords, nil
	default:
		return Legacy, fmt.Errorf("unknown quoting strategy %q", s)
	}
}

// keepsNamespaceCase is true for catalog and schema names whose case must not
// be touched and which therefore always need quotes.
func (d *Dialect) keepsNamespaceCase(objectType ObjectType, preserveSchemaCase bool) bool {
	return objectType.IsCatalogOrSchema() && (preserveSchemaCase || d.CaseRule == CasePreserve)
}

// MustQuoteObjectName reports whether name cannot be written without quotes.
// An empty name never needs quoting.
func (d *Dialect) MustQuoteObjectName(name string, objectType ObjectType, preserveSchemaCase bool) bool {
	mustBeValid(objectType)
	if name == "" {
		return false
	}
	return d.keepsNamespaceCase(objectType, preserveSchemaCase) ||
		!d.isLegalIdentifier(name) ||
		d.IsReservedWord(name)
}

// CorrectObjectName returns name in the case the database stores it.
func (d *Dialect) CorrectObjectName(name string, objectType ObjectType, strategy QuotingStrategy, preserveSchemaCase bool) string {
	mustBeValid(objectType)
	if name == "" {
		return ""
	}
	if strategy == QuoteAllObjects || d.keepsNamespaceCase(objectType, preserveSchemaCase) {
		return name
	}
	switch d.CaseRule {
	case CaseUpper:
		return strings.ToUpper(name)
	case CaseLower:
		return strings.ToLower(name)
	default:
		return name
	}
}

// EscapeObjectName returns name as it must appear in SQL text. A name written
// without quotes is returned exactly as given; only quoted names are corrected.
func (d *Dialect) EscapeObjectName(name string, objectType ObjectType, strategy QuotingStrategy, preserveSchemaCase bool) string {
	mustBeValid(objectType)
	if name == "" {
		return ""
	}
	mustQuote := d.MustQuoteObjectName(name, objectType, preserveSchemaCase)
	if strategy == QuoteOnlyReservedWords {
		mustQuote = !d.isLegalIdentifier(name) || d.IsReservedWord(name)
	}
	if strategy != QuoteAllObjects && !mustQuote {
		return name
	}
	return d.quote(d.CorrectObjectName(name, objectType, strategy, preserveSchemaCase))
}

func (d *Dialect) quote(name string) string {
	return d.QuoteStart + strings.ReplaceAll(name, d.QuoteEnd, d.QuoteEndReplacement) + d.QuoteEnd
}
