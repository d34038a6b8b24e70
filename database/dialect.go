package database

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a database product whose rule set is known.
type Kind int

const (
	Generic Kind = iota
	H2
	HSQLDB
	MSSQL
	Postgres
)

func (k Kind) String() string {
	switch k {
	case H2:
		return "h2"
	case HSQLDB:
		return "hsqldb"
	case MSSQL:
		return "mssql"
	case Postgres:
		return "postgresql"
	default:
		return "generic"
	}
}

// ParseKind maps a user-supplied dialect name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "h2":
		return H2, nil
	case "hsqldb", "hsql":
		return HSQLDB, nil
	case "mssql", "sqlserver", "tsql":
		return MSSQL, nil
	case "postgres", "postgresql", "psql":
		return Postgres, nil
	case "generic", "":
		return Generic, nil
	default:
		return Generic, fmt.Errorf("unknown dialect %q", name)
	}
}

// CaseRule tells how a dialect treats the letter case of unquoted identifiers.
type CaseRule int

const (
	// CasePreserve keeps the original case and compares case-sensitively.
	CasePreserve CaseRule = iota
	// CaseUpper folds unquoted identifiers to upper case.
	CaseUpper
	// CaseLower folds unquoted identifiers to lower case.
	CaseLower
	// CaseInsensitive keeps unquoted identifiers as written and compares them
	// case-insensitively, so no folding is needed.
	CaseInsensitive
)

// PartStyle selects how multi-part names are assembled.
type PartStyle int

const (
	// PartsStandard emits a separator after every present qualifier.
	PartsStandard PartStyle = iota
	// PartsMSSQL emits the catalog separator and the schema independently, with a
	// single separator before the object, which allows catalog..object.
	PartsMSSQL
)

// Dialect is the rule set of one database product. Dialects are immutable and
// shared; anything that varies per connection lives in Target.
type Dialect struct {
	Kind        Kind
	CaseRule    CaseRule
	PartStyle   PartStyle
	QuoteStart  string
	QuoteEnd    string
	// QuoteEndReplacement replaces QuoteEnd occurring inside a quoted name.
	QuoteEndReplacement string
	// NationalPrefix prefixes string literals holding identifiers (N for T-SQL).
	NationalPrefix string

	identifierPattern *regexp.Regexp
	reservedWords     map[string]bool
}

func (d *Dialect) String() string {
	return d.Kind.String()
}

// IsReservedWord reports whether word is reserved, ignoring case.
func (d *Dialect) IsReservedWord(word string) bool {
	return d.reservedWords[strings.ToUpper(word)]
}

func (d *Dialect) isLegalIdentifier(name string) bool {
	return d.identifierPattern.MatchString(name)
}

func newDialect(d Dialect, pattern string, reserved []string) *Dialect {
	d.identifierPattern = regexp.MustCompile(pattern)
	d.reservedWords = make(map[string]bool, len(reserved))
	for _, word := range reserved {
		d.reservedWords[strings.ToUpper(word)] = true
	}
	return &d
}

var dialects = map[Kind]*Dialect{
	Generic: newDialect(Dialect{
		Kind:                Generic,
		CaseRule:            CasePreserve,
		PartStyle:           PartsStandard,
		QuoteStart:          `"`,
		QuoteEnd:            `"`,
		QuoteEndReplacement: `""`,
	}, `^[A-Za-z_][A-Za-z0-9_]*$`, sql2003ReservedWords[:]),
	H2: newDialect(Dialect{
		Kind:                H2,
		CaseRule:            CaseUpper,
		PartStyle:           PartsStandard,
		QuoteStart:          `"`,
		QuoteEnd:            `"`,
		QuoteEndReplacement: `""`,
	}, `^[A-Za-z_][A-Za-z0-9_]*$`, h2ReservedWords[:]),
	HSQLDB: newDialect(Dialect{
		Kind:                HSQLDB,
		CaseRule:            CaseUpper,
		PartStyle:           PartsStandard,
		QuoteStart:          `"`,
		QuoteEnd:            `"`,
		QuoteEndReplacement: `""`,
	}, `^[A-Za-z_][A-Za-z0-9_]*$`, append(sql2003ReservedWords[:], hsqldbReservedWords[:]...)),
	MSSQL: newDialect(Dialect{
		Kind:                MSSQL,
		CaseRule:            CaseInsensitive,
		PartStyle:           PartsMSSQL,
		QuoteStart:          "[",
		QuoteEnd:            "]",
		QuoteEndReplacement: "]]",
		NationalPrefix:      "N",
	}, `^[A-Za-z_][A-Za-z0-9_@$#]*$`, mssqlReservedWords[:]),
	Postgres: newDialect(Dialect{
		Kind:                Postgres,
		CaseRule:            CaseLower,
		PartStyle:           PartsStandard,
		QuoteStart:          `"`,
		QuoteEnd:            `"`,
		QuoteEndReplacement: `""`,
	}, `^[A-Za-z_][A-Za-z0-9_$]*$`, postgresReservedWords[:]),
}

// GetDialect returns the shared rule set for kind. Unknown kinds get the generic
// rule set.
func GetDialect(kind Kind) *Dialect {
	if d, ok := dialects[kind]; ok {
		return d
	}
	return dialects[Generic]
}
