package sqlgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
	"github.com/samber/lo"
)

type SetIdentityInsertGenerator struct{}

func (SetIdentityInsertGenerator) Priority() int { return PriorityDatabase }

func (SetIdentityInsertGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, database.MSSQL)
}

func (SetIdentityInsertGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.SetIdentityInsertStatement)
	var v ValidationErrors
	v.CheckRequiredField("tableName", s.TableName())
	if s.Value() != statement.IdentityInsertOn && s.Value() != statement.IdentityInsertOff {
		v.AddError("value must be ON or OFF, got %q", s.Value())
	}
	return v
}

func (SetIdentityInsertGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.SetIdentityInsertStatement)
	table := target.EscapeQualifiedName(s.CatalogName(), s.SchemaName(), s.TableName(), database.Table)
	return single(fmt.Sprintf("SET IDENTITY_INSERT %s %s", table, s.Value()), table)
}

// InsertOrUpdateGenerator writes a row keyed by its primary key, using each
// product's upsert form.
type InsertOrUpdateGenerator struct{}

func (InsertOrUpdateGenerator) Priority() int { return PriorityDatabase }

func (InsertOrUpdateGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, supportedKinds...)
}

func (InsertOrUpdateGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.InsertOrUpdateStatement)
	var v ValidationErrors
	v.CheckRequiredField("tableName", s.TableName())
	v.CheckRequiredField("primaryKey", s.PrimaryKey())
	if len(s.Columns()) == 0 {
		v.AddError("columns are required")
	}
	for _, pk := range s.PrimaryKeyColumns() {
		_, ok := lo.Find(s.Columns(), func(c statement.ColumnValue) bool {
			return strings.EqualFold(c.Name, pk)
		})
		if !ok {
			v.AddError("primary key column %s has no value", pk)
		}
	}
	for _, c := range s.Columns() {
		if !isFinite(c.Value) {
			v.AddError("column %s is not a finite number", c.Name)
		}
	}
	if s.OnlyUpdate() && !lo.SomeBy(s.Columns(), func(c statement.ColumnValue) bool { return !s.IsPrimaryKeyColumn(c.Name) }) {
		v.AddError("onlyUpdate needs a column outside the primary key")
	}
	return v
}

// isFinite is false for NaN and the infinities, which have no SQL literal.
func isFinite(value any) bool {
	switch v := value.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	}
	return true
}

func (InsertOrUpdateGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.InsertOrUpdateStatement)
	u := upsert{stmt: s, target: target}
	if s.OnlyUpdate() {
		return single(u.update(), u.table())
	}
	switch target.Kind() {
	case database.Postgres:
		return single(u.postgres(), u.table())
	case database.H2:
		return single(u.h2(), u.table())
	case database.HSQLDB:
		return single(u.hsqldb(), u.table())
	case database.MSSQL:
		return single(u.mssql(), u.table())
	default:
		panic(fmt.Sprintf("sqlgen: %s is not supported on %s", stmt.Kind(), target.Kind()))
	}
}

type upsert struct {
	stmt   statement.InsertOrUpdateStatement
	target *database.Target
}

func (u upsert) table() string {
	return u.target.EscapeQualifiedName(u.stmt.CatalogName(), u.stmt.SchemaName(), u.stmt.TableName(), database.Table)
}

func (u upsert) column(name string) string {
	return u.target.EscapeObjectName(name, database.Column)
}

func (u upsert) columnList() string {
	return strings.Join(lo.Map(u.stmt.Columns(), func(c statement.ColumnValue, _ int) string {
		return u.column(c.Name)
	}), ", ")
}

func (u upsert) valueList() string {
	return strings.Join(lo.Map(u.stmt.Columns(), func(c statement.ColumnValue, _ int) string {
		return literal(u.target, c.Value)
	}), ", ")
}

func (u upsert) keyList() string {
	return strings.Join(lo.Map(u.stmt.PrimaryKeyColumns(), func(pk string, _ int) string {
		return u.column(pk)
	}), ", ")
}

func (u upsert) nonKeyColumns() []statement.ColumnValue {
	return lo.Reject(u.stmt.Columns(), func(c statement.ColumnValue, _ int) bool {
		return u.stmt.IsPrimaryKeyColumn(c.Name)
	})
}

func (u upsert) setList() string {
	return strings.Join(lo.Map(u.nonKeyColumns(), func(c statement.ColumnValue, _ int) string {
		return u.column(c.Name) + " = " + literal(u.target, c.Value)
	}), ", ")
}

func (u upsert) where() string {
	keys := lo.Filter(u.stmt.Columns(), func(c statement.ColumnValue, _ int) bool {
		return u.stmt.IsPrimaryKeyColumn(c.Name)
	})
	return strings.Join(lo.Map(keys, func(c statement.ColumnValue, _ int) string {
		if c.Value == nil {
			return u.column(c.Name) + " IS NULL"
		}
		return u.column(c.Name) + " = " + literal(u.target, c.Value)
	}), " AND ")
}

func (u upsert) insert() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", u.table(), u.columnList(), u.valueList())
}

func (u upsert) update() string {
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", u.table(), u.setList(), u.where())
}

func (u upsert) postgres() string {
	if len(u.nonKeyColumns()) == 0 {
		return fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING", u.insert(), u.keyList())
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", u.insert(), u.keyList(), u.setList())
}

func (u upsert) h2() string {
	return fmt.Sprintf("MERGE INTO %s (%s) KEY (%s) VALUES (%s)", u.table(), u.columnList(), u.keyList(), u.valueList())
}

func (u upsert) hsqldb() string {
	columns := u.stmt.Columns()
	src := func(c statement.ColumnValue, _ int) string { return "src." + u.column(c.Name) }
	on := strings.Join(lo.Map(u.stmt.PrimaryKeyColumns(), func(pk string, _ int) string {
		return "tgt." + u.column(pk) + " = src." + u.column(pk)
	}), " AND ")

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE INTO %s AS tgt USING (VALUES (%s)) AS src (%s) ON %s", u.table(), u.valueList(), u.columnList(), on)
	if nonKey := u.nonKeyColumns(); len(nonKey) > 0 {
		set := strings.Join(lo.Map(nonKey, func(c statement.ColumnValue, _ int) string {
			return "tgt." + u.column(c.Name) + " = src." + u.column(c.Name)
		}), ", ")
		fmt.Fprintf(&b, " WHEN MATCHED THEN UPDATE SET %s", set)
	}
	fmt.Fprintf(&b, " WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s)", u.columnList(), strings.Join(lo.Map(columns, src), ", "))
	return b.String()
}

func (u upsert) mssql() string {
	var b strings.Builder
	b.WriteString("DECLARE @reccount integer\n")
	fmt.Fprintf(&b, "SELECT @reccount = count(*) FROM %s WHERE %s\n", u.table(), u.where())
	b.WriteString("IF @reccount = 0\n")
	b.WriteString("BEGIN\n")
	b.WriteString(u.insert() + "\n")
	b.WriteString("END")
	if len(u.nonKeyColumns()) > 0 {
		b.WriteString("\nELSE\n")
		b.WriteString("BEGIN\n")
		b.WriteString(u.update() + "\n")
		b.WriteString("END")
	}
	return b.String()
}

// literal renders a Go value as a SQL constant.
func literal(target *database.Target, value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return target.StringLiteral(v)
	case bool:
		if target.Kind() == database.MSSQL {
			return lo.Ternary(v, "1", "0")
		}
		return strings.ToUpper(strconv.FormatBool(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return target.StringLiteral(v.Format("2006-01-02 15:04:05.999999999"))
	case fmt.Stringer:
		return target.StringLiteral(v.String())
	default:
		return target.StringLiteral(fmt.Sprint(v))
	}
}
