package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertOrUpdatePrimaryKeyColumns(t *testing.T) {
	tests := []struct {
		name       string
		primaryKey string
		expected   []string
	}{
		{name: "single column", primaryKey: "id", expected: []string{"id"}},
		{name: "spaces around names", primaryKey: " id , tenant_id ", expected: []string{"id", "tenant_id"}},
		{name: "blank entries", primaryKey: "id,,", expected: []string{"id"}},
		{name: "empty", primaryKey: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := NewInsertOrUpdateStatement("", "", "t", tt.primaryKey, nil, false)
			assert.Equal(t, tt.expected, stmt.PrimaryKeyColumns())
		})
	}
}

func TestInsertOrUpdateColumnsAreCopied(t *testing.T) {
	columns := []ColumnValue{{Name: "id", Value: 1}}
	stmt := NewInsertOrUpdateStatement("", "", "t", "id", columns, false)

	columns[0].Name = "changed"
	got := stmt.Columns()
	got[0].Name = "changed again"

	assert.Equal(t, "id", stmt.Columns()[0].Name)
	assert.True(t, stmt.IsPrimaryKeyColumn("ID"))
	assert.False(t, stmt.IsPrimaryKeyColumn("name"))
}
