package sqlgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
)

// ValidationErrors collects problems with a statement's fields. The zero value
// is empty and ready to use.
type ValidationErrors struct {
	errors   []string
	warnings []string
}

func (v *ValidationErrors) AddError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *ValidationErrors) AddWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// CheckRequiredField records an error when value is empty.
func (v *ValidationErrors) CheckRequiredField(field, value string) {
	if value == "" {
		v.AddError("%s is required", field)
	}
}

// CheckDisallowedField records an error when value is set and the target is one
// of kinds. With no kinds the field is disallowed everywhere.
func (v *ValidationErrors) CheckDisallowedField(field, value string, target *database.Target, kinds ...database.Kind) {
	if value == "" {
		return
	}
	if len(kinds) == 0 || slices.Contains(kinds, target.Kind()) {
		v.AddError("%s is not allowed on %s", field, target.Kind())
	}
}

// Merge appends other's messages.
func (v *ValidationErrors) Merge(other ValidationErrors) {
	v.errors = append(v.errors, other.errors...)
	v.warnings = append(v.warnings, other.warnings...)
}

func (v ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

func (v ValidationErrors) Errors() []string {
	return slices.Clone(v.errors)
}

func (v ValidationErrors) Warnings() []string {
	return slices.Clone(v.warnings)
}

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v.errors, "; ")
}
