package result

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrMatchesSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "validation", err: ValidationFailed[int]([]string{"schemaName is required"}).Err(), sentinel: ErrValidationFailed},
		{name: "precondition", err: PreconditionFailed[int]("catalog Cat2 does not exist").Err(), sentinel: ErrPreconditionFailed},
		{name: "errored", err: Errored[int](sql.ErrConnDone).Err(), sentinel: ErrErrored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			for _, other := range []error{ErrValidationFailed, ErrPreconditionFailed, ErrErrored} {
				if other != tt.sentinel {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestErroredKeepsCause(t *testing.T) {
	r := Errored[struct{}](sql.ErrConnDone)
	assert.False(t, r.OK())
	assert.True(t, errors.Is(r.Err(), sql.ErrConnDone))
	assert.Equal(t, "errored: sql: connection is already closed", r.Err().Error())
}

func TestOK(t *testing.T) {
	r := OK([]string{"CREATE SCHEMA s"})
	assert.True(t, r.OK())
	assert.NoError(t, r.Err())
	assert.Equal(t, []string{"CREATE SCHEMA s"}, r.Value)

	converted := Convert[[]string, int](PreconditionFailed[[]string]("missing"))
	assert.Equal(t, StatusPreconditionFailed, converted.Status)
	assert.Equal(t, "missing", converted.Reason)
}
