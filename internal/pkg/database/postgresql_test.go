package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "attendance_user_id_date_key"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert attendance: %w", dup)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, IsCheckViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23514"})))
	assert.False(t, IsCheckViolation(&pgconn.PgError{Code: UniqueViolation}))
}
