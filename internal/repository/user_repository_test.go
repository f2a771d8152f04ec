package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sql-driver/mysql"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleOrganizer, NormalizeRole("organizer"))
	assert.Equal(t, RoleOrganizer, NormalizeRole("  Organizer "))
	assert.Equal(t, RoleAttendee, NormalizeRole("ATTENDEE"))
	assert.Equal(t, RoleAttendee, NormalizeRole(""))
	assert.Equal(t, RoleAttendee, NormalizeRole("admin"))
}

func TestIsDupEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.email'"}
	assert.True(t, isDupEntry(dup))
	assert.True(t, isDupEntry(fmt.Errorf("insert user: %w", dup)))

	assert.False(t, isDupEntry(&mysql.MySQLError{Number: 1452, Message: "foreign key fails"}))
	// Message text mentioning the code is not enough.
	assert.False(t, isDupEntry(errors.New("Error 1062: Duplicate entry")))
	assert.False(t, isDupEntry(nil))
}
