package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNormalize(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'idx_users_email'"}

	assert.NoError(t, normalize(nil))
	assert.ErrorIs(t, normalize(dup), gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, normalize(fmt.Errorf("insert: %w", dup)), gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, normalize(gorm.ErrDuplicatedKey), gorm.ErrDuplicatedKey)

	other := &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}
	assert.Equal(t, other, normalize(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, normalize(plain))
}
