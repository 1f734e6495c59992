package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the server error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// ErrNotPending is returned by conditional transitions when the row exists
// but is no longer Pending.
var ErrNotPending = errors.New("booking is not pending")

// normalize folds driver-specific duplicate-key errors into gorm.ErrDuplicatedKey
// so services can match a single sentinel.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return gorm.ErrDuplicatedKey
	}
	return err
}
