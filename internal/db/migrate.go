package db

import (
	"fmt"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"razzrel/internal/model"
)

// models lists every table, children before parents so drops succeed.
var models = []interface{}{
	&model.Notification{},
	&model.Post{},
	&model.Booking{},
	&model.Product{},
	&model.User{},
}

// Migrate brings the schema up to date. With reset set, every table is
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		log.Warn("RESET_DB=true detected, dropping all tables")
		for _, m := range models {
			if err := db.Migrator().DropTable(m); err != nil {
				log.Warnf("drop table (may not exist): %v", err)
			}
		}
	}

	for i := len(models) - 1; i >= 0; i-- {
		if err := db.AutoMigrate(models[i]); err != nil {
			return fmt.Errorf("auto-migrate %T: %w", models[i], err)
		}
	}
	return nil
}
