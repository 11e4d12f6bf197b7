package migration

import (
	"context"
	"errors"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var migrators = []func(context.Context) error{
	migrate0000,
}

// Migrate applies every migration that has not run yet, in order, and records
// each applied version.
func Migrate(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if err := db.AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for version, migrator := range migrators {
		var record entity.Migration
		err := db.Take(&record, "version = ?", version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		xcontext.Logger(ctx).Infof("Applying migration %04d", version)
		if err := migrator(ctx); err != nil {
			return err
		}

		record = entity.Migration{Version: version, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}
