package entity

import "time"

// Migration records an applied schema migration version.
type Migration struct {
	Version   int `gorm:"primaryKey"`
	AppliedAt time.Time
}
