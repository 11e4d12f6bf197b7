package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&City{},
		&Role{},
		&User{},
		&Friendship{},
		&Community{},
		&UserCommunity{},
		&Post{},
		&Comment{},
		&Like{},
		&Chat{},
		&ChatParticipant{},
		&Message{},
		&Media{},
		&Migration{},
	)
}
