package entity

type Role struct {
	Base
	Name        string `gorm:"unique"`
	Description string
}
