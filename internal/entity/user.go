package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type GenderType string

var (
	GenderMale   = enum.New(GenderType("male"))
	GenderFemale = enum.New(GenderType("female"))
	GenderOther  = enum.New(GenderType("other"))
)

type User struct {
	Base
	Email          string `gorm:"unique"`
	HashedPassword string
	FirstName      string
	LastName       string
	Username       sql.NullString `gorm:"unique"`
	AvatarURL      string
	Bio            string
	Phone          string
	BirthDate      sql.NullTime
	Gender         GenderType

	CityID sql.NullString
	City   City `gorm:"foreignKey:CityID"`

	RoleID sql.NullString
	Role   Role `gorm:"foreignKey:RoleID"`

	IsOnline   bool
	LastSeen   sql.NullTime
	IsVerified bool
	IsStaff    bool
	IsActive   bool `gorm:"default:true"`

	// Audit back-references. They never imply lifecycle coupling: a removed
	// user leaves them null.
	CreatedBy     sql.NullString
	CreatedByUser *User `gorm:"foreignKey:CreatedBy"`
	UpdatedBy     sql.NullString
	UpdatedByUser *User `gorm:"foreignKey:UpdatedBy"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
