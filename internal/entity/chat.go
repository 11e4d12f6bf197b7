package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type ChatType string

var (
	ChatPrivate = enum.New(ChatType("private"))
	ChatGroup   = enum.New(ChatType("group"))
)

type Chat struct {
	Base
	Type      ChatType
	Name      string
	AvatarURL string

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
