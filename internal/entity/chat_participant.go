package entity

import (
	"database/sql"
	"time"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type ChatRoleType string

var (
	ChatRoleMember = enum.New(ChatRoleType("member"))
	ChatRoleAdmin  = enum.New(ChatRoleType("admin"))
)

type ChatParticipant struct {
	ChatID string `gorm:"primaryKey"`
	Chat   Chat   `gorm:"foreignKey:ChatID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Role     ChatRoleType
	JoinedAt time.Time

	// LastReadAt tracks the read state of the whole chat for this user. It is
	// independent of per-message status.
	LastReadAt sql.NullTime
}
