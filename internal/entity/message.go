package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type MessageStatusType string

var (
	MessageSent      = enum.New(MessageStatusType("sent"))
	MessageDelivered = enum.New(MessageStatusType("delivered"))
	MessageRead      = enum.New(MessageStatusType("read"))
)

type Message struct {
	SnowFlakeBase
	ChatID string `gorm:"index"`
	Chat   Chat   `gorm:"foreignKey:ChatID"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Content string `gorm:"type:text"`

	// Status defaults to sent. Nothing transitions it automatically; read
	// tracking lives on ChatParticipant.LastReadAt.
	Status MessageStatusType

	ReplyToID sql.NullInt64
	ReplyTo   *Message `gorm:"foreignKey:ReplyToID"`
}
