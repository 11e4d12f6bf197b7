package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type MediaType string

var (
	MediaImage    = enum.New(MediaType("image"))
	MediaVideo    = enum.New(MediaType("video"))
	MediaAudio    = enum.New(MediaType("audio"))
	MediaDocument = enum.New(MediaType("document"))
)

// Media is an attachment record. It may link to at most one of a post or a
// message.
type Media struct {
	Base
	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`

	Type         MediaType
	URL          string
	ThumbnailURL string
	MimeType     string
	Size         int64
	OriginalName string

	PostID sql.NullString
	Post   Post `gorm:"foreignKey:PostID"`

	MessageID sql.NullInt64
	Message   Message `gorm:"foreignKey:MessageID"`
}
