package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type CommunityType string

var (
	CommunityOpen   = enum.New(CommunityType("open"))
	CommunityClosed = enum.New(CommunityType("closed"))
)

type Community struct {
	Base
	Name        string
	Description string
	AvatarURL   string
	CoverURL    string
	Type        CommunityType

	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`

	// MembersCount caches the number of UserCommunity rows of this community.
	// Every membership insert or delete updates it in the same transaction.
	MembersCount int

	IsVerified bool

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
	UpdatedBy     sql.NullString
	UpdatedByUser User `gorm:"foreignKey:UpdatedBy"`
}
