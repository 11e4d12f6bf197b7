package entity

import (
	"database/sql"
	"time"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type CommunityRoleType string

var (
	CommunityRoleMember    = enum.New(CommunityRoleType("member"))
	CommunityRoleModerator = enum.New(CommunityRoleType("moderator"))
	CommunityRoleAdmin     = enum.New(CommunityRoleType("admin"))
)

// UserCommunity is a membership edge. The community owner does not need a
// row here to post or manage the community.
type UserCommunity struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	Role     CommunityRoleType
	JoinedAt time.Time

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
