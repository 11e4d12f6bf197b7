package entity

import (
	"database/sql"

	"github.com/socialnet-labs/backend/pkg/enum"
)

type FriendshipStatusType string

var (
	FriendshipPending  = enum.New(FriendshipStatusType("pending"))
	FriendshipAccepted = enum.New(FriendshipStatusType("accepted"))
	FriendshipDeclined = enum.New(FriendshipStatusType("declined"))
)

// Friendship is a directed edge from the requester to the recipient. A pair
// of users holds at most one row, in either direction.
type Friendship struct {
	Base
	UserID string `gorm:"uniqueIndex:idx_friendships_pair"`
	User   User   `gorm:"foreignKey:UserID"`

	FriendID string `gorm:"uniqueIndex:idx_friendships_pair"`
	Friend   User   `gorm:"foreignKey:FriendID"`

	Status FriendshipStatusType

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
