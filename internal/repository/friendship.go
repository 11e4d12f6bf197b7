package repository

import (
	"context"
	"errors"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FriendshipRepository interface {
	Create(ctx context.Context, friendship *entity.Friendship) error
	GetByID(ctx context.Context, id string) (*entity.Friendship, error)
	GetBetween(ctx context.Context, userID, otherID string) (*entity.Friendship, error)
	UpdateStatus(ctx context.Context, id string, status entity.FriendshipStatusType) error
	DeleteByID(ctx context.Context, id string) error
	DeleteBetween(ctx context.Context, userID, otherID string) error
	GetAcceptedByUserID(ctx context.Context, userID string) ([]entity.Friendship, error)
}

type friendshipRepository struct{}

func NewFriendshipRepository() *friendshipRepository {
	return &friendshipRepository{}
}

func (r *friendshipRepository) Create(ctx context.Context, friendship *entity.Friendship) error {
	return xcontext.DB(ctx).Create(friendship).Error
}

func (r *friendshipRepository) GetByID(ctx context.Context, id string) (*entity.Friendship, error) {
	var record entity.Friendship
	err := xcontext.DB(ctx).
		Preload("User").
		Preload("Friend").
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetBetween looks the pair up in both directions, any status.
func (r *friendshipRepository) GetBetween(ctx context.Context, userID, otherID string) (*entity.Friendship, error) {
	var record entity.Friendship
	err := xcontext.DB(ctx).
		Where("(user_id=? AND friend_id=?) OR (user_id=? AND friend_id=?)",
			userID, otherID, otherID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, id string, status entity.FriendshipStatusType) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Friendship{}).
		Where("id=?", id).
		Update("status", status)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Unscoped().Delete(&entity.Friendship{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) DeleteBetween(ctx context.Context, userID, otherID string) error {
	tx := xcontext.DB(ctx).
		Unscoped().
		Where("(user_id=? AND friend_id=?) OR (user_id=? AND friend_id=?)",
			userID, otherID, otherID, userID).
		Delete(&entity.Friendship{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) GetAcceptedByUserID(ctx context.Context, userID string) ([]entity.Friendship, error) {
	var records []entity.Friendship
	err := xcontext.DB(ctx).
		Preload("User").
		Preload("Friend").
		Where("(user_id=? OR friend_id=?) AND status=?",
			userID, userID, entity.FriendshipAccepted).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
