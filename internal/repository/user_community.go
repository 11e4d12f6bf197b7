package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserCommunityRepository interface {
	Get(ctx context.Context, userID, communityID string) (*entity.UserCommunity, error)
	// Create inserts the membership unless it already exists. It reports
	// whether a row was actually inserted.
	Create(ctx context.Context, membership *entity.UserCommunity) (bool, error)
	Delete(ctx context.Context, userID, communityID string) error
	GetListByCommunityID(ctx context.Context, communityID string, offset, limit int) ([]entity.UserCommunity, error)
	Count(ctx context.Context, communityID string) (int64, error)
}

type userCommunityRepository struct{}

func NewUserCommunityRepository() *userCommunityRepository {
	return &userCommunityRepository{}
}

func (r *userCommunityRepository) Get(ctx context.Context, userID, communityID string) (*entity.UserCommunity, error) {
	var record entity.UserCommunity
	err := xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userCommunityRepository) Create(ctx context.Context, membership *entity.UserCommunity) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userCommunityRepository) Delete(ctx context.Context, userID, communityID string) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Delete(&entity.UserCommunity{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userCommunityRepository) GetListByCommunityID(
	ctx context.Context, communityID string, offset, limit int,
) ([]entity.UserCommunity, error) {
	var records []entity.UserCommunity
	err := xcontext.DB(ctx).
		Preload("User").
		Where("community_id=?", communityID).
		Order("joined_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userCommunityRepository) Count(ctx context.Context, communityID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.UserCommunity{}).
		Where("community_id=?", communityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
