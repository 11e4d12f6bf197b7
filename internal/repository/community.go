package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/search"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"github.com/socialnet-labs/backend/pkg/xredis"
	"gorm.io/gorm"
)

type GetListCommunityFilter struct {
	Q      string
	Offset int
	Limit  int
}

type CommunityRepository interface {
	Create(ctx context.Context, community *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Community, error)
	GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error)
	IncreaseMembersCount(ctx context.Context, id string) error
	DecreaseMembersCount(ctx context.Context, id string) error
	GetPopular(ctx context.Context, limit int) ([]entity.Community, error)
	GetRecommended(ctx context.Context, createdAfter time.Time, minMembers, limit int) ([]entity.Community, error)
}

type communityRepository struct {
	searcher    search.Searcher
	redisClient xredis.Client
}

func NewCommunityRepository(searcher search.Searcher, redisClient xredis.Client) *communityRepository {
	return &communityRepository{searcher: searcher, redisClient: redisClient}
}

func (r *communityRepository) cacheKeyByID(communityID string) string {
	return fmt.Sprintf("cache:community:%s", communityID)
}

func (r *communityRepository) cache(ctx context.Context, communities ...entity.Community) {
	redisKV := map[string]any{}
	for _, record := range communities {
		redisKV[r.cacheKeyByID(record.ID)] = record
	}

	if err := r.redisClient.MSet(ctx, redisKV); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple set for community redis: %v", err)
	}
}

func (r *communityRepository) fromCacheByID(ctx context.Context, ids ...string) []entity.Community {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	var records []entity.Community
	values, err := r.redisClient.MGet(ctx, keys...)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple get community from redis: %v", err)
		return nil
	}

	for i := range keys {
		if values[i] == nil {
			continue
		}

		s, ok := values[i].(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid type of community %T", values[i])
			continue
		}

		var result entity.Community
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal community object: %v", err)
			continue
		}

		records = append(records, result)
	}

	return records
}

func (r *communityRepository) invalidateCache(ctx context.Context, ids ...string) {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	if err := r.redisClient.Del(ctx, keys...); err != nil && !xredis.IsNil(err) {
		xcontext.Logger(ctx).Warnf("Cannot invalidate community redis key: %v", err)
	}
}

func (r *communityRepository) Create(ctx context.Context, community *entity.Community) error {
	if err := xcontext.DB(ctx).Create(community).Error; err != nil {
		return err
	}

	return r.searcher.Index(search.CommunityDoc, community.ID, search.CommunityData{
		Name:        community.Name,
		Description: community.Description,
	})
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	if c := r.fromCacheByID(ctx, id); len(c) > 0 {
		return &c[0], nil
	}

	var record entity.Community
	err := xcontext.DB(ctx).Preload("Owner").Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	r.cache(ctx, record)
	return &record, nil
}

func (r *communityRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Community, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Community
	err := xcontext.DB(ctx).Preload("Owner").Find(&records, "id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error) {
	if filter.Q == "" {
		var records []entity.Community
		err := xcontext.DB(ctx).
			Preload("Owner").
			Order("created_at DESC").
			Offset(filter.Offset).Limit(filter.Limit).
			Find(&records).Error
		if err != nil {
			return nil, err
		}

		return records, nil
	}

	ids, err := r.searcher.Search(search.CommunityDoc, filter.Q, filter.Offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	communitySet := map[string]entity.Community{}
	for _, c := range communities {
		communitySet[c.ID] = c
	}

	orderedCommunities := []entity.Community{}
	for _, id := range ids {
		if c, ok := communitySet[id]; ok {
			orderedCommunities = append(orderedCommunities, c)
		}
	}

	return orderedCommunities, nil
}

func (r *communityRepository) IncreaseMembersCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=?", id).
		Update("members_count", gorm.Expr("members_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

// DecreaseMembersCount keeps the counter at zero if it has somehow drifted
// below the real membership count. A zero-row update is not an error then.
func (r *communityRepository) DecreaseMembersCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=? AND members_count > 0", id).
		Update("members_count", gorm.Expr("members_count-1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *communityRepository) GetPopular(ctx context.Context, limit int) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Preload("Owner").
		Select("communities.*, "+
			"(SELECT COUNT(*) FROM user_communities "+
			"WHERE user_communities.community_id=communities.id) AS live_members").
		Order("live_members DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetRecommended returns open communities with an active owner, created after
// the given time, that are either verified or have reached minMembers. Ranked
// by the live membership count, not the cached one.
func (r *communityRepository) GetRecommended(
	ctx context.Context, createdAfter time.Time, minMembers, limit int,
) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Preload("Owner").
		Select("communities.*, "+
			"(SELECT COUNT(*) FROM user_communities "+
			"WHERE user_communities.community_id=communities.id) AS live_members").
		Joins("JOIN users ON users.id=communities.owner_id").
		Where("communities.type=?", entity.CommunityOpen).
		Where("users.is_active=true").
		Where("communities.created_at > ?", createdAfter).
		Where("communities.is_verified=true OR communities.members_count >= ?", minMembers).
		Order("live_members DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
