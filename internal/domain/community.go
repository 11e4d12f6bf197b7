package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/common"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/enum"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	Create(ctx context.Context, req *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	Get(ctx context.Context, req *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	GetList(ctx context.Context, req *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Search(ctx context.Context, req *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Join(ctx context.Context, req *model.JoinCommunityRequest) (*model.JoinCommunityResponse, error)
	Leave(ctx context.Context, req *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	LeaveIfMember(ctx context.Context, req *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	GetMembers(ctx context.Context, req *model.GetCommunityMembersRequest) (*model.GetCommunityMembersResponse, error)
	GetPosts(ctx context.Context, req *model.GetCommunityPostsRequest) (*model.GetCommunityPostsResponse, error)
	GetPopular(ctx context.Context, req *model.GetPopularCommunitiesRequest) (*model.GetPopularCommunitiesResponse, error)
	GetRecommended(ctx context.Context, req *model.GetRecommendedCommunitiesRequest) (*model.GetRecommendedCommunitiesResponse, error)
}

type communityDomain struct {
	communityRepo     repository.CommunityRepository
	userCommunityRepo repository.UserCommunityRepository
	postRepo          repository.PostRepository
	likeRepo          repository.LikeRepository
	commentRepo       repository.CommentRepository
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	userCommunityRepo repository.UserCommunityRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *communityDomain {
	return &communityDomain{
		communityRepo:     communityRepo,
		userCommunityRepo: userCommunityRepo,
		postRepo:          postRepo,
		likeRepo:          likeRepo,
		commentRepo:       commentRepo,
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if err := common.ValidateCommunityName(req.Name); err != nil {
		return nil, err
	}

	communityType := entity.CommunityOpen
	if req.Type != "" {
		var err error
		communityType, err = enum.ToEnum[entity.CommunityType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Community type must be open or closed")
		}
	}

	userID := xcontext.RequestUserID(ctx)
	community := &entity.Community{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		CoverURL:    req.CoverURL,
		Type:        communityType,
		OwnerID:     userID,
		CreatedBy:   sql.NullString{Valid: true, String: userID},
	}

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.communityRepo.GetByID(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommunityResponse{Community: model.ConvertCommunity(created)}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommunityResponse{Community: model.ConvertCommunity(community)}, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	communities, err := d.communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Community{}
	for i := range communities {
		result = append(result, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetCommunitiesResponse{Communities: result}, nil
}

// Search is the query entry point. Unlike GetList, it refuses to run without
// a query instead of falling back to the plain listing.
func (d *communityDomain) Search(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Query is required")
	}

	return d.GetList(ctx, req)
}

func (d *communityDomain) Join(
	ctx context.Context, req *model.JoinCommunityRequest,
) (*model.JoinCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	if community.Type == entity.CommunityClosed {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot join a closed community")
	}

	membership := &entity.UserCommunity{
		UserID:      userID,
		CommunityID: community.ID,
		Role:        entity.CommunityRoleMember,
		JoinedAt:    time.Now(),
		CreatedBy:   sql.NullString{Valid: true, String: userID},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.userCommunityRepo.Create(ctx, membership)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create membership: %v", err)
		return nil, errorx.Unknown
	}

	// Joining twice is a no-op. The counter moves only with a real insert.
	if inserted {
		if err := d.communityRepo.IncreaseMembersCount(ctx, community.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase members count: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	existing, err := d.userCommunityRepo.Get(ctx, userID, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, errorx.Unknown
	}

	community, err = d.communityRepo.GetByID(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community after join: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinCommunityResponse{
		Member:       model.ConvertCommunityMember(existing),
		MembersCount: community.MembersCount,
	}, nil
}

// Leave is the strict entry point. Leaving without a membership is an error.
func (d *communityDomain) Leave(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	return d.leave(ctx, req, true)
}

// LeaveIfMember is the forgiving entry point used by the web flow. Leaving
// without a membership reports an informational message instead of failing.
func (d *communityDomain) LeaveIfMember(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	return d.leave(ctx, req, false)
}

func (d *communityDomain) leave(
	ctx context.Context, req *model.LeaveCommunityRequest, strict bool,
) (*model.LeaveCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	if community.OwnerID == userID {
		return nil, errorx.New(errorx.PermissionDenied, "The owner cannot leave the community")
	}

	if _, err := d.userCommunityRepo.Get(ctx, userID, community.ID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
			return nil, errorx.Unknown
		}

		if strict {
			return nil, errorx.New(errorx.NotFound, "You are not a member of this community")
		}

		return &model.LeaveCommunityResponse{
			MembersCount: community.MembersCount,
			Message:      "You are not a member of this community",
		}, nil
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userCommunityRepo.Delete(ctx, userID, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.DecreaseMembersCount(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease members count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	community, err = d.communityRepo.GetByID(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community after leave: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LeaveCommunityResponse{MembersCount: community.MembersCount}, nil
}

func (d *communityDomain) GetMembers(
	ctx context.Context, req *model.GetCommunityMembersRequest,
) (*model.GetCommunityMembersResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if _, err := d.communityRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.userCommunityRepo.GetListByCommunityID(ctx, req.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.CommunityMember{}
	for i := range members {
		result = append(result, model.ConvertCommunityMember(&members[i]))
	}

	return &model.GetCommunityMembersResponse{Members: result}, nil
}

func (d *communityDomain) GetPosts(
	ctx context.Context, req *model.GetCommunityPostsRequest,
) (*model.GetCommunityPostsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if _, err := d.communityRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetList(ctx, repository.GetListPostFilter{
		CommunityID: req.ID,
		Offset:      req.Offset,
		Limit:       req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community posts: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.likeRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetCommunityPostsResponse{Posts: result}, nil
}

func (d *communityDomain) GetPopular(
	ctx context.Context, req *model.GetPopularCommunitiesRequest,
) (*model.GetPopularCommunitiesResponse, error) {
	communities, err := d.communityRepo.GetPopular(ctx, xcontext.Configs(ctx).Feed.PopularLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get popular communities: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Community{}
	for i := range communities {
		result = append(result, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetPopularCommunitiesResponse{Communities: result}, nil
}

func (d *communityDomain) GetRecommended(
	ctx context.Context, req *model.GetRecommendedCommunitiesRequest,
) (*model.GetRecommendedCommunitiesResponse, error) {
	feedCfg := xcontext.Configs(ctx).Feed
	communities, err := d.communityRepo.GetRecommended(ctx,
		time.Now().Add(-feedCfg.RecommendWindow),
		feedCfg.RecommendMinMembers,
		feedCfg.RecommendLimit,
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recommended communities: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Community{}
	for i := range communities {
		result = append(result, model.ConvertCommunity(&communities[i]))
	}

	return &model.GetRecommendedCommunitiesResponse{Communities: result}, nil
}
