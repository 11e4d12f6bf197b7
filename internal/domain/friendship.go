package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FriendshipDomain interface {
	SendRequest(ctx context.Context, req *model.SendFriendRequestRequest) (*model.SendFriendRequestResponse, error)
	Accept(ctx context.Context, req *model.AcceptFriendRequestRequest) (*model.AcceptFriendRequestResponse, error)
	Decline(ctx context.Context, req *model.DeclineFriendRequestRequest) (*model.DeclineFriendRequestResponse, error)
	Cancel(ctx context.Context, req *model.CancelFriendRequestRequest) (*model.CancelFriendRequestResponse, error)
	Unfriend(ctx context.Context, req *model.UnfriendRequest) (*model.UnfriendResponse, error)
	GetFriends(ctx context.Context, req *model.GetFriendsRequest) (*model.GetFriendsResponse, error)
}

type friendshipDomain struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

func NewFriendshipDomain(
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
) *friendshipDomain {
	return &friendshipDomain{friendshipRepo: friendshipRepo, userRepo: userRepo}
}

func (d *friendshipDomain) SendRequest(
	ctx context.Context, req *model.SendFriendRequestRequest,
) (*model.SendFriendRequestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == req.FriendID {
		return nil, errorx.New(errorx.BadRequest, "Cannot send a friend request to yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.FriendID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// A pair holds at most one row, in either direction and any status. A
	// declined row also blocks new requests until it is removed.
	_, err := d.friendshipRepo.GetBetween(ctx, userID, req.FriendID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "A friendship already exists between these users")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing friendship: %v", err)
		return nil, errorx.Unknown
	}

	friendship := &entity.Friendship{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    userID,
		FriendID:  req.FriendID,
		Status:    entity.FriendshipPending,
		CreatedBy: sql.NullString{Valid: true, String: userID},
	}

	if err := d.friendshipRepo.Create(ctx, friendship); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create friendship: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.friendshipRepo.GetByID(ctx, friendship.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created friendship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SendFriendRequestResponse{Friendship: model.ConvertFriendship(created)}, nil
}

func (d *friendshipDomain) Accept(
	ctx context.Context, req *model.AcceptFriendRequestRequest,
) (*model.AcceptFriendRequestResponse, error) {
	friendship, err := d.respondToRequest(ctx, req.ID, entity.FriendshipAccepted)
	if err != nil {
		return nil, err
	}

	return &model.AcceptFriendRequestResponse{Friendship: model.ConvertFriendship(friendship)}, nil
}

func (d *friendshipDomain) Decline(
	ctx context.Context, req *model.DeclineFriendRequestRequest,
) (*model.DeclineFriendRequestResponse, error) {
	// The declined row is kept, not deleted. It keeps blocking new requests
	// between the pair until someone unfriends.
	friendship, err := d.respondToRequest(ctx, req.ID, entity.FriendshipDeclined)
	if err != nil {
		return nil, err
	}

	return &model.DeclineFriendRequestResponse{Friendship: model.ConvertFriendship(friendship)}, nil
}

func (d *friendshipDomain) respondToRequest(
	ctx context.Context, id string, status entity.FriendshipStatusType,
) (*entity.Friendship, error) {
	friendship, err := d.friendshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friend request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship: %v", err)
		return nil, errorx.Unknown
	}

	if friendship.FriendID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the recipient can respond to a friend request")
	}

	if friendship.Status != entity.FriendshipPending {
		return nil, errorx.New(errorx.PermissionDenied, "This friend request has already been responded to")
	}

	if err := d.friendshipRepo.UpdateStatus(ctx, id, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update friendship status: %v", err)
		return nil, errorx.Unknown
	}

	friendship.Status = status
	return friendship, nil
}

func (d *friendshipDomain) Cancel(
	ctx context.Context, req *model.CancelFriendRequestRequest,
) (*model.CancelFriendRequestResponse, error) {
	friendship, err := d.friendshipRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friend request")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship: %v", err)
		return nil, errorx.Unknown
	}

	if friendship.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the initiator can cancel a friend request")
	}

	if friendship.Status != entity.FriendshipPending {
		return nil, errorx.New(errorx.BadRequest, "Only a pending request can be cancelled")
	}

	if err := d.friendshipRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete friendship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CancelFriendRequestResponse{}, nil
}

func (d *friendshipDomain) Unfriend(
	ctx context.Context, req *model.UnfriendRequest,
) (*model.UnfriendResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := d.friendshipRepo.DeleteBetween(ctx, userID, req.FriendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friendship")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete friendship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfriendResponse{}, nil
}

func (d *friendshipDomain) GetFriends(
	ctx context.Context, req *model.GetFriendsRequest,
) (*model.GetFriendsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	friendships, err := d.friendshipRepo.GetAcceptedByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friendships: %v", err)
		return nil, errorx.Unknown
	}

	// The user can appear on either side of an edge. Collect the counterpart
	// of each edge and drop duplicates.
	seen := map[string]bool{}
	friends := []model.ShortUser{}
	for i := range friendships {
		counterpart := &friendships[i].Friend
		if friendships[i].FriendID == userID {
			counterpart = &friendships[i].User
		}

		if seen[counterpart.ID] {
			continue
		}

		seen[counterpart.ID] = true
		friends = append(friends, model.ConvertShortUser(counterpart))
	}

	return &model.GetFriendsResponse{Friends: friends}, nil
}
