package domain

import (
	"testing"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/testutil"
	"github.com/socialnet-labs/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newFriendshipDomainForTest() *friendshipDomain {
	return NewFriendshipDomain(
		repository.NewFriendshipRepository(),
		repository.NewUserRepository(),
	)
}

func Test_friendshipDomain_SendRequest(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	resp, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Friendship.User.ID)
	require.Equal(t, testutil.User3.ID, resp.Friendship.Friend.ID)
	require.Equal(t, string(entity.FriendshipPending), resp.Friendship.Status)
}

func Test_friendshipDomain_SendRequest_toSelf(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	_, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_friendshipDomain_SendRequest_pairIsUnique(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	// An accepted edge User1 -> User2 exists in the fixture. A new request in
	// either direction must be rejected.
	_, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User2.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	reversed := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(reversed)
	_, err = newFriendshipDomainForTest().SendRequest(reversed, &model.SendFriendRequestRequest{
		FriendID: testutil.User1.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_friendshipDomain_Accept(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	sendResp, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	require.NoError(t, err)

	// Only the recipient can accept.
	_, err = domain.Accept(ctx, &model.AcceptFriendRequestRequest{ID: sendResp.Friendship.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	recipientCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	acceptResp, err := domain.Accept(recipientCtx, &model.AcceptFriendRequestRequest{
		ID: sendResp.Friendship.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.FriendshipAccepted), acceptResp.Friendship.Status)

	// A second response is rejected: once accepted, the edge can only be
	// removed, never re-answered.
	_, err = domain.Accept(recipientCtx, &model.AcceptFriendRequestRequest{
		ID: sendResp.Friendship.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_friendshipDomain_Decline_keepsBlockingRow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	sendResp, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	require.NoError(t, err)

	recipientCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	declineResp, err := domain.Decline(recipientCtx, &model.DeclineFriendRequestRequest{
		ID: sendResp.Friendship.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.FriendshipDeclined), declineResp.Friendship.Status)

	// The declined row still blocks a new request between the pair.
	_, err = domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_friendshipDomain_Cancel(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	sendResp, err := domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	require.NoError(t, err)

	// Only the initiator can cancel.
	recipientCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.Cancel(recipientCtx, &model.CancelFriendRequestRequest{ID: sendResp.Friendship.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = domain.Cancel(ctx, &model.CancelFriendRequestRequest{ID: sendResp.Friendship.ID})
	require.NoError(t, err)

	// After the cancel, sending again works.
	_, err = domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User3.ID,
	})
	require.NoError(t, err)
}

func Test_friendshipDomain_Unfriend(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	// Either side of an edge can unfriend, here the recipient of the original
	// request.
	_, err := domain.Unfriend(ctx, &model.UnfriendRequest{FriendID: testutil.User1.ID})
	require.NoError(t, err)

	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Friendship{}).Count(&count)
	require.NoError(t, tx.Error)
	require.EqualValues(t, 0, count)

	// A second unfriend finds nothing.
	_, err = domain.Unfriend(ctx, &model.UnfriendRequest{FriendID: testutil.User1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	// The pair can start over after unfriending.
	_, err = domain.SendRequest(ctx, &model.SendFriendRequestRequest{
		FriendID: testutil.User1.ID,
	})
	require.NoError(t, err)
}

func Test_friendshipDomain_GetFriends(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFriendshipDomainForTest()

	resp, err := domain.GetFriends(ctx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Friends, 1)
	require.Equal(t, testutil.User2.ID, resp.Friends[0].ID)

	// The same edge is visible from the other side.
	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err = domain.GetFriends(otherCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Friends, 1)
	require.Equal(t, testutil.User1.ID, resp.Friends[0].ID)
}
