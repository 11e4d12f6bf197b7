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

func newCommunityDomainForTest() *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(&testutil.MockSearcher{}, &testutil.MockRedisClient{}),
		repository.NewUserCommunityRepository(),
		repository.NewPostRepository(&testutil.MockSearcher{}),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
	)
}

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.Create(ctx, &model.CreateCommunityRequest{
		Name:        "Crypto Enthusiasts",
		Description: "All about digital money",
		Type:        "open",
	})
	require.NoError(t, err)

	var result entity.Community
	tx := xcontext.DB(ctx).Model(&entity.Community{}).Take(&result, "id", resp.Community.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, "Crypto Enthusiasts", result.Name)
	require.Equal(t, testutil.User1.ID, result.OwnerID)
	require.Equal(t, testutil.User1.ID, result.CreatedBy.String)
	require.Equal(t, 0, result.MembersCount)
}

func Test_communityDomain_Create_invalidName(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	for _, name := range []string{"ab", "The offical moderator club"} {
		_, err := domain.Create(ctx, &model.CreateCommunityRequest{Name: name})
		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func Test_communityDomain_Join_isIdempotent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Community1.MembersCount+1, resp.MembersCount)

	// A second join must not move the counter.
	resp, err = domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Community1.MembersCount+1, resp.MembersCount)

	var count int64
	tx := xcontext.DB(ctx).Model(&entity.UserCommunity{}).
		Where("community_id=?", testutil.Community1.ID).Count(&count)
	require.NoError(t, tx.Error)
	require.EqualValues(t, 2, count)
}

func Test_communityDomain_Join_closedCommunity(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	_, err := domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community2.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_communityDomain_Leave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Community1.MembersCount-1, resp.MembersCount)

	var count int64
	tx := xcontext.DB(ctx).Model(&entity.UserCommunity{}).
		Where("community_id=?", testutil.Community1.ID).Count(&count)
	require.NoError(t, tx.Error)
	require.EqualValues(t, 0, count)
}

func Test_communityDomain_Leave_ownerCannotLeave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	_, err := domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_communityDomain_Leave_notMember(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	// The strict entry point fails.
	_, err := domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	// The web entry point reports instead of failing, and the counter stays.
	resp, err := domain.LeaveIfMember(ctx, &model.LeaveCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Message)
	require.Equal(t, testutil.Community1.MembersCount, resp.MembersCount)
}

func Test_communityDomain_Leave_counterFlooredAtZero(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	// Force the cached counter out of step with the real rows.
	tx := xcontext.DB(ctx).Model(&entity.Community{}).
		Where("id=?", testutil.Community1.ID).Update("members_count", 0)
	require.NoError(t, tx.Error)

	resp, err := domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.Equal(t, 0, resp.MembersCount)
}

func Test_communityDomain_GetMembers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.GetMembers(ctx, &model.GetCommunityMembersRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Members, 1)
	require.Equal(t, testutil.User2.ID, resp.Members[0].User.ID)
}

func Test_communityDomain_GetRecommended(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	// Community1 is open, verified and recently created by an active owner.
	// Community2 is closed and must never show up.
	resp, err := domain.GetRecommended(ctx, &model.GetRecommendedCommunitiesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 1)
	require.Equal(t, testutil.Community1.ID, resp.Communities[0].ID)
}

func Test_communityDomain_membershipGatesPosting(t *testing.T) {
	ownerCtx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ownerCtx)
	communityDomain := newCommunityDomainForTest()
	postDomain := newPostDomainForTest()

	createResp, err := communityDomain.Create(ownerCtx, &model.CreateCommunityRequest{
		Name: "Weekend Hikers",
		Type: "open",
	})
	require.NoError(t, err)
	communityID := createResp.Community.ID

	memberCount := func() int64 {
		var count int64
		tx := xcontext.DB(ownerCtx).Model(&entity.UserCommunity{}).
			Where("community_id=?", communityID).Count(&count)
		require.NoError(t, tx.Error)
		return count
	}

	memberCtx := xcontext.WithRequestUserID(ownerCtx, testutil.User2.ID)
	joinResp, err := communityDomain.Join(memberCtx, &model.JoinCommunityRequest{ID: communityID})
	require.NoError(t, err)
	require.Equal(t, 1, joinResp.MembersCount)
	require.EqualValues(t, 1, memberCount())

	_, err = postDomain.Create(memberCtx, &model.CreatePostRequest{
		Content:     "Meeting point for the Saturday trail walk.",
		CommunityID: communityID,
	})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ownerCtx, testutil.User3.ID)
	_, err = postDomain.Create(strangerCtx, &model.CreatePostRequest{
		Content:     "Let me post here without joining first.",
		CommunityID: communityID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	leaveResp, err := communityDomain.Leave(memberCtx, &model.LeaveCommunityRequest{ID: communityID})
	require.NoError(t, err)
	require.Equal(t, 0, leaveResp.MembersCount)
	require.EqualValues(t, 0, memberCount())

	// Leaving revokes posting rights right away.
	_, err = postDomain.Create(memberCtx, &model.CreatePostRequest{
		Content:     "One more post after walking out the door.",
		CommunityID: communityID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_communityDomain_Search_requiresQuery(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	searcher := &testutil.MockSearcher{
		SearchFunc: func(document, query string, offset, limit int) ([]string, error) {
			return []string{testutil.Community1.ID}, nil
		},
	}
	domain := NewCommunityDomain(
		repository.NewCommunityRepository(searcher, &testutil.MockRedisClient{}),
		repository.NewUserCommunityRepository(),
		repository.NewPostRepository(&testutil.MockSearcher{}),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
	)

	_, err := domain.Search(ctx, &model.GetCommunitiesRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	resp, err := domain.Search(ctx, &model.GetCommunitiesRequest{Q: "gophers"})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 1)
	require.Equal(t, testutil.Community1.ID, resp.Communities[0].ID)
}
