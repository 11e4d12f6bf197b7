package domain

import (
	"testing"

	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/testutil"
	"github.com/socialnet-labs/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newUserDomainForTest() *userDomain {
	return NewUserDomain(repository.NewUserRepository(), repository.NewCityRepository())
}

func Test_userDomain_Get_hidesSensitiveFields(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	// Looking at someone else hides the contact fields.
	resp, err := domain.Get(ctx, &model.GetUserRequest{ID: testutil.User1.ID})
	require.NoError(t, err)
	require.Empty(t, resp.User.Email)

	// Looking at yourself shows them.
	selfCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err = domain.Get(selfCtx, &model.GetUserRequest{ID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Email, resp.User.Email)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	resp, err := domain.Update(ctx, &model.UpdateUserRequest{
		FirstName: "Alicia",
		Bio:       "Backend engineer",
		CityID:    testutil.City1.ID,
		BirthDate: "1990-04-01",
		Gender:    "female",
	})
	require.NoError(t, err)
	require.Equal(t, "Alicia Nguyen", resp.User.FullName)
	require.Equal(t, "Backend engineer", resp.User.Bio)
	require.Equal(t, testutil.City1.ID, resp.User.City.ID)
	require.Equal(t, "female", resp.User.Gender)
}

func Test_userDomain_Update_invalidInput(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	var errx errorx.Error
	_, err := domain.Update(ctx, &model.UpdateUserRequest{Gender: "robot"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Update(ctx, &model.UpdateUserRequest{BirthDate: "01.04.1990"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Update(ctx, &model.UpdateUserRequest{CityID: "no-such-city"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
