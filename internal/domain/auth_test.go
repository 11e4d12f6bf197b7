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

func Test_authDomain_Register_and_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewRoleRepository())

	registerResp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:     "new@example.com",
		Password:  "supersecret",
		FirstName: "New",
		LastName:  "User",
		Username:  "newuser",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registerResp.AccessToken)
	require.Equal(t, "new@example.com", registerResp.User.Email)

	info, err := xcontext.TokenEngine(ctx).Verify(registerResp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registerResp.User.ID, info.ID)

	loginResp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "new@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)

	// A successful login refreshes the presence fields.
	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "id=?", registerResp.User.ID)
	require.NoError(t, tx.Error)
	require.True(t, user.LastSeen.Valid)
	require.True(t, user.IsOnline)

	// The fixtures carry a "user" role, so registration picks it up.
	require.Equal(t, testutil.Role1.ID, user.RoleID.String)
}

func Test_authDomain_Register_duplicateEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewRoleRepository())

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    testutil.User1.Email,
		Password: "supersecret",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_authDomain_Login_badCredentials(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository(), repository.NewRoleRepository())

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "new@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	var errx errorx.Error
	_, err = domain.Login(ctx, &model.LoginRequest{Email: "new@example.com", Password: "wrong"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	_, err = domain.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_authDomain_Login_deactivatedAccount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, repository.NewRoleRepository())

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "sleepy@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", resp.User.ID).Update("is_active", false)
	require.NoError(t, tx.Error)

	var errx errorx.Error
	_, err = domain.Login(ctx, &model.LoginRequest{Email: "sleepy@example.com", Password: "supersecret"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
