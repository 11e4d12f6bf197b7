package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewAuthDomain(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *authDomain {
	return &authDomain{userRepo: userRepo, roleRepo: roleRepo}
}

const defaultRoleName = "user"

func (d *authDomain) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	if req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Email is required")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          req.Email,
		HashedPassword: string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IsActive:       true,
	}

	if req.Username != "" {
		user.Username = sql.NullString{Valid: true, String: req.Username}
	}

	// New accounts get the default role when the seed created one. A missing
	// role row is not an error, the account just carries no role.
	role, err := d.roleRepo.GetByName(ctx, defaultRoleName)
	if err == nil {
		user.RoleID = sql.NullString{Valid: true, String: role.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get default role: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user, true),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.Unauthenticated, "This account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if err := d.userRepo.UpdateLastSeen(ctx, user.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update last seen of user: %v", err)
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		User:        model.ConvertUser(user, true),
		AccessToken: token,
	}, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:      user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}
