package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/enum"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
	cityRepo repository.CityRepository
}

func NewUserDomain(userRepo repository.UserRepository, cityRepo repository.CityRepository) *userDomain {
	return &userDomain{userRepo: userRepo, cityRepo: cityRepo}
}

func (d *userDomain) Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	includeSensitive := xcontext.RequestUserID(ctx) == user.ID
	return &model.GetUserResponse{User: model.ConvertUser(user, includeSensitive)}, nil
}

func (d *userDomain) Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	update := entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
		Phone:     req.Phone,
		UpdatedBy: sql.NullString{Valid: true, String: userID},
	}

	if req.Username != "" {
		update.Username = sql.NullString{Valid: true, String: req.Username}
	}

	if req.Gender != "" {
		gender, err := enum.ToEnum[entity.GenderType](req.Gender)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid gender %s", req.Gender)
		}

		update.Gender = gender
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse(model.DefaultDateLayout, req.BirthDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid birth date %s", req.BirthDate)
		}

		update.BirthDate = sql.NullTime{Valid: true, Time: birthDate}
	}

	if req.CityID != "" {
		if _, err := d.cityRepo.GetByID(ctx, req.CityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found city")
			}

			xcontext.Logger(ctx).Errorf("Cannot get city: %v", err)
			return nil, errorx.Unknown
		}

		update.CityID = sql.NullString{Valid: true, String: req.CityID}
	}

	if err := d.userRepo.UpdateByID(ctx, userID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{User: model.ConvertUser(user, true)}, nil
}
