package common

import (
	"context"
	"errors"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/repository"
	"gorm.io/gorm"
)

// CanPost reports whether the user may post into the community. The owner
// always may; everyone else needs a membership row, regardless of role.
func CanPost(
	ctx context.Context,
	userCommunityRepo repository.UserCommunityRepository,
	community *entity.Community,
	userID string,
) (bool, error) {
	if community.OwnerID == userID {
		return true, nil
	}

	_, err := userCommunityRepo.Get(ctx, userID, community.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
