package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	GetList(ctx context.Context) ([]entity.Role, error)
}

type roleRepository struct{}

func NewRoleRepository() *roleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	return xcontext.DB(ctx).Create(role).Error
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	var record entity.Role
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var record entity.Role
	if err := xcontext.DB(ctx).Take(&record, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *roleRepository) GetList(ctx context.Context) ([]entity.Role, error) {
	var records []entity.Role
	if err := xcontext.DB(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
