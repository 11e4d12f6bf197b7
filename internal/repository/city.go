package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type CityRepository interface {
	Create(ctx context.Context, city *entity.City) error
	GetByID(ctx context.Context, id string) (*entity.City, error)
	GetList(ctx context.Context) ([]entity.City, error)
}

type cityRepository struct{}

func NewCityRepository() *cityRepository {
	return &cityRepository{}
}

func (r *cityRepository) Create(ctx context.Context, city *entity.City) error {
	return xcontext.DB(ctx).Create(city).Error
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*entity.City, error) {
	var record entity.City
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *cityRepository) GetList(ctx context.Context) ([]entity.City, error) {
	var records []entity.City
	if err := xcontext.DB(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
