package repositoryImp

import (
	"context"
	"time"

	"agroscore/entities"
	"agroscore/pkg/measure/repository"

	"gorm.io/gorm"
)

type measureRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MeasureRepository { return &measureRepo{db} }

func (r *measureRepo) Create(ctx context.Context, m *entities.Measurement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *measureRepo) Since(ctx context.Context, fieldID uint, since time.Time) ([]entities.Measurement, error) {
	var out []entities.Measurement
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND taken_at >= ?", fieldID, since).
		Order("taken_at ASC, measure_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
