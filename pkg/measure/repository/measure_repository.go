package repository

import (
	"context"
	"time"

	"agroscore/entities"
)

// MeasureRepository stores field readings. Since returns readings taken at or
// after since, oldest first.
type MeasureRepository interface {
	Create(ctx context.Context, m *entities.Measurement) error
	Since(ctx context.Context, fieldID uint, since time.Time) ([]entities.Measurement, error)
}
