package service

import (
	"context"
	"time"

	"agroscore/entities"
	"agroscore/pkg/measure/window"
)

type MeasureService interface {
	Create(ctx context.Context, m *entities.Measurement) (*entities.Measurement, error)
	Recent(ctx context.Context, fieldID uint, days int) ([]entities.Measurement, error)
	Window(ctx context.Context, fieldID uint, since time.Time) (window.Window, error)
}
