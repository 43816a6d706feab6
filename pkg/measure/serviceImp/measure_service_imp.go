package serviceImp

import (
	"context"
	"errors"
	"time"

	"agroscore/entities"
	repo "agroscore/pkg/measure/repository"
	"agroscore/pkg/measure/service"
	"agroscore/pkg/measure/window"
)

var ErrEmptyReading = errors.New("reading has no values")

type measureSvc struct {
	r   repo.MeasureRepository
	now func() time.Time
}

func NewMeasureService(r repo.MeasureRepository, now func() time.Time) service.MeasureService {
	if now == nil {
		now = time.Now
	}
	return &measureSvc{r: r, now: now}
}

func (s *measureSvc) Create(ctx context.Context, m *entities.Measurement) (*entities.Measurement, error) {
	if m.Ph == nil && m.Nitrogen == nil && m.Phosphorus == nil && m.Potassium == nil &&
		m.OrganicMatter == nil && m.Temperature == nil && m.Humidity == nil &&
		m.Moisture == nil && m.WindSpeed == nil {
		return nil, ErrEmptyReading
	}
	if m.TakenAt.IsZero() {
		m.TakenAt = s.now()
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *measureSvc) Recent(ctx context.Context, fieldID uint, days int) ([]entities.Measurement, error) {
	return s.r.Since(ctx, fieldID, s.now().AddDate(0, 0, -days))
}

func (s *measureSvc) Window(ctx context.Context, fieldID uint, since time.Time) (window.Window, error) {
	ms, err := s.r.Since(ctx, fieldID, since)
	if err != nil {
		return window.Window{}, err
	}
	return window.Aggregate(ms), nil
}
