package serviceImp

import (
	"errors"
	"strings"

	"agroscore/entities"
	repo "agroscore/pkg/field/repository"
	"agroscore/pkg/field/service"
)

// ErrNameRequired is returned when a field is created without a name.
var ErrNameRequired = errors.New("field name required")

type fieldSvc struct{ r repo.FieldRepository }

func NewFieldService(r repo.FieldRepository) service.FieldService { return &fieldSvc{r} }

func (s *fieldSvc) CreateField(f *entities.Field) (*entities.Field, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	if f.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.r.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) GetFieldByID(id uint) (*entities.Field, error) {
	return s.r.FindByID(id)
}
