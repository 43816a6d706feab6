package repository

import "agroscore/entities"

type FieldRepository interface {
	Create(f *entities.Field) error
	FindByID(id uint) (*entities.Field, error)
}
