package service

import "agroscore/entities"

type FieldService interface {
	CreateField(f *entities.Field) (*entities.Field, error)
	GetFieldByID(id uint) (*entities.Field, error)
}
