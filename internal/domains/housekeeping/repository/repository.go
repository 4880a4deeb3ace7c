package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bunkhouse/infras/otel"
	"bunkhouse/infras/postgres"
	"bunkhouse/internal/domains/housekeeping/model"
	gDto "bunkhouse/shared/dto"
	gRepo "bunkhouse/shared/repository"
)

type Housekeeper interface {
	Insert(ctx context.Context, model model.Housekeeper) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Housekeeper, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Housekeeper, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Housekeeper]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Housekeeper {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Housekeeper](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
